package dodge

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Visual characters for rendering
const (
	PlayerTip  = '▲'
	PlayerBody = '█'
	HeartChar  = '♥'
)

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	snap := g.engine.Snapshot()

	for _, o := range snap.Obstacles {
		drawObstacle(dst, o)
	}
	if snap.Phase != core.PhaseMenu {
		drawPlayer(dst, snap.Player)
	}
	g.drawHUD(dst, snap)

	switch {
	case snap.Phase == core.PhaseMenu:
		drawCenteredMessage(dst, strings.ToUpper(g.title),
			fmt.Sprintf("Best: %d  |  Enter to start", snap.HighScore))
	case snap.Paused:
		drawCenteredMessage(dst, "PAUSED", "P to resume  |  Esc for menu")
	case snap.Phase == core.PhaseGameOver:
		title := "GAME OVER"
		if snap.NewRecord {
			title = "GAME OVER - NEW BEST"
		}
		drawCenteredMessage(dst, title,
			fmt.Sprintf("Score: %d  |  R to restart  |  Esc for menu", snap.Score))
	}
}

// drawHUD renders the status line on the top row.
func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	health := fmt.Sprintf("HP: %d/%d", snap.Player.Health, snap.MaxHealth)
	if g.cfg.Player.DamageMode == config.DamageLives {
		health = "Lives: " + strings.Repeat(string(HeartChar), snap.Player.Health)
	}
	prefix := fmt.Sprintf(" Score: %d  ", snap.Score)
	healthColor := core.ColorGreen
	if snap.Player.Health*4 <= snap.MaxHealth {
		healthColor = core.ColorRed
	}
	dst.DrawText(0, 0, prefix)
	dst.DrawTextColored(len(prefix), 0, health, healthColor)

	right := fmt.Sprintf("Best: %d ", snap.HighScore)
	if snap.Escalations > 0 {
		right = fmt.Sprintf("Lv %d  %s", snap.Escalations+1, right)
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorGray)
}

// drawPlayer renders the player as a triangle filling its bounding box.
// It flashes red while the hit flash is active.
func drawPlayer(dst *core.Screen, p Player) {
	color := core.ColorBrightBlue
	if p.Flashing() {
		color = core.ColorBrightRed
	}

	rows := core.Max(1, int(math.Round(p.Size)))
	cx := p.CenterX()
	top := int(math.Floor(p.Y))
	for i := 0; i < rows; i++ {
		half := (float64(i) + 0.5) / float64(rows) * p.Size / 2
		glyph := PlayerBody
		if i == 0 {
			glyph = PlayerTip
		}
		drawn := false
		for x := int(math.Floor(cx - half)); float64(x) < cx+half; x++ {
			if float64(x)+0.5 >= cx-half && float64(x)+0.5 <= cx+half {
				dst.SetColored(x, top+i, glyph, color)
				drawn = true
			}
		}
		if !drawn {
			dst.SetColored(int(cx), top+i, glyph, color)
		}
	}
}

// drawObstacle fills the cells whose centers lie inside the obstacle.
func drawObstacle(dst *core.Screen, o Obstacle) {
	info := o.Kind.Info()
	glyph := obstacleGlyph(o)

	for y := int(math.Floor(o.Y - o.Radius)); float64(y) <= o.Y+o.Radius; y++ {
		for x := int(math.Floor(o.X - o.Radius)); float64(x) <= o.X+o.Radius; x++ {
			dx := float64(x) + 0.5 - o.X
			dy := float64(y) + 0.5 - o.Y
			if dx*dx+dy*dy <= o.Radius*o.Radius {
				dst.SetColored(x, y, glyph, info.Color)
			}
		}
	}
	dst.SetColored(int(math.Floor(o.X)), int(math.Floor(o.Y)), glyph, info.Color)
}

var triangleGlyphs = [...]rune{'▲', '▶', '▼', '◀'}

// obstacleGlyph picks a rune for the kind, turned by its rotation.
func obstacleGlyph(o Obstacle) rune {
	turn := math.Mod(o.Rotation, 2*math.Pi)
	if turn < 0 {
		turn += 2 * math.Pi
	}

	switch o.Kind {
	case KindTriangle:
		return triangleGlyphs[int(turn/(math.Pi/2))%len(triangleGlyphs)]
	case KindSquare:
		if math.Mod(turn, math.Pi/2) < math.Pi/4 {
			return '■'
		}
		return '◆'
	case KindPentagon:
		return '◈'
	case KindHexagon:
		return '✹'
	default:
		return '●'
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subLen := len([]rune(subtitle))

	boxW := core.Max(titleLen, subLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-subLen)/2, boxY+3, subtitle)
}
