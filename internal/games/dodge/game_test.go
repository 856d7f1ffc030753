package dodge

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGamesRegistered(t *testing.T) {
	for _, id := range []string{IDShapes, IDClassic} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID = %q, want %q", g.ID(), id)
		}
	}
}

func TestGameFlow(t *testing.T) {
	g := NewShapes()
	g.Reset(testRuntime(1))

	if g.State().Phase != core.PhaseMenu {
		t.Fatalf("phase after reset = %s, want menu", g.State().Phase)
	}

	res := g.Step(frameWith(core.ActionConfirm), frame)
	if !res.State.Playing() {
		t.Fatalf("phase after confirm = %s, want playing", res.State.Phase)
	}
	if res.State.Health != 100 || res.State.MaxHealth != 100 {
		t.Errorf("health = %d/%d, want 100/100", res.State.Health, res.State.MaxHealth)
	}

	startX := g.Engine().Session().Entities.Player().X
	g.Step(frameWith(core.ActionLeft), frame)
	if x := g.Engine().Session().Entities.Player().X; x >= startX {
		t.Errorf("x = %v, want less than %v", x, startX)
	}

	res = g.Step(frameWith(core.ActionPause), frame)
	if !res.State.Paused {
		t.Error("pause action should pause")
	}
	now := g.Engine().Session().Now
	g.Step(core.NewInputFrame(), frame)
	if g.Engine().Session().Now != now {
		t.Error("paused game advanced")
	}

	res = g.Step(frameWith(core.ActionBack), frame)
	if res.State.Phase != core.PhaseMenu {
		t.Errorf("phase after back = %s, want menu", res.State.Phase)
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := NewClassic()
	g.Reset(testRuntime(1))
	g.Step(frameWith(core.ActionConfirm), frame)

	e := g.Engine()
	killPlayer(e, g.Config())
	if !g.State().GameOver() {
		t.Fatal("expected game over")
	}

	res := g.Step(frameWith(core.ActionRestart), frame)
	if !res.State.Playing() || res.State.Health != g.Config().Player.MaxHealth {
		t.Errorf("restart state = %+v", res.State)
	}
}

func TestGamePointerInput(t *testing.T) {
	g := NewShapes()
	g.Reset(testRuntime(1))
	g.Step(frameWith(core.ActionConfirm), frame)

	in := core.NewInputFrame()
	in.SetPointer(70)
	g.Step(in, frame)
	if v := g.Engine().Session().Entities.Player().Velocity; v <= 0 {
		t.Errorf("velocity = %v, want rightward", v)
	}

	g.Step(frameWith(core.ActionPointerUp), frame)
	if v := g.Engine().Session().Entities.Player().Velocity; v != 0 {
		t.Errorf("velocity = %v, want 0 after release", v)
	}
}

func TestGameUsesHighScoreSource(t *testing.T) {
	stores := map[string]*MemoryHighScores{
		IDShapes:  NewMemoryHighScores(7),
		IDClassic: NewMemoryHighScores(3),
	}
	SetHighScoreSource(func(id string) HighScoreStore { return stores[id] })
	t.Cleanup(func() { SetHighScoreSource(nil) })

	g := NewShapes()
	g.Reset(testRuntime(1))
	if g.State().HighScore != 7 {
		t.Errorf("high score = %d, want 7", g.State().HighScore)
	}

	c := NewClassic()
	c.Reset(testRuntime(1))
	if c.State().HighScore != 3 {
		t.Errorf("high score = %d, want 3", c.State().HighScore)
	}
}

func TestGameDeterminism(t *testing.T) {
	play := func() core.GameState {
		g := NewShapes()
		g.Reset(testRuntime(12345))
		g.Step(frameWith(core.ActionConfirm), frame)

		var st core.GameState
		for i := 0; i < 2000; i++ {
			in := core.NewInputFrame()
			switch (i / 45) % 3 {
			case 0:
				in.Set(core.ActionLeft)
			case 1:
				in.Set(core.ActionRight)
			default:
				in.Set(core.ActionStop)
			}
			st = g.Step(in, frame).State
			if st.GameOver() {
				break
			}
		}
		return st
	}

	a, b := play(), play()
	if a != b {
		t.Errorf("runs diverged: %+v vs %+v", a, b)
	}
}

func TestGameRender(t *testing.T) {
	g := NewShapes()
	g.Reset(testRuntime(1))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "SHAPE DODGE") {
		t.Error("menu should show the title")
	}

	g.Step(frameWith(core.ActionConfirm), frame)
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame(), frame)
	}
	screen.Clear()
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score:") {
		t.Errorf("HUD missing: %q", screen.Row(0))
	}
	p := g.Engine().Session().Entities.Player()
	if screen.Get(int(p.CenterX()), int(p.Y)) != PlayerTip {
		t.Error("player tip not drawn")
	}
}

func TestGameRenderNewBest(t *testing.T) {
	SetHighScoreSource(func(string) HighScoreStore { return NewMemoryHighScores(50) })
	t.Cleanup(func() { SetHighScoreSource(nil) })

	g := NewShapes()
	g.Reset(testRuntime(1))
	g.Step(frameWith(core.ActionConfirm), frame)
	screen := core.NewScreen(80, 24)

	g.Engine().Session().Score = 50
	killPlayer(g.Engine(), g.Config())
	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "GAME OVER") || strings.Contains(out, "NEW BEST") {
		t.Errorf("tie with the old record should render plain game over:\n%s", out)
	}

	g.Step(frameWith(core.ActionRestart), frame)
	g.Engine().Session().Score = 80
	killPlayer(g.Engine(), g.Config())
	screen.Clear()
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER - NEW BEST") {
		t.Errorf("beating the record should render NEW BEST:\n%s", screen.String())
	}
}

func TestGameResize(t *testing.T) {
	g := NewShapes()
	g.Reset(testRuntime(1))
	g.Step(frameWith(core.ActionConfirm), frame)

	g.Resize(30, 10)

	vp := g.Engine().Session().Viewport
	if vp.W != 30 || vp.H != 10 {
		t.Errorf("viewport = %+v, want 30x10", vp)
	}
	g.Step(frameWith(core.ActionRight), 10*time.Second)
	p := g.Engine().Session().Entities.Player()
	if p.X > 30-p.Size {
		t.Errorf("x = %v escapes resized viewport", p.X)
	}
}

func TestVariantOf(t *testing.T) {
	tests := []struct {
		id   string
		want config.Variant
		ok   bool
	}{
		{IDShapes, config.VariantDodge, true},
		{IDClassic, config.VariantClassic, true},
		{"flappy", "", false},
	}

	for _, tt := range tests {
		got, ok := VariantOf(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("VariantOf(%q) = %q, %v; want %q, %v", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}
