package dodge

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

const frame = 16 * time.Millisecond

func TestEngineTransitions(t *testing.T) {
	e := newTestEngine(t, config.DefaultDodgeConfig(), nil)

	if e.Phase() != core.PhaseMenu {
		t.Fatalf("initial phase = %s, want menu", e.Phase())
	}
	if e.Restart() {
		t.Error("Restart should only work after game over")
	}
	if !e.Start() || e.Phase() != core.PhasePlaying {
		t.Fatal("Start should enter playing")
	}
	if e.Start() {
		t.Error("Start while playing should be rejected")
	}
	if !e.ReturnToMenu() || e.Phase() != core.PhaseMenu {
		t.Fatal("ReturnToMenu should enter menu")
	}
	if e.ReturnToMenu() {
		t.Error("ReturnToMenu from menu should be rejected")
	}
}

func TestEngineStartResetsRun(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	e := newTestEngine(t, cfg, nil)
	e.Start()

	for i := 0; i < 60; i++ {
		e.Advance(frame)
	}
	s := e.Session()
	s.Score = 12
	s.Entities.Player().Health = 40
	killPlayer(e, cfg)
	if e.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %s, want game-over", e.Phase())
	}

	if !e.Restart() {
		t.Fatal("Restart should work after game over")
	}
	s = e.Session()
	if s.Score != 0 || s.Now != 0 || s.LastSpawn != 0 || s.LastEscalation != 0 {
		t.Errorf("restart left stale state: %+v", s)
	}
	if s.Entities.Len() != 0 {
		t.Errorf("restart kept %d obstacles", s.Entities.Len())
	}
	if p := s.Entities.Player(); p.Health != cfg.Player.MaxHealth || p.Velocity != 0 {
		t.Errorf("player not reset: %+v", *p)
	}
	if s.HighScore != 12 {
		t.Errorf("high score = %d, want carried 12", s.HighScore)
	}
}

// killPlayer drops a lethal obstacle on the player and advances one frame.
func killPlayer(e *Engine, cfg config.DodgeConfig) {
	s := e.Session()
	p := s.Entities.Player()
	p.Health = 1
	s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, KindHexagon))
	e.Advance(time.Millisecond)
}

func TestEngineGameOverPersistsRecord(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	scores := NewMemoryHighScores(30)
	e := newTestEngine(t, cfg, scores)
	if e.HighScore() != 30 {
		t.Fatalf("loaded high score = %d, want 30", e.HighScore())
	}

	e.Start()
	e.Session().Score = 40
	killPlayer(e, cfg)

	if e.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %s, want game-over", e.Phase())
	}
	if e.HighScore() != 40 || e.State().HighScore != 40 {
		t.Errorf("high score = %d, want 40", e.HighScore())
	}
	if got, _ := scores.LoadHighScore(); got != 40 {
		t.Errorf("persisted = %d, want 40", got)
	}
	if scores.Saves() != 1 {
		t.Errorf("saves = %d, want 1", scores.Saves())
	}

	e.Advance(frame)
	if scores.Saves() != 1 {
		t.Error("record must be saved once per game over")
	}
}

func TestEngineGameOverWithoutRecord(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	scores := NewMemoryHighScores(50)
	e := newTestEngine(t, cfg, scores)

	e.Start()
	e.Session().Score = 20
	killPlayer(e, cfg)

	if e.HighScore() != 50 {
		t.Errorf("high score = %d, want 50", e.HighScore())
	}
	if scores.Saves() != 0 {
		t.Errorf("saves = %d, want 0", scores.Saves())
	}
}

func TestEngineNewRecordFlag(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	e := newTestEngine(t, cfg, NewMemoryHighScores(50))

	e.Start()
	e.Session().Score = 50
	killPlayer(e, cfg)
	if e.Snapshot().NewRecord {
		t.Error("tying the stored record must not count as a new record")
	}

	e.Restart()
	e.Session().Score = 51
	killPlayer(e, cfg)
	if !e.Snapshot().NewRecord {
		t.Error("beating the record should set NewRecord")
	}

	e.Restart()
	if e.Snapshot().NewRecord {
		t.Error("restart should clear NewRecord")
	}
	e.Session().Score = 51
	killPlayer(e, cfg)
	if e.Snapshot().NewRecord {
		t.Error("matching the record set by the previous run is not a new record")
	}
}

func TestEngineSaveFailureKeepsMemory(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	scores := NewMemoryHighScores(10)
	scores.FailWith(errors.New("disk full"))
	e := newTestEngine(t, cfg, scores)

	e.Start()
	e.Session().Score = 25
	killPlayer(e, cfg)

	if e.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %s, want game-over", e.Phase())
	}
	if e.HighScore() != 25 {
		t.Errorf("in-memory high score = %d, want 25", e.HighScore())
	}
	if got, _ := scores.LoadHighScore(); got != 10 {
		t.Errorf("persisted = %d, want unchanged 10", got)
	}
}

type brokenScores struct{}

func (brokenScores) LoadHighScore() (int, error) { return 0, errors.New("malformed") }
func (brokenScores) SaveHighScore(int) error     { return nil }

func TestEngineMalformedHighScoreReadsZero(t *testing.T) {
	e := newTestEngine(t, config.DefaultDodgeConfig(), brokenScores{})
	if e.HighScore() != 0 {
		t.Errorf("high score = %d, want 0", e.HighScore())
	}
}

func TestEngineGameOverSameTick(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	e := newTestEngine(t, cfg, nil)
	e.Start()

	s := e.Session()
	p := s.Entities.Player()
	p.Health = 30
	s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, KindHexagon))
	s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, KindPentagon))
	e.Advance(time.Millisecond)

	if p.Health != 0 {
		t.Errorf("health = %d, want 0", p.Health)
	}
	if e.Phase() != core.PhaseGameOver {
		t.Errorf("phase = %s, want game-over in the same tick", e.Phase())
	}
}

func TestEngineHaltsAfterGameOver(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	e := newTestEngine(t, cfg, nil)
	e.Start()
	for i := 0; i < 200; i++ {
		e.Advance(frame)
	}
	killPlayer(e, cfg)

	before := e.Snapshot()
	for i := 0; i < 200; i++ {
		e.Advance(frame)
	}
	after := e.Snapshot()

	if after.Elapsed != before.Elapsed || after.Score != before.Score || len(after.Obstacles) != len(before.Obstacles) {
		t.Error("simulation kept running after game over")
	}
	for i := range before.Obstacles {
		if before.Obstacles[i] != after.Obstacles[i] {
			t.Fatal("obstacles moved after game over")
		}
	}
}

func TestEngineStopHook(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	stops := 0
	e, err := NewEngine(Options{
		Config:   cfg,
		Viewport: testViewport,
		OnStop:   func() { stops++ },
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	e.Start()
	killPlayer(e, cfg)
	if stops != 1 {
		t.Errorf("stops after game over = %d, want 1", stops)
	}

	e.ReturnToMenu()
	if stops != 2 {
		t.Errorf("stops after return to menu = %d, want 2", stops)
	}

	e.Start()
	e.ReturnToMenu()
	if stops != 3 {
		t.Errorf("stops after abandoning a run = %d, want 3", stops)
	}
}

func TestEngineAbandonedRunKeepsRecord(t *testing.T) {
	scores := NewMemoryHighScores(5)
	e := newTestEngine(t, config.DefaultDodgeConfig(), scores)
	e.Start()
	e.Session().Score = 99
	e.ReturnToMenu()

	if e.HighScore() != 5 || scores.Saves() != 0 {
		t.Error("abandoned run must not update the record")
	}
}

func TestEngineIntentOnlyWhilePlaying(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	e := newTestEngine(t, cfg, nil)
	p := e.Session().Entities.Player()

	e.SetPlayerIntent(DirLeft)
	if p.Velocity != 0 {
		t.Error("intent applied in menu")
	}

	e.Start()
	p = e.Session().Entities.Player()
	startX := p.X
	e.SetPlayerIntent(DirLeft)
	if p.Velocity != -cfg.Player.Speed {
		t.Errorf("velocity = %v, want %v", p.Velocity, -cfg.Player.Speed)
	}
	if p.X != startX {
		t.Error("position must only change on the next tick")
	}

	e.Advance(frame)
	if p.X >= startX {
		t.Error("player should move left after a tick")
	}

	e.SetPlayerIntent(DirStop)
	if p.Velocity != 0 {
		t.Error("stop should zero velocity")
	}
}

func TestEnginePlayerStaysInBounds(t *testing.T) {
	e := newTestEngine(t, config.DefaultDodgeConfig(), nil)
	e.Start()
	p := e.Session().Entities.Player()

	for i := 0; i < 600; i++ {
		if (i/60)%2 == 0 {
			e.SetPlayerIntent(DirLeft)
		} else {
			e.SetPlayerIntent(DirRight)
		}
		e.Advance(frame)
		if e.Phase() != core.PhasePlaying {
			break
		}
		if p.X < 0 || p.X > testViewport.W-p.Size {
			t.Fatalf("tick %d: x=%v outside bounds", i, p.X)
		}
	}
}

func TestPointerIntent(t *testing.T) {
	tests := []struct {
		name     string
		mode     config.PointerMode
		deadZone float64
		x        float64
		want     Direction
	}{
		{"midpoint left", config.PointerMidpoint, 0, 10, DirLeft},
		{"midpoint right", config.PointerMidpoint, 0, 70, DirRight},
		{"midpoint exact", config.PointerMidpoint, 0, 40, DirRight},
		{"player left", config.PointerPlayer, 2, 30, DirLeft},
		{"player dead zone", config.PointerPlayer, 2, 41, DirStop},
		{"player right", config.PointerPlayer, 2, 45, DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultDodgeConfig()
			cfg.Input.PointerMode = tt.mode
			cfg.Input.DeadZone = tt.deadZone
			e := newTestEngine(t, cfg, nil)

			if got := e.PointerIntent(tt.x); got != tt.want {
				t.Errorf("PointerIntent(%v) = %s, want %s", tt.x, got, tt.want)
			}
		})
	}
}

func TestEnginePause(t *testing.T) {
	e := newTestEngine(t, config.DefaultDodgeConfig(), nil)
	if e.TogglePause() {
		t.Error("cannot pause outside a run")
	}

	e.Start()
	e.Advance(frame)
	if !e.TogglePause() {
		t.Fatal("TogglePause should work while playing")
	}
	before := e.Session().Now
	e.Advance(frame)
	if e.Session().Now != before {
		t.Error("time advanced while paused")
	}

	e.TogglePause()
	e.Advance(frame)
	if e.Session().Now != before+frame {
		t.Errorf("now = %v, want %v", e.Session().Now, before+frame)
	}
}

func TestEngineClampsStep(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	e := newTestEngine(t, cfg, nil)
	e.Start()

	e.Advance(5 * time.Second)

	if got := e.Session().Now; got != cfg.Simulation.MaxStep() {
		t.Errorf("now = %v, want one clamped step %v", got, cfg.Simulation.MaxStep())
	}
}

func TestEngineSpawnsAfterDelay(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	e := newTestEngine(t, cfg, nil)
	e.Start()

	delay := e.Session().NextSpawnDelay
	for e.Session().Now <= delay {
		if e.Session().Entities.Len() != 0 {
			t.Fatalf("spawned at %v before delay %v", e.Session().Now, delay)
		}
		e.Advance(frame)
	}
	if e.Session().Entities.Len() != 1 {
		t.Errorf("obstacles = %d after first delay, want 1", e.Session().Entities.Len())
	}
}

func TestEngineInitialEscalations(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	config.ApplyPreset(&cfg, config.DifficultyHard)
	e := newTestEngine(t, cfg, nil)
	e.Start()

	p := e.Session().Params
	if p.MinSpawn >= config.Millis(cfg.Spawn.MinIntervalMS) || p.MaxSpeed <= cfg.Spawn.MaxSpeed {
		t.Errorf("hard preset should start escalated, got %+v", p)
	}
}

func TestEngineResize(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	e := newTestEngine(t, cfg, nil)
	e.Start()
	s := e.Session()
	p := s.Entities.Player()
	p.X = 70
	s.Entities.AddObstacle(Obstacle{X: 70, Y: 5, Radius: 1, Speed: 1})
	s.Entities.AddObstacle(Obstacle{X: 10, Y: 5, Radius: 1, Speed: 1})

	e.Resize(40, 12)

	if p.X != 40-p.Size {
		t.Errorf("x = %v, want %v", p.X, 40-p.Size)
	}
	if p.Y != 12-p.Size-cfg.Player.BottomMargin {
		t.Errorf("y = %v, want re-anchored", p.Y)
	}
	if s.Entities.Len() != 1 {
		t.Errorf("obstacles = %d, want 1 inside the new viewport", s.Entities.Len())
	}
	if s.Score != 0 {
		t.Error("resize must not award points")
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := newTestEngine(t, config.DefaultDodgeConfig(), nil)
		e.Start()
		pilot := Autopilot{}
		for i := 0; i < 3000 && e.Phase() == core.PhasePlaying; i++ {
			e.SetPlayerIntent(pilot.Decide(e.Snapshot()))
			e.Advance(frame)
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Elapsed != b.Elapsed || a.Player != b.Player || len(a.Obstacles) != len(b.Obstacles) {
		t.Errorf("runs diverged: %+v vs %+v", a.Player, b.Player)
	}
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	cfg.Obstacles.Kinds = []string{"octagon"}
	if _, err := NewEngine(Options{Config: cfg}); err == nil {
		t.Error("expected error for unknown kind")
	}

	cfg = config.DefaultDodgeConfig()
	cfg.Player.Size = 0
	if _, err := NewEngine(Options{Config: cfg}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}
