package starbird

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/levels"
)

func newTestGame(t *testing.T, cfg config.Config, repo levels.Repository) (*Game, *recordingAudio, *recordingScores) {
	t.Helper()
	audio := &recordingAudio{}
	scores := &recordingScores{}
	g, err := New(Options{
		Config:  cfg,
		Levels:  repo,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		Audio:   audio,
		Scores:  scores,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(g.Close)
	return g, audio, scores
}

func TestGameDeterminism(t *testing.T) {
	// Quantum effects land asynchronously, so keep them out of this run.
	cfg := config.Default()
	cfg.Events.CollectibleSpawn.Probability = 0
	lvl := levels.Default()
	lvl.Number = 1
	lvl.QuantumProbability = 0
	repo := staticRepo{1: lvl}

	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%18 == 0 {
			inputs[i].Set(core.ActionFlap)
		}
	}

	run := func() (core.GameState, Snapshot) {
		g, _, _ := newTestGame(t, cfg, repo)
		var state core.GameState
		for _, in := range inputs {
			state = g.Step(in, 1).State
			if state.GameOver {
				break
			}
		}
		return state, g.Snapshot()
	}

	s1, snap1 := run()
	s2, snap2 := run()
	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
	if snap1.Tick != snap2.Tick || snap1.Player.Position != snap2.Player.Position {
		t.Errorf("Determinism failed: tick %d/%d, position %v/%v", snap1.Tick, snap2.Tick, snap1.Player.Position, snap2.Player.Position)
	}
	if len(snap1.Obstacles) != len(snap2.Obstacles) {
		t.Errorf("Determinism failed: %d vs %d obstacles", len(snap1.Obstacles), len(snap2.Obstacles))
	}
}

func TestZeroStepChangesNothing(t *testing.T) {
	g, _, _ := newTestGame(t, quietConfig(), levels.Builtin())
	for range 30 {
		g.Step(core.NewInputFrame(), 1)
	}

	before := g.Snapshot()
	timers := make(map[EventName]float64)
	for _, name := range eventOrder {
		timers[name] = g.scheduler.Timer(name)
	}

	for range 100 {
		g.Step(core.NewInputFrame(), 0)
	}

	after := g.Snapshot()
	if before.Player != after.Player || before.Tick != after.Tick || before.Score != after.Score {
		t.Errorf("zero steps changed the session: %+v -> %+v", before.Player, after.Player)
	}
	for i := range before.Obstacles {
		if before.Obstacles[i] != after.Obstacles[i] {
			t.Errorf("obstacle %d moved on a zero step", i)
		}
	}
	for _, name := range eventOrder {
		if g.scheduler.Timer(name) != timers[name] {
			t.Errorf("Timer(%s) changed on zero steps", name)
		}
	}
}

func TestFlapInputPlaysCue(t *testing.T) {
	g, audio, _ := newTestGame(t, quietConfig(), staticRepo{1: quietLevel(1)})

	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	g.Step(in, 1)

	if g.player.Velocity >= 0 {
		t.Errorf("Velocity = %v after a flap, expected upward", g.player.Velocity)
	}
	if audio.count(CueFlap) != 1 {
		t.Errorf("flap cue played %d times, expected 1", audio.count(CueFlap))
	}
}

func TestHeldFlapRespectsCooldown(t *testing.T) {
	cfg := quietConfig()
	g, audio, _ := newTestGame(t, cfg, staticRepo{1: quietLevel(1)})

	held := core.NewInputFrame()
	held.FlapHeld = true
	ticks := int(cfg.Physics.FlapCooldown) * 3
	for range ticks {
		g.Step(held, 1)
	}
	if got := audio.count(CueFlap); got < 2 || got > 4 {
		t.Errorf("held flap flapped %d times in %d ticks", got, ticks)
	}
}

func TestPauseFreezesSession(t *testing.T) {
	g, _, _ := newTestGame(t, quietConfig(), staticRepo{1: quietLevel(1)})

	g.HandleInput(core.ActionPause)
	res := g.Step(core.NewInputFrame(), 1)
	if !res.State.Paused {
		t.Fatal("session should be paused")
	}
	before := g.Snapshot().Player
	for range 10 {
		g.Step(core.NewInputFrame(), 1)
	}
	if g.Snapshot().Player != before {
		t.Error("player moved while paused")
	}

	g.HandleInput(core.ActionPause)
	if g.Step(core.NewInputFrame(), 1).State.Paused {
		t.Error("second pause should resume")
	}
}

func TestUnknownInputIgnored(t *testing.T) {
	g, _, _ := newTestGame(t, quietConfig(), staticRepo{1: quietLevel(1)})
	g.HandleInput(core.Action(999))
	g.HandleInput(core.ActionNone)
	if len(g.pending) != 0 {
		t.Errorf("pending = %v, expected unknown actions dropped", g.pending)
	}
}

func TestManualShieldAndLightsaber(t *testing.T) {
	cfg := quietConfig()
	g, audio, _ := newTestGame(t, cfg, staticRepo{1: quietLevel(1)})

	g.HandleInput(core.ActionShield)
	g.HandleInput(core.ActionLightsaber)
	g.Step(core.NewInputFrame(), 1)

	p := g.player
	if !p.PowerUps.Shield.Active || !p.PowerUps.Lightsaber.Active {
		t.Fatalf("PowerUps = %+v, expected shield and lightsaber", p.PowerUps)
	}
	if audio.count(CueShieldOn) != 1 || audio.count(CueLightsaberOn) != 1 {
		t.Error("expected shield and lightsaber cues")
	}

	// Recharging: dropping the shield and pressing again does nothing.
	p.PowerUps.Shield.Deactivate()
	g.HandleInput(core.ActionShield)
	g.Step(core.NewInputFrame(), 1)
	if p.PowerUps.Shield.Active {
		t.Error("shield raised again before recharge")
	}
}

func TestLosingAllLivesEndsGame(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.Lives = 2
	cfg.Player.InvincibilityFrames = 0
	g, audio, scores := newTestGame(t, cfg, staticRepo{1: quietLevel(1)})

	hit := func() core.StepResult {
		g.obstacles.Spawn(g.levelCfg, g.player.Position.X(), cfg.World.Height)
		obs := g.obstacles.obstacles
		obs[len(obs)-1].TopHeight = cfg.World.Height
		obs[len(obs)-1].BottomHeight = 0
		return g.Step(core.NewInputFrame(), 1)
	}

	if res := hit(); res.State.GameOver || res.State.Lives != 1 {
		t.Fatalf("after first hit: %+v, expected 1 life left", res.State)
	}
	res := hit()
	if !res.State.GameOver || res.State.Lives != 0 {
		t.Fatalf("after second hit: %+v, expected game over", res.State)
	}
	if audio.count(CueCollision) != 2 {
		t.Errorf("collision cue played %d times, expected 2", audio.count(CueCollision))
	}
	if !scores.ended {
		t.Error("score keeper was not told about game over")
	}

	frozen := g.Snapshot()
	g.Step(core.NewInputFrame(), 1)
	if g.Snapshot().Tick != frozen.Tick {
		t.Error("session kept running after game over")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	if res := g.Step(restart, 1); res.State.GameOver || res.State.Lives != cfg.Player.Lives || res.State.Score != 0 {
		t.Errorf("after restart: %+v, expected a fresh session", res.State)
	}
}

func TestQuantumTouchAppliesEffect(t *testing.T) {
	cfg := quietConfig()
	g, _, _ := newTestGame(t, cfg, staticRepo{1: quietLevel(1)})

	if !g.quantum.ForceSpawn(KindHolocron, cfg.World.Width, cfg.World.Height) {
		t.Fatal("ForceSpawn() failed")
	}
	b := g.player.Bounds()
	live := g.quantum.Live()
	live.Shape.Rect.X = b.X
	live.Shape.Rect.Y = b.Y
	live.Speed = 0

	g.Step(core.NewInputFrame(), 1)
	if g.quantum.Live() != nil {
		t.Error("touched element should be consumed")
	}

	g.Close()
	if !g.player.PowerUps.Shield.Active {
		t.Error("holocron effect should grant a shield once drained")
	}
}

func TestQuantumCollectedWhileInvulnerable(t *testing.T) {
	cfg := quietConfig()
	g, _, _ := newTestGame(t, cfg, staticRepo{1: quietLevel(1)})

	g.obstacles.Spawn(g.levelCfg, g.player.Position.X(), cfg.World.Height)
	obs := g.obstacles.obstacles
	obs[len(obs)-1].TopHeight = cfg.World.Height
	obs[len(obs)-1].BottomHeight = 0
	g.player.Invulnerable = 50
	lives := g.player.Lives

	if !g.quantum.ForceSpawn(KindHolocron, cfg.World.Width, cfg.World.Height) {
		t.Fatal("ForceSpawn() failed")
	}
	b := g.player.Bounds()
	live := g.quantum.Live()
	live.Shape.Rect.X = b.X
	live.Shape.Rect.Y = b.Y
	live.Speed = 0

	g.Step(core.NewInputFrame(), 1)
	if g.quantum.Live() != nil {
		t.Error("element touched inside a pipe should still be collected")
	}
	if g.player.Lives != lives {
		t.Errorf("Lives = %d, expected %d while invulnerable", g.player.Lives, lives)
	}

	g.Close()
	if !g.player.PowerUps.Shield.Active {
		t.Error("holocron effect should grant a shield once drained")
	}
}

func TestResetDropsEffectsOfPreviousRun(t *testing.T) {
	cfg := quietConfig()
	g, _, _ := newTestGame(t, cfg, staticRepo{1: quietLevel(1)})

	started := make(chan struct{})
	release := make(chan struct{})
	err := g.dispatcher.Submit("holocron", g.player.Snapshot(), func(PlayerSnapshot) (PlayerDelta, error) {
		close(started)
		<-release
		return PlayerDelta{Shield: 500}, nil
	})
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	<-started

	g.Reset(g.runtime)
	close(release)

	deadline := time.Now().Add(2 * time.Second)
	for g.dispatcher.Pending() > 0 && time.Now().Before(deadline) {
		g.Step(core.NewInputFrame(), 1)
		time.Sleep(time.Millisecond)
	}
	if g.dispatcher.Pending() != 0 {
		t.Fatalf("Pending() = %d, expected the old effect to be drained", g.dispatcher.Pending())
	}
	g.Step(core.NewInputFrame(), 1)
	if g.player.PowerUps.Shield.Active {
		t.Error("effect from the previous run reached the new player")
	}
}

func TestScoreCrossingThresholdAdvancesLevel(t *testing.T) {
	cfg := quietConfig()
	lvl2 := quietLevel(2)
	lvl2.InitialObstacles = 2
	lvl2.Background = "ice"
	g, _, scores := newTestGame(t, cfg, staticRepo{1: quietLevel(1), 2: lvl2})

	g.score = 2 * cfg.Progression.LevelThreshold
	res := g.Step(core.NewInputFrame(), 1)

	if !res.LeveledUp || res.State.Level != 2 {
		t.Fatalf("Step() = %+v, expected level 2", res)
	}
	if g.Snapshot().Background != "ice" {
		t.Errorf("Background = %q, expected ice", g.Snapshot().Background)
	}
	if len(g.obstacles.Obstacles()) != 2 {
		t.Errorf("%d obstacles after level up, expected the 2 initial ones", len(g.obstacles.Obstacles()))
	}
	if scores.levelUps != 1 {
		t.Errorf("score keeper saw %d level-ups, expected 1", scores.levelUps)
	}

	if res := g.Step(core.NewInputFrame(), 1); res.LeveledUp {
		t.Error("same score advanced twice")
	}
}

func TestMissingStartLevelUsesDefault(t *testing.T) {
	g, _, _ := newTestGame(t, quietConfig(), staticRepo{})
	if g.Level().Background != levels.Default().Background {
		t.Errorf("Background = %q, expected default", g.Level().Background)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := quietConfig()
	cfg.Dispatcher.Workers = 0
	if _, err := New(Options{Config: cfg}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestTrainingChallengeThroughSession(t *testing.T) {
	cfg := quietConfig()
	g, _, _ := newTestGame(t, cfg, staticRepo{1: quietLevel(1)})

	g.eventContext().StartTraining()
	if g.Snapshot().Training == nil {
		t.Fatal("training challenge not visible in snapshot")
	}
	for _, a := range trainingSequence {
		g.HandleInput(a)
		g.Step(core.NewInputFrame(), 1)
	}
	if g.training != nil {
		t.Error("challenge should be finished")
	}
	if !g.player.PowerUps.Shield.Active {
		t.Error("passing training should grant a shield")
	}
}
