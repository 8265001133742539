// Package starbird implements the Starbird simulation: a side-scrolling
// flyer dodging pipes, collecting quantum elements and weathering random
// events. Game.Step advances one frame; everything in this package except
// the effect workers runs on the goroutine that calls Step.
package starbird

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/levels"
)

// messageTicks is how long an event banner stays on screen.
const messageTicks = 120

// Options configures a session.
type Options struct {
	Config  config.Config
	Levels  levels.Repository // nil means the built-in levels
	Runtime core.RuntimeConfig
	Audio   AudioCue
	Scores  ScoreKeeper
	Logger  *log.Logger
}

// Game is one Starbird session.
type Game struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	logger  *log.Logger
	audio   AudioCue
	scores  ScoreKeeper

	rng         *rand.Rand
	player      *Player
	physics     *Integrator
	obstacles   *ObstacleManager
	quantum     *QuantumManager
	detector    CollisionDetector
	collisions  *CollisionHandler
	scheduler   *EventScheduler
	dispatcher  *EffectDispatcher
	progression *Progression

	level      int
	levelCfg   levels.LevelConfig
	startCfg   levels.LevelConfig
	training   *Challenge
	message    string
	messageTTL float64
	pending    []core.Action

	score    int
	tick     uint64
	gameOver bool
	paused   bool
	closed   bool
}

// New validates the configuration, resolves the starting level and starts
// the effect workers. The only fatal error is a configuration with no
// usable level at all.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("starbird: %w", err)
	}

	repo := opts.Levels
	if repo == nil {
		repo = levels.Builtin()
	}

	g := &Game{
		cfg:     cfg,
		runtime: opts.Runtime,
		logger:  orDiscard(opts.Logger),
		audio:   opts.Audio,
		scores:  opts.Scores,
	}
	if g.audio == nil {
		g.audio = nopAudio{}
	}
	if g.scores == nil {
		g.scores = nopScores{}
	}

	g.rng = rand.New(rand.NewSource(seedOf(opts.Runtime)))
	g.physics = NewIntegrator(cfg)
	g.obstacles = NewObstacleManager(cfg, g.rng)
	g.quantum = NewQuantumManager(cfg, g.rng, g.physics)
	g.collisions = NewCollisionHandler(g.obstacles, cfg.Player.InvincibilityFrames)
	g.scheduler = NewEventScheduler(cfg.Events, g.rng, g.logger)
	RegisterMechanics(g.scheduler, cfg)
	g.progression = NewProgression(repo, config.NewDifficultyManager(cfg.Progression), g.logger)

	start, fallback, ok := g.progression.Resolve(cfg.Progression.StartLevel)
	if !ok {
		return nil, ErrNoLevelConfig
	}
	if fallback {
		g.logger.Warn("starting on default level", "level", cfg.Progression.StartLevel)
	}
	g.startCfg = start

	g.dispatcher = NewEffectDispatcher(cfg.Dispatcher.Workers, cfg.Dispatcher.Queue, g.logger)
	g.Reset(opts.Runtime)
	return g, nil
}

func seedOf(rc core.RuntimeConfig) int64 {
	if rc.Seed != 0 {
		return rc.Seed
	}
	return time.Now().UnixNano()
}

// Reset restarts the session from the starting level.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.rng = rand.New(rand.NewSource(seedOf(rc)))

	g.player = NewPlayer(g.cfg)
	g.obstacles.Reset(g.rng)
	g.quantum.Reset(g.rng)
	g.scheduler.Reset(g.rng)
	g.progression.Reset()
	g.dispatcher.Advance()

	g.level = g.cfg.Progression.StartLevel
	g.levelCfg = g.startCfg.Clone()
	g.obstacles.AddInitial(g.levelCfg, g.cfg.World.Width, g.cfg.World.Height)

	g.training = nil
	g.message = ""
	g.messageTTL = 0
	g.pending = g.pending[:0]
	g.score = 0
	g.tick = 0
	g.gameOver = false
	g.paused = false
}

// Close stops the effect workers and applies whatever they still held.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	for _, d := range g.dispatcher.Close() {
		g.physics.Apply(g.player, d)
	}
}

// Pending returns the number of quantum effects submitted but not yet
// applied.
func (g *Game) Pending() int {
	return g.dispatcher.Pending()
}

// HandleInput queues a discrete action for the next Step. Unknown actions
// are dropped.
func (g *Game) HandleInput(a core.Action) {
	if !a.Valid() {
		return
	}
	g.pending = append(g.pending, a)
}

// Step advances the session by dt ticks.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	actions := g.collectActions(in)

	if g.gameOver {
		if actions.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}
	if actions.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.closed {
		return core.StepResult{State: g.State()}
	}

	dt = g.physics.sanitizeDt(dt)
	if dt > 0 {
		g.tick++
	}
	w, h := g.cfg.World.Width, g.cfg.World.Height
	scoreBefore := g.score

	for _, d := range g.dispatcher.Drain() {
		g.physics.Apply(g.player, d)
	}

	g.handleActions(actions)
	g.physics.Update(g.player, dt)

	g.obstacles.Update(dt)
	g.obstacles.Advance(dt, g.levelCfg, w, h)
	g.score += g.obstacles.RegisterPass(g.player.Bounds())
	for _, kind := range g.obstacles.CollectPowerUps(g.player.Bounds()) {
		g.applyPowerUp(kind)
	}

	g.quantum.Update(dt)
	if dt > 0 {
		g.quantum.TrySpawn(g.levelCfg, w, h)
	}

	g.resolveCollision()
	if g.gameOver {
		g.scores.Report(g.score, false)
		g.scores.GameOver(g.score, g.level)
		return core.StepResult{State: g.State()}
	}

	if dt > 0 {
		g.scheduler.Tick(dt)
		g.scheduler.Run(g.eventContext())
		g.tickTraining(dt)
		g.messageTTL = max(0, g.messageTTL-dt)
	}

	leveledUp := false
	if adv, ok := g.progression.OnScoreUpdate(g.score, g.level, g.levelCfg); ok {
		g.applyAdvance(adv)
		leveledUp = true
	}
	if leveledUp || g.score != scoreBefore {
		g.scores.Report(g.score, leveledUp)
	}

	return core.StepResult{State: g.State(), LeveledUp: leveledUp}
}

func (g *Game) collectActions(in core.InputFrame) core.InputFrame {
	actions := in.Clone()
	for _, a := range g.pending {
		actions.Set(a)
	}
	g.pending = g.pending[:0]
	return actions
}

func (g *Game) handleActions(in core.InputFrame) {
	p := g.player

	if in.Has(core.ActionFlap) || in.FlapHeld {
		if g.physics.Flap(p) {
			g.audio.Play(CueFlap)
		}
	}

	if in.Has(core.ActionShield) && !p.PowerUps.Shield.Active && p.ShieldCooldown <= 0 {
		p.PowerUps.Shield.Activate(g.cfg.PowerUps.ShieldDuration)
		p.ShieldCooldown = g.cfg.PowerUps.ShieldRecharge
		g.audio.Play(CueShieldOn)
	}

	if in.Has(core.ActionLightsaber) && !p.PowerUps.Lightsaber.Active {
		p.PowerUps.Lightsaber.Activate(g.cfg.PowerUps.LightsaberDuration)
		g.audio.Play(CueLightsaberOn)
	}

	if g.training != nil {
		for _, a := range []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight} {
			if in.Has(a) {
				g.finishTraining(g.training.Input(a))
				if g.training == nil {
					break
				}
			}
		}
	}
}

func (g *Game) applyPowerUp(kind PowerUpKind) {
	p := g.player
	pu := g.cfg.PowerUps
	switch kind {
	case PowerUpScore:
		g.score += pu.ScoreBonus
	case PowerUpSlowdown:
		p.PowerUps.Slowdown.Activate(pu.SlowdownDuration)
	case PowerUpShrink:
		p.PowerUps.Shrink.Activate(pu.ShrinkDuration)
	case PowerUpShield:
		p.PowerUps.Shield.Activate(pu.ShieldDuration)
		g.audio.Play(CueShieldOn)
		return
	case PowerUpLightsaber:
		p.PowerUps.Lightsaber.Activate(pu.LightsaberDuration)
		g.audio.Play(CueLightsaberOn)
		return
	default:
		return
	}
	g.audio.Play(CuePowerUp)
}

func (g *Game) resolveCollision() {
	res := g.detector.Check(g.player.Bounds(), g.obstacles.Obstacles(), g.quantum.Live())
	switch res.Kind {
	case HitObstacle:
		outcome, points := g.collisions.ResolveObstacle(g.player, res.ObstacleID)
		g.score += points
		if outcome == OutcomeIgnored {
			// The pipe is still overlapped while invulnerable; quantum
			// elements stay collectable.
			if g.detector.Check(g.player.Bounds(), nil, g.quantum.Live()).Kind == HitQuantum {
				g.collectQuantum()
			}
			return
		}
		g.audio.Play(CueCollision)
		g.logger.Debug("obstacle hit", "outcome", outcome, "lives", g.player.Lives)
		if outcome == OutcomeGameOver {
			g.gameOver = true
			g.logger.Info("game over", "score", g.score, "level", g.level)
		}
	case HitQuantum:
		g.collectQuantum()
	}
}

func (g *Game) collectQuantum() {
	q := g.quantum.Consume()
	if err := g.dispatcher.Submit(q.Variant.String(), g.player.Snapshot(), q.Effect()); err != nil {
		g.logger.Warn("quantum effect dropped", "variant", q.Variant, "err", err)
	}
}

func (g *Game) eventContext() *EventContext {
	return &EventContext{
		Player:    g.player,
		Obstacles: g.obstacles,
		Quantum:   g.quantum,
		RNG:       g.rng,
		WorldW:    g.cfg.World.Width,
		WorldH:    g.cfg.World.Height,
		StartTraining: func() {
			if g.training == nil {
				g.training = NewChallenge(g.cfg.Events.TrainingWindow)
				g.notify("Training! Enter ↑ ← ↓ →")
			}
		},
		Notify: g.notify,
		Cue:    g.audio.Play,
	}
}

func (g *Game) tickTraining(dt float64) {
	if g.training == nil {
		return
	}
	g.finishTraining(g.training.Tick(dt))
}

func (g *Game) finishTraining(res ChallengeResult) {
	switch res {
	case ChallengePassed:
		g.player.PowerUps.Shield.Activate(g.cfg.PowerUps.ShieldDuration)
		g.audio.Play(CueShieldOn)
		g.notify("Training complete, shield granted")
	case ChallengeFailed:
		v := g.player.Velocity + g.cfg.Physics.Gravity*g.cfg.Events.TrainingPenalty
		g.physics.Apply(g.player, PlayerDelta{Source: "training", SetVelocity: true, Velocity: v})
		g.notify("Training failed")
	default:
		return
	}
	g.training = nil
}

func (g *Game) applyAdvance(adv Advance) {
	g.level = adv.Level
	g.levelCfg = adv.Config
	g.obstacles.AddInitial(adv.Config, g.cfg.World.Width, g.cfg.World.Height)
	g.audio.Play(CueLevelUp)
	g.notify(fmt.Sprintf("Level %d: %s", adv.Level, adv.Config.Name))
}

func (g *Game) notify(msg string) {
	g.message = msg
	g.messageTTL = messageTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Lives:    g.player.Lives,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Level returns the active level configuration.
func (g *Game) Level() levels.LevelConfig {
	return g.levelCfg.Clone()
}

// Config returns the session configuration.
func (g *Game) Config() config.Config {
	return g.cfg
}
