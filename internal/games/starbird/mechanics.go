package starbird

import (
	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
)

// RegisterMechanics installs the four standard event handlers.
func RegisterMechanics(s *EventScheduler, cfg config.Config) {
	s.Handle(EventTraining, TrainingHandler())
	s.Handle(EventFactionChoice, FactionChoiceHandler(cfg))
	s.Handle(EventTeleport, TeleportHandler(cfg))
	s.Handle(EventCollectibleSpawn, CollectibleSpawnHandler())
}

// TrainingHandler starts a skill challenge. The outcome is decided later,
// from player input, by the session.
func TrainingHandler() EventHandler {
	return func(ctx *EventContext) {
		if ctx.StartTraining != nil {
			ctx.StartTraining()
		}
	}
}

// FactionChoiceHandler picks a side at random: the dark side speeds up
// every obstacle, the light side grants a shield.
func FactionChoiceHandler(cfg config.Config) EventHandler {
	boost := cfg.Events.FactionSpeedBoost
	shield := cfg.PowerUps.ShieldDuration
	return func(ctx *EventContext) {
		if ctx.RNG.Intn(2) == 0 {
			ctx.Obstacles.BoostSpeed(boost)
			ctx.notify("The dark side quickens the pipes")
			return
		}
		ctx.Player.PowerUps.Shield.Activate(shield)
		ctx.notify("The light side shields you")
		ctx.cue(CueShieldOn)
	}
}

// TeleportHandler jumps the player to a random height and stops it.
func TeleportHandler(cfg config.Config) EventHandler {
	margin := cfg.Events.TeleportMargin
	return func(ctx *EventContext) {
		p := ctx.Player
		lo := margin
		hi := ctx.WorldH - margin - p.Height
		y := core.ClampF(ctx.WorldH/2-p.Height/2, 0, max(0, ctx.WorldH-p.Height))
		if hi > lo {
			y = lo + ctx.RNG.Float64()*(hi-lo)
		}
		p.Position = atHeight(p.Position, y)
		p.Velocity = 0
		ctx.notify("Hyperspace jump")
	}
}

// CollectibleSpawnHandler makes a holocron appear if nothing else is live.
func CollectibleSpawnHandler() EventHandler {
	return func(ctx *EventContext) {
		if ctx.Quantum.ForceSpawn(KindHolocron, ctx.WorldW, ctx.WorldH) {
			ctx.notify("A holocron drifts in")
		}
	}
}
