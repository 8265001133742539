package starbird

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starbird/internal/config"
)

// EventName identifies a random event.
type EventName string

const (
	EventTraining         EventName = "training"
	EventFactionChoice    EventName = "factionChoice"
	EventTeleport         EventName = "teleport"
	EventCollectibleSpawn EventName = "collectibleSpawn"
)

// eventOrder fixes the order events are rolled within one tick.
var eventOrder = []EventName{EventTraining, EventFactionChoice, EventTeleport, EventCollectibleSpawn}

// EventContext is what an event handler may touch. Handlers run
// synchronously on the main tick goroutine.
type EventContext struct {
	Player    *Player
	Obstacles *ObstacleManager
	Quantum   *QuantumManager
	RNG       *rand.Rand
	WorldW    float64
	WorldH    float64

	// StartTraining begins a skill challenge unless one is running.
	StartTraining func()
	// Notify shows a short message to the player.
	Notify func(msg string)
	// Cue plays a sound.
	Cue func(c Cue)
}

func (c *EventContext) notify(msg string) {
	if c.Notify != nil {
		c.Notify(msg)
	}
}

func (c *EventContext) cue(cue Cue) {
	if c.Cue != nil {
		c.Cue(cue)
	}
}

// EventHandler applies one event's mechanic.
type EventHandler func(ctx *EventContext)

// EventScheduler gates events behind a cooldown timer and a probability
// roll. An event is eligible once its timer reaches zero; each tick it is
// rolled until it fires, and firing resets the timer to the cooldown.
type EventScheduler struct {
	timers   map[EventName]float64
	gates    map[EventName]config.EventConfig
	handlers map[EventName]EventHandler
	rng      *rand.Rand
	logger   *log.Logger
}

// NewEventScheduler creates a scheduler with the configured gates. Timers
// start at their cooldown so nothing fires right at session start.
func NewEventScheduler(cfg config.EventsConfig, rng *rand.Rand, logger *log.Logger) *EventScheduler {
	s := &EventScheduler{
		timers:   make(map[EventName]float64, len(eventOrder)),
		gates:    make(map[EventName]config.EventConfig, len(eventOrder)),
		handlers: make(map[EventName]EventHandler, len(eventOrder)),
		rng:      rng,
		logger:   orDiscard(logger),
	}
	s.gates[EventTraining] = cfg.Training
	s.gates[EventFactionChoice] = cfg.FactionChoice
	s.gates[EventTeleport] = cfg.Teleport
	s.gates[EventCollectibleSpawn] = cfg.CollectibleSpawn
	s.Reset(nil)
	return s
}

// Handle registers the handler of an event, replacing any previous one.
func (s *EventScheduler) Handle(name EventName, h EventHandler) {
	s.handlers[name] = h
}

// Reset restores every timer to its cooldown.
func (s *EventScheduler) Reset(rng *rand.Rand) {
	if rng != nil {
		s.rng = rng
	}
	for name, gate := range s.gates {
		s.timers[name] = gate.Cooldown
	}
}

// SetTimer overrides an event's remaining cooldown, floored at zero.
func (s *EventScheduler) SetTimer(name EventName, ticks float64) {
	if _, ok := s.gates[name]; ok {
		s.timers[name] = max(0, ticks)
	}
}

// Timer returns the remaining cooldown of an event.
func (s *EventScheduler) Timer(name EventName) float64 {
	return s.timers[name]
}

// Tick decrements every timer by dt, floored at zero. Non-positive dt
// changes nothing.
func (s *EventScheduler) Tick(dt float64) {
	if !(dt > 0) {
		return
	}
	for name, t := range s.timers {
		s.timers[name] = max(0, t-dt)
	}
}

// TryTrigger rolls an eligible event and runs its handler on success.
// Ineligible events, failed rolls and unregistered events return false
// and leave the timer as it was.
func (s *EventScheduler) TryTrigger(name EventName, ctx *EventContext) bool {
	gate, ok := s.gates[name]
	if !ok || s.timers[name] > 0 {
		return false
	}
	h := s.handlers[name]
	if h == nil {
		return false
	}
	if s.rng.Float64() >= gate.Probability {
		return false
	}

	s.logger.Debug("event fired", "event", name)
	h(ctx)
	s.timers[name] = gate.Cooldown
	return true
}

// Run tries every event in a fixed order. Several may fire on one tick.
func (s *EventScheduler) Run(ctx *EventContext) []EventName {
	var fired []EventName
	for _, name := range eventOrder {
		if s.TryTrigger(name, ctx) {
			fired = append(fired, name)
		}
	}
	return fired
}
