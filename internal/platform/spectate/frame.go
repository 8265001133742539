// Package spectate streams game frames to websocket spectators.
package spectate

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/starbird/internal/games/starbird"
)

// Frame is the wire form of one snapshot. Keys are kept short since a frame
// goes out to every spectator several times a second.
type Frame struct {
	Tick       uint64     `msgpack:"t"`
	World      [2]float64 `msgpack:"w"`
	Score      int        `msgpack:"s"`
	Level      int        `msgpack:"l"`
	LevelName  string     `msgpack:"ln,omitempty"`
	Background string     `msgpack:"bg,omitempty"`
	Player     PlayerView `msgpack:"p"`
	Pipes      []PipeView `msgpack:"o"`
	Quantum    *OrbView   `msgpack:"q,omitempty"`
	Training   string     `msgpack:"tr,omitempty"`
	Message    string     `msgpack:"m,omitempty"`
	GameOver   bool       `msgpack:"go,omitempty"`
	Paused     bool       `msgpack:"pz,omitempty"`
}

// PlayerView is the spectator view of the player.
type PlayerView struct {
	X          float64 `msgpack:"x"`
	Y          float64 `msgpack:"y"`
	W          float64 `msgpack:"w"`
	H          float64 `msgpack:"h"`
	Velocity   float64 `msgpack:"v"`
	Lives      int     `msgpack:"hp"`
	Shield     bool    `msgpack:"sh,omitempty"`
	Lightsaber bool    `msgpack:"ls,omitempty"`
	Blinking   bool    `msgpack:"b,omitempty"`
}

// PipeView is one obstacle pair.
type PipeView struct {
	ID      uint64  `msgpack:"id"`
	X       float64 `msgpack:"x"`
	W       float64 `msgpack:"w"`
	Top     float64 `msgpack:"top"`
	Bottom  float64 `msgpack:"bot"`
	Variant int     `msgpack:"var,omitempty"`
	PowerUp string  `msgpack:"pu,omitempty"`
}

// OrbView is the live quantum element.
type OrbView struct {
	Kind string  `msgpack:"k"`
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
	R    float64 `msgpack:"r"`
}

// FromSnapshot converts a snapshot into a Frame.
func FromSnapshot(s starbird.Snapshot) Frame {
	f := Frame{
		Tick:       s.Tick,
		World:      [2]float64{s.WorldW, s.WorldH},
		Score:      s.Score,
		Level:      s.Level,
		LevelName:  s.LevelName,
		Background: s.Background,
		Message:    s.Message,
		GameOver:   s.GameOver,
		Paused:     s.Paused,
		Player: PlayerView{
			X:          s.Player.Bounds.X,
			Y:          s.Player.Bounds.Y,
			W:          s.Player.Bounds.W,
			H:          s.Player.Bounds.H,
			Velocity:   s.Player.Velocity,
			Lives:      s.Player.Lives,
			Shield:     s.Player.PowerUps.Shield.Active,
			Lightsaber: s.Player.PowerUps.Lightsaber.Active,
			Blinking:   s.Player.Invulnerable > 0,
		},
		Pipes: make([]PipeView, 0, len(s.Obstacles)),
	}

	for _, o := range s.Obstacles {
		pv := PipeView{
			ID:      o.ID,
			X:       o.X,
			W:       o.Width,
			Top:     o.TopHeight,
			Bottom:  o.BottomHeight,
			Variant: o.Variant,
		}
		if o.PowerUp.Kind != starbird.PowerUpNone && !o.PowerUp.Collected {
			pv.PowerUp = o.PowerUp.Kind.String()
		}
		f.Pipes = append(f.Pipes, pv)
	}

	if q := s.Quantum; q != nil {
		b := q.Shape.Bounds()
		cx, cy := b.Center()
		f.Quantum = &OrbView{Kind: q.Variant.String(), X: cx, Y: cy, R: b.W / 2}
	}

	if t := s.Training; t != nil {
		f.Training = fmt.Sprintf("%d/%d", t.Progress, len(t.Sequence))
	}
	return f
}

// Encode serializes a Frame with msgpack.
func Encode(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("spectate: cannot encode frame: %w", err)
	}
	return data, nil
}

// Decode parses a Frame produced by Encode.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("spectate: cannot decode frame: %w", err)
	}
	return f, nil
}
