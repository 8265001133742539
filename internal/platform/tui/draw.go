package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/games/starbird"
)

// hudRows is the number of rows reserved above the playfield.
const hudRows = 1

// Glyphs used by the renderer.
const (
	PlayerChar     = '►'
	PlayerBodyChar = '▒'
	PipeChar       = '█'
	PipeCapTop     = '▄'
	PipeCapBottom  = '▀'
	ShieldChar     = '○'
	SaberChar      = '─'
)

var variantColors = map[string]core.Color{
	"green":   core.ColorGreen,
	"red":     core.ColorRed,
	"blue":    core.ColorBlue,
	"cyan":    core.ColorCyan,
	"white":   core.ColorWhite,
	"yellow":  core.ColorYellow,
	"orange":  core.ColorOrange,
	"magenta": core.ColorMagenta,
	"purple":  core.ColorBrightMagenta,
	"gray":    core.ColorGray,
}

type backdrop struct {
	glyph   rune
	color   core.Color
	density int // one glyph every density cells
}

var backdrops = map[string]backdrop{
	"space":  {'.', core.ColorGray, 37},
	"desert": {'~', core.ColorOrange, 53},
	"ice":    {'*', core.ColorBrightCyan, 41},
	"nebula": {'·', core.ColorMagenta, 29},
}

var orbStyles = map[starbird.EntityKind]struct {
	glyph rune
	color core.Color
}{
	starbird.KindBlackHole: {'@', core.ColorBrightMagenta},
	starbird.KindAurora:    {'≈', core.ColorBrightGreen},
	starbird.KindHolocron:  {'◆', core.ColorBrightYellow},
}

var powerUpGlyphs = map[starbird.PowerUpKind]rune{
	starbird.PowerUpScore:      '$',
	starbird.PowerUpSlowdown:   'S',
	starbird.PowerUpShrink:     'z',
	starbird.PowerUpShield:     'O',
	starbird.PowerUpLightsaber: '/',
}

var arrowGlyphs = map[core.Action]string{
	core.ActionUp:    "↑",
	core.ActionLeft:  "←",
	core.ActionDown:  "↓",
	core.ActionRight: "→",
}

// projector maps world units onto screen cells below the HUD.
type projector struct {
	sx, sy float64
}

func newProjector(dst *core.Screen, s starbird.Snapshot) projector {
	rows := dst.Height() - hudRows
	if s.WorldW <= 0 || s.WorldH <= 0 || rows <= 0 {
		return projector{}
	}
	return projector{
		sx: float64(dst.Width()) / s.WorldW,
		sy: float64(rows) / s.WorldH,
	}
}

func (p projector) x(v float64) int { return int(math.Floor(v * p.sx)) }
func (p projector) y(v float64) int { return int(math.Floor(v*p.sy)) + hudRows }

// rect returns the cell span of r, at least one cell in each direction.
func (p projector) rect(r core.Rect) (x0, y0, w, h int) {
	x0, y0 = p.x(r.X), p.y(r.Y)
	x1, y1 := p.x(r.Right()), p.y(r.Bottom())
	return x0, y0, max(1, x1-x0), max(1, y1-y0)
}

// DrawSnapshot renders one frame into dst.
func DrawSnapshot(dst *core.Screen, s starbird.Snapshot) {
	dst.Clear()
	p := newProjector(dst, s)

	drawBackdrop(dst, s)
	for _, o := range s.Obstacles {
		drawPipe(dst, p, o, s.PipeVariants)
	}
	if s.Quantum != nil {
		drawOrb(dst, p, *s.Quantum)
	}
	if s.Player.Lives > 0 || !s.GameOver {
		drawPlayer(dst, p, s)
	}
	drawHUD(dst, s)

	switch {
	case s.GameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R restart  |  Q quit", s.Score))
	case s.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case s.Training != nil:
		drawTraining(dst, *s.Training)
	}
}

func drawBackdrop(dst *core.Screen, s starbird.Snapshot) {
	b, ok := backdrops[s.Background]
	if !ok {
		b = backdrops["space"]
	}
	// Scroll slowly with the tick so the field feels alive.
	shift := int(s.Tick / 8)
	for y := hudRows; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if ((x+shift)*7+y*13)%b.density == 0 {
				dst.SetColor(x, y, b.glyph, b.color)
			}
		}
	}
}

func drawPipe(dst *core.Screen, p projector, o starbird.Obstacle, variants []string) {
	color := core.ColorGreen
	if len(variants) > 0 {
		if c, ok := variantColors[variants[o.Variant%len(variants)]]; ok {
			color = c
		}
	}
	if o.Cleared {
		color = core.ColorGray
	}

	top := o.TopRect()
	x, y, w, h := p.rect(top)
	dst.FillRect(x, y, w, h, PipeChar, color)
	for i := 0; i < w; i++ {
		dst.SetColor(x+i, y+h-1, PipeCapTop, color)
	}

	bottom := o.BottomRect()
	x, y, w, h = p.rect(bottom)
	dst.FillRect(x, y, w, h, PipeChar, color)
	for i := 0; i < w; i++ {
		dst.SetColor(x+i, y, PipeCapBottom, color)
	}

	if o.PowerUp.Kind != starbird.PowerUpNone && !o.PowerUp.Collected {
		cx, cy := o.PowerUpRect().Center()
		dst.SetColor(p.x(cx), p.y(cy), powerUpGlyphs[o.PowerUp.Kind], core.ColorBrightYellow)
	}
}

func drawOrb(dst *core.Screen, p projector, q starbird.QuantumView) {
	style, ok := orbStyles[q.Variant]
	if !ok {
		return
	}
	b := q.Shape.Bounds()
	cx, cy := b.Center()
	r := b.W / 2
	x0, y0, w, h := p.rect(b)
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			// Cell centre back in world units.
			wx := (float64(x) + 0.5) / p.sx
			wy := (float64(y-hudRows) + 0.5) / p.sy
			if math.Hypot(wx-cx, wy-cy) <= r {
				dst.SetColor(x, y, style.glyph, style.color)
			}
		}
	}
}

func drawPlayer(dst *core.Screen, p projector, s starbird.Snapshot) {
	pl := s.Player
	// Blink while invulnerable.
	if pl.Invulnerable > 0 && (s.Tick/6)%2 == 1 {
		return
	}

	color := core.ColorBrightYellow
	switch {
	case pl.PowerUps.Shield.Active:
		color = core.ColorBrightCyan
	case pl.PowerUps.Shrink.Active:
		color = core.ColorBrightGreen
	}

	x, y, w, h := p.rect(pl.Bounds)
	dst.FillRect(x, y, w, h, PlayerBodyChar, color)
	dst.SetColor(x+w-1, y+h/2, PlayerChar, color)

	if pl.PowerUps.Shield.Active {
		for i := -1; i <= w; i++ {
			dst.SetColor(x+i, y-1, ShieldChar, core.ColorCyan)
			dst.SetColor(x+i, y+h, ShieldChar, core.ColorCyan)
		}
	}
	if pl.PowerUps.Lightsaber.Active {
		for i := 0; i < 3; i++ {
			dst.SetColor(x+w+i, y+h/2, SaberChar, core.ColorBrightRed)
		}
	}
}

func drawHUD(dst *core.Screen, s starbird.Snapshot) {
	dst.FillRect(0, 0, dst.Width(), hudRows, ' ', core.ColorDefault)

	lives := strings.Repeat("♥", max(0, s.Player.Lives))
	left := fmt.Sprintf(" Score: %d  Level %d %s  %s", s.Score, s.Level, s.LevelName, lives)
	dst.DrawText(0, 0, left, core.ColorBrightWhite)

	var flags []string
	pu := s.Player.PowerUps
	if pu.Shield.Active {
		flags = append(flags, "SHIELD")
	}
	if pu.Lightsaber.Active {
		flags = append(flags, "SABER")
	}
	if pu.Slowdown.Active {
		flags = append(flags, "SLOW")
	}
	if pu.Shrink.Active {
		flags = append(flags, "SHRINK")
	}
	if len(flags) > 0 {
		right := strings.Join(flags, " ") + " "
		dst.DrawText(dst.Width()-len(right), 0, right, core.ColorBrightCyan)
	}

	if s.Message != "" && !s.GameOver {
		dst.DrawTextCentered(hudRows+1, s.Message, core.ColorBrightMagenta)
	}
}

func drawTraining(dst *core.Screen, t starbird.TrainingView) {
	var b strings.Builder
	b.WriteString("TRAINING ")
	for i, a := range t.Sequence {
		if i < t.Progress {
			b.WriteString("✓")
		} else {
			b.WriteString(arrowGlyphs[a])
		}
		b.WriteString(" ")
	}
	b.WriteString(fmt.Sprintf("%.0fs", math.Ceil(t.Remaining/60)))
	dst.DrawTextCentered(dst.Height()-2, b.String(), core.ColorBrightYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.ColorWhite)
}
