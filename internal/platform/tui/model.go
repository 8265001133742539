package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/games/starbird"
	"github.com/vovakirdan/starbird/internal/levels"
	"github.com/vovakirdan/starbird/internal/storage"
)

// holdWindow is how long after the last flap key event the key still
// counts as held. Terminals only report key repeats, never releases.
const holdWindow = 120 * time.Millisecond

// Publisher receives every frame, e.g. a spectator hub.
type Publisher interface {
	Publish(s starbird.Snapshot) bool
}

// SessionOptions configures one playing session.
type SessionOptions struct {
	Config    config.Config
	Levels    levels.Repository
	Runtime   core.RuntimeConfig
	Audio     starbird.AudioCue
	Store     storage.Saver // nil disables persistence
	Player    string
	Publisher Publisher
	// Renderer is the output's lipgloss renderer; nil means the local terminal.
	Renderer *lipgloss.Renderer
	Logger   *log.Logger
}

// Model is the Bubble Tea model running one Starbird session.
type Model struct {
	game       *starbird.Game
	keeper     *storage.Keeper
	screen     *core.Screen
	palette    *Palette
	keyMapper  *KeyMapper
	publisher  Publisher
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	snapshot   starbird.Snapshot
	lastTick   time.Time
	lastFlap   time.Time
	restarts   int64
	quitting   bool
	backToMenu bool
}

// NewModel creates the game for a session and wraps it in a model.
func NewModel(opts SessionOptions) (Model, error) {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keeper := storage.NewKeeper(opts.Store, opts.Player, logger)
	game, err := starbird.New(starbird.Options{
		Config:  opts.Config,
		Levels:  opts.Levels,
		Runtime: cfg,
		Audio:   opts.Audio,
		Scores:  keeper,
		Logger:  logger,
	})
	if err != nil {
		return Model{}, fmt.Errorf("tui: cannot start session: %w", err)
	}

	return Model{
		game:       game,
		keeper:     keeper,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:    NewPalette(opts.Renderer),
		keyMapper:  NewKeyMapper(),
		publisher:  opts.Publisher,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		snapshot:   game.Snapshot(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		// World units are independent of the terminal, so a resize only
		// changes the projection.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.snapshot.GameOver || m.snapshot.Paused {
			m.finish()
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionRestart:
		if m.snapshot.GameOver {
			m.restart()
		}

	case action == core.ActionUp && m.snapshot.Training == nil:
		m.inputFrame.Set(core.ActionFlap)
		m.lastFlap = now

	case action == core.ActionFlap:
		m.inputFrame.Set(action)
		m.lastFlap = now

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// restart begins a new run. A fixed seed is advanced per restart so runs
// stay reproducible without repeating.
func (m *Model) restart() {
	m.restarts++
	rc := m.config
	if rc.Seed != 0 {
		rc.Seed += m.restarts
	}
	m.game.Reset(rc)
	m.keeper.NewRun()
	m.snapshot = m.game.Snapshot()
	m.inputFrame.Clear()
	m.lastTick = time.Time{}
}

// handleTick advances the simulation by the wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	dt := elapsedTicks(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	m.inputFrame.FlapHeld = !m.lastFlap.IsZero() && now.Sub(m.lastFlap) < holdWindow
	m.game.Step(m.inputFrame, dt)
	m.snapshot = m.game.Snapshot()
	if m.publisher != nil {
		m.publisher.Publish(m.snapshot)
	}

	m.inputFrame.Clear()
	m.inputFrame.FlapHeld = false
	return m, tickCmd(m.config.TickRate)
}

// finish persists an unfinished run and stops the effect workers.
func (m *Model) finish() {
	if !m.snapshot.GameOver {
		m.keeper.Finish(m.snapshot.Level)
	}
	m.game.Close()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawSnapshot(m.screen, m.snapshot)

	dir := config.UserDir()
	if dir == "" {
		m.logger.Warn("screenshot skipped, no home directory")
		return
	}
	dir = filepath.Join(dir, "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("starbird_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	DrawSnapshot(m.screen, m.snapshot)
	return m.palette.Render(m.screen)
}

// Snapshot returns the last rendered frame.
func (m Model) Snapshot() starbird.Snapshot {
	return m.snapshot
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one session and blocks until the
// player leaves.
func Run(opts SessionOptions) (Model, error) {
	model, err := NewModel(opts)
	if err != nil {
		return Model{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		model = m
	}
	model.game.Close()
	return model, err
}
