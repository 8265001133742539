package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/levels"
	"github.com/vovakirdan/starbird/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.starbird/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the simulation config every session starts from.
	Game   config.Config
	Levels levels.Repository
	Preset config.DifficultyPreset
	// TickRate of each session's simulation loop.
	TickRate int

	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		Game:        config.Default(),
		Preset:      config.DifficultyNormal,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server hosting one Starbird session per
// connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "starbird-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		dir := config.UserDir()
		if dir == "" {
			return nil, errors.New("cannot get home directory for the host key")
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	deps := s.sessionDeps(sshSession.User())
	deps.Renderer = bubbletea.MakeRenderer(sshSession)
	model := NewSessionModel(deps, rc)
	go func() {
		<-sshSession.Context().Done()
		model.Teardown()
	}()
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) sessionDeps(user string) SessionDeps {
	deps := SessionDeps{
		Game:   s.config.Game,
		Levels: s.config.Levels,
		Preset: s.config.Preset,
		Player: user,
		Logger: s.logger.With("user", user),
	}
	// A nil *Store must not end up inside the interfaces.
	if s.store != nil {
		deps.Store = s.store
		deps.Scores = s.store
	}
	return deps
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionDeps is what a SessionModel needs to start games.
type SessionDeps struct {
	Game   config.Config
	Levels levels.Repository
	Preset config.DifficultyPreset
	Player string
	Store  storage.Saver
	Scores ScoreSource
	// Renderer of the remote terminal, nil for the local one.
	Renderer *lipgloss.Renderer
	Logger   *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// liveGame is the game a session is playing, shared by every copy of the
// SessionModel so a dropped connection can still end it.
type liveGame struct {
	mu    sync.Mutex
	model *Model
	ended bool
}

// end finishes the running game once. Later updates see ended and quit.
func (l *liveGame) end() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.model != nil {
		l.model.finish()
		l.model = nil
	}
	l.ended = true
}

// SessionModel manages the full session flow: title -> game or scores ->
// title. This is the top-level model used for SSH sessions.
type SessionModel struct {
	deps       SessionDeps
	config     core.RuntimeConfig
	screen     sessionScreen
	menu       MenuModel
	game       *Model
	live       *liveGame
	scoreboard ScoreboardModel
	quitting   bool
	err        error
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Preset == "" {
		deps.Preset = config.DifficultyNormal
	}
	m := SessionModel{deps: deps, config: cfg, live: &liveGame{}}
	m.menu = m.newMenu()
	return m
}

// Teardown ends the running game, saving an unfinished run and stopping
// its effect workers. It is safe to call from any goroutine, and at most
// once per game.
func (m SessionModel) Teardown() {
	m.live.end()
}

func (m SessionModel) newMenu() MenuModel {
	best := 0
	if m.deps.Scores != nil {
		if top, err := m.deps.Scores.PlayerScores(storage.GameID, m.deps.Player, 1); err == nil && len(top) > 0 {
			best = top[0].Score
		}
	}
	return NewMenuModel(m.config, m.deps.Preset, m.deps.Player, best)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates on the title screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoiceScores:
		m.scoreboard = NewScoreboardModel(m.deps.Scores, m.deps.Player, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case MenuChoicePlay:
		m.deps.Preset = m.menu.Preset()
		game, err := m.startGame()
		if err != nil {
			m.deps.Logger.Error("cannot start game", "err", err)
			m.err = err
			m.menu = m.newMenu()
			return m, nil
		}
		m.live.mu.Lock()
		if m.live.ended {
			m.live.mu.Unlock()
			game.finish()
			m.quitting = true
			return m, tea.Quit
		}
		m.game = &game
		m.live.model = m.game
		m.live.mu.Unlock()
		m.screen = screenGame
		return m, m.game.Init()
	}

	// Every choice above swallows the menu's tea.Quit.
	return m, cmd
}

func (m SessionModel) startGame() (Model, error) {
	cfg := m.deps.Game
	config.ApplyPreset(&cfg, m.deps.Preset)
	return NewModel(SessionOptions{
		Config:   cfg,
		Levels:   m.deps.Levels,
		Runtime:  m.config,
		Store:    m.deps.Store,
		Player:   m.deps.Player,
		Renderer: m.deps.Renderer,
		Logger:   m.deps.Logger,
	})
}

// updateGame handles updates while playing.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.live.mu.Lock()
	defer m.live.mu.Unlock()
	if m.live.ended {
		m.game = nil
		m.quitting = true
		return m, tea.Quit
	}

	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.live.model = nil
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.live.model = nil
		m.quitting = true
		return m, tea.Quit
	}

	m.live.model = m.game
	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsGoingBack() {
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, nil
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText("Cannot start: "+m.err.Error(), m.config.ScreenW)
	}
	return view
}
