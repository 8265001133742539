package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/platform/spectate"
	"github.com/vovakirdan/starbird/internal/platform/tui"
	"github.com/vovakirdan/starbird/internal/storage"
)

var (
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagSpectate   string
	flagPlayer     string
	flagMute       bool
	flagVolume     float64
	flagNoMenu     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Starbird",
	Long: `Start the title screen, or jump straight into a run with --no-menu.

Controls:
  Space/W/Up   - Flap (hold to keep flapping)
  S            - Raise shield
  L            - Lightsaber
  Arrows       - Training challenge input
  P/Esc        - Pause
  R            - Restart (after game over)
  B            - Back to title (paused or game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five lives, gentle speed-up
  normal - Configured values
  hard   - One life, starts on level 2, steep speed-up
  fixed  - No level progression

Examples:
  starbird play
  starbird play --difficulty easy --no-menu
  starbird play --config ./my-starbird.yaml --levels ./levels
  starbird play --spectate :8080 --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags on cmd. The root command shares
// them because it plays by default.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagLevels, "levels", "", "Directory of level YAML files (built-in levels fill the gaps)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address (e.g. :8080)")
	cmd.Flags().StringVar(&flagPlayer, "player", "", "Pilot name for the scoreboard (default: OS user)")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	cmd.Flags().Float64Var(&flagVolume, "volume", 1, "Sound volume (0-1)")
	cmd.Flags().BoolVar(&flagNoMenu, "no-menu", false, "Skip the title screen")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger("starbird")
	defer closeLog()

	cfg, preset, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	player := flagPlayer
	if player == "" {
		player = currentPlayer()
	}

	opts := tui.SessionOptions{
		Levels: levelRepo(flagLevels),
		Player: player,
		Logger: logger,
	}

	// Open score storage; a nil *Store must stay out of the interface.
	store := openStore()
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	cues, closeAudio := openAudio(flagMute || flagVolume <= 0, flagVolume, logger)
	defer closeAudio()
	opts.Audio = cues

	if flagSpectate != "" {
		hub, stop := startSpectators(flagSpectate, logger)
		defer stop()
		opts.Publisher = hub
	}

	if err := playLoop(opts, cfg, preset, store); err != nil {
		logger.Error("session failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// playLoop alternates between the title screen, the scoreboard and runs
// until the player quits.
func playLoop(opts tui.SessionOptions, cfg config.Config, preset config.DifficultyPreset, store *storage.Store) error {
	rc := runtimeConfig()
	var scores tui.ScoreSource
	if store != nil {
		scores = store
	}

	for {
		if !flagNoMenu {
			res, err := tui.RunMenu(rc, preset, bestScore(store, opts.Player))
			if err != nil {
				return err
			}
			rc, preset = res.Config, res.Preset

			switch res.Choice {
			case tui.MenuChoiceQuit:
				return nil
			case tui.MenuChoiceScores:
				goBack, err := tui.RunScoreboard(scores, opts.Player, rc.ScreenW, rc.ScreenH)
				if err != nil || !goBack {
					return err
				}
				continue
			}
		}

		gameCfg := cfg
		config.ApplyPreset(&gameCfg, preset)
		opts.Config = gameCfg
		opts.Runtime = rc

		opts.Logger.Info("run starting", "difficulty", preset, "seed", rc.Seed)
		model, err := tui.Run(opts)
		if err != nil {
			return err
		}
		if model.IsQuitting() || flagNoMenu {
			return nil
		}
	}
}

// startSpectators serves the spectator feed in the background.
func startSpectators(addr string, logger *log.Logger) (*spectate.Hub, func()) {
	hub := spectate.NewHub(spectate.Options{Logger: logger.WithPrefix("spectate")})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := hub.Serve(ctx, addr); err != nil {
			logger.Error("spectator server stopped", "err", err)
		}
	}()
	return hub, func() {
		cancel()
		<-done
	}
}
