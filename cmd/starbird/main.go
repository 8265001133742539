// starbird is a terminal arcade flyer: steer through pipes, dodge black
// holes and collect power-ups.
//
// Usage:
//
//	starbird                 - Title screen, then play
//	starbird play            - Play (same as no command)
//	starbird scores          - Show high scores
//	starbird levels          - List available levels
//	starbird config          - Print the effective configuration
//	starbird serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.starbird/scores.db)
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Log destination (default: ~/.starbird/starbird.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starbird/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starbird",
	Short: "Starbird - fly through space in your terminal",
	Long: `Starbird is a side-scrolling arcade flyer for the terminal.

Available commands:
  play     - Play (default when no command is given)
  scores   - View high scores
  levels   - List available levels
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  starbird
  starbird play --difficulty hard
  starbird play --spectate :8080
  starbird scores --player ana
  starbird serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.starbird/starbird.log)")

	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
