package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starbird/internal/platform/tui"
	"github.com/vovakirdan/starbird/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagInteractive  bool
	flagClear        bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top Starbird scores and overall stats.

Examples:
  starbird scores
  starbird scores --player ana
  starbird scores --interactive
  starbird scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs by this pilot")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in the terminal UI")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(storage.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	if flagInteractive {
		rc := runtimeConfig()
		if _, err := runScoreboard(store, rc.ScreenW, rc.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Get top scores
	var scores []storage.ScoreEntry
	if flagScoresPlayer != "" {
		scores, err = store.PlayerScores(storage.GameID, flagScoresPlayer, flagScoresLimit)
	} else {
		scores, err = store.TopScores(storage.GameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	// Display scores
	title := "High Scores"
	if flagScoresPlayer != "" {
		title += " - " + flagScoresPlayer
	}
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'starbird play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "Rank", "Pilot", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		pilot := entry.Player
		if pilot == "" {
			pilot = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %s\n", i+1, pilot, entry.Score, entry.Level, dateStr)
	}

	// Show stats
	fmt.Println()
	if stats, err := store.GameStats(storage.GameID); err == nil {
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Highest level: %d\n",
			stats.Runs, stats.HighScore, stats.AvgScore, stats.MaxLevel)
	}
}

// runScoreboard opens the interactive scoreboard for the current pilot.
func runScoreboard(store *storage.Store, width, height int) (bool, error) {
	player := flagScoresPlayer
	if player == "" {
		player = currentPlayer()
	}
	return tui.RunScoreboard(store, player, width, height)
}
