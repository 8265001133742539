package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starbird/internal/levels"
)

var flagLevelsDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the built-in levels, or the levels found in --dir.

Examples:
  starbird levels
  starbird levels --dir ./levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "dir", "", "Directory of level YAML files")
}

func runLevels(_ *cobra.Command, _ []string) {
	repo := levels.Builtin()
	if flagLevelsDir != "" {
		repo = levels.NewDirRepository(flagLevelsDir)
	}

	all, err := repo.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, l := range all {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	// Print header
	fmt.Printf("  %-5s  %-*s  %-10s  %-6s  %s\n", "Level", maxNameLen, "Name", "Background", "Speed", "Gap")
	fmt.Printf("  %-5s  %-*s  %-10s  %-6s  %s\n", "-----", maxNameLen, "----", "----------", "-----", "---")

	// Print levels
	for _, l := range all {
		fmt.Printf("  %-5d  %-*s  %-10s  %-6.1f  %.0f\n", l.Number, maxNameLen, l.Name, l.Background, l.ObstacleSpeed, l.GapSize)
	}

	fmt.Println()
	fmt.Println("Past the last level the final one repeats with rising speed.")
}
