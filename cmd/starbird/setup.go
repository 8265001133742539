package main

import (
	"fmt"
	"os"
	"os/user"

	"golang.org/x/term"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/levels"
	"github.com/vovakirdan/starbird/internal/storage"
)

// loadConfig reads the game config and the difficulty preset flags.
func loadConfig(path, difficulty string) (config.Config, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, preset, nil
}

// levelRepo layers an optional level directory over the built-in levels.
func levelRepo(dir string) levels.Repository {
	if dir == "" {
		return levels.Builtin()
	}
	return levels.Chain{levels.NewDirRepository(dir), levels.Builtin()}
}

// runtimeConfig sizes the runtime to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. A failure is reported and the game
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// currentPlayer is the OS user name, used as the pilot name.
func currentPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

func bestScore(store *storage.Store, player string) int {
	if store == nil {
		return 0
	}
	top, err := store.PlayerScores(storage.GameID, player, 1)
	if err != nil || len(top) == 0 {
		return 0
	}
	return top[0].Score
}
