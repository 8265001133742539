package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinLevels(t *testing.T) {
	repo := Builtin()

	all, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("LoadAll() returned %d levels, expected 3", len(all))
	}
	for i, lvl := range all {
		if lvl.Number != i+1 {
			t.Errorf("level %d has number %d", i, lvl.Number)
		}
		if err := lvl.Validate(); err != nil {
			t.Errorf("builtin level %d invalid: %v", lvl.Number, err)
		}
	}

	lvl2, err := repo.Level(2)
	if err != nil {
		t.Fatalf("Level(2) error: %v", err)
	}
	if lvl2.ObstacleSpeed != 6 || lvl2.SpawnIntervalFrames != 80 || lvl2.GapSize != 160 {
		t.Errorf("Level(2) = %+v, unexpected parameters", lvl2)
	}

	if _, err := repo.Level(99); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("Level(99) error = %v, expected ErrLevelNotFound", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LevelConfig)
	}{
		{"zero speed", func(l *LevelConfig) { l.ObstacleSpeed = 0 }},
		{"zero interval", func(l *LevelConfig) { l.SpawnIntervalFrames = 0 }},
		{"zero gap", func(l *LevelConfig) { l.GapSize = 0 }},
		{"probability above one", func(l *LevelConfig) { l.QuantumProbability = 2 }},
		{"negative weight", func(l *LevelConfig) { l.QuantumWeights.Aurora = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := Default()
			tc.mutate(&lvl)
			if err := lvl.Validate(); !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Validate() = %v, expected ErrInvalidLevel", err)
			}
		})
	}
}

func TestCloneDoesNotShareVariants(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.PipeVariants[0] = "red"
	if a.PipeVariants[0] == "red" {
		t.Error("Clone() shares PipeVariants with the original")
	}
}

func TestDirRepositoryAndChain(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("custom.yaml", "level: 2\nname: Custom\nobstacle_speed: 9\n")
	write("broken.yaml", "level: 4\nobstacle_speed: -1\n")
	write("notes.txt", "ignored")

	dirRepo := NewDirRepository(dir)
	lvl, err := dirRepo.Level(2)
	if err != nil {
		t.Fatalf("Level(2) error: %v", err)
	}
	if lvl.Name != "Custom" || lvl.ObstacleSpeed != 9 {
		t.Errorf("Level(2) = %+v, expected custom override", lvl)
	}
	if lvl.GapSize != Default().GapSize {
		t.Errorf("unspecified fields should keep defaults, gap = %v", lvl.GapSize)
	}

	if _, err := dirRepo.Level(4); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Level(4) error = %v, expected ErrInvalidLevel", err)
	}

	chain := Chain{dirRepo, Builtin()}
	if lvl, _ := chain.Level(2); lvl.Name != "Custom" {
		t.Errorf("Chain should prefer the first repository, got %q", lvl.Name)
	}
	if lvl, err := chain.Level(3); err != nil || lvl.Number != 3 {
		t.Errorf("Chain.Level(3) = %+v, %v; expected builtin level 3", lvl, err)
	}
	if _, err := chain.Level(42); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("Chain.Level(42) error = %v, expected ErrLevelNotFound", err)
	}
}
