package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// FSRepository loads level files from a file system tree.
type FSRepository struct {
	fsys fs.FS
	root string
}

// NewDirRepository reads *.yaml level files below dir.
func NewDirRepository(dir string) *FSRepository {
	return &FSRepository{fsys: os.DirFS(dir), root: "."}
}

// Builtin returns the levels shipped with the binary.
func Builtin() *FSRepository {
	return &FSRepository{fsys: builtinFS, root: "builtin"}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by number. Unreadable files are skipped.
func (r *FSRepository) LoadAll() ([]LevelConfig, error) {
	var levels []LevelConfig

	err := fs.WalkDir(r.fsys, r.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		level, err := r.LoadFile(p)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", r.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Number < levels[j].Number
	})
	return levels, nil
}

// LoadFile loads a single level file. The file is decoded on top of
// Default(), so it only needs to name what differs.
func (r *FSRepository) LoadFile(p string) (LevelConfig, error) {
	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		return LevelConfig{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}
	return Parse(data)
}

// Level implements Repository. Invalid level files surface as ErrInvalidLevel.
func (r *FSRepository) Level(n int) (LevelConfig, error) {
	levels, err := r.LoadAll()
	if err != nil {
		return LevelConfig{}, err
	}
	for _, lvl := range levels {
		if lvl.Number != n {
			continue
		}
		if err := lvl.Validate(); err != nil {
			return LevelConfig{}, err
		}
		return lvl, nil
	}
	return LevelConfig{}, fmt.Errorf("levels: level %d: %w", n, ErrLevelNotFound)
}

// Parse decodes a YAML level definition.
func Parse(data []byte) (LevelConfig, error) {
	lvl := Default()
	lvl.PipeVariants = nil
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return LevelConfig{}, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}
	if len(lvl.PipeVariants) == 0 {
		lvl.PipeVariants = Default().PipeVariants
	}
	return lvl, nil
}
