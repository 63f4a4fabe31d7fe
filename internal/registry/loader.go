package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fasttextd/internal/common/fsutil"
	"fasttextd/pkg/types"
)

const (
	modelExt   = ".bin"
	vectorsExt = ".vec"
)

// LoadDir scans a directory for *.bin model files and builds a registry.
// ID is the file stem; a sibling stem.vec is recorded as the vectors file.
// Models are returned sorted by ID.
func LoadDir(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, modelExt) {
			continue
		}
		stem := strings.TrimSuffix(name, ext)
		if stem == "" {
			continue
		}
		mdl := types.Model{ID: stem, Name: stem, Path: filepath.Join(abs, name)}
		if vec := filepath.Join(abs, stem+vectorsExt); fsutil.IsFile(vec) {
			mdl.VectorsPath = vec
		}
		if n, err := fsutil.TotalSize(mdl.Path, mdl.VectorsPath); err == nil {
			mdl.SizeBytes = n
		}
		models = append(models, mdl)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

// Find returns the model with the given id.
func Find(models []types.Model, id string) (types.Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return types.Model{}, false
}
