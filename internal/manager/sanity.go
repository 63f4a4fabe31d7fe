package manager

import (
	"fasttextd/internal/common/fsutil"
)

// SanityReport describes startup checks for the engine and the registry.
type SanityReport struct {
	EngineAvailable bool     `json:"engine_available"`
	Models          int      `json:"models"`
	DefaultFound    bool     `json:"default_found"`
	MissingFiles    []string `json:"missing_files,omitempty"`
	WithoutVectors  []string `json:"without_vectors,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// SanityCheck validates that the engine is linked and that registry files are
// still on disk. It does not mutate state and is safe to call at any time.
func (m *Manager) SanityCheck() SanityReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r := SanityReport{EngineAvailable: m.engine != nil, Models: len(m.registry)}
	for _, mdl := range m.registry {
		if mdl.ID == m.defaultModel {
			r.DefaultFound = true
		}
		if !fsutil.IsFile(mdl.Path) {
			r.MissingFiles = append(r.MissingFiles, mdl.Path)
		}
		if mdl.VectorsPath == "" {
			r.WithoutVectors = append(r.WithoutVectors, mdl.ID)
		}
	}
	switch {
	case !r.EngineAvailable:
		r.Error = "fasttext engine not available in this build"
	case m.defaultModel != "" && !r.DefaultFound:
		r.Error = "default model " + m.defaultModel + " not found in registry"
	case len(r.MissingFiles) > 0:
		r.Error = "model files missing from disk"
	}
	return r
}
