package manager

import (
	"golang.org/x/text/unicode/norm"

	"fasttextd/internal/common/fsutil"
	"fasttextd/internal/registry"
	"fasttextd/pkg/types"
)

// Helper: find model in registry by id.
func (m *Manager) getModelByID(id string) (types.Model, bool) {
	return registry.Find(m.registry, id)
}

// resolveID substitutes the default model for an empty id.
func (m *Manager) resolveID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	if m.defaultModel == "" {
		return "", ErrInvalidRequest("model is required (no default model configured)")
	}
	return m.defaultModel, nil
}

// Helper: estimate resident memory from the on-disk size of the model pair.
func (m *Manager) estimateMB(mdl types.Model) int {
	n, err := fsutil.TotalSize(mdl.Path, mdl.VectorsPath)
	if err != nil {
		// a missing file fails the load itself; fall back to the registry size
		if !fsutil.IsNotExist(err) {
			m.log.Warn().Err(err).Str("model", mdl.ID).Msg("size estimate")
		}
		n = mdl.SizeBytes
	}
	return fsutil.SizeMB(n)
}

// newNormalizer returns the request text normalizer for form. Dictionary
// lookups stay byte-exact; only text arriving from callers is rewritten.
func newNormalizer(form string) func(string) string {
	switch form {
	case "nfc", "NFC":
		return norm.NFC.String
	case "nfkc", "NFKC":
		return norm.NFKC.String
	default:
		return func(s string) string { return s }
	}
}
