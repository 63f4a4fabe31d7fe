package types

// Model is a fastText model pair discovered on disk.
type Model struct {
	// Stable identifier for the model (the file stem).
	// example: cc.ru.300
	ID string `json:"id" example:"cc.ru.300"`
	// Human-friendly name.
	// example: cc.ru.300
	Name string `json:"name" example:"cc.ru.300"`
	// Absolute path to the binary model file.
	// example: /srv/models/cc.ru.300.bin
	Path string `json:"path" example:"/srv/models/cc.ru.300.bin"`
	// Absolute path to the text vectors file, empty when none was found next to the model.
	// example: /srv/models/cc.ru.300.vec
	VectorsPath string `json:"vectors_path,omitempty" example:"/srv/models/cc.ru.300.vec"`
	// Combined size of the model and vectors files in bytes.
	// example: 7260000000
	SizeBytes int64 `json:"size_bytes" example:"7260000000"`
}
