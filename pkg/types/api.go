package types

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of available models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// LoadResponse is returned by POST /models/{id}/load.
type LoadResponse struct {
	// Operation id of the background load.
	// example: 5b0c5f0e-8f0e-4c57-a0d2-4f1f2a43d9a1
	OpID string `json:"op_id" example:"5b0c5f0e-8f0e-4c57-a0d2-4f1f2a43d9a1"`
	// Model being loaded.
	// example: cc.ru.300
	Model string `json:"model" example:"cc.ru.300"`
}

// WordLookupResponse answers a dictionary lookup in either direction.
type WordLookupResponse struct {
	Model string `json:"model" example:"cc.ru.300"`
	// The word that was looked up or found at Index.
	// example: златом
	Word string `json:"word,omitempty" example:"златом"`
	// Vocabulary position of Word.
	// example: 22
	Index int `json:"index" example:"22"`
	// False when the word or index is not in the vocabulary.
	// example: true
	Found bool `json:"found" example:"true"`
}

// VocabResponse is a page of the vocabulary.
type VocabResponse struct {
	Model string `json:"model" example:"cc.ru.300"`
	// Total vocabulary size.
	// example: 2000000
	Count int `json:"count" example:"2000000"`
	// Vector dimension of the model.
	// example: 300
	Dimension int `json:"dimension" example:"300"`
	// First index included in Words.
	// example: 0
	Offset int `json:"offset" example:"0"`
	// Words in index order starting at Offset.
	Words []string `json:"words"`
}

// WordVectorsRequest asks for the embeddings of several words.
type WordVectorsRequest struct {
	// Optional model identifier. If empty, the server default is used.
	// example: cc.ru.300
	Model string `json:"model,omitempty" example:"cc.ru.300"`
	// Words to embed.
	// example: ["златом","дуб"]
	Words []string `json:"words" example:"[\"златом\",\"дуб\"]"`
}

// WordVector is the embedding of one word.
type WordVector struct {
	Word  string    `json:"word" example:"златом"`
	Found bool      `json:"found" example:"true"`
	Vec   []float32 `json:"vector,omitempty"`
}

// WordVectorsResponse is returned by POST /v1/vectors/words.
type WordVectorsResponse struct {
	Model     string       `json:"model" example:"cc.ru.300"`
	Dimension int          `json:"dimension" example:"300"`
	Vectors   []WordVector `json:"vectors"`
}

// SentenceVectorRequest asks for the embedding of free text.
type SentenceVectorRequest struct {
	Model string `json:"model,omitempty" example:"cc.ru.300"`
	// example: У лукоморья дуб зелёный
	Text string `json:"text" example:"У лукоморья дуб зелёный"`
}

// SentenceVectorResponse is returned by POST /v1/vectors/sentence.
type SentenceVectorResponse struct {
	Model string    `json:"model" example:"cc.ru.300"`
	Found bool      `json:"found" example:"true"`
	Vec   []float32 `json:"vector,omitempty"`
}

// PredictRequest asks a supervised model for the top K labels.
type PredictRequest struct {
	Model string `json:"model,omitempty" example:"lid.176"`
	// example: Привет
	Text string `json:"text" example:"Привет"`
	// Number of labels to return; defaults to 1.
	// example: 3
	K int `json:"k,omitempty" example:"3"`
}

// Prediction is one ranked label.
type Prediction struct {
	// example: __label__ru
	Label string `json:"label" example:"__label__ru"`
	// Log-probability reported by the model.
	// example: -0.0123
	Score float32 `json:"score" example:"-0.0123"`
	// exp(Score).
	// example: 0.9878
	Probability float64 `json:"probability" example:"0.9878"`
}

// PredictResponse is returned by POST /v1/predict.
type PredictResponse struct {
	Model       string       `json:"model" example:"lid.176"`
	Predictions []Prediction `json:"predictions"`
}

// SimilarityRequest compares two words or two texts.
type SimilarityRequest struct {
	Model string `json:"model,omitempty" example:"cc.ru.300"`
	// example: дуб
	A string `json:"a" example:"дуб"`
	// example: кот
	B string `json:"b" example:"кот"`
	// "word" (default) or "sentence".
	// example: word
	Mode string `json:"mode,omitempty" example:"word"`
}

// SimilarityResponse carries the cosine similarity of A and B.
type SimilarityResponse struct {
	Model string `json:"model" example:"cc.ru.300"`
	// example: 0.42
	Similarity float64 `json:"similarity" example:"0.42"`
	// False when either side produced an empty vector.
	// example: true
	Found bool `json:"found" example:"true"`
}

// InstanceStatus summarizes a loaded instance for /status.
type InstanceStatus struct {
	// ID of the model this instance serves.
	// example: cc.ru.300
	ModelID string `json:"model_id" example:"cc.ru.300"`
	// Current lifecycle state of the instance (loading, ready, draining).
	// example: ready
	State string `json:"state" example:"ready"`
	// Last time this instance served a request (unix seconds).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
	// Estimated memory usage in MB.
	// example: 1200
	EstMB int `json:"est_mb" example:"1200"`
	// Vector dimension.
	// example: 300
	Dimension int `json:"dimension,omitempty" example:"300"`
	// Vocabulary size.
	// example: 2000000
	VocabSize int `json:"vocab_size,omitempty" example:"2000000"`
	// Whether the vectors file was loaded.
	// example: true
	HasVectors bool `json:"has_vectors" example:"true"`
	// Current number of queued requests.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Number of in-flight requests.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Maximum queued requests allowed before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Loaded/managed instances.
	Instances []InstanceStatus `json:"instances"`
	// Memory budget in MB across all instances.
	// example: 8192
	BudgetMB int `json:"budget_mb" example:"8192"`
	// Estimated used memory in MB.
	// example: 2048
	UsedMB int `json:"used_est_mb" example:"2048"`
	// Reserved memory margin in MB.
	// example: 512
	MarginMB int `json:"margin_mb" example:"512"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total number of evictions performed to free memory.
	// example: 5
	EvictionsTotal uint64 `json:"evictions_total" example:"5"`
	// Total number of successful model loads.
	// example: 12
	LoadsTotal uint64 `json:"loads_total" example:"12"`
	// Overall manager state (idle, loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Number of instances currently loading.
	// example: 1
	WarmupsInProgress int `json:"warmups_in_progress" example:"1"`
	// Number of instances currently draining.
	// example: 0
	DrainingCount int `json:"draining_count" example:"0"`
}
