// Package manager provides lifecycle, admission and read coordination for
// loaded fastText models. It is structured into small files by concern:
//
//   - manager.go: core Manager type, Ready, ListModels, Close.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: State and Instance.
//   - errors.go: error types and helpers (IsTooBusy, IsModelNotFound, ...).
//   - helpers.go: model lookup, memory estimation, text normalization.
//   - ensure.go: EnsureInstance; concurrent loads of one id are deduplicated.
//   - evict.go: LRU eviction to fit within the memory budget.
//   - admission.go: per-instance queue and in-flight read slots.
//   - read.go: Lookup, WordAt, Vocab, WordVectors, SentenceVector, Predict, Similarity.
//   - similarity.go: cosine similarity on float32 views.
//   - unload.go: graceful drain and Unload.
//   - ops.go: Preload (background loads with an operation id).
//   - status_report.go: Status reporting.
//   - sanity.go: startup checks.
//   - events.go, eventpub_*.go: lifecycle events (no-op, memory, zerolog).
//   - metrics.go: Prometheus collectors.
//
// Memory accounting uses the on-disk size of the .bin and .vec files as the
// estimate for a loaded model.
package manager
