package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fasttextd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	Status() types.StatusResponse
	Ready() bool
	Preload(ids []string) string
	Unload(modelID string) error

	Lookup(ctx context.Context, modelID, word string) (types.WordLookupResponse, error)
	WordAt(ctx context.Context, modelID string, index int) (types.WordLookupResponse, error)
	Vocab(ctx context.Context, modelID string, offset, limit int) (types.VocabResponse, error)
	WordVectors(ctx context.Context, modelID string, words []string) (types.WordVectorsResponse, error)
	SentenceVector(ctx context.Context, modelID, text string) (types.SentenceVectorResponse, error)
	Predict(ctx context.Context, modelID, text string, k int) (types.PredictResponse, error)
	Similarity(ctx context.Context, modelID, a, b, mode string) (types.SimilarityResponse, error)
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5, "application/json"))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if mw := corsMiddleware(); mw != nil {
		r.Use(mw)
	}

	h := &handlers{svc: svc}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})
	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/models", h.listModels)
	r.Get("/status", h.status)
	r.Post("/models/{id}/load", h.loadModel)
	r.Delete("/models/{id}", h.unloadModel)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/models/{id}/vocab", h.vocab)
		r.Get("/models/{id}/words", h.lookup)
		r.Get("/models/{id}/words/{index}", h.wordAt)
		r.Post("/vectors/words", h.wordVectors)
		r.Post("/vectors/sentence", h.sentenceVector)
		r.Post("/predict", h.predict)
		r.Post("/similarity", h.similarity)
	})

	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

// listModels godoc
// @Summary      List models
// @Description  Models discovered in the models directory.
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /models [get]
func (h *handlers) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.ModelsResponse{Models: h.svc.ListModels()})
}

// status godoc
// @Summary      Manager status
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// loadModel godoc
// @Summary      Load a model in the background
// @Tags         models
// @Produce      json
// @Param        id   path      string  true  "Model id"
// @Success      202  {object}  types.LoadResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /models/{id}/load [post]
func (h *handlers) loadModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	known := slices.ContainsFunc(h.svc.ListModels(), func(m types.Model) bool { return m.ID == id })
	if !known {
		writeJSONError(w, http.StatusNotFound, "model not found: "+id)
		return
	}
	op := h.svc.Preload([]string{id})
	writeJSON(w, http.StatusAccepted, types.LoadResponse{OpID: op, Model: id})
}

// unloadModel godoc
// @Summary      Drain and unload a model
// @Tags         models
// @Param        id   path      string  true  "Model id"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /models/{id} [delete]
func (h *handlers) unloadModel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Unload(chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().Error().Err(err).Msg("encode response")
	}
}
