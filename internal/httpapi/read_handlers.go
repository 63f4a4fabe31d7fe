package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fasttextd/pkg/types"
)

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// vocab godoc
// @Summary      Page through the vocabulary
// @Tags         dictionary
// @Produce      json
// @Param        id      path   string  true   "Model id"
// @Param        offset  query  int     false  "First index"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  types.VocabResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /v1/models/{id}/vocab [get]
func (h *handlers) vocab(w http.ResponseWriter, r *http.Request) {
	offset, ok := queryInt(r, "offset", 0)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	resp, err := h.svc.Vocab(ctx, chi.URLParam(r, "id"), offset, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// lookup godoc
// @Summary      Find the index of a word
// @Tags         dictionary
// @Produce      json
// @Param        id    path   string  true  "Model id"
// @Param        word  query  string  true  "Word to look up"
// @Success      200  {object}  types.WordLookupResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /v1/models/{id}/words [get]
func (h *handlers) lookup(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeJSONError(w, http.StatusBadRequest, "word is required")
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	resp, err := h.svc.Lookup(ctx, chi.URLParam(r, "id"), word)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// wordAt godoc
// @Summary      Get the word stored at an index
// @Tags         dictionary
// @Produce      json
// @Param        id     path  string  true  "Model id"
// @Param        index  path  int     true  "Vocabulary index"
// @Success      200  {object}  types.WordLookupResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /v1/models/{id}/words/{index} [get]
func (h *handlers) wordAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	resp, err := h.svc.WordAt(ctx, chi.URLParam(r, "id"), index)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// wordVectors godoc
// @Summary      Embed words
// @Tags         vectors
// @Accept       json
// @Produce      json
// @Param        body  body      types.WordVectorsRequest  true  "Words"
// @Success      200   {object}  types.WordVectorsResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Router       /v1/vectors/words [post]
func (h *handlers) wordVectors(w http.ResponseWriter, r *http.Request) {
	var req types.WordVectorsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	resp, err := h.svc.WordVectors(ctx, req.Model, req.Words)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// sentenceVector godoc
// @Summary      Embed a text
// @Tags         vectors
// @Accept       json
// @Produce      json
// @Param        body  body      types.SentenceVectorRequest  true  "Text"
// @Success      200   {object}  types.SentenceVectorResponse
// @Failure      400   {object}  types.ErrorResponse
// @Router       /v1/vectors/sentence [post]
func (h *handlers) sentenceVector(w http.ResponseWriter, r *http.Request) {
	var req types.SentenceVectorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	resp, err := h.svc.SentenceVector(ctx, req.Model, req.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// predict godoc
// @Summary      Predict labels with a supervised model
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        body  body      types.PredictRequest  true  "Text and k"
// @Success      200   {object}  types.PredictResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      422   {object}  types.ErrorResponse
// @Router       /v1/predict [post]
func (h *handlers) predict(w http.ResponseWriter, r *http.Request) {
	var req types.PredictRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	resp, err := h.svc.Predict(ctx, req.Model, req.Text, req.K)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// similarity godoc
// @Summary      Cosine similarity of two words or texts
// @Tags         vectors
// @Accept       json
// @Produce      json
// @Param        body  body      types.SimilarityRequest  true  "Pair to compare"
// @Success      200   {object}  types.SimilarityResponse
// @Failure      400   {object}  types.ErrorResponse
// @Router       /v1/similarity [post]
func (h *handlers) similarity(w http.ResponseWriter, r *http.Request) {
	var req types.SimilarityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	resp, err := h.svc.Similarity(ctx, req.Model, req.A, req.B, req.Mode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
