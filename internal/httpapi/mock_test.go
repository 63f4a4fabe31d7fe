package httpapi

import (
	"context"

	"fasttextd/pkg/types"
)

type mockService struct {
	models []types.Model
	status types.StatusResponse
	ready  bool
	err    error

	// last call arguments
	gotModel string
	gotText  string
	gotWords []string
	gotK     int
	gotMode  string
	gotInt   [2]int
	preload  []string
	unloaded string
}

func (m *mockService) ListModels() []types.Model    { return append([]types.Model(nil), m.models...) }
func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }

func (m *mockService) Preload(ids []string) string {
	m.preload = ids
	return "op-1"
}

func (m *mockService) Unload(id string) error {
	m.unloaded = id
	return m.err
}

func (m *mockService) Lookup(ctx context.Context, model, word string) (types.WordLookupResponse, error) {
	m.gotModel, m.gotText = model, word
	if m.err != nil {
		return types.WordLookupResponse{}, m.err
	}
	if word == "златом" {
		return types.WordLookupResponse{Model: model, Word: word, Index: 22, Found: true}, nil
	}
	return types.WordLookupResponse{Model: model, Word: word}, nil
}

func (m *mockService) WordAt(ctx context.Context, model string, index int) (types.WordLookupResponse, error) {
	m.gotModel, m.gotInt[0] = model, index
	if m.err != nil {
		return types.WordLookupResponse{}, m.err
	}
	return types.WordLookupResponse{Model: model, Word: "златом", Index: index, Found: index == 22}, nil
}

func (m *mockService) Vocab(ctx context.Context, model string, offset, limit int) (types.VocabResponse, error) {
	m.gotModel, m.gotInt = model, [2]int{offset, limit}
	if m.err != nil {
		return types.VocabResponse{}, m.err
	}
	return types.VocabResponse{Model: model, Count: 3, Dimension: 4, Offset: offset, Words: []string{"a", "b"}}, nil
}

func (m *mockService) WordVectors(ctx context.Context, model string, words []string) (types.WordVectorsResponse, error) {
	m.gotModel, m.gotWords = model, words
	if m.err != nil {
		return types.WordVectorsResponse{}, m.err
	}
	resp := types.WordVectorsResponse{Model: model, Dimension: 2}
	for _, w := range words {
		resp.Vectors = append(resp.Vectors, types.WordVector{Word: w, Found: true, Vec: []float32{1, 0}})
	}
	return resp, nil
}

func (m *mockService) SentenceVector(ctx context.Context, model, text string) (types.SentenceVectorResponse, error) {
	m.gotModel, m.gotText = model, text
	if m.err != nil {
		return types.SentenceVectorResponse{}, m.err
	}
	return types.SentenceVectorResponse{Model: model, Found: true, Vec: []float32{0.5, 0.5}}, nil
}

func (m *mockService) Predict(ctx context.Context, model, text string, k int) (types.PredictResponse, error) {
	m.gotModel, m.gotText, m.gotK = model, text, k
	if m.err != nil {
		return types.PredictResponse{}, m.err
	}
	return types.PredictResponse{Model: model, Predictions: []types.Prediction{{Label: "__label__ru", Score: 0, Probability: 1}}}, nil
}

func (m *mockService) Similarity(ctx context.Context, model, a, b, mode string) (types.SimilarityResponse, error) {
	m.gotModel, m.gotText, m.gotMode = model, a+"|"+b, mode
	if m.err != nil {
		return types.SimilarityResponse{}, m.err
	}
	return types.SimilarityResponse{Model: model, Similarity: 0.5, Found: true}, nil
}

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }
