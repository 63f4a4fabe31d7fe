package manager

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"fasttextd/internal/fasttext"
	"fasttextd/pkg/types"
)

const defaultVocabPage = 100

// withModel loads the model if needed, takes an admission slot and runs fn
// against the instance. An instance evicted between the two steps is reloaded once.
func (m *Manager) withModel(ctx context.Context, op, modelID string, fn func(inst *Instance) error) (string, error) {
	id, err := m.resolveID(modelID)
	if err != nil {
		return "", err
	}
	for attempt := 0; ; attempt++ {
		if err := m.EnsureInstance(ctx, id); err != nil {
			return id, err
		}
		inst, release, err := m.beginRead(ctx, id)
		if errors.Is(err, errEvicted) {
			if attempt == 0 {
				continue
			}
			return id, tooBusyError{modelID: id}
		}
		if err != nil {
			return id, err
		}
		start := time.Now()
		err = func() error {
			defer release()
			return fn(inst)
		}()
		metricReadDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		metricReads.WithLabelValues(op, resultLabel(err)).Inc()
		return id, err
	}
}

// Lookup returns the vocabulary index of word.
func (m *Manager) Lookup(ctx context.Context, modelID, word string) (types.WordLookupResponse, error) {
	word = m.normalize(word)
	resp := types.WordLookupResponse{Word: word}
	id, err := m.withModel(ctx, "lookup", modelID, func(inst *Instance) error {
		var err error
		resp.Index, resp.Found, err = inst.Model.IndexOf(word)
		return err
	})
	resp.Model = id
	return resp, err
}

// WordAt returns the word stored at index.
func (m *Manager) WordAt(ctx context.Context, modelID string, index int) (types.WordLookupResponse, error) {
	resp := types.WordLookupResponse{Index: index}
	id, err := m.withModel(ctx, "word_at", modelID, func(inst *Instance) error {
		var err error
		resp.Word, resp.Found, err = inst.Model.WordAt(index)
		return err
	})
	resp.Model = id
	return resp, err
}

// Vocab returns up to limit words starting at offset.
func (m *Manager) Vocab(ctx context.Context, modelID string, offset, limit int) (types.VocabResponse, error) {
	if offset < 0 {
		return types.VocabResponse{}, ErrInvalidRequest("offset must not be negative")
	}
	if limit <= 0 {
		limit = defaultVocabPage
	}
	if limit > m.maxBatch {
		return types.VocabResponse{}, ErrInvalidRequest("limit %d exceeds max batch %d", limit, m.maxBatch)
	}
	resp := types.VocabResponse{Offset: offset, Words: []string{}}
	id, err := m.withModel(ctx, "vocab", modelID, func(inst *Instance) error {
		resp.Dimension = inst.Dimension
		return inst.Model.WithDictionary(func(d fasttext.Dictionary) error {
			resp.Count = d.Count()
			for i := offset; i < resp.Count && len(resp.Words) < limit; i++ {
				// undecodable entries keep their slot so indexes stay aligned
				w, _ := d.WordAt(i)
				resp.Words = append(resp.Words, w)
			}
			return nil
		})
	})
	resp.Model = id
	return resp, err
}

// WordVectors embeds each word; lookups run concurrently within the
// instance's in-flight limit.
func (m *Manager) WordVectors(ctx context.Context, modelID string, words []string) (types.WordVectorsResponse, error) {
	if len(words) == 0 {
		return types.WordVectorsResponse{}, ErrInvalidRequest("words is required")
	}
	if len(words) > m.maxBatch {
		return types.WordVectorsResponse{}, ErrInvalidRequest("%d words exceeds max batch %d", len(words), m.maxBatch)
	}
	out := make([]types.WordVector, len(words))
	var dim int
	id, err := m.withModel(ctx, "word_vectors", modelID, func(inst *Instance) error {
		dim = inst.Dimension
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(m.maxInflight)
		for i, w := range words {
			i, w := i, w
			w = m.normalize(w)
			out[i].Word = w
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				vec, found, err := inst.Model.WordVector(w)
				if err != nil {
					return err
				}
				out[i].Found, out[i].Vec = found, vec
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return types.WordVectorsResponse{Model: id}, err
	}
	return types.WordVectorsResponse{Model: id, Dimension: dim, Vectors: out}, nil
}

// SentenceVector embeds free text.
func (m *Manager) SentenceVector(ctx context.Context, modelID, text string) (types.SentenceVectorResponse, error) {
	text = m.normalize(text)
	var resp types.SentenceVectorResponse
	id, err := m.withModel(ctx, "sentence_vector", modelID, func(inst *Instance) error {
		var err error
		resp.Vec, resp.Found, err = inst.Model.SentenceVector(text)
		return err
	})
	resp.Model = id
	return resp, err
}

// Predict returns up to k labels for text. k = 0 means 1.
func (m *Manager) Predict(ctx context.Context, modelID, text string, k int) (types.PredictResponse, error) {
	if k == 0 {
		k = 1
	}
	if k < 0 || k > m.maxK {
		return types.PredictResponse{}, ErrInvalidRequest("k must be between 1 and %d", m.maxK)
	}
	text = m.normalize(text)
	resp := types.PredictResponse{Predictions: []types.Prediction{}}
	id, err := m.withModel(ctx, "predict", modelID, func(inst *Instance) error {
		preds, err := inst.Model.Predict(text, k)
		if err != nil {
			return err
		}
		for _, p := range preds {
			resp.Predictions = append(resp.Predictions, types.Prediction{
				Label:       p.Label,
				Score:       p.Score,
				Probability: math.Exp(float64(p.Score)),
			})
		}
		return nil
	})
	resp.Model = id
	return resp, err
}

// Similarity compares two words (mode "word") or two texts (mode "sentence").
func (m *Manager) Similarity(ctx context.Context, modelID, a, b, mode string) (types.SimilarityResponse, error) {
	var (
		copyVec func(*fasttext.Model, string) ([]float32, bool, error)
		borrow  func(*fasttext.Model, string, func([]float32) error) (bool, error)
	)
	switch mode {
	case "", "word":
		copyVec, borrow = (*fasttext.Model).WordVector, (*fasttext.Model).WithWordVector
	case "sentence":
		copyVec, borrow = (*fasttext.Model).SentenceVector, (*fasttext.Model).WithSentenceVector
	default:
		return types.SimilarityResponse{}, ErrInvalidRequest("mode must be word or sentence, got %q", mode)
	}
	a, b = m.normalize(a), m.normalize(b)
	var resp types.SimilarityResponse
	id, err := m.withModel(ctx, "similarity", modelID, func(inst *Instance) error {
		// Borrows never nest: a reload waiting on the model lock would
		// block a second read lock. Copy one side, borrow the other.
		va, foundA, err := copyVec(inst.Model, a)
		if err != nil || !foundA {
			return err
		}
		foundB, err := borrow(inst.Model, b, func(vb []float32) error {
			resp.Similarity = cosine(va, vb)
			return nil
		})
		resp.Found = foundB
		return err
	})
	resp.Model = id
	return resp, err
}
