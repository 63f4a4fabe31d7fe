package fasttext

import "math"

// ScoreEpsilon is the tolerance used when comparing prediction scores.
const ScoreEpsilon = 1e-6

const unknownPredictError = "prediction failed"

// Prediction is one ranked label. Score is the engine's log-probability.
type Prediction struct {
	Score float32
	Label string
}

// Equal compares labels exactly and scores within ScoreEpsilon.
func (p Prediction) Equal(o Prediction) bool {
	return p.Label == o.Label && math.Abs(float64(p.Score-o.Score)) < ScoreEpsilon
}

// Predict returns up to k labels for text, ordered as the engine ranked them.
// Failures reported by the engine come back as *PredictError; lifecycle
// failures come back as *Error.
func (m *Model) Predict(text string, k int) ([]Prediction, error) {
	if k < 1 {
		return nil, &PredictError{Message: "k must be positive"}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readable(opPredict); err != nil {
		return nil, err
	}
	ref := m.eng.Predict(m.ref, text, k)
	if ref == nil {
		return nil, newError(opPredict, ExecutionFailure, "engine returned no result")
	}
	defer m.eng.PredictionRelease(ref)
	return consumePrediction(m.eng, ref)
}

// consumePrediction copies everything out of ref; the caller releases it.
func consumePrediction(eng Engine, ref PredictionRef) ([]Prediction, error) {
	if raw := eng.PredictionError(ref); raw != nil {
		msg := decodeText(raw, len(raw))
		if msg == "" {
			msg = unknownPredictError
		}
		return nil, &PredictError{Message: msg}
	}
	records := eng.PredictionRecords(ref)
	out := make([]Prediction, 0, len(records))
	for _, rec := range records {
		out = append(out, Prediction{
			Score: rec.Score,
			Label: decodeText(rec.Label, len(rec.Label)),
		})
	}
	return out, nil
}
