// Package fakeengine is a deterministic in-memory fasttext.Engine for tests.
// It keeps account of every allocation so tests can assert that each one was
// released exactly once.
package fakeengine

import (
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"fasttextd/internal/fasttext"
)

// UnsupervisedError is the message reported when predicting with a model that
// has no labels.
const UnsupervisedError = "Model needs to be supervised for prediction!"

// Fixture describes a model file the engine will accept at a given path.
type Fixture struct {
	Words []string
	Dim   int
	// Labels makes the model supervised.
	Labels []string
	// Corrupt makes the header check fail.
	Corrupt bool
}

// Stats counts allocations and vector calls.
type Stats struct {
	Models         int
	Vectors        int
	Predictions    int
	LiveModels     int
	LiveVectors    int
	LivePrediction int
	DoubleReleases int

	WordVectorCalls     int
	SentenceVectorCalls int
}

// Engine implements fasttext.Engine.
type Engine struct {
	mu      sync.Mutex
	models  map[string]Fixture
	vectors map[string]int
	live    map[unsafe.Pointer]string
	stats   Stats

	// NilAllocations makes every allocating call return a nil reference.
	NilAllocations bool
}

// New returns an empty engine; register files with AddModel and AddVectors.
func New() *Engine {
	return &Engine{
		models:  make(map[string]Fixture),
		vectors: make(map[string]int),
		live:    make(map[unsafe.Pointer]string),
	}
}

// AddModel registers a model file.
func (e *Engine) AddModel(path string, f Fixture) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.models[path] = f
}

// AddVectors registers a vectors file whose header declares dim.
func (e *Engine) AddVectors(path string, dim int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vectors[path] = dim
}

// Stats returns a snapshot of the allocation counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Live returns the number of allocations not yet released.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

type model struct {
	fixture  *Fixture
	vectors  bool
	index    map[string]int
	dict     dictionary
	released bool
}

type dictionary struct {
	m *model
}

type vector struct {
	data []float32
}

type prediction struct {
	records []fasttext.RawRecord
	err     []byte
}

func (e *Engine) count(c *int) {
	e.mu.Lock()
	*c++
	e.mu.Unlock()
}

func (e *Engine) track(p unsafe.Pointer, kind string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.live[p] = kind
	switch kind {
	case "model":
		e.stats.Models++
		e.stats.LiveModels++
	case "vector":
		e.stats.Vectors++
		e.stats.LiveVectors++
	case "prediction":
		e.stats.Predictions++
		e.stats.LivePrediction++
	}
}

func (e *Engine) untrack(p unsafe.Pointer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kind, ok := e.live[p]
	if !ok {
		e.stats.DoubleReleases++
		return
	}
	delete(e.live, p)
	switch kind {
	case "model":
		e.stats.LiveModels--
	case "vector":
		e.stats.LiveVectors--
	case "prediction":
		e.stats.LivePrediction--
	}
}

func toModel(m fasttext.ModelRef) *model { return (*model)(unsafe.Pointer(m)) }

func (e *Engine) NewModel() fasttext.ModelRef {
	if e.NilAllocations {
		return nil
	}
	m := &model{}
	m.dict.m = m
	e.track(unsafe.Pointer(m), "model")
	return fasttext.ModelRef(unsafe.Pointer(m))
}

func (e *Engine) LoadModel(ref fasttext.ModelRef, path string) fasttext.Status {
	e.mu.Lock()
	f, ok := e.models[path]
	e.mu.Unlock()
	if !ok {
		return fasttext.StatusNotOpen
	}
	if f.Corrupt {
		return fasttext.StatusWrongModel
	}
	m := toModel(ref)
	m.fixture = &f
	m.vectors = false
	m.index = make(map[string]int, len(f.Words))
	for i, w := range f.Words {
		if _, dup := m.index[w]; !dup {
			m.index[w] = i
		}
	}
	return fasttext.StatusOK
}

func (e *Engine) LoadVectors(ref fasttext.ModelRef, path string) fasttext.Status {
	m := toModel(ref)
	if m.fixture == nil {
		return fasttext.StatusNotInit
	}
	e.mu.Lock()
	dim, ok := e.vectors[path]
	e.mu.Unlock()
	if !ok {
		return fasttext.StatusNotOpen
	}
	if dim != m.fixture.Dim {
		return fasttext.StatusWrongModel
	}
	m.vectors = true
	return fasttext.StatusOK
}

func (e *Engine) Dimension(ref fasttext.ModelRef) int {
	m := toModel(ref)
	if m.fixture == nil {
		return 0
	}
	return m.fixture.Dim
}

func (e *Engine) ReleaseModel(ref fasttext.ModelRef) {
	if ref == nil {
		return
	}
	m := toModel(ref)
	m.released = true
	e.untrack(unsafe.Pointer(m))
}

func (e *Engine) Dictionary(ref fasttext.ModelRef) fasttext.DictRef {
	m := toModel(ref)
	if m.fixture == nil {
		return nil
	}
	return fasttext.DictRef(unsafe.Pointer(&m.dict))
}

func toDict(d fasttext.DictRef) *dictionary { return (*dictionary)(unsafe.Pointer(d)) }

func (e *Engine) DictFind(d fasttext.DictRef, word string) int {
	i, ok := toDict(d).m.index[word]
	if !ok {
		return -1
	}
	return i
}

func (e *Engine) DictGetWord(d fasttext.DictRef, index int, out []byte) int {
	words := toDict(d).m.fixture.Words
	if index < 0 || index >= len(words) {
		return 0
	}
	w := words[index]
	copy(out, w)
	return len(w)
}

func (e *Engine) DictWordCount(d fasttext.DictRef) int {
	return len(toDict(d).m.fixture.Words)
}

func (e *Engine) WordVector(ref fasttext.ModelRef, word string) fasttext.VectorRef {
	e.count(&e.stats.WordVectorCalls)
	if e.NilAllocations {
		return nil
	}
	v := &vector{data: Embed(word, toModel(ref).fixture.Dim)}
	e.track(unsafe.Pointer(v), "vector")
	return fasttext.VectorRef(unsafe.Pointer(v))
}

func (e *Engine) SentenceVector(ref fasttext.ModelRef, text string) fasttext.VectorRef {
	e.count(&e.stats.SentenceVectorCalls)
	if e.NilAllocations {
		return nil
	}
	v := &vector{data: EmbedSentence(text, toModel(ref).fixture.Dim)}
	e.track(unsafe.Pointer(v), "vector")
	return fasttext.VectorRef(unsafe.Pointer(v))
}

func toVector(v fasttext.VectorRef) *vector { return (*vector)(unsafe.Pointer(v)) }

func (e *Engine) VectorLen(v fasttext.VectorRef) int {
	return len(toVector(v).data)
}

func (e *Engine) VectorData(v fasttext.VectorRef) unsafe.Pointer {
	data := toVector(v).data
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

func (e *Engine) VectorRelease(v fasttext.VectorRef) {
	vec := toVector(v)
	e.untrack(unsafe.Pointer(vec))
	// poison the backing array so reads after release are visible in tests
	for i := range vec.data {
		vec.data[i] = float32(math.NaN())
	}
}

func (e *Engine) Predict(ref fasttext.ModelRef, text string, k int) fasttext.PredictionRef {
	if e.NilAllocations {
		return nil
	}
	p := &prediction{}
	f := toModel(ref).fixture
	if len(f.Labels) == 0 {
		p.err = []byte(UnsupervisedError)
	} else {
		p.records = rank(text, f, k)
	}
	e.track(unsafe.Pointer(p), "prediction")
	return fasttext.PredictionRef(unsafe.Pointer(p))
}

func toPrediction(p fasttext.PredictionRef) *prediction { return (*prediction)(unsafe.Pointer(p)) }

func (e *Engine) PredictionRecords(p fasttext.PredictionRef) []fasttext.RawRecord {
	return toPrediction(p).records
}

func (e *Engine) PredictionError(p fasttext.PredictionRef) []byte {
	return toPrediction(p).err
}

func (e *Engine) PredictionRelease(p fasttext.PredictionRef) {
	e.untrack(unsafe.Pointer(toPrediction(p)))
}

// Embed is the deterministic vector the engine returns for word.
func Embed(word string, dim int) []float32 {
	out := make([]float32, dim)
	for i := range out {
		h := fnv.New64a()
		_, _ = h.Write([]byte{byte(i), byte(i >> 8)})
		_, _ = h.Write([]byte(word))
		out[i] = float32(h.Sum64()%2000)/1000 - 1
	}
	return out
}

// EmbedSentence averages the vectors of the whitespace-separated tokens of text.
func EmbedSentence(text string, dim int) []float32 {
	out := make([]float32, dim)
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return out
	}
	for _, tok := range tokens {
		for i, x := range Embed(tok, dim) {
			out[i] += x
		}
	}
	for i := range out {
		out[i] /= float32(len(tokens))
	}
	return out
}

// rank scores every label against the sentence vector and returns the top k
// as log-softmax scores in non-increasing order.
func rank(text string, f *Fixture, k int) []fasttext.RawRecord {
	sv := EmbedSentence(text, f.Dim)
	type scored struct {
		label string
		logit float64
	}
	all := make([]scored, len(f.Labels))
	maxLogit := math.Inf(-1)
	for i, label := range f.Labels {
		var dot float64
		for j, x := range Embed(label, f.Dim) {
			dot += float64(x) * float64(sv[j])
		}
		all[i] = scored{label: label, logit: dot}
		maxLogit = math.Max(maxLogit, dot)
	}
	var sum float64
	for _, s := range all {
		sum += math.Exp(s.logit - maxLogit)
	}
	logZ := maxLogit + math.Log(sum)
	sort.SliceStable(all, func(i, j int) bool { return all[i].logit > all[j].logit })
	if k > len(all) {
		k = len(all)
	}
	out := make([]fasttext.RawRecord, k)
	for i := range out {
		out[i] = fasttext.RawRecord{
			Score: float32(all[i].logit - logZ),
			Label: []byte(all[i].label),
		}
	}
	return out
}
