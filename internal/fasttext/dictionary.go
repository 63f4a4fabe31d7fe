package fasttext

import "sync/atomic"

// Dictionary is a read-only view of a model's vocabulary. It is only handed out
// inside WithDictionary; once that callback returns the view answers absent
// for every lookup.
type Dictionary struct {
	b *dictBorrow
}

type dictBorrow struct {
	eng  Engine
	ref  DictRef
	live atomic.Bool
}

// WithDictionary lends the vocabulary view to fn for the duration of the call.
func (m *Model) WithDictionary(fn func(Dictionary) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readable(opDictionary); err != nil {
		return err
	}
	ref := m.eng.Dictionary(m.ref)
	if ref == nil {
		return newError(opDictionary, ExecutionFailure, "engine returned no dictionary")
	}
	b := &dictBorrow{eng: m.eng, ref: ref}
	b.live.Store(true)
	defer b.live.Store(false)
	return fn(Dictionary{b: b})
}

func (d Dictionary) usable() bool {
	return d.b != nil && d.b.live.Load()
}

// IndexOf returns the vocabulary position of word. The match is exact on bytes.
func (d Dictionary) IndexOf(word string) (int, bool) {
	if !d.usable() {
		return 0, false
	}
	i := d.b.eng.DictFind(d.b.ref, word)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// WordAt returns the word stored at index, or false when index is out of range
// or the stored text is empty or not valid UTF-8.
func (d Dictionary) WordAt(index int) (string, bool) {
	if !d.usable() {
		return "", false
	}
	if index < 0 || index >= d.b.eng.DictWordCount(d.b.ref) {
		return "", false
	}
	w := readWord(func(buf []byte) int {
		return d.b.eng.DictGetWord(d.b.ref, index, buf)
	})
	if w == "" {
		return "", false
	}
	return w, true
}

// Count returns the vocabulary size.
func (d Dictionary) Count() int {
	if !d.usable() {
		return 0
	}
	return d.b.eng.DictWordCount(d.b.ref)
}

// IndexOf is a single-lookup shortcut for WithDictionary.
func (m *Model) IndexOf(word string) (index int, found bool, err error) {
	err = m.WithDictionary(func(d Dictionary) error {
		index, found = d.IndexOf(word)
		return nil
	})
	return index, found, err
}

// WordAt is a single-lookup shortcut for WithDictionary.
func (m *Model) WordAt(index int) (word string, found bool, err error) {
	err = m.WithDictionary(func(d Dictionary) error {
		word, found = d.WordAt(index)
		return nil
	})
	return word, found, err
}

// WordCount returns the vocabulary size.
func (m *Model) WordCount() (n int, err error) {
	err = m.WithDictionary(func(d Dictionary) error {
		n = d.Count()
		return nil
	})
	return n, err
}
