package fasttext

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxWordLen is the initial receive buffer for a dictionary word.
	MaxWordLen = 256
	// maxWordRetryLen bounds the single regrow after the engine reports a
	// word longer than the first buffer.
	maxWordRetryLen = 64 << 10
)

// decodeText interprets the first n bytes of buf as UTF-8. The reported length
// is clamped to the buffer; invalid text decodes to the empty string.
func decodeText(buf []byte, n int) string {
	if n <= 0 || len(buf) == 0 {
		return ""
	}
	if n > len(buf) {
		n = len(buf)
	}
	b := buf[:n]
	if !utf8.Valid(b) {
		return ""
	}
	return string(b)
}

// readWord runs fill against a bounded buffer. fill writes up to len(buf)
// bytes and returns the length the engine reported. A word that still does
// not fit after the single regrow reads as absent.
func readWord(fill func(buf []byte) int) string {
	buf := make([]byte, MaxWordLen)
	n := fill(buf)
	if n > len(buf) && n <= maxWordRetryLen {
		buf = make([]byte, n)
		n = fill(buf)
	}
	if n > len(buf) {
		// a prefix of the word is a different word
		return ""
	}
	return decodeText(buf, n)
}

// validPath reports whether path can be handed to a NUL-terminated file API.
func validPath(path string) bool {
	return path != "" && !strings.ContainsRune(path, 0)
}
