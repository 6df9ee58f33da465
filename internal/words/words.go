// internal/words/words.go
//
// Word encoding for the environment.
//
// A Word is a fixed-length array of letter codes, 0 for 'a' through 25
// for 'z'. Words are comparable, so a Dictionary can index them in a map
// and sessions can compare guesses against the hidden word directly.
//
// Two entry points produce Words:
//   - Encode: from text (case-insensitive, surrounding space ignored).
//   - FromCodes: from an agent action, a slice of integer letter codes.
package words

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Length is the number of letters in every word.
	Length = 5
	// AlphabetSize is the number of distinct letter codes.
	AlphabetSize = 26
)

var (
	// ErrInvalidText is returned by Encode for text that is not exactly
	// Length ASCII letters.
	ErrInvalidText = errors.New("words: invalid word text")
	// ErrInvalidCodes is returned by FromCodes for actions of the wrong
	// length or with a letter code outside [0, AlphabetSize).
	ErrInvalidCodes = errors.New("words: invalid letter codes")
)

// Word is an encoded fixed-length word.
type Word [Length]uint8

// Encode converts text like "Apple" into a Word.
func Encode(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Length {
		return w, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidText, s, len(s), Length)
	}
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return w, fmt.Errorf("%w: %q has non-letter %q at %d", ErrInvalidText, s, c, i)
		}
		w[i] = c - 'a'
	}
	return w, nil
}

// MustEncode is like Encode but panics on error. Intended for tests and
// package-level literals.
func MustEncode(s string) Word {
	w, err := Encode(s)
	if err != nil {
		panic(err)
	}
	return w
}

// FromCodes converts an action (one letter code per position) into a Word.
func FromCodes(codes []int) (Word, error) {
	var w Word
	if len(codes) != Length {
		return w, fmt.Errorf("%w: got %d codes, want %d", ErrInvalidCodes, len(codes), Length)
	}
	for i, c := range codes {
		if c < 0 || c >= AlphabetSize {
			return w, fmt.Errorf("%w: code %d at position %d out of range [0,%d]", ErrInvalidCodes, c, i, AlphabetSize-1)
		}
		w[i] = uint8(c)
	}
	return w, nil
}

// Codes returns the letter codes of w as ints, the action encoding.
func (w Word) Codes() []int {
	out := make([]int, Length)
	for i, c := range w {
		out[i] = int(c)
	}
	return out
}

// String returns the lowercase text of w.
func (w Word) String() string {
	var b [Length]byte
	for i, c := range w {
		b[i] = 'a' + c
	}
	return string(b[:])
}

// Has reports whether letter code c occurs anywhere in w.
func (w Word) Has(c uint8) bool {
	for _, x := range w {
		if x == c {
			return true
		}
	}
	return false
}
