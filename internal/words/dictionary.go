// internal/words/dictionary.go
//
// Dictionary management for the environment.
//
// Responsibilities:
//   - Parse newline-delimited word lists (embedded default or a file).
//   - Keep a de-duplicated set for exact membership tests.
//   - Sample hidden words uniformly over the distinct entries.
//
// Word list format:
//   - One word per line, exactly Length letters, case-insensitive.
//   - Blank lines and lines starting with '#' are ignored.
//   - Any other malformed line fails the whole load with *LoadError.
//
// A Dictionary is immutable once built and safe for concurrent reads, so a
// single instance can back any number of sessions.
package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle-env/assets"
)

// ErrEmptyDictionary is returned when sampling from a dictionary with no words.
var ErrEmptyDictionary = errors.New("words: dictionary is empty")

// LoadError describes a malformed line in a word list.
type LoadError struct {
	Line int    // 1-based line number
	Text string // offending line, trimmed
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("words: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Source picks an index in [0, n). *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Dictionary is an immutable set of valid words.
type Dictionary struct {
	list []Word             // distinct words, first-seen order
	set  map[Word]struct{} // membership index over list
}

// New builds a Dictionary from list, dropping duplicates.
func New(list []Word) *Dictionary {
	d := &Dictionary{
		list: make([]Word, 0, len(list)),
		set:  make(map[Word]struct{}, len(list)),
	}
	for _, w := range list {
		if _, ok := d.set[w]; ok {
			continue
		}
		d.set[w] = struct{}{}
		d.list = append(d.list, w)
	}
	return d
}

// FromStrings encodes each string and builds a Dictionary.
// The first malformed entry is reported as a *LoadError.
func FromStrings(list ...string) (*Dictionary, error) {
	ws := make([]Word, 0, len(list))
	for i, s := range list {
		w, err := Encode(s)
		if err != nil {
			return nil, &LoadError{Line: i + 1, Text: s, Err: err}
		}
		ws = append(ws, w)
	}
	return New(ws), nil
}

// Parse reads a word list, one word per line.
func Parse(r io.Reader) (*Dictionary, error) {
	var list []Word
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		w, err := Encode(s)
		if err != nil {
			return nil, &LoadError{Line: line, Text: s, Err: err}
		}
		list = append(list, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read list: %w", err)
	}
	return New(list), nil
}

// LoadFile parses the word list at path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Default parses the embedded word list.
func Default() (*Dictionary, error) {
	f, err := assets.OpenWords()
	if err != nil {
		return nil, fmt.Errorf("words: open embedded list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Load parses the list at path, or the embedded list when path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.list) }

// Contains reports whether w is an exact member.
func (d *Dictionary) Contains(w Word) bool {
	_, ok := d.set[w]
	return ok
}

// At returns the i-th distinct word in load order.
func (d *Dictionary) At(i int) Word { return d.list[i] }

// Words returns a copy of the distinct words in load order.
func (d *Dictionary) Words() []Word {
	return append([]Word(nil), d.list...)
}

// Sample returns a uniformly random word using src.
func (d *Dictionary) Sample(src Source) (Word, error) {
	if len(d.list) == 0 {
		return Word{}, ErrEmptyDictionary
	}
	return d.list[src.IntN(len(d.list))], nil
}

// Random returns a uniformly random word using crypto/rand.
func (d *Dictionary) Random() (Word, error) {
	return d.Sample(CryptoSource{})
}

// CryptoSource draws indices from crypto/rand.
type CryptoSource struct{}

// IntN returns a cryptographically random int in [0, n). It panics if n <= 0.
func (CryptoSource) IntN(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("words: crypto/rand: %v", err))
	}
	return int(nBig.Int64())
}
