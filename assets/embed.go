// assets/embed.go
//
// Embedded default word list. words.Default() parses it when no
// WORDS_FILE is configured, so the environment always has a dictionary.
package assets

import (
	"embed"
	"io"
)

//go:embed words.txt
var FS embed.FS

// DefaultWordsName is the embedded file holding the default dictionary.
const DefaultWordsName = "words.txt"

// OpenWords opens the embedded default word list.
// Callers must close the returned reader.
func OpenWords() (io.ReadCloser, error) {
	return FS.Open(DefaultWordsName)
}
