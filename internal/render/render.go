// internal/render/render.go
//
// Human-readable rendering of an episode: every guess row with its
// feedback, then the alphabet colored by what is known about each letter.
//
// Color output uses ANSI sequences; on Windows consoles go-colorable
// translates them. When the destination is not a terminal the renderer
// falls back to plain markers so the output stays readable in logs:
//
//	[a]  correct    (a)  present    -a-  absent    a  unknown
package render

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/robalobadob/wordle-env/internal/game"
	"github.com/robalobadob/wordle-env/internal/words"
)

const separator = "###################################################"

const (
	ansiReset  = "\x1b[0m"
	ansiGray   = "\x1b[1;30m"
	ansiYellow = "\x1b[1;33m"
	ansiGreen  = "\x1b[1;32m"
)

// Renderer writes episodes to w.
type Renderer struct {
	w     io.Writer
	color bool
}

// New returns a Renderer for f, with color when f is a terminal.
func New(f *os.File) *Renderer {
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return &Renderer{w: colorable.NewColorable(f), color: true}
	}
	return &Renderer{w: f}
}

// NewPlain returns a Renderer that never emits escape sequences.
func NewPlain(w io.Writer) *Renderer {
	return &Renderer{w: colorable.NewNonColorable(w)}
}

// Session renders the current episode of s.
func (r *Renderer) Session(s *game.Session) error {
	return r.Episode(s.Guesses(), s.Observation())
}

// Episode renders guesses against the board and alphabet in obs.
func (r *Renderer) Episode(guesses []words.Word, obs game.Observation) error {
	bw := bufio.NewWriter(r.w)
	bw.WriteString(separator + "\n")
	for i, g := range guesses {
		if i >= game.MaxGuesses {
			break
		}
		for j, c := range g {
			r.letter(bw, 'a'+c, obs.Board[i][j])
		}
		bw.WriteString("\n")
	}
	bw.WriteString("\n")
	for i, f := range obs.Alphabet {
		r.letter(bw, byte('a'+i), f)
	}
	bw.WriteString("\n" + separator + "\n\n")
	return bw.Flush()
}

func (r *Renderer) letter(bw *bufio.Writer, c byte, f game.Feedback) {
	if r.color {
		switch f {
		case game.Absent:
			bw.WriteString(ansiGray)
		case game.Present:
			bw.WriteString(ansiYellow)
		case game.Correct:
			bw.WriteString(ansiGreen)
		}
		bw.WriteByte(c)
		if f != game.Unknown {
			bw.WriteString(ansiReset)
		}
		bw.WriteByte(' ')
		return
	}
	switch f {
	case game.Absent:
		bw.Write([]byte{'-', c, '-', ' '})
	case game.Present:
		bw.Write([]byte{'(', c, ')', ' '})
	case game.Correct:
		bw.Write([]byte{'[', c, ']', ' '})
	default:
		bw.Write([]byte{' ', c, ' ', ' '})
	}
}
