package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/robalobadob/wordle-env/internal/game"
	"github.com/robalobadob/wordle-env/internal/words"
)

func TestPlainEpisode(t *testing.T) {
	d, err := words.FromStrings("apple", "apply")
	if err != nil {
		t.Fatal(err)
	}
	s := game.NewSession(d, game.Config{})
	if _, err := s.Reset(game.ResetOptions{Answer: "apple"}); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.Step(words.MustEncode("apply").Codes()); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewPlain(&buf).Session(s); err != nil {
		t.Fatalf("Session: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain output contains escape codes: %q", out)
	}
	lines := strings.Split(out, "\n")
	if lines[0] != separator {
		t.Fatalf("first line = %q, want separator", lines[0])
	}
	if want := "[a] [p] [p] [l] -y- "; lines[1] != want {
		t.Fatalf("guess row = %q, want %q", lines[1], want)
	}
	alpha := lines[3]
	for _, frag := range []string{"[a]", "[p]", "[l]", "-y-", " b  "} {
		if !strings.Contains(alpha, frag) {
			t.Fatalf("alphabet line %q missing %q", alpha, frag)
		}
	}
}

func TestColorLetters(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{w: &buf, color: true}
	obs := game.Observation{}
	for i := range obs.Alphabet {
		obs.Alphabet[i] = game.Unknown
	}
	obs.Alphabet[0] = game.Correct
	obs.Alphabet[1] = game.Present
	obs.Alphabet[2] = game.Absent
	if err := r.Episode(nil, obs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, frag := range []string{ansiGreen + "a" + ansiReset, ansiYellow + "b" + ansiReset, ansiGray + "c" + ansiReset, " d "} {
		if !strings.Contains(out, frag) {
			t.Fatalf("output %q missing %q", out, frag)
		}
	}
}
