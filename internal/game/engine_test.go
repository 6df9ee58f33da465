package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/robalobadob/wordle-env/internal/words"
)

func testDict(t *testing.T, list ...string) *words.Dictionary {
	t.Helper()
	if len(list) == 0 {
		list = []string{"apple", "apply", "angle", "lille", "crane", "slate", "pious", "zesty"}
	}
	d, err := words.FromStrings(list...)
	if err != nil {
		t.Fatalf("dictionary: %v", err)
	}
	return d
}

func startWith(t *testing.T, s *Session, answer string) Observation {
	t.Helper()
	obs, err := s.Reset(ResetOptions{Answer: answer})
	if err != nil {
		t.Fatalf("Reset(%q): %v", answer, err)
	}
	return obs
}

func guess(t *testing.T, s *Session, w string) (Observation, float64, bool) {
	t.Helper()
	obs, reward, done, err := s.Step(words.MustEncode(w).Codes())
	if err != nil {
		t.Fatalf("Step(%q): %v", w, err)
	}
	return obs, reward, done
}

func TestResetInitialObservation(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	if s.State() != NotStarted {
		t.Fatalf("new session state = %s, want not_started", s.State())
	}
	obs, err := s.Reset(ResetOptions{})
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.State() != InProgress {
		t.Fatalf("state = %s, want in_progress", s.State())
	}
	if obs.GuessesRemaining != MaxGuesses {
		t.Fatalf("guesses remaining = %d, want %d", obs.GuessesRemaining, MaxGuesses)
	}
	for r, row := range obs.Board {
		for c, f := range row {
			if f != Unknown {
				t.Fatalf("board[%d][%d] = %d, want unknown", r, c, f)
			}
		}
	}
	for i, f := range obs.Alphabet {
		if f != Unknown {
			t.Fatalf("alphabet[%d] = %d, want unknown", i, f)
		}
	}
	if _, ok := s.Answer(); ok {
		t.Fatal("answer must stay hidden while in progress")
	}
}

func TestResetSamplesFromSource(t *testing.T) {
	d := testDict(t)
	s := NewSession(d, Config{Source: rand.New(rand.NewPCG(7, 7))})
	for i := 0; i < 20; i++ {
		if _, err := s.Reset(ResetOptions{}); err != nil {
			t.Fatal(err)
		}
		if !d.Contains(s.answer) {
			t.Fatalf("hidden word %s not in dictionary", s.answer)
		}
	}
}

func TestResetEmptyDictionary(t *testing.T) {
	s := NewSession(words.New(nil), Config{})
	if _, err := s.Reset(ResetOptions{}); !errors.Is(err, words.ErrEmptyDictionary) {
		t.Fatalf("err = %v, want ErrEmptyDictionary", err)
	}
	if _, err := s.Reset(ResetOptions{Seed: "x"}); !errors.Is(err, words.ErrEmptyDictionary) {
		t.Fatalf("seeded err = %v, want ErrEmptyDictionary", err)
	}
	if s.State() != NotStarted {
		t.Fatalf("failed reset changed state to %s", s.State())
	}
}

func TestResetFixedAnswerValidation(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	if _, err := s.Reset(ResetOptions{Answer: "zzzzz"}); !errors.Is(err, ErrInvalidWord) {
		t.Fatalf("unknown answer err = %v, want ErrInvalidWord", err)
	}
	if _, err := s.Reset(ResetOptions{Answer: "toolong"}); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("malformed answer err = %v, want ErrInvalidAction", err)
	}
}

func TestSeededResetIsDeterministic(t *testing.T) {
	d := testDict(t)
	a := NewSession(d, Config{Salt: "pepper"})
	b := NewSession(d, Config{Salt: "pepper"})
	for _, seed := range []string{"1", "2", "episode-9"} {
		if _, err := a.Reset(ResetOptions{Seed: seed}); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Reset(ResetOptions{Seed: seed}); err != nil {
			t.Fatal(err)
		}
		if a.answer != b.answer {
			t.Fatalf("seed %q picked %s and %s", seed, a.answer, b.answer)
		}
	}
}

func TestStepExactGuessWins(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	startWith(t, s, "crane")
	obs, reward, done := guess(t, s, "crane")
	if !done || reward != RewardWin {
		t.Fatalf("got reward=%v done=%v, want 1 true", reward, done)
	}
	if obs.Board[0] != (Row{Correct, Correct, Correct, Correct, Correct}) {
		t.Fatalf("row 0 = %v, want all correct", obs.Board[0])
	}
	if s.State() != Terminated || !s.Won() {
		t.Fatalf("state = %s won=%v, want terminated win", s.State(), s.Won())
	}
	if w, ok := s.Answer(); !ok || w.String() != "crane" {
		t.Fatalf("Answer = %s,%v want crane,true", w, ok)
	}
}

func TestAppleScenario(t *testing.T) {
	s := NewSession(testDict(t, "apple", "apply", "angle"), Config{})
	startWith(t, s, "apple")

	obs, reward, done := guess(t, s, "apply")
	want := Row{Correct, Correct, Correct, Correct, Absent}
	if obs.Board[0] != want {
		t.Fatalf("apply feedback = %v, want %v", obs.Board[0], want)
	}
	if reward != 0 || done || obs.GuessesRemaining != 5 {
		t.Fatalf("got reward=%v done=%v remaining=%d, want 0 false 5", reward, done, obs.GuessesRemaining)
	}
	if obs.Alphabet['y'-'a'] != Absent || obs.Alphabet['p'-'a'] != Correct {
		t.Fatalf("alphabet y=%v p=%v, want absent correct", obs.Alphabet['y'-'a'], obs.Alphabet['p'-'a'])
	}

	obs, reward, done = guess(t, s, "apple")
	if obs.Board[1] != (Row{Correct, Correct, Correct, Correct, Correct}) {
		t.Fatalf("apple feedback = %v, want all correct", obs.Board[1])
	}
	if reward != RewardWin || !done {
		t.Fatalf("got reward=%v done=%v, want 1 true", reward, done)
	}
}

func TestRepeatedLettersScoreIndependently(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	startWith(t, s, "apple")
	obs, _, _ := guess(t, s, "lille")
	// l appears once in apple, yet both non-matching l's are Present.
	want := Row{Present, Absent, Present, Correct, Correct}
	if obs.Board[0] != want {
		t.Fatalf("lille vs apple = %v, want %v", obs.Board[0], want)
	}
}

func TestCountedScoringLimitsRepeats(t *testing.T) {
	a, g := words.MustEncode("apple"), words.MustEncode("lille")
	got := Score(a, g, Counted)
	want := Row{Absent, Absent, Absent, Correct, Correct}
	if got != want {
		t.Fatalf("counted lille vs apple = %v, want %v", got, want)
	}
	got = Score(words.MustEncode("abbey"), words.MustEncode("babes"), Counted)
	want = Row{Present, Present, Correct, Correct, Absent}
	if got != want {
		t.Fatalf("counted babes vs abbey = %v, want %v", got, want)
	}
}

func TestExhaustingGuessesLoses(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	startWith(t, s, "zesty")
	seq := []string{"apple", "apply", "angle", "lille", "crane", "slate"}
	for i, w := range seq {
		obs, reward, done := guess(t, s, w)
		if i < len(seq)-1 {
			if done || reward != 0 {
				t.Fatalf("guess %d: reward=%v done=%v, want 0 false", i, reward, done)
			}
			continue
		}
		if !done || reward != RewardLoss {
			t.Fatalf("final guess: reward=%v done=%v, want -1 true", reward, done)
		}
		if obs.GuessesRemaining != 0 {
			t.Fatalf("remaining = %d, want 0", obs.GuessesRemaining)
		}
	}
	if s.Won() {
		t.Fatal("Won() = true after loss")
	}
	if _, _, _, err := s.Step(words.MustEncode("zesty").Codes()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("step after termination err = %v, want ErrInvalidState", err)
	}
}

func TestInvalidWordDoesNotConsumeTurn(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	startWith(t, s, "apple")
	guess(t, s, "crane")
	before := s.Observation()

	_, _, _, err := s.Step(words.MustEncode("qqqqq").Codes())
	var iw *InvalidWordError
	if !errors.As(err, &iw) || !errors.Is(err, ErrInvalidWord) {
		t.Fatalf("err = %v, want *InvalidWordError", err)
	}
	if iw.Word != "qqqqq" {
		t.Fatalf("InvalidWordError.Word = %q", iw.Word)
	}
	if s.Observation() != before {
		t.Fatal("invalid word mutated the observation")
	}
	if len(s.Guesses()) != 1 {
		t.Fatalf("guess history len = %d, want 1", len(s.Guesses()))
	}
}

func TestMalformedActions(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	startWith(t, s, "apple")
	before := s.Observation()
	for _, action := range [][]int{nil, {1, 2, 3}, {0, 1, 2, 3, 4, 5}, {0, 0, 0, 0, 26}, {-1, 0, 0, 0, 0}} {
		if _, _, _, err := s.Step(action); !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("Step(%v) err = %v, want ErrInvalidAction", action, err)
		}
	}
	if s.Observation() != before {
		t.Fatal("malformed action mutated the observation")
	}
}

func TestStepBeforeReset(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	if _, _, _, err := s.Step(words.MustEncode("apple").Codes()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestGuessCounterInvariant(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	startWith(t, s, "zesty")
	for _, w := range []string{"apple", "crane", "slate"} {
		guess(t, s, w)
		if got := s.GuessesRemaining() + len(s.Guesses()); got != MaxGuesses {
			t.Fatalf("remaining+made = %d, want %d", got, MaxGuesses)
		}
	}
}

func TestAlphabetNeverRegressesWithMax(t *testing.T) {
	s := NewSession(testDict(t), Config{Policy: MergeMax})
	startWith(t, s, "apple")
	guess(t, s, "apply") // p correct
	prev := s.Observation().Alphabet
	guess(t, s, "pious") // p now misplaced
	cur := s.Observation().Alphabet
	for i := range cur {
		if cur[i] < prev[i] {
			t.Fatalf("letter %c regressed from %v to %v", 'a'+i, prev[i], cur[i])
		}
	}
	if cur['p'-'a'] != Correct {
		t.Fatalf("p = %v, want correct", cur['p'-'a'])
	}
}

func TestAlphabetOverwritePolicy(t *testing.T) {
	s := NewSession(testDict(t), Config{Policy: Overwrite})
	startWith(t, s, "apple")
	guess(t, s, "apply")
	obs, _, _ := guess(t, s, "pious")
	if obs.Alphabet['p'-'a'] != Present {
		t.Fatalf("p = %v, want present under overwrite", obs.Alphabet['p'-'a'])
	}
}

func TestResetStartsFreshEpisode(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	startWith(t, s, "apple")
	guess(t, s, "apple")
	obs := startWith(t, s, "crane")
	if s.State() != InProgress || obs.GuessesRemaining != MaxGuesses || len(s.Guesses()) != 0 {
		t.Fatalf("reset did not start fresh: state=%s remaining=%d guesses=%d",
			s.State(), obs.GuessesRemaining, len(s.Guesses()))
	}
	if obs.Board[0][0] != Unknown || obs.Alphabet[0] != Unknown {
		t.Fatal("reset left stale feedback")
	}
}

func TestObservationIsSnapshot(t *testing.T) {
	s := NewSession(testDict(t), Config{})
	first := startWith(t, s, "apple")
	guess(t, s, "crane")
	if first.Board[0][0] != Unknown {
		t.Fatal("earlier observation changed after a step")
	}
}

func TestParsers(t *testing.T) {
	if p, err := ParseAlphabetPolicy("Overwrite"); err != nil || p != Overwrite {
		t.Fatalf("ParseAlphabetPolicy = %v, %v", p, err)
	}
	if _, err := ParseAlphabetPolicy("min"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
	if sc, err := ParseScoring("counted"); err != nil || sc != Counted {
		t.Fatalf("ParseScoring = %v, %v", sc, err)
	}
	if sc, err := ParseScoring(""); err != nil || sc != Independent {
		t.Fatalf("ParseScoring(\"\") = %v, %v", sc, err)
	}
}

func TestRegistration(t *testing.T) {
	if Registration.ID != "Wordle-v0" || Registration.RewardThreshold != 1.0 || Registration.MaxEpisodeSteps != 6 {
		t.Fatalf("Registration = %+v", Registration)
	}
	if len(Registration.ActionSpace) != words.Length {
		t.Fatalf("action space has %d positions, want %d", len(Registration.ActionSpace), words.Length)
	}
}
