// internal/game/engine.go
//
// Turn-based session state machine for a single player.
// Responsibilities:
//   - Start episodes: pick a hidden word (random, seeded, or fixed).
//   - Validate and apply guesses (shape, state, dictionary membership).
//   - Score guesses and fold results into the board and alphabet.
//   - Track state transitions: not started → in progress → terminated.
//
// Notes:
//   - The dictionary is shared and read-only; everything else belongs to
//     the Session. A Session is not safe for concurrent use, callers that
//     share one must serialize access (see internal/store).
//   - Every failed Step leaves the session exactly as it was.
package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-env/internal/daily"
	"github.com/robalobadob/wordle-env/internal/words"
)

// Config tunes a Session. The zero value is the default behavior.
type Config struct {
	Policy  AlphabetPolicy
	Scoring Scoring
	Salt    string       // HMAC salt for seeded resets
	Source  words.Source // random source for hidden words; crypto/rand if nil
}

// ResetOptions control how Reset picks the hidden word.
// With both fields empty the word is sampled uniformly.
type ResetOptions struct {
	Answer string // fixed hidden word; must be in the dictionary
	Seed   string // deterministic pick via daily.Index(Seed, Config.Salt)
}

// Session holds the state of one episode at a time.
type Session struct {
	ID string

	dict      *words.Dictionary
	cfg       Config
	state     State
	answer    words.Word
	guesses   []words.Word
	remaining int
	board     Board
	alphabet  Alphabet
}

// NewSession constructs a session in the NotStarted state.
func NewSession(dict *words.Dictionary, cfg Config) *Session {
	if cfg.Source == nil {
		cfg.Source = words.CryptoSource{}
	}
	s := &Session{
		ID:        uuid.NewString(),
		dict:      dict,
		cfg:       cfg,
		remaining: MaxGuesses,
	}
	s.clear()
	return s
}

// Reset starts a new episode and returns the initial observation.
// It may be called in any state. On error the previous episode is kept.
func (s *Session) Reset(opts ResetOptions) (Observation, error) {
	answer, err := s.pickAnswer(opts)
	if err != nil {
		return s.Observation(), err
	}
	s.answer = answer
	s.guesses = nil
	s.remaining = MaxGuesses
	s.clear()
	s.state = InProgress
	return s.Observation(), nil
}

func (s *Session) pickAnswer(opts ResetOptions) (words.Word, error) {
	switch {
	case opts.Answer != "":
		w, err := words.Encode(opts.Answer)
		if err != nil {
			return w, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		if !s.dict.Contains(w) {
			return w, &InvalidWordError{Word: w.String()}
		}
		return w, nil
	case opts.Seed != "":
		if s.dict.Len() == 0 {
			return words.Word{}, words.ErrEmptyDictionary
		}
		return s.dict.At(daily.Index(opts.Seed, s.cfg.Salt, s.dict.Len())), nil
	}
	return s.dict.Sample(s.cfg.Source)
}

// clear resets the board and alphabet to Unknown.
func (s *Session) clear() {
	for r := range s.board {
		for c := range s.board[r] {
			s.board[r][c] = Unknown
		}
	}
	for i := range s.alphabet {
		s.alphabet[i] = Unknown
	}
}

// Step applies an action: one letter code in [0,25] per position.
// It returns the new observation, the reward and whether the episode ended.
//
// Errors:
//   - ErrInvalidAction: wrong length or out-of-range code.
//   - ErrInvalidState: the session is not in progress.
//   - *InvalidWordError: the word is not in the dictionary (turn not consumed).
func (s *Session) Step(action []int) (Observation, float64, bool, error) {
	w, err := words.FromCodes(action)
	if err != nil {
		return s.Observation(), 0, false, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	return s.Guess(w)
}

// Guess is Step for an already encoded word.
func (s *Session) Guess(w words.Word) (Observation, float64, bool, error) {
	if s.state != InProgress {
		return s.Observation(), 0, false, fmt.Errorf("%w: session is %s", ErrInvalidState, s.state)
	}
	if !s.dict.Contains(w) {
		return s.Observation(), 0, false, &InvalidWordError{Word: w.String()}
	}

	row := Score(s.answer, w, s.cfg.Scoring)
	s.board[MaxGuesses-s.remaining] = row
	for i, c := range w {
		s.alphabet[c] = s.cfg.Policy.merge(s.alphabet[c], row[i])
	}
	s.guesses = append(s.guesses, w)
	s.remaining--

	reward, done := RewardStep, false
	if allCorrect(row) {
		reward, done = RewardWin, true
	} else if s.remaining == 0 {
		reward, done = RewardLoss, true
	}
	if done {
		s.state = Terminated
	}
	return s.Observation(), reward, done, nil
}

// Observation returns a snapshot of the current board and alphabet.
func (s *Session) Observation() Observation {
	return Observation{Board: s.board, Alphabet: s.alphabet, GuessesRemaining: s.remaining}
}

// State reports the lifecycle stage.
func (s *Session) State() State { return s.state }

// GuessesRemaining reports how many guesses are left in the episode.
func (s *Session) GuessesRemaining() int { return s.remaining }

// Guesses returns a copy of the guesses made this episode, oldest first.
func (s *Session) Guesses() []words.Word {
	return append([]words.Word(nil), s.guesses...)
}

// LastRow returns the feedback of the most recent guess, if any.
func (s *Session) LastRow() (Row, bool) {
	n := len(s.guesses)
	if n == 0 {
		return Row{}, false
	}
	return s.board[n-1], true
}

// Won reports whether the episode ended with the hidden word guessed.
func (s *Session) Won() bool {
	row, ok := s.LastRow()
	return s.state == Terminated && ok && allCorrect(row)
}

// Answer reveals the hidden word once the episode has terminated.
func (s *Session) Answer() (words.Word, bool) {
	if s.state != Terminated {
		return words.Word{}, false
	}
	return s.answer, true
}

// Score evaluates guess against answer with the given rule.
func Score(answer, guess words.Word, rule Scoring) Row {
	if rule == Counted {
		return scoreCounted(answer, guess)
	}
	var res Row
	for i, c := range guess {
		switch {
		case answer[i] == c:
			res[i] = Correct
		case answer.Has(c):
			res[i] = Present
		default:
			res[i] = Absent
		}
	}
	return res
}

// scoreCounted implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1 marks exact matches and counts the remaining answer letters.
// Pass 2 marks a non-hit guess letter Present while its count lasts,
// decrementing it, and Absent otherwise.
func scoreCounted(answer, guess words.Word) Row {
	var res Row
	var counts [words.AlphabetSize]int

	for i := range guess {
		if guess[i] == answer[i] {
			res[i] = Correct
		} else {
			counts[answer[i]]++
		}
	}
	for i, c := range guess {
		if res[i] == Correct {
			continue
		}
		if counts[c] > 0 {
			res[i] = Present
			counts[c]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// allCorrect returns true if every cell of the row is Correct.
func allCorrect(r Row) bool {
	for _, f := range r {
		if f != Correct {
			return false
		}
	}
	return true
}
