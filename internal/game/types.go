// internal/game/types.go
//
// Core type definitions for the environment.
// Defines:
//   - Feedback: per-letter result of a guess (unknown/absent/present/correct).
//   - Board, Alphabet: the two observation grids.
//   - Observation: snapshot returned by Reset and Step.
//   - State: session lifecycle (not started → in progress → terminated).
//   - AlphabetPolicy, Scoring: behavior switches carried in Config.

package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-env/internal/words"
)

// MaxGuesses is the number of guesses per episode (rows on the board).
const MaxGuesses = 6

// Rewards returned by Step.
const (
	RewardWin  = 1.0
	RewardLoss = -1.0
	RewardStep = 0.0
)

// Feedback is the evaluation of one letter. Values are ordered by how much
// they reveal: Unknown < Absent < Present < Correct.
type Feedback int8

const (
	Unknown Feedback = -1 // no guess has touched this cell or letter yet
	Absent  Feedback = 0  // letter not in the hidden word
	Present Feedback = 1  // letter in the hidden word, other position
	Correct Feedback = 2  // letter in this position
)

func (f Feedback) String() string {
	switch f {
	case Unknown:
		return "unknown"
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("Feedback(%d)", int8(f))
}

// Row is the feedback for a single guess.
type Row [words.Length]Feedback

// Board holds one Row per guess; rows not yet played are all Unknown.
type Board [MaxGuesses]Row

// Alphabet holds the knowledge gathered about each letter code.
type Alphabet [words.AlphabetSize]Feedback

// Observation is what an agent sees after Reset or Step. It is a value:
// later steps never modify an Observation already returned.
type Observation struct {
	Board            Board    `json:"board"`
	Alphabet         Alphabet `json:"alphabet"`
	GuessesRemaining int      `json:"guessesRemaining"`
}

// State is the lifecycle stage of a Session.
type State int

const (
	NotStarted State = iota
	InProgress
	Terminated
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// AlphabetPolicy decides how a new letter result combines with what the
// alphabet already records.
type AlphabetPolicy int

const (
	// MergeMax keeps the most informative result seen so far.
	MergeMax AlphabetPolicy = iota
	// Overwrite records the latest result even if it reveals less.
	Overwrite
)

func (p AlphabetPolicy) String() string {
	if p == Overwrite {
		return "overwrite"
	}
	return "max"
}

func (p AlphabetPolicy) merge(old, next Feedback) Feedback {
	if p == Overwrite || next > old {
		return next
	}
	return old
}

// ParseAlphabetPolicy accepts "max" (or empty) and "overwrite".
func ParseAlphabetPolicy(s string) (AlphabetPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max":
		return MergeMax, nil
	case "overwrite":
		return Overwrite, nil
	}
	return MergeMax, fmt.Errorf("game: unknown alphabet policy %q", s)
}

// Scoring selects the per-letter feedback rule.
type Scoring int

const (
	// Independent scores each position on its own: a guessed letter found
	// anywhere in the hidden word is Present, however often it repeats.
	Independent Scoring = iota
	// Counted is classic Wordle scoring: repeated letters are only marked
	// Present up to the number of unmatched occurrences in the hidden word.
	Counted
)

func (s Scoring) String() string {
	if s == Counted {
		return "counted"
	}
	return "independent"
}

// ParseScoring accepts "independent" (or empty) and "counted".
func ParseScoring(s string) (Scoring, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "independent":
		return Independent, nil
	case "counted":
		return Counted, nil
	}
	return Independent, fmt.Errorf("game: unknown scoring %q", s)
}
