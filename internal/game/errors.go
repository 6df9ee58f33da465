package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction marks a malformed action: wrong length or a letter
	// code outside [0,25]. The session is left untouched.
	ErrInvalidAction = errors.New("game: invalid action")
	// ErrInvalidWord marks a well-formed guess that is not in the
	// dictionary. The turn is not consumed; the caller may retry.
	ErrInvalidWord = errors.New("game: invalid word")
	// ErrInvalidState marks a Step on a session that is not in progress.
	ErrInvalidState = errors.New("game: invalid state")
)

// InvalidWordError reports the rejected guess. It matches ErrInvalidWord.
type InvalidWordError struct {
	Word string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("%s is not a valid word", e.Word)
}

func (e *InvalidWordError) Is(target error) bool { return target == ErrInvalidWord }
