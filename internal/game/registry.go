package game

import "github.com/robalobadob/wordle-env/internal/words"

// EnvSpec is descriptive metadata for harnesses that discover
// environments by name. It has no effect on game behavior.
type EnvSpec struct {
	ID              string  `json:"id"`
	RewardThreshold float64 `json:"rewardThreshold"`
	MaxEpisodeSteps int     `json:"maxEpisodeSteps"`
	WordLength      int     `json:"wordLength"`
	AlphabetSize    int     `json:"alphabetSize"`
	// ActionSpace lists the number of choices per action position.
	ActionSpace []int `json:"actionSpace"`
	// FeedbackCodes maps observation values to their meaning.
	FeedbackCodes map[int]string `json:"feedbackCodes"`
}

// Registration describes this environment.
var Registration = EnvSpec{
	ID:              "Wordle-v0",
	RewardThreshold: RewardWin,
	MaxEpisodeSteps: MaxGuesses,
	WordLength:      words.Length,
	AlphabetSize:    words.AlphabetSize,
	ActionSpace:     []int{words.AlphabetSize, words.AlphabetSize, words.AlphabetSize, words.AlphabetSize, words.AlphabetSize},
	FeedbackCodes: map[int]string{
		int(Unknown): Unknown.String(),
		int(Absent):  Absent.String(),
		int(Present): Present.String(),
		int(Correct): Correct.String(),
	},
}
