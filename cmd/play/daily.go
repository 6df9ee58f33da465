package main

import (
	"time"

	"github.com/robalobadob/wordle-env/internal/daily"
)

// dailySeed is the reset seed for today's word, the same one the server
// uses for {"daily": true}.
func dailySeed() string {
	return daily.DateKey(time.Now())
}
