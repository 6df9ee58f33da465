// Command play runs the environment in a terminal: type a guess per line,
// the board and alphabet are redrawn after every accepted guess.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-env/internal/config"
	"github.com/robalobadob/wordle-env/internal/game"
	"github.com/robalobadob/wordle-env/internal/render"
	"github.com/robalobadob/wordle-env/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var seed string
	var daily bool
	flag.StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "word list file (default: embedded list)")
	flag.StringVar(&seed, "seed", "", "seed for a reproducible hidden word")
	flag.BoolVar(&daily, "daily", false, "play the word of the day")
	flag.StringVar(&cfg.AlphabetPolicy, "alphabet", cfg.AlphabetPolicy, "alphabet policy: max or overwrite")
	flag.StringVar(&cfg.Scoring, "scoring", cfg.Scoring, "scoring: independent or counted")
	flag.Parse()

	dict, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	gc, err := cfg.GameConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid game settings")
	}
	opts := game.ResetOptions{Seed: seed}
	if daily && seed == "" {
		opts.Seed = dailySeed()
	}

	sess := game.NewSession(dict, gc)
	if err := play(sess, opts, os.Stdin, os.Stdout, render.New(os.Stdout)); err != nil {
		log.Fatal().Err(err).Msg("play")
	}
}

// play runs episodes until input ends or the player declines another round.
func play(sess *game.Session, opts game.ResetOptions, in io.Reader, out io.Writer, r *render.Renderer) error {
	sc := bufio.NewScanner(in)
	for {
		if _, err := sess.Reset(opts); err != nil {
			return err
		}
		// Only the first episode honors a seed; later ones are random.
		opts = game.ResetOptions{}

		finished, err := episode(sess, sc, out, r)
		if err != nil || !finished {
			return err
		}
		fmt.Fprint(out, "play again? [y/N] ")
		if !sc.Scan() || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(sc.Text())), "y") {
			return sc.Err()
		}
	}
}

// episode reads guesses until the episode ends. It reports false when the
// input ran out first.
func episode(sess *game.Session, sc *bufio.Scanner, out io.Writer, r *render.Renderer) (bool, error) {
	for {
		fmt.Fprintf(out, "guess (%d left): ", sess.GuessesRemaining())
		if !sc.Scan() {
			return false, sc.Err()
		}
		w, err := words.Encode(sc.Text())
		if err != nil {
			fmt.Fprintf(out, "need %d letters a-z\n", words.Length)
			continue
		}
		_, reward, done, err := sess.Guess(w)
		if errors.Is(err, game.ErrInvalidWord) {
			fmt.Fprintln(out, err)
			continue
		}
		if err != nil {
			return false, err
		}
		if err := r.Session(sess); err != nil {
			return false, err
		}
		if done {
			answer, _ := sess.Answer()
			if reward == game.RewardWin {
				fmt.Fprintf(out, "solved in %d! the word was %s\n", len(sess.Guesses()), answer)
			} else {
				fmt.Fprintf(out, "out of guesses, the word was %s\n", answer)
			}
			return true, nil
		}
	}
}
