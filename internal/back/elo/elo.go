// Package elo computes team-vs-team Elo rating updates.
//
// Everything here is pure, the same inputs always produce the same outputs.
package elo

import (
	"math"
)

const (
	// K is the maximum rating swing for a single match.
	K = 32

	// Deviation is the rating difference at which the stronger side is
	// expected to win ten times as often as the weaker one.
	Deviation = 400

	// DefaultRating is given to every new Record, in both modes.
	DefaultRating = 1000
)

// A Record is the rating state of a single player in a single community.
type Record struct {
	Rating2v2 int
	Rating3v3 int
	Wins      int
	Losses    int
}

// NewRecord returns a Record holding the default values.
func NewRecord() Record {
	return Record{
		Rating2v2: DefaultRating,
		Rating3v3: DefaultRating,
	}
}

// Rating returns the rating tracked for the given mode.
func (r Record) Rating(mode Mode) int {
	switch mode {
	case Mode2v2:
		return r.Rating2v2
	case Mode3v3:
		return r.Rating3v3
	default:
		panic(errInvalidMode(mode))
	}
}

func (r *Record) addRating(mode Mode, delta int) {
	switch mode {
	case Mode2v2:
		r.Rating2v2 += delta
	case Mode3v3:
		r.Rating3v3 += delta
	default:
		panic(errInvalidMode(mode))
	}
}

// Result is the outcome of a match for a single player.
type Result struct {
	Record Record // updated rating and win/loss record
	Delta  int    // signed rating change applied to Record
}

// ComputeMatch applies a match where winners beat losers.
// Both teams must be non-empty and of equal size, this is not checked.
// The returned slice holds winners then losers, in the order given.
// Inputs are left untouched.
func ComputeMatch(winners, losers []Record, mode Mode) []Result {
	delta := Delta(TeamRating(winners, mode), TeamRating(losers, mode))

	ret := make([]Result, 0, len(winners)+len(losers))
	for _, v := range winners {
		v.addRating(mode, delta)
		v.Wins++
		ret = append(ret, Result{Record: v, Delta: delta})
	}

	for _, v := range losers {
		v.addRating(mode, -delta)
		v.Losses++
		ret = append(ret, Result{Record: v, Delta: -delta})
	}

	return ret
}

// TeamRating is the mean rating of a team for the given mode, rounded half to
// even. An empty team is rated zero.
func TeamRating(team []Record, mode Mode) int {
	if len(team) == 0 {
		return 0
	}

	var sum int
	for _, v := range team {
		sum += v.Rating(mode)
	}

	return int(math.RoundToEven(float64(sum) / float64(len(team))))
}

// Expectation is the probability for a side rated winner to beat a side rated
// loser.
func Expectation(winner, loser int) float64 {
	return 1 / (1 + math.Pow(10, float64(loser-winner)/Deviation))
}

// Delta is the rating gained by the winning side (and lost by the losing one).
func Delta(winner, loser int) int {
	return int(math.RoundToEven(K * (1 - Expectation(winner, loser))))
}
