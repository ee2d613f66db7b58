package bracket

import (
	"sort"

	"github.com/ivlev/bracketscan/internal/analyzer"
)

// Match is the judged outcome of one game. Player and Opponent come from the
// first region of the pair, which carries the canonical label.
type Match struct {
	Game     string
	Player   string
	Opponent string
	Winner   analyzer.Outcome
}

// Results maps game -> match in the order games were first seen.
// Setting an existing game replaces its value but keeps its position.
type Results struct {
	order   []string
	matches map[string]Match
}

func NewResults() *Results {
	return &Results{matches: make(map[string]Match)}
}

// Set stores m under m.Game and reports whether an entry was replaced
func (r *Results) Set(m Match) bool {
	_, exists := r.matches[m.Game]
	if !exists {
		r.order = append(r.order, m.Game)
	}
	r.matches[m.Game] = m
	return exists
}

func (r *Results) Get(game string) (Match, bool) {
	m, ok := r.matches[game]
	return m, ok
}

func (r *Results) Len() int {
	return len(r.order)
}

func (r *Results) Games() []string {
	games := make([]string, len(r.order))
	copy(games, r.order)
	return games
}

// Matches returns the matches in insertion order
func (r *Results) Matches() []Match {
	out := make([]Match, 0, len(r.order))
	for _, g := range r.order {
		out = append(out, r.matches[g])
	}
	return out
}

// Winners flattens the results into game -> winner code
func (r *Results) Winners() map[string]analyzer.Outcome {
	out := make(map[string]analyzer.Outcome, len(r.matches))
	for g, m := range r.matches {
		out[g] = m.Winner
	}
	return out
}

// Tournament holds the results of every round, keyed by round number.
type Tournament struct {
	rounds map[int]*Results
}

func NewTournament() *Tournament {
	return &Tournament{rounds: make(map[int]*Results)}
}

// Set stores the results of one round and reports whether a round was replaced
func (t *Tournament) Set(round int, res *Results) bool {
	_, exists := t.rounds[round]
	t.rounds[round] = res
	return exists
}

func (t *Tournament) Round(round int) (*Results, bool) {
	res, ok := t.rounds[round]
	return res, ok
}

func (t *Tournament) Len() int {
	return len(t.rounds)
}

// Rounds returns the round numbers in ascending order
func (t *Tournament) Rounds() []int {
	rounds := make([]int, 0, len(t.rounds))
	for n := range t.rounds {
		rounds = append(rounds, n)
	}
	sort.Ints(rounds)
	return rounds
}
