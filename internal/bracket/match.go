package bracket

import (
	"fmt"

	"github.com/ivlev/bracketscan/internal/analyzer"
)

// DuplicateGameError is returned in strict mode when two pairs of one image
// resolve to the same game label.
type DuplicateGameError struct {
	Game string
	Pair int
}

func (e *DuplicateGameError) Error() string {
	return fmt.Sprintf("pair %d: game %q already judged in this round", e.Pair, e.Game)
}

// Aggregator judges the matches of one image
type Aggregator struct {
	Tolerance int
	// Strict turns a repeated game label into a DuplicateGameError.
	// By default the later pair silently replaces the earlier one.
	Strict bool
}

// NewAggregator creates an aggregator with the default tolerance
func NewAggregator() *Aggregator {
	return &Aggregator{Tolerance: analyzer.DefaultTolerance}
}

// Aggregate consumes regions as disjoint consecutive pairs (0,1), (2,3), ...
// A trailing unpaired region is ignored.
//
// The two regions of a pair are the halves of one bracket match, so the second
// takes over the first one's game label. Only the first region is classified.
func (a *Aggregator) Aggregate(regions []*analyzer.Region) (*Results, error) {
	res := NewResults()

	for i := 0; i+1 < len(regions); i += 2 {
		first, second := regions[i], regions[i+1]
		second.Game = first.Game

		m := Match{
			Game:     first.Game,
			Player:   first.Player,
			Opponent: first.Opponent,
			Winner:   first.Win(a.Tolerance),
		}
		if a.Strict {
			if _, exists := res.Get(m.Game); exists {
				return nil, &DuplicateGameError{Game: m.Game, Pair: i / 2}
			}
		}
		res.Set(m)
	}

	return res, nil
}
