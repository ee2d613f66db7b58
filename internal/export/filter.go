package export

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterPlayer keeps the rows involving the player that best matches query.
// Matching is fuzzy and case-insensitive; an exact name always wins.
// It returns the resolved name, or "" when nobody matches.
func FilterPlayer(rows []Row, query string) ([]Row, string) {
	name := resolvePlayer(rows, query)
	if name == "" {
		return nil, ""
	}

	var out []Row
	for _, r := range rows {
		if r.Player == name || r.Opponent == name {
			out = append(out, r)
		}
	}
	return out, name
}

func resolvePlayer(rows []Row, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	seen := make(map[string]bool)
	var names []string
	for _, r := range rows {
		for _, n := range []string{r.Player, r.Opponent} {
			if n != "" && !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}

	for _, n := range names {
		if strings.EqualFold(n, query) {
			return n
		}
	}

	ranks := fuzzy.RankFindFold(query, names)
	if len(ranks) == 0 {
		return ""
	}
	sort.Stable(ranks)
	return ranks[0].Target
}
