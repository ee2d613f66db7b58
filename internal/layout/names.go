package layout

import (
	"fmt"
	"strings"

	"github.com/go-andiamo/splitter"
)

// gameSplitter splits "<player>-<opponent>" while keeping quoted names
// such as "Jean-Luc" in one piece.
// A bad enclosure set panics at package init.
var gameSplitter = splitter.MustCreateSplitter('-', splitter.DoubleQuotes)

// SplitGame returns the player and opponent encoded in a game label.
func SplitGame(game string) (player, opponent string, err error) {
	parts, err := gameSplitter.Split(game)
	if err != nil {
		return "", "", fmt.Errorf("split game %q: %w", game, err)
	}
	if len(parts) != 2 {
		return "", "", fmt.Errorf("game %q is not in <player>-<opponent> form", game)
	}
	return unquote(parts[0]), unquote(parts[1]), nil
}

// JoinGame builds the conventional game label, quoting names that contain the separator.
func JoinGame(player, opponent string) string {
	return quote(player) + "-" + quote(opponent)
}

// normalizeNames fills whichever of player, opponent and game the record omits.
func (s *RectSpec) normalizeNames() error {
	switch {
	case s.Game == "" && s.Player != "" && s.Opponent != "":
		s.Game = JoinGame(s.Player, s.Opponent)
	case s.Game != "" && (s.Player == "" || s.Opponent == ""):
		player, opponent, err := SplitGame(s.Game)
		if err != nil {
			return err
		}
		if s.Player == "" {
			s.Player = player
		}
		if s.Opponent == "" {
			s.Opponent = opponent
		}
	}
	return nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func quote(s string) string {
	if strings.Contains(s, "-") {
		return `"` + s + `"`
	}
	return s
}
