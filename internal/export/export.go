package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/ivlev/bracketscan/internal/analyzer"
	"github.com/ivlev/bracketscan/internal/bracket"
	"github.com/ivlev/bracketscan/internal/layout"
)

// Row is one judged match of the primary result table
type Row struct {
	Round      int
	Player     string
	Opponent   string
	Game       string
	Winner     analyzer.Outcome
	WinnerName string
	LoserName  string
}

// Missing identifies a match whose score could not be read
type Missing struct {
	Round int
	Game  string
}

// Summary is what the operator sees at the end of a run
type Summary struct {
	Rounds  int
	Matches int
	Missing int
}

var csvHeader = []string{"round", "player", "opponent", "game", "winner", "winner_name", "loser_name"}

// Rows flattens a tournament into result rows, rounds ascending and games in
// the order they were judged. Undecided matches are returned separately.
func Rows(t *bracket.Tournament) ([]Row, []Missing) {
	var rows []Row
	var missing []Missing

	for _, round := range t.Rounds() {
		res, _ := t.Round(round)
		for _, m := range res.Matches() {
			if m.Winner == analyzer.Undecided {
				missing = append(missing, Missing{Round: round, Game: m.Game})
				continue
			}
			rows = append(rows, newRow(round, m))
		}
	}
	return rows, missing
}

func newRow(round int, m bracket.Match) Row {
	player, opponent := m.Player, m.Opponent
	if player == "" || opponent == "" {
		if p, o, err := layout.SplitGame(m.Game); err == nil {
			player, opponent = p, o
		}
	}

	row := Row{
		Round:    round,
		Player:   player,
		Opponent: opponent,
		Game:     m.Game,
		Winner:   m.Winner,
	}
	if m.Winner == analyzer.PlayerWins {
		row.WinnerName, row.LoserName = player, opponent
	} else {
		row.WinnerName, row.LoserName = opponent, player
	}
	return row
}

// Summarize counts what Rows produced
func Summarize(t *bracket.Tournament, rows []Row, missing []Missing) Summary {
	return Summary{Rounds: t.Len(), Matches: len(rows), Missing: len(missing)}
}

// FormatWinner renders a winner code the way the result table stores it: 0, 1 or 0.5
func FormatWinner(w analyzer.Outcome) string {
	return strconv.FormatFloat(float64(w), 'f', -1, 64)
}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Round),
			r.Player,
			r.Opponent,
			r.Game,
			FormatWinner(r.Winner),
			r.WinnerName,
			r.LoserName,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMissingCSV lists undecided matches as round,game
func WriteMissingCSV(w io.Writer, missing []Missing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"round", "game"}); err != nil {
		return err
	}
	for _, m := range missing {
		if err := cw.Write([]string{strconv.Itoa(m.Round), m.Game}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes rows to a file, replacing it
func SaveCSV(path string, rows []Row) error {
	return saveWith(path, func(w io.Writer) error { return WriteCSV(w, rows) })
}

func SaveMissingCSV(path string, missing []Missing) error {
	return saveWith(path, func(w io.Writer) error { return WriteMissingCSV(w, missing) })
}

func saveWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
