package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/bracketscan/internal/analyzer"
	"github.com/ivlev/bracketscan/internal/bracket"
)

func tournament() *bracket.Tournament {
	t := bracket.NewTournament()

	r10 := bracket.NewResults()
	r10.Set(bracket.Match{Game: "C-D", Player: "C", Opponent: "D", Winner: analyzer.OpponentWins})
	t.Set(10, r10)

	r3 := bracket.NewResults()
	r3.Set(bracket.Match{Game: "A-B", Player: "A", Opponent: "B", Winner: analyzer.PlayerWins})
	r3.Set(bracket.Match{Game: "C-D", Player: "C", Opponent: "D", Winner: analyzer.Undecided})
	t.Set(3, r3)

	return t
}

func TestRows(t *testing.T) {
	rows, missing := Rows(tournament())

	assert.Equal(t, []Row{
		{Round: 3, Player: "A", Opponent: "B", Game: "A-B", Winner: 1, WinnerName: "A", LoserName: "B"},
		{Round: 10, Player: "C", Opponent: "D", Game: "C-D", Winner: 0, WinnerName: "D", LoserName: "C"},
	}, rows)
	assert.Equal(t, []Missing{{Round: 3, Game: "C-D"}}, missing)

	s := Summarize(tournament(), rows, missing)
	assert.Equal(t, Summary{Rounds: 2, Matches: 2, Missing: 1}, s)
}

// TestRowsNamesFromGame falls back to the game label when names are absent
func TestRowsNamesFromGame(t *testing.T) {
	tr := bracket.NewTournament()
	res := bracket.NewResults()
	res.Set(bracket.Match{Game: "X-Y", Winner: analyzer.OpponentWins})
	tr.Set(1, res)

	rows, _ := Rows(tr)
	require.Len(t, rows, 1)
	assert.Equal(t, "X", rows[0].Player)
	assert.Equal(t, "Y", rows[0].WinnerName)
	assert.Equal(t, "X", rows[0].LoserName)
}

// TestWriteCSV renders the end-to-end example row
func TestWriteCSV(t *testing.T) {
	rows := []Row{{Round: 3, Player: "A", Opponent: "B", Game: "A-B", Winner: 1, WinnerName: "A", LoserName: "B"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	assert.Equal(t,
		"round,player,opponent,game,winner,winner_name,loser_name\n"+
			"3,A,B,A-B,1,A,B\n",
		buf.String())
}

func TestWriteMissingCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMissingCSV(&buf, []Missing{{Round: 3, Game: "C-D"}}))
	assert.Equal(t, "round,game\n3,C-D\n", buf.String())
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	rows, missing := Rows(tournament())

	path := filepath.Join(dir, "results.csv")
	require.NoError(t, SaveCSV(path, rows))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))

	mpath := filepath.Join(dir, "missing.csv")
	require.NoError(t, SaveMissingCSV(mpath, missing))
	data, err = os.ReadFile(mpath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3,C-D")

	assert.Error(t, SaveCSV(filepath.Join(dir, "no", "such", "dir.csv"), rows))
}

func TestFormatWinner(t *testing.T) {
	assert.Equal(t, "0", FormatWinner(analyzer.OpponentWins))
	assert.Equal(t, "1", FormatWinner(analyzer.PlayerWins))
	assert.Equal(t, "0.5", FormatWinner(analyzer.Undecided))
}

// TestMarshalJSON keeps rounds numeric-ascending and games in judged order
func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(tournament())
	require.NoError(t, err)

	want := `{
    "3": {
        "A-B": 1,
        "C-D": 0.5
    },
    "10": {
        "C-D": 0
    }
}
`
	assert.Equal(t, want, string(data))
}

func TestMarshalYAML(t *testing.T) {
	data, err := MarshalYAML(tournament())
	require.NoError(t, err)

	var decoded map[int]map[string]float64
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, map[int]map[string]float64{
		3:  {"A-B": 1, "C-D": 0.5},
		10: {"C-D": 0},
	}, decoded)
	assert.Less(t, strings.Index(string(data), "3:"), strings.Index(string(data), "10:"))
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"results.json", "results.yaml", "results.yml"} {
		require.NoError(t, WriteResults(filepath.Join(dir, name), tournament()), name)
	}
	assert.Error(t, WriteResults(filepath.Join(dir, "results.txt"), tournament()))
}

func TestFilterPlayer(t *testing.T) {
	rows := []Row{
		{Round: 1, Player: "Alice", Opponent: "Bob", Game: "Alice-Bob"},
		{Round: 1, Player: "Carol", Opponent: "Dave", Game: "Carol-Dave"},
		{Round: 2, Player: "Bob", Opponent: "Carol", Game: "Bob-Carol"},
		{Round: 2, Player: "Bobby", Opponent: "Alice", Game: "Bobby-Alice"},
	}

	tests := []struct {
		query string
		name  string
		games []string
	}{
		{"bob", "Bob", []string{"Alice-Bob", "Bob-Carol"}},
		{"crl", "Carol", []string{"Carol-Dave", "Bob-Carol"}},
		{"ALICE", "Alice", []string{"Alice-Bob", "Bobby-Alice"}},
		{"zed", "", nil},
		{"  ", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			out, name := FilterPlayer(rows, tt.query)
			assert.Equal(t, tt.name, name)

			var games []string
			for _, r := range out {
				games = append(games, r.Game)
			}
			assert.Equal(t, tt.games, games)
		})
	}
}
