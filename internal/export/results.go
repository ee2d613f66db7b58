package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/bracketscan/internal/analyzer"
	"github.com/ivlev/bracketscan/internal/bracket"
)

// WriteResults dumps {round: {game: winner}} to path. The format follows the
// extension: .json, or .yaml/.yml. Rounds are ascending and games keep the
// order they were judged in.
func WriteResults(path string, t *bracket.Tournament) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = MarshalJSON(t)
	case ".yaml", ".yml":
		data, err = MarshalYAML(t)
	default:
		return fmt.Errorf("unsupported results format: %s", path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalJSON encodes the tournament with ordered keys, indented by 4 spaces
func MarshalJSON(t *bracket.Tournament) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, round := range t.Rounds() {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:{", strconv.Itoa(round))

		res, _ := t.Round(round)
		for j, m := range res.Matches() {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Game)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.WriteString(FormatWinner(m.Winner))
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// MarshalYAML encodes the tournament as an ordered YAML mapping
func MarshalYAML(t *bracket.Tournament) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, round := range t.Rounds() {
		games := &yaml.Node{Kind: yaml.MappingNode}
		res, _ := t.Round(round)
		for _, m := range res.Matches() {
			tag := "!!int"
			if m.Winner == analyzer.Undecided {
				tag = "!!float"
			}
			games.Content = append(games.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Game},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: FormatWinner(m.Winner)},
			)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(round)},
			games,
		)
	}
	return yaml.Marshal(root)
}
