// Package staticdata serves the authored matchup and handicap threshold
// tables that ship with the binary.
package staticdata

import (
	"context"
	"embed"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/schedule"
)

//go:embed data/*.yaml
var files embed.FS

type matchupFile struct {
	Version string `yaml:"version"`
	Tables  []struct {
		Teams int       `yaml:"teams"`
		Weeks [][][]int `yaml:"weeks"`
	} `yaml:"tables"`
}

type thresholdFile struct {
	Version string `yaml:"version"`
	Formats []struct {
		Format string `yaml:"format"`
		Rows   []struct {
			Diff int  `yaml:"diff"`
			Win  int  `yaml:"win"`
			Tie  *int `yaml:"tie"`
			Lose int  `yaml:"lose"`
		} `yaml:"rows"`
	} `yaml:"formats"`
}

// Matchups implements schedule.MatchupRepository over the embedded tables.
type Matchups struct {
	tables map[int]schedule.MatchupTable
}

// LoadMatchups parses and validates the embedded matchup tables.
func LoadMatchups() (*Matchups, error) {
	raw, err := files.ReadFile("data/matchups.yaml")
	if err != nil {
		return nil, crerr.Wrap(err, "read matchup tables")
	}
	return ParseMatchups(raw)
}

// ParseMatchups parses a matchup document in the embedded layout.
func ParseMatchups(raw []byte) (*Matchups, error) {
	var doc matchupFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode matchup tables")
	}

	out := &Matchups{tables: make(map[int]schedule.MatchupTable, len(doc.Tables))}
	for _, t := range doc.Tables {
		table := schedule.MatchupTable{TeamCount: t.Teams, Version: doc.Version}
		for weekIdx, week := range t.Weeks {
			row := make([]schedule.Pair, 0, len(week))
			for _, pair := range week {
				if len(pair) != 2 {
					return nil, crerr.Newf("matchup table %d week %d: pair needs two positions, got %v", t.Teams, weekIdx+1, pair)
				}
				row = append(row, schedule.Pair{Home: pair[0], Away: pair[1]})
			}
			table.Weeks = append(table.Weeks, row)
		}
		if err := table.Validate(); err != nil {
			return nil, crerr.Wrapf(err, "matchup table %d", t.Teams)
		}
		if _, dup := out.tables[t.Teams]; dup {
			return nil, crerr.Newf("matchup table %d defined twice", t.Teams)
		}
		out.tables[t.Teams] = table
	}
	return out, nil
}

// GetMatchupTable returns the table for teamCount, rounding odd counts up.
func (m *Matchups) GetMatchupTable(_ context.Context, teamCount int) (schedule.MatchupTable, bool, error) {
	table, ok := m.tables[schedule.TableSize(teamCount)]
	if !ok {
		return schedule.MatchupTable{}, false, nil
	}
	out := table
	out.Weeks = make([][]schedule.Pair, len(table.Weeks))
	for i, row := range table.Weeks {
		out.Weeks[i] = append([]schedule.Pair(nil), row...)
	}
	return out, true, nil
}

// Thresholds implements handicap.TableRepository over the embedded tables.
type Thresholds struct {
	tables map[handicap.Format]handicap.Table
}

// LoadThresholds parses and validates the embedded threshold tables.
func LoadThresholds() (*Thresholds, error) {
	raw, err := files.ReadFile("data/thresholds.yaml")
	if err != nil {
		return nil, crerr.Wrap(err, "read threshold tables")
	}
	return ParseThresholds(raw)
}

// ParseThresholds parses a threshold document in the embedded layout.
func ParseThresholds(raw []byte) (*Thresholds, error) {
	var doc thresholdFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode threshold tables")
	}

	out := &Thresholds{tables: make(map[handicap.Format]handicap.Table, len(doc.Formats))}
	for _, f := range doc.Formats {
		format, err := handicap.ParseFormat(f.Format)
		if err != nil {
			return nil, crerr.Wrap(err, "threshold tables")
		}
		rows := make([]handicap.Row, 0, len(f.Rows))
		for _, r := range f.Rows {
			rows = append(rows, handicap.Row{
				Differential: r.Diff,
				Thresholds: handicap.Thresholds{
					GamesToWin:  r.Win,
					GamesToTie:  r.Tie,
					GamesToLose: r.Lose,
				},
			})
		}
		table, err := handicap.NewTable(format, doc.Version, rows)
		if err != nil {
			return nil, crerr.Wrapf(err, "threshold table %s", format)
		}
		out.tables[format] = table
	}
	return out, nil
}

// Rows exposes a format's rows for seeding other stores.
func (t *Thresholds) Rows(format handicap.Format) []handicap.Row {
	table, ok := t.tables[format]
	if !ok {
		return nil
	}
	return table.Rows()
}

func (t *Thresholds) Version(format handicap.Format) string {
	return t.tables[format].Version
}

func (t *Thresholds) GetTable(_ context.Context, format handicap.Format) (handicap.Table, bool, error) {
	table, ok := t.tables[format]
	return table, ok, nil
}
