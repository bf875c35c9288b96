package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidMatchupTable = errors.New("invalid matchup table")
	ErrTooFewTeams         = errors.New("at least two teams are required")
)

// Pair holds two schedule positions; Home plays at home.
type Pair struct {
	Home int
	Away int
}

// MatchupTable is authored data for one even team count: row i lists the
// pairings of week i+1.
type MatchupTable struct {
	TeamCount int
	Version   string
	Weeks     [][]Pair
}

// Validate checks that every row seats each position exactly once.
func (t MatchupTable) Validate() error {
	if t.TeamCount < 2 || t.TeamCount%2 != 0 {
		return fmt.Errorf("%w: team count %d must be even and at least 2", ErrInvalidMatchupTable, t.TeamCount)
	}
	if len(t.Weeks) == 0 {
		return fmt.Errorf("%w: %d teams has no weeks", ErrInvalidMatchupTable, t.TeamCount)
	}
	for i, row := range t.Weeks {
		if len(row) != t.TeamCount/2 {
			return fmt.Errorf("%w: %d teams week %d has %d pairs", ErrInvalidMatchupTable, t.TeamCount, i+1, len(row))
		}
		seen := make(map[int]struct{}, t.TeamCount)
		for _, p := range row {
			for _, pos := range []int{p.Home, p.Away} {
				if pos < 1 || pos > t.TeamCount {
					return fmt.Errorf("%w: %d teams week %d position %d out of range", ErrInvalidMatchupTable, t.TeamCount, i+1, pos)
				}
				if _, dup := seen[pos]; dup {
					return fmt.Errorf("%w: %d teams week %d seats position %d twice", ErrInvalidMatchupTable, t.TeamCount, i+1, pos)
				}
				seen[pos] = struct{}{}
			}
		}
	}
	return nil
}

// PairsForWeek returns the pairings of a 1-based week, cycling through the
// table when the season is longer than the table.
func (t MatchupTable) PairsForWeek(week int) []Pair {
	if len(t.Weeks) == 0 || week < 1 {
		return nil
	}
	return t.Weeks[(week-1)%len(t.Weeks)]
}

// TableSize is the matchup table used for a team count. Odd counts use the
// next even table with the extra position as a bye.
func TableSize(teamCount int) int {
	if teamCount%2 == 1 {
		return teamCount + 1
	}
	return teamCount
}

// MatchupRepository loads authored matchup tables.
type MatchupRepository interface {
	GetMatchupTable(ctx context.Context, teamCount int) (MatchupTable, bool, error)
}

// Fixture is one planned pairing on a regular week.
type Fixture struct {
	WeekNumber   int
	Date         time.Time
	HomePosition int
	AwayPosition int
}

// Plan assigns table pairings to the regular entries. Pairs that involve a
// position above teamCount are byes and produce no fixture.
func Plan(entries []WeekEntry, table MatchupTable, teamCount int) ([]Fixture, error) {
	if teamCount < 2 {
		return nil, ErrTooFewTeams
	}
	if table.TeamCount != TableSize(teamCount) {
		return nil, fmt.Errorf("%w: table is for %d teams, season has %d", ErrInvalidMatchupTable, table.TeamCount, teamCount)
	}

	var out []Fixture
	for _, e := range entries {
		if e.Type != TypeRegular {
			continue
		}
		for _, p := range table.PairsForWeek(e.WeekNumber) {
			if p.Home > teamCount || p.Away > teamCount {
				continue
			}
			out = append(out, Fixture{
				WeekNumber:   e.WeekNumber,
				Date:         e.Date,
				HomePosition: p.Home,
				AwayPosition: p.Away,
			})
		}
	}
	return out, nil
}
