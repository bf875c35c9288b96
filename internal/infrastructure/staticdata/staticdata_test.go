package staticdata

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/schedule"
)

func TestLoadMatchups(t *testing.T) {
	t.Parallel()

	m, err := LoadMatchups()
	if err != nil {
		t.Fatalf("LoadMatchups: %v", err)
	}

	for _, teams := range []int{4, 5, 6, 7, 8, 10, 12} {
		table, ok, err := m.GetMatchupTable(context.Background(), teams)
		if err != nil || !ok {
			t.Fatalf("table for %d teams: ok=%v err=%v", teams, ok, err)
		}
		if table.TeamCount != schedule.TableSize(teams) {
			t.Fatalf("table for %d teams has count %d", teams, table.TeamCount)
		}
		if len(table.Weeks) != table.TeamCount-1 {
			t.Fatalf("table for %d teams has %d weeks", teams, len(table.Weeks))
		}
	}

	if _, ok, _ := m.GetMatchupTable(context.Background(), 30); ok {
		t.Fatalf("expected no table for 30 teams")
	}
}

func TestLoadMatchups_EveryPairingOnce(t *testing.T) {
	t.Parallel()

	m, err := LoadMatchups()
	if err != nil {
		t.Fatalf("LoadMatchups: %v", err)
	}
	table, _, _ := m.GetMatchupTable(context.Background(), 8)

	seen := map[[2]int]bool{}
	for _, row := range table.Weeks {
		for _, p := range row {
			key := [2]int{min(p.Home, p.Away), max(p.Home, p.Away)}
			if seen[key] {
				t.Fatalf("pairing %v repeated", key)
			}
			seen[key] = true
		}
	}
	if len(seen) != 8*7/2 {
		t.Fatalf("expected %d pairings, got %d", 8*7/2, len(seen))
	}
}

func TestParseMatchups_RejectsBadTable(t *testing.T) {
	t.Parallel()

	raw := []byte("version: x\ntables:\n  - teams: 4\n    weeks:\n      - [[1, 2], [2, 3]]\n")
	if _, err := ParseMatchups(raw); !errors.Is(err, schedule.ErrInvalidMatchupTable) {
		t.Fatalf("expected ErrInvalidMatchupTable, got %v", err)
	}
}

func TestLoadThresholds(t *testing.T) {
	t.Parallel()

	th, err := LoadThresholds()
	if err != nil {
		t.Fatalf("LoadThresholds: %v", err)
	}

	three, ok, _ := th.GetTable(context.Background(), handicap.Format3v3)
	if !ok {
		t.Fatalf("missing 3v3 table")
	}
	even := three.Lookup(0)
	if even.GamesToWin != 10 || even.GamesToTie == nil || *even.GamesToTie != 9 || even.GamesToLose != 10 {
		t.Fatalf("unexpected even 3v3 row: %+v", even)
	}

	five, ok, _ := th.GetTable(context.Background(), handicap.Format5v5)
	if !ok {
		t.Fatalf("missing 5v5 table")
	}
	if five.Lookup(2).GamesToTie != nil {
		t.Fatalf("5v5 rows must not carry ties")
	}
	if len(th.Rows(handicap.Format5v5)) != 13 || th.Version(handicap.Format5v5) == "" {
		t.Fatalf("unexpected 5v5 rows or version")
	}
}

func TestParseThresholds_RejectsTieInFiveVsFive(t *testing.T) {
	t.Parallel()

	raw := []byte("version: x\nformats:\n  - format: 5v5\n    rows:\n      - {diff: 0, win: 13, tie: 12, lose: 13}\n")
	if _, err := ParseThresholds(raw); !errors.Is(err, handicap.ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}
