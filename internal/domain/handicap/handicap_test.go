package handicap

import (
	"errors"
	"testing"
)

func step(d int) int {
	if d < 0 {
		return -step(-d)
	}
	return (d + 1) / 2
}

func sampleRows(format Format) []Row {
	rows := make([]Row, 0, 13)
	for d := -6; d <= 6; d++ {
		switch format {
		case Format3v3:
			win := 10 + step(d)
			tie := win - 1
			rows = append(rows, Row{Differential: d, Thresholds: Thresholds{GamesToWin: win, GamesToTie: &tie, GamesToLose: 20 - win}})
		case Format5v5:
			win := 13 + step(d)
			rows = append(rows, Row{Differential: d, Thresholds: Thresholds{GamesToWin: win, GamesToLose: 26 - win}})
		}
	}
	return rows
}

func mustTable(t *testing.T, format Format) Table {
	t.Helper()
	table, err := NewTable(format, "test", sampleRows(format))
	if err != nil {
		t.Fatalf("NewTable(%s): %v", format, err)
	}
	return table
}

func TestTeamBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   Format
		homeWins int
		awayWins int
		want     int
	}{
		{name: "home ahead", format: Format3v3, homeWins: 8, awayWins: 3, want: 2},
		{name: "home behind rounds down", format: Format3v3, homeWins: 3, awayWins: 7, want: -2},
		{name: "odd deficit floors", format: Format3v3, homeWins: 3, awayWins: 6, want: -2},
		{name: "one behind", format: Format3v3, homeWins: 0, awayWins: 1, want: -1},
		{name: "no matches", format: Format3v3, homeWins: 0, awayWins: 0, want: 0},
		{name: "5v5 ignores wins", format: Format5v5, homeWins: 9, awayWins: 0, want: 0},
		{name: "5v5 ignores losses", format: Format5v5, homeWins: 0, awayWins: 9, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TeamBonus(tc.format, tc.homeWins, tc.awayWins); got != tc.want {
				t.Fatalf("TeamBonus(%s, %d, %d) = %d, want %d", tc.format, tc.homeWins, tc.awayWins, got, tc.want)
			}
		})
	}
}

func TestTeamBonus_MatchesMathematicalFloor(t *testing.T) {
	t.Parallel()

	for home := 0; home <= 12; home++ {
		for away := 0; away <= 12; away++ {
			diff := home - away
			want := diff / 2
			if diff < 0 && diff%2 != 0 {
				want--
			}
			if got := TeamBonus(Format3v3, home, away); got != want {
				t.Fatalf("TeamBonus(%d, %d) = %d, want %d", home, away, got, want)
			}
		}
	}
}

func TestTable_LookupIsAntisymmetric(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{Format3v3, Format5v5} {
		table := mustTable(t, format)
		for d := -8; d <= 8; d++ {
			own := table.Lookup(d)
			opp := table.Lookup(-d)
			if own.GamesToWin != opp.GamesToLose {
				t.Fatalf("%s d=%d: win %d != opponent lose %d", format, d, own.GamesToWin, opp.GamesToLose)
			}
		}
	}
}

func TestTable_TieDependsOnFormat(t *testing.T) {
	t.Parallel()

	three := mustTable(t, Format3v3)
	five := mustTable(t, Format5v5)
	for d := -6; d <= 6; d++ {
		if three.Lookup(d).GamesToTie == nil {
			t.Fatalf("3v3 d=%d: expected tie count", d)
		}
		if five.Lookup(d).GamesToTie != nil {
			t.Fatalf("5v5 d=%d: expected no tie count", d)
		}
	}
}

func TestTable_ClampsOutOfRange(t *testing.T) {
	t.Parallel()

	table := mustTable(t, Format3v3)
	lo, hi := table.Range()
	if lo != -6 || hi != 6 {
		t.Fatalf("unexpected range %d..%d", lo, hi)
	}
	if got, want := table.Lookup(40).GamesToWin, table.Lookup(6).GamesToWin; got != want {
		t.Fatalf("expected clamp to top row, got %d want %d", got, want)
	}
	if got, want := table.Lookup(-40).GamesToWin, table.Lookup(-6).GamesToWin; got != want {
		t.Fatalf("expected clamp to bottom row, got %d want %d", got, want)
	}
}

func TestTable_LookupReturnsCopy(t *testing.T) {
	t.Parallel()

	table := mustTable(t, Format3v3)
	first := table.Lookup(0)
	*first.GamesToTie = 99
	if *table.Lookup(0).GamesToTie == 99 {
		t.Fatalf("lookup leaked table storage")
	}
}

func TestNewTable_RejectsInvalidRows(t *testing.T) {
	t.Parallel()

	tie := 9
	tests := []struct {
		name   string
		format Format
		mutate func([]Row) []Row
	}{
		{
			name:   "5v5 row with tie",
			format: Format5v5,
			mutate: func(rows []Row) []Row { rows[0].GamesToTie = &tie; return rows },
		},
		{
			name:   "3v3 row without tie",
			format: Format3v3,
			mutate: func(rows []Row) []Row { rows[3].GamesToTie = nil; return rows },
		},
		{
			name:   "gap in differentials",
			format: Format3v3,
			mutate: func(rows []Row) []Row { return append(rows[:5], rows[6:]...) },
		},
		{
			name:   "broken antisymmetry",
			format: Format5v5,
			mutate: func(rows []Row) []Row { rows[0].GamesToLose++; return rows },
		},
		{
			name:   "duplicate differential",
			format: Format5v5,
			mutate: func(rows []Row) []Row { return append(rows, rows[0]) },
		},
		{
			name:   "no rows",
			format: Format3v3,
			mutate: func([]Row) []Row { return nil },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTable(tc.format, "test", tc.mutate(sampleRows(tc.format)))
			if !errors.Is(err, ErrInvalidTable) {
				t.Fatalf("expected ErrInvalidTable, got %v", err)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	if f, err := ParseFormat(" 5V5 "); err != nil || f != Format5v5 {
		t.Fatalf("ParseFormat = %q, %v", f, err)
	}
	if _, err := ParseFormat("9-ball"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestTotal(t *testing.T) {
	t.Parallel()

	if got := Total([]int{3, -1, 5}); got != 7 {
		t.Fatalf("Total = %d, want 7", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("Total(nil) = %d", got)
	}
}
