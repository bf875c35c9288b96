package handicap

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownFormat = errors.New("unknown team format")
	ErrInvalidTable  = errors.New("invalid threshold table")
)

// Thresholds are game counts for one side of a match. GamesToLose is the
// opponent's game count at which this side has lost.
type Thresholds struct {
	GamesToWin  int
	GamesToTie  *int
	GamesToLose int
}

// Row is one differential entry of a threshold table.
type Row struct {
	Differential int
	Thresholds
}

// Table maps a signed handicap differential to thresholds for one format.
type Table struct {
	Format  Format
	Version string
	rows    map[int]Thresholds
	min     int
	max     int
}

// NewTable validates rows and builds a lookup table. Every differential in
// the covered range must be present, 3v3 rows must carry a tie count, 5v5
// rows must not, and row(d).GamesToWin must equal row(-d).GamesToLose.
func NewTable(format Format, version string, rows []Row) (Table, error) {
	if !format.Valid() {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("%w: %s has no rows", ErrInvalidTable, format)
	}

	t := Table{Format: format, Version: version, rows: make(map[int]Thresholds, len(rows))}
	for i, r := range rows {
		if _, dup := t.rows[r.Differential]; dup {
			return Table{}, fmt.Errorf("%w: %s duplicate differential %d", ErrInvalidTable, format, r.Differential)
		}
		if err := validateRow(format, r); err != nil {
			return Table{}, err
		}
		t.rows[r.Differential] = r.Thresholds
		if i == 0 || r.Differential < t.min {
			t.min = r.Differential
		}
		if i == 0 || r.Differential > t.max {
			t.max = r.Differential
		}
	}

	for d := t.min; d <= t.max; d++ {
		row, ok := t.rows[d]
		if !ok {
			return Table{}, fmt.Errorf("%w: %s missing differential %d", ErrInvalidTable, format, d)
		}
		if mirror, ok := t.rows[-d]; ok && row.GamesToWin != mirror.GamesToLose {
			return Table{}, fmt.Errorf("%w: %s differential %d wins at %d but %d loses at %d",
				ErrInvalidTable, format, d, row.GamesToWin, -d, mirror.GamesToLose)
		}
	}

	return t, nil
}

func validateRow(format Format, r Row) error {
	total := format.TotalGames()
	switch {
	case format.AllowsTie() && r.GamesToTie == nil:
		return fmt.Errorf("%w: %s differential %d has no tie count", ErrInvalidTable, format, r.Differential)
	case !format.AllowsTie() && r.GamesToTie != nil:
		return fmt.Errorf("%w: %s differential %d has a tie count", ErrInvalidTable, format, r.Differential)
	case r.GamesToWin < 1 || r.GamesToWin > total:
		return fmt.Errorf("%w: %s differential %d games to win %d out of range", ErrInvalidTable, format, r.Differential, r.GamesToWin)
	case r.GamesToLose < 1 || r.GamesToLose > total:
		return fmt.Errorf("%w: %s differential %d games to lose %d out of range", ErrInvalidTable, format, r.Differential, r.GamesToLose)
	case r.GamesToTie != nil && *r.GamesToTie >= r.GamesToWin:
		return fmt.Errorf("%w: %s differential %d tie count must be below win count", ErrInvalidTable, format, r.Differential)
	}
	return nil
}

// Lookup returns the thresholds for a differential. Values outside the table
// are clamped to the nearest row.
func (t Table) Lookup(differential int) Thresholds {
	d := min(max(differential, t.min), t.max)
	row := t.rows[d]
	if row.GamesToTie != nil {
		tie := *row.GamesToTie
		row.GamesToTie = &tie
	}
	return row
}

// Range returns the lowest and highest differential the table covers.
func (t Table) Range() (int, int) {
	return t.min, t.max
}

// Rows returns all rows ordered by differential.
func (t Table) Rows() []Row {
	keys := make([]int, 0, len(t.rows))
	for d := range t.rows {
		keys = append(keys, d)
	}
	sort.Ints(keys)

	out := make([]Row, 0, len(keys))
	for _, d := range keys {
		out = append(out, Row{Differential: d, Thresholds: t.Lookup(d)})
	}
	return out
}

// TableRepository loads the versioned threshold table for a format.
type TableRepository interface {
	GetTable(ctx context.Context, format Format) (Table, bool, error)
}
