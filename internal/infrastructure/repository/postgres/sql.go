package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// parseDate accepts a bare date or the timestamp text postgres renders for
// date array elements.
func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if len(value) >= len(time.DateOnly) {
		value = value[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
