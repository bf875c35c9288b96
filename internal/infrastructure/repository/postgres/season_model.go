package postgres

import (
	"time"

	"github.com/lib/pq"
)

type seasonTableModel struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Format        string         `db:"format"`
	StartDate     time.Time      `db:"start_date"`
	SeasonLength  int            `db:"season_length"`
	EndBreakWeeks int            `db:"end_break_weeks"`
	BlackoutDates pq.StringArray `db:"blackout_dates"`
	Holidays      string         `db:"holidays"`
	CreatedAt     time.Time      `db:"created_at"`
}

type seasonInsertModel struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Format        string         `db:"format"`
	StartDate     time.Time      `db:"start_date"`
	SeasonLength  int            `db:"season_length"`
	EndBreakWeeks int            `db:"end_break_weeks"`
	BlackoutDates pq.StringArray `db:"blackout_dates"`
	Holidays      string         `db:"holidays"`
}

type holidayDocument struct {
	Date string `json:"date"`
	Name string `json:"name"`
}
