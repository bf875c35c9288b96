package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidParams = errors.New("invalid schedule parameters")

type EntryType string

const (
	TypeRegular  EntryType = "regular"
	TypeWeekOff  EntryType = "week-off"
	TypePlayoffs EntryType = "playoffs"
)

const (
	labelBreak    = "Season End Break"
	labelPlayoffs = "Playoffs"
)

// Holiday is a named date reported as a conflict for entries in its week.
type Holiday struct {
	Date time.Time
	Name string
}

type Params struct {
	StartDate     time.Time
	SeasonLength  int
	Blackouts     []time.Time
	EndBreakWeeks int
	Holidays      []Holiday
}

// WeekEntry is one row of a season schedule.
type WeekEntry struct {
	WeekNumber int
	Date       time.Time
	Label      string
	Type       EntryType
	Conflicts  []string
}

// Generate walks forward a week at a time from the start date. Dates that
// fall on a blackout are skipped without counting. Once SeasonLength regular
// weeks are emitted it appends the end break weeks and one playoffs entry.
// Week numbers keep counting through the break and playoffs.
func Generate(p Params) ([]WeekEntry, error) {
	if p.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidParams)
	}
	if p.SeasonLength < 1 {
		return nil, fmt.Errorf("%w: season length %d, want at least 1", ErrInvalidParams, p.SeasonLength)
	}
	if p.EndBreakWeeks < 0 {
		return nil, fmt.Errorf("%w: end break weeks %d, want 0 or more", ErrInvalidParams, p.EndBreakWeeks)
	}

	blackouts := make(map[string]struct{}, len(p.Blackouts))
	for _, d := range p.Blackouts {
		blackouts[DayKey(d)] = struct{}{}
	}

	entries := make([]WeekEntry, 0, p.SeasonLength+p.EndBreakWeeks+1)
	date := Day(p.StartDate)
	week := 1
	emit := func(label string, typ EntryType) {
		entries = append(entries, WeekEntry{
			WeekNumber: week,
			Date:       date,
			Label:      label,
			Type:       typ,
			Conflicts:  conflictsFor(date, p.Holidays),
		})
		week++
		date = date.AddDate(0, 0, 7)
	}

	for week <= p.SeasonLength {
		if _, skip := blackouts[DayKey(date)]; skip {
			date = date.AddDate(0, 0, 7)
			continue
		}
		emit(fmt.Sprintf("Week %d", week), TypeRegular)
	}
	for range p.EndBreakWeeks {
		emit(labelBreak, TypeWeekOff)
	}
	emit(labelPlayoffs, TypePlayoffs)

	return entries, nil
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey formats t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// conflictsFor lists holidays in the same Sunday to Saturday week as date.
func conflictsFor(date time.Time, holidays []Holiday) []string {
	if len(holidays) == 0 {
		return nil
	}
	start := date.AddDate(0, 0, -int(date.Weekday()))
	end := start.AddDate(0, 0, 7)

	var out []string
	for _, h := range holidays {
		d := Day(h.Date)
		if !d.Before(start) && d.Before(end) {
			out = append(out, h.Name)
		}
	}
	return out
}
