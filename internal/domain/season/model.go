package season

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
)

// Holiday is a named date that may conflict with a league night.
type Holiday struct {
	Date time.Time
	Name string
}

// Season is one run of weekly league play.
type Season struct {
	ID            string
	Name          string
	Format        handicap.Format
	StartDate     time.Time
	SeasonLength  int
	EndBreakWeeks int
	Blackouts     []time.Time
	Holidays      []Holiday
	CreatedAt     time.Time
}

func (s Season) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("season id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("season name is required")
	}
	if !s.Format.Valid() {
		return fmt.Errorf("season format %q is not supported", s.Format)
	}
	if s.StartDate.IsZero() {
		return fmt.Errorf("season start date is required")
	}
	if s.SeasonLength < 1 {
		return fmt.Errorf("season length must be at least 1")
	}
	if s.EndBreakWeeks < 0 {
		return fmt.Errorf("season end break weeks must not be negative")
	}
	for _, h := range s.Holidays {
		if strings.TrimSpace(h.Name) == "" || h.Date.IsZero() {
			return fmt.Errorf("season holidays need a name and a date")
		}
	}
	return nil
}
