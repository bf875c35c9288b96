package handicap

import (
	"fmt"
	"strings"
)

// Format is the team size of a season.
type Format string

const (
	Format3v3 Format = "3v3"
	Format5v5 Format = "5v5"
)

func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
	return f, nil
}

func (f Format) Valid() bool {
	return f == Format3v3 || f == Format5v5
}

// Size is the number of lineup slots per side.
func (f Format) Size() int {
	switch f {
	case Format3v3:
		return 3
	case Format5v5:
		return 5
	default:
		return 0
	}
}

// TotalGames is the number of individual games played in one match.
func (f Format) TotalGames() int {
	switch f {
	case Format3v3:
		return 18
	case Format5v5:
		return 25
	default:
		return 0
	}
}

// AllowsTie reports whether matches in this format can end level.
func (f Format) AllowsTie() bool {
	return f == Format3v3
}

// HasTeamBonus reports whether the home team bonus applies.
func (f Format) HasTeamBonus() bool {
	return f == Format3v3
}
