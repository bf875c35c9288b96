package lineup

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
)

var (
	ErrSlotCount       = errors.New("lineup slot count does not match format")
	ErrDuplicatePlayer = errors.New("duplicate player in lineup")
	ErrCaptainMissing  = errors.New("team captain missing from lineup")
	ErrInvalidPosition = errors.New("invalid lineup position")
)

// Slot is one ordered lineup position. An empty PlayerID is an open slot.
type Slot struct {
	Position int
	PlayerID string
	Handicap int
}

// Lineup is the roster one team fields for one match. Handicaps are
// snapshotted from members when the lineup is submitted.
type Lineup struct {
	ID        string
	MatchID   string
	TeamID    string
	Slots     []Slot
	Locked    bool
	LockedAt  *time.Time
	UpdatedAt time.Time
}

// Validate checks the slot layout for a format. Open slots are allowed.
func (l Lineup) Validate(format handicap.Format, captainID string) error {
	if l.MatchID == "" || l.TeamID == "" {
		return fmt.Errorf("lineup match id and team id are required")
	}
	size := format.Size()
	if len(l.Slots) != size {
		return fmt.Errorf("%w: expected %d, got %d", ErrSlotCount, size, len(l.Slots))
	}

	positions := make(map[int]struct{}, size)
	players := make(map[string]struct{}, size)
	for _, s := range l.Slots {
		if s.Position < 1 || s.Position > size {
			return fmt.Errorf("%w: %d", ErrInvalidPosition, s.Position)
		}
		if _, dup := positions[s.Position]; dup {
			return fmt.Errorf("%w: %d used twice", ErrInvalidPosition, s.Position)
		}
		positions[s.Position] = struct{}{}

		if s.PlayerID == "" {
			continue
		}
		if _, dup := players[s.PlayerID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, s.PlayerID)
		}
		players[s.PlayerID] = struct{}{}
	}

	if _, ok := players[captainID]; !ok || captainID == "" {
		return fmt.Errorf("%w: %s", ErrCaptainMissing, captainID)
	}
	return nil
}

// IsComplete reports whether every slot has a player.
func (l Lineup) IsComplete(format handicap.Format) bool {
	if len(l.Slots) != format.Size() {
		return false
	}
	for _, s := range l.Slots {
		if s.PlayerID == "" {
			return false
		}
	}
	return true
}

// PlayerIDs returns the filled slots' player ids in slot order.
func (l Lineup) PlayerIDs() []string {
	out := make([]string, 0, len(l.Slots))
	for _, s := range l.Slots {
		if s.PlayerID != "" {
			out = append(out, s.PlayerID)
		}
	}
	return out
}

// TotalHandicap sums the handicaps of filled slots.
func (l Lineup) TotalHandicap() int {
	values := make([]int, 0, len(l.Slots))
	for _, s := range l.Slots {
		if s.PlayerID != "" {
			values = append(values, s.Handicap)
		}
	}
	return handicap.Total(values)
}

func (l Lineup) Clone() Lineup {
	out := l
	out.Slots = append([]Slot(nil), l.Slots...)
	if l.LockedAt != nil {
		at := *l.LockedAt
		out.LockedAt = &at
	}
	return out
}
