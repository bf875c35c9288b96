package team

import (
	"fmt"
	"slices"
	"strings"
)

// Team is one squad entered in a season. SchedulePosition is the team's
// slot in the season's matchup table.
type Team struct {
	ID               string
	SeasonID         string
	Name             string
	CaptainID        string
	SchedulePosition int
	PlayerIDs        []string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.SeasonID) == "" {
		return fmt.Errorf("team season id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.CaptainID) == "" {
		return fmt.Errorf("team captain is required")
	}
	if t.SchedulePosition < 1 {
		return fmt.Errorf("team schedule position must be at least 1")
	}
	if !t.HasPlayer(t.CaptainID) {
		return fmt.Errorf("team captain must be on the roster")
	}

	seen := make(map[string]struct{}, len(t.PlayerIDs))
	for _, id := range t.PlayerIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("team roster has an empty player id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("team roster lists player %s twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (t Team) HasPlayer(memberID string) bool {
	return slices.Contains(t.PlayerIDs, memberID)
}
