package memory

import (
	"context"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/standing"
)

// RecordRepository derives team records from the completed matches held by
// a MatchRepository.
type RecordRepository struct {
	matches *MatchRepository
}

func NewRecordRepository(matches *MatchRepository) *RecordRepository {
	return &RecordRepository{matches: matches}
}

func (r *RecordRepository) GetTeamRecord(ctx context.Context, seasonID, teamID string) (standing.TeamRecord, error) {
	if err := ctx.Err(); err != nil {
		return standing.TeamRecord{}, err
	}

	r.matches.mu.RLock()
	defer r.matches.mu.RUnlock()

	record := standing.TeamRecord{SeasonID: seasonID, TeamID: teamID}
	for _, m := range r.matches.items {
		if m.SeasonID != seasonID || m.Status != match.StatusCompleted {
			continue
		}
		if _, plays := m.SideOf(teamID); !plays {
			continue
		}
		switch m.WinnerTeamID {
		case "":
			record.MatchTies++
		case teamID:
			record.MatchWins++
		default:
			record.MatchLosses++
		}
	}
	return record, nil
}
