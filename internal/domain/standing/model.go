package standing

import (
	"context"
	"sort"
	"strings"
)

// TeamRecord is a team's match results within one season, derived from
// completed matches.
type TeamRecord struct {
	SeasonID    string
	TeamID      string
	MatchWins   int
	MatchLosses int
	MatchTies   int
}

func (r TeamRecord) Played() int {
	return r.MatchWins + r.MatchLosses + r.MatchTies
}

// RecordRepository reads team records. Implementations derive them from
// completed matches and never store them.
type RecordRepository interface {
	GetTeamRecord(ctx context.Context, seasonID, teamID string) (TeamRecord, error)
}

// Standing is one ranked row of a season table.
type Standing struct {
	Rank     int
	TeamName string
	TeamRecord
}

// Rank orders rows by wins, then ties, then team name, and assigns ranks.
// Rows with equal wins and ties share a rank.
func Rank(rows []Standing) []Standing {
	out := append([]Standing(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MatchWins != b.MatchWins {
			return a.MatchWins > b.MatchWins
		}
		if a.MatchTies != b.MatchTies {
			return a.MatchTies > b.MatchTies
		}
		return strings.ToLower(a.TeamName) < strings.ToLower(b.TeamName)
	})

	for i := range out {
		if i > 0 && out[i].MatchWins == out[i-1].MatchWins && out[i].MatchTies == out[i-1].MatchTies {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
