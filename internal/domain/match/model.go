package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

var (
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrAlreadyComplete = errors.New("match already completed")
)

// Match is one home/away pairing on a league night.
type Match struct {
	ID            string
	SeasonID      string
	WeekNumber    int
	ScheduledDate time.Time
	HomeTeamID    string
	AwayTeamID    string
	HomeLineupID  string
	AwayLineupID  string
	HomeGamesWon  int
	AwayGamesWon  int
	Status        Status
	WinnerTeamID  string
	CompletedAt   *time.Time
}

// SideOf reports which side teamID plays in this match.
func (m Match) SideOf(teamID string) (Side, bool) {
	switch teamID {
	case "":
		return "", false
	case m.HomeTeamID:
		return SideHome, true
	case m.AwayTeamID:
		return SideAway, true
	default:
		return "", false
	}
}

// OpponentOf returns the other team id for a participating team.
func (m Match) OpponentOf(teamID string) (string, bool) {
	side, ok := m.SideOf(teamID)
	if !ok {
		return "", false
	}
	if side == SideHome {
		return m.AwayTeamID, true
	}
	return m.HomeTeamID, true
}

// Replaceable reports whether regenerating the schedule may drop this match:
// it is still scheduled and neither team has submitted a lineup.
func (m Match) Replaceable() bool {
	return m.Status == StatusScheduled && m.HomeLineupID == "" && m.AwayLineupID == ""
}

// LineupID returns the lineup id recorded for a side, empty when absent.
func (m Match) LineupID(side Side) string {
	if side == SideHome {
		return m.HomeLineupID
	}
	return m.AwayLineupID
}

func (m *Match) SetLineupID(side Side, lineupID string) {
	if side == SideHome {
		m.HomeLineupID = lineupID
		return
	}
	m.AwayLineupID = lineupID
}

func (m Match) IsTie() bool {
	return m.Status == StatusCompleted && m.WinnerTeamID == ""
}

func (m Match) Validate() error {
	if m.ID == "" || m.SeasonID == "" {
		return fmt.Errorf("match id and season id are required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match needs a home and an away team")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("a team cannot play itself")
	}
	if m.WeekNumber < 1 {
		return fmt.Errorf("match week number must be at least 1")
	}
	return nil
}

// Result is the decision reached for a submitted score.
type Result struct {
	Status Status
	Winner Side
}

// Decide applies thresholds to a running score. A side that reaches its
// GamesToWin wins. In formats with ties the match is level when both sides
// finish exactly on their tie counts. Otherwise the match stays in progress.
func Decide(format handicap.Format, homeGames, awayGames int, home, away handicap.Thresholds) (Result, error) {
	total := format.TotalGames()
	if homeGames < 0 || awayGames < 0 || homeGames+awayGames > total {
		return Result{}, fmt.Errorf("%w: %d-%d of %d games", ErrScoreOutOfRange, homeGames, awayGames, total)
	}

	homeWon := homeGames >= home.GamesToWin
	awayWon := awayGames >= away.GamesToWin
	switch {
	case homeWon && awayWon:
		return Result{}, fmt.Errorf("%w: both sides past their win counts", ErrScoreOutOfRange)
	case homeWon:
		return Result{Status: StatusCompleted, Winner: SideHome}, nil
	case awayWon:
		return Result{Status: StatusCompleted, Winner: SideAway}, nil
	}

	if format.AllowsTie() && home.GamesToTie != nil && away.GamesToTie != nil &&
		homeGames == *home.GamesToTie && awayGames == *away.GamesToTie {
		return Result{Status: StatusCompleted}, nil
	}
	return Result{Status: StatusInProgress}, nil
}

// ApplyResult records a decided score on the match.
func (m *Match) ApplyResult(homeGames, awayGames int, result Result, now time.Time) error {
	if m.Status == StatusCompleted {
		return ErrAlreadyComplete
	}
	m.HomeGamesWon = homeGames
	m.AwayGamesWon = awayGames
	m.Status = result.Status
	m.WinnerTeamID = ""
	m.CompletedAt = nil
	if result.Status != StatusCompleted {
		return nil
	}

	switch result.Winner {
	case SideHome:
		m.WinnerTeamID = m.HomeTeamID
	case SideAway:
		m.WinnerTeamID = m.AwayTeamID
	}
	completed := now.UTC()
	m.CompletedAt = &completed
	return nil
}
