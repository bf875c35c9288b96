package httpapi

import (
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/lineup"
	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/member"
	"github.com/riskibarqy/pool-league/internal/domain/schedule"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/standing"
	"github.com/riskibarqy/pool-league/internal/domain/team"
	"github.com/riskibarqy/pool-league/internal/usecase"
)

const dateLayout = time.DateOnly

type createSeasonRequest struct {
	Name          string                 `json:"name" validate:"required,max=120"`
	Format        string                 `json:"format" validate:"required,max=8"`
	StartDate     string                 `json:"start_date" validate:"required"`
	SeasonLength  int                    `json:"season_length" validate:"required,gt=0,lte=52"`
	EndBreakWeeks int                    `json:"end_break_weeks" validate:"gte=0,lte=8"`
	Blackouts     []string               `json:"blackouts" validate:"omitempty,dive,required"`
	Holidays      []createHolidayRequest `json:"holidays" validate:"omitempty,dive"`
}

type createHolidayRequest struct {
	Date string `json:"date" validate:"required"`
	Name string `json:"name" validate:"required,max=120"`
}

type createTeamRequest struct {
	Name             string   `json:"name" validate:"required,max=100"`
	CaptainID        string   `json:"captain_id" validate:"required"`
	SchedulePosition int      `json:"schedule_position" validate:"gte=0"`
	PlayerIDs        []string `json:"player_ids" validate:"omitempty,dive,required"`
}

type createMemberRequest struct {
	FirstName string `json:"first_name" validate:"required,max=60"`
	LastName  string `json:"last_name" validate:"omitempty,max=60"`
	Handicap  int    `json:"handicap" validate:"gte=0"`
}

type submitLineupRequest struct {
	Slots []lineupSlotRequest `json:"slots" validate:"required,min=1,dive"`
}

type lineupSlotRequest struct {
	Position int    `json:"position" validate:"required,gt=0"`
	PlayerID string `json:"player_id"`
}

type submitScoreRequest struct {
	TeamID    string `json:"team_id" validate:"required"`
	HomeGames *int   `json:"home_games" validate:"required,gte=0"`
	AwayGames *int   `json:"away_games" validate:"required,gte=0"`
}

type holidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type seasonDTO struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Format        string       `json:"format"`
	StartDate     string       `json:"start_date"`
	SeasonLength  int          `json:"season_length"`
	EndBreakWeeks int          `json:"end_break_weeks"`
	Blackouts     []string     `json:"blackouts"`
	Holidays      []holidayDTO `json:"holidays"`
	CreatedAt     time.Time    `json:"created_at"`
}

type teamDTO struct {
	ID               string   `json:"id"`
	SeasonID         string   `json:"season_id"`
	Name             string   `json:"name"`
	CaptainID        string   `json:"captain_id"`
	SchedulePosition int      `json:"schedule_position"`
	PlayerIDs        []string `json:"player_ids"`
}

type memberDTO struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Handicap  int       `json:"handicap"`
	CreatedAt time.Time `json:"created_at"`
}

type weekEntryDTO struct {
	WeekNumber int      `json:"week_number"`
	Date       string   `json:"date"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Conflicts  []string `json:"conflicts"`
}

type appliedScheduleDTO struct {
	Entries []weekEntryDTO `json:"entries"`
	Created []matchDTO     `json:"created"`
	Kept    int            `json:"kept"`
}

type matchDTO struct {
	ID            string     `json:"id"`
	SeasonID      string     `json:"season_id"`
	WeekNumber    int        `json:"week_number"`
	ScheduledDate string     `json:"scheduled_date"`
	HomeTeamID    string     `json:"home_team_id"`
	AwayTeamID    string     `json:"away_team_id"`
	HomeLineupID  string     `json:"home_lineup_id,omitempty"`
	AwayLineupID  string     `json:"away_lineup_id,omitempty"`
	HomeGamesWon  int        `json:"home_games_won"`
	AwayGamesWon  int        `json:"away_games_won"`
	Status        string     `json:"status"`
	WinnerTeamID  string     `json:"winner_team_id,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

type thresholdsDTO struct {
	GamesToWin  int  `json:"games_to_win"`
	GamesToTie  *int `json:"games_to_tie,omitempty"`
	GamesToLose int  `json:"games_to_lose"`
}

type sideThresholdsDTO struct {
	TeamID       string        `json:"team_id"`
	LineupID     string        `json:"lineup_id"`
	Total        int           `json:"total_handicap"`
	Adjusted     int           `json:"adjusted_handicap"`
	Differential int           `json:"differential"`
	Thresholds   thresholdsDTO `json:"thresholds"`
}

type matchThresholdsDTO struct {
	MatchID       string            `json:"match_id"`
	Format        string            `json:"format"`
	Home          sideThresholdsDTO `json:"home"`
	Away          sideThresholdsDTO `json:"away"`
	TeamBonus     int               `json:"team_bonus"`
	BonusDegraded bool              `json:"bonus_degraded"`
	TableVersion  string            `json:"table_version"`
}

type scoreResultDTO struct {
	Match      matchDTO           `json:"match"`
	Thresholds matchThresholdsDTO `json:"thresholds"`
}

type lineupSlotDTO struct {
	Position int    `json:"position"`
	PlayerID string `json:"player_id,omitempty"`
	Handicap int    `json:"handicap"`
}

type lineupDTO struct {
	ID            string          `json:"id"`
	Slots         []lineupSlotDTO `json:"slots"`
	Locked        bool            `json:"locked"`
	LockedAt      *time.Time      `json:"locked_at,omitempty"`
	TotalHandicap int             `json:"total_handicap"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type lockStateDTO struct {
	Locked              bool   `json:"locked"`
	Complete            bool   `json:"complete"`
	OpponentStatus      string `json:"opponent_status"`
	CanLock             bool   `json:"can_lock"`
	CanUnlock           bool   `json:"can_unlock"`
	CanProceedToScoring bool   `json:"can_proceed_to_scoring"`
}

type lineupViewDTO struct {
	MatchID string       `json:"match_id"`
	TeamID  string       `json:"team_id"`
	Side    string       `json:"side"`
	Lineup  *lineupDTO   `json:"lineup"`
	State   lockStateDTO `json:"state"`
}

type standingDTO struct {
	Rank     int    `json:"rank"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Played   int    `json:"played"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Ties     int    `json:"ties"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func seasonToDTO(item season.Season) seasonDTO {
	blackouts := make([]string, 0, len(item.Blackouts))
	for _, d := range item.Blackouts {
		blackouts = append(blackouts, formatDate(d))
	}
	holidays := make([]holidayDTO, 0, len(item.Holidays))
	for _, h := range item.Holidays {
		holidays = append(holidays, holidayDTO{Date: formatDate(h.Date), Name: h.Name})
	}
	return seasonDTO{
		ID:            item.ID,
		Name:          item.Name,
		Format:        string(item.Format),
		StartDate:     formatDate(item.StartDate),
		SeasonLength:  item.SeasonLength,
		EndBreakWeeks: item.EndBreakWeeks,
		Blackouts:     blackouts,
		Holidays:      holidays,
		CreatedAt:     item.CreatedAt,
	}
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{
		ID:               item.ID,
		SeasonID:         item.SeasonID,
		Name:             item.Name,
		CaptainID:        item.CaptainID,
		SchedulePosition: item.SchedulePosition,
		PlayerIDs:        append([]string{}, item.PlayerIDs...),
	}
}

func memberToDTO(item member.Member) memberDTO {
	return memberDTO{
		ID:        item.ID,
		FirstName: item.FirstName,
		LastName:  item.LastName,
		FullName:  item.FullName(),
		Handicap:  item.Handicap,
		CreatedAt: item.CreatedAt,
	}
}

func weekEntriesToDTO(entries []schedule.WeekEntry) []weekEntryDTO {
	out := make([]weekEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, weekEntryDTO{
			WeekNumber: e.WeekNumber,
			Date:       formatDate(e.Date),
			Label:      e.Label,
			Type:       string(e.Type),
			Conflicts:  append([]string{}, e.Conflicts...),
		})
	}
	return out
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:            m.ID,
		SeasonID:      m.SeasonID,
		WeekNumber:    m.WeekNumber,
		ScheduledDate: formatDate(m.ScheduledDate),
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		HomeLineupID:  m.HomeLineupID,
		AwayLineupID:  m.AwayLineupID,
		HomeGamesWon:  m.HomeGamesWon,
		AwayGamesWon:  m.AwayGamesWon,
		Status:        string(m.Status),
		WinnerTeamID:  m.WinnerTeamID,
		CompletedAt:   m.CompletedAt,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

func thresholdsToDTO(t handicap.Thresholds) thresholdsDTO {
	return thresholdsDTO{GamesToWin: t.GamesToWin, GamesToTie: t.GamesToTie, GamesToLose: t.GamesToLose}
}

func sideThresholdsToDTO(s usecase.SideThresholds) sideThresholdsDTO {
	return sideThresholdsDTO{
		TeamID:       s.TeamID,
		LineupID:     s.LineupID,
		Total:        s.Total,
		Adjusted:     s.Adjusted,
		Differential: s.Differential,
		Thresholds:   thresholdsToDTO(s.Thresholds),
	}
}

func matchThresholdsToDTO(m usecase.MatchThresholds) matchThresholdsDTO {
	return matchThresholdsDTO{
		MatchID:       m.MatchID,
		Format:        string(m.Format),
		Home:          sideThresholdsToDTO(m.Home),
		Away:          sideThresholdsToDTO(m.Away),
		TeamBonus:     m.Bonus,
		BonusDegraded: m.BonusDegraded,
		TableVersion:  m.TableVersion,
	}
}

func lineupViewToDTO(v usecase.LineupView) lineupViewDTO {
	out := lineupViewDTO{
		MatchID: v.MatchID,
		TeamID:  v.TeamID,
		Side:    string(v.Side),
		State: lockStateDTO{
			Locked:              v.State.Locked,
			Complete:            v.State.Complete,
			OpponentStatus:      string(v.State.Opponent),
			CanLock:             v.State.CanLock(),
			CanUnlock:           v.State.CanUnlock(),
			CanProceedToScoring: v.State.CanProceedToScoring(),
		},
	}
	if v.Lineup != nil {
		out.Lineup = lineupToDTO(*v.Lineup)
	}
	return out
}

func lineupToDTO(item lineup.Lineup) *lineupDTO {
	slots := make([]lineupSlotDTO, 0, len(item.Slots))
	for _, s := range item.Slots {
		slots = append(slots, lineupSlotDTO{Position: s.Position, PlayerID: s.PlayerID, Handicap: s.Handicap})
	}
	return &lineupDTO{
		ID:            item.ID,
		Slots:         slots,
		Locked:        item.Locked,
		LockedAt:      item.LockedAt,
		TotalHandicap: item.TotalHandicap(),
		UpdatedAt:     item.UpdatedAt,
	}
}

func standingsToDTO(rows []standing.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingDTO{
			Rank:     row.Rank,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Played:   row.Played(),
			Wins:     row.MatchWins,
			Losses:   row.MatchLosses,
			Ties:     row.MatchTies,
		})
	}
	return out
}
