package memory

import (
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/member"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/team"
)

const (
	SeasonIDSpring2026 = "season-spring-2026"

	TeamIDBreakMasters  = "team-break-masters"
	TeamIDCornerPockets = "team-corner-pockets"
	TeamIDEightBallers  = "team-eight-ballers"
	TeamIDRackAttack    = "team-rack-attack"
	MatchIDSpringWeek1A = "match-spring-w1-a"
	MatchIDSpringWeek1B = "match-spring-w1-b"
)

var seedCreatedAt = time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:            SeasonIDSpring2026,
			Name:          "Spring 2026 Tuesday 3v3",
			Format:        handicap.Format3v3,
			StartDate:     time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC),
			SeasonLength:  10,
			EndBreakWeeks: 1,
			Blackouts:     []time.Time{time.Date(2026, time.February, 17, 0, 0, 0, 0, time.UTC)},
			Holidays: []season.Holiday{
				{Date: time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC), Name: "Martin Luther King Jr. Day"},
				{Date: time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC), Name: "Presidents' Day"},
			},
			CreatedAt: seedCreatedAt,
		},
	}
}

func SeedMembers() []member.Member {
	return []member.Member{
		{ID: "member-01", FirstName: "Dana", LastName: "Whitfield", Handicap: 5, CreatedAt: seedCreatedAt},
		{ID: "member-02", FirstName: "Luis", LastName: "Ortega", Handicap: 4, CreatedAt: seedCreatedAt},
		{ID: "member-03", FirstName: "Priya", LastName: "Raman", Handicap: 3, CreatedAt: seedCreatedAt},
		{ID: "member-04", FirstName: "Marcus", LastName: "Bell", Handicap: 6, CreatedAt: seedCreatedAt},
		{ID: "member-05", FirstName: "Hannah", LastName: "Kowalski", Handicap: 3, CreatedAt: seedCreatedAt},
		{ID: "member-06", FirstName: "Theo", LastName: "Nguyen", Handicap: 2, CreatedAt: seedCreatedAt},
		{ID: "member-07", FirstName: "Rosa", LastName: "Delgado", Handicap: 4, CreatedAt: seedCreatedAt},
		{ID: "member-08", FirstName: "Sam", LastName: "Okafor", Handicap: 4, CreatedAt: seedCreatedAt},
		{ID: "member-09", FirstName: "Irene", LastName: "Vance", Handicap: 5, CreatedAt: seedCreatedAt},
		{ID: "member-10", FirstName: "Kenji", LastName: "Mori", Handicap: 2, CreatedAt: seedCreatedAt},
		{ID: "member-11", FirstName: "Alma", LastName: "Fischer", Handicap: 3, CreatedAt: seedCreatedAt},
		{ID: "member-12", FirstName: "Victor", LastName: "Reyes", Handicap: 3, CreatedAt: seedCreatedAt},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDBreakMasters, SeasonID: SeasonIDSpring2026, Name: "Break Masters", CaptainID: "member-01", SchedulePosition: 1, PlayerIDs: []string{"member-01", "member-02", "member-03"}},
		{ID: TeamIDCornerPockets, SeasonID: SeasonIDSpring2026, Name: "Corner Pockets", CaptainID: "member-04", SchedulePosition: 2, PlayerIDs: []string{"member-04", "member-05", "member-06"}},
		{ID: TeamIDEightBallers, SeasonID: SeasonIDSpring2026, Name: "Eight Ballers", CaptainID: "member-07", SchedulePosition: 3, PlayerIDs: []string{"member-07", "member-08", "member-09"}},
		{ID: TeamIDRackAttack, SeasonID: SeasonIDSpring2026, Name: "Rack Attack", CaptainID: "member-10", SchedulePosition: 4, PlayerIDs: []string{"member-10", "member-11", "member-12"}},
	}
}

// SeedMatches holds week one of the spring season.
func SeedMatches() []match.Match {
	weekOne := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)
	return []match.Match{
		{ID: MatchIDSpringWeek1A, SeasonID: SeasonIDSpring2026, WeekNumber: 1, ScheduledDate: weekOne, HomeTeamID: TeamIDBreakMasters, AwayTeamID: TeamIDRackAttack, Status: match.StatusScheduled},
		{ID: MatchIDSpringWeek1B, SeasonID: SeasonIDSpring2026, WeekNumber: 1, ScheduledDate: weekOne, HomeTeamID: TeamIDEightBallers, AwayTeamID: TeamIDCornerPockets, Status: match.StatusScheduled},
	}
}
