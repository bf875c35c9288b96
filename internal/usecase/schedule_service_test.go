package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/schedule"
	"github.com/riskibarqy/pool-league/internal/domain/team"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/memory"
)

func TestScheduleService_Preview(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	entries, err := f.scheduleService().Preview(context.Background(), memory.SeasonIDSpring2026)
	if err != nil {
		t.Fatalf("preview schedule: %v", err)
	}

	if len(entries) != 12 {
		t.Fatalf("expected 10 regular, 1 break and playoffs, got %d entries", len(entries))
	}
	for _, e := range entries {
		if schedule.DayKey(e.Date) == "2026-02-17" {
			t.Fatalf("blackout date must not be scheduled")
		}
	}
	if len(entries[2].Conflicts) != 1 || entries[2].Conflicts[0] != "Martin Luther King Jr. Day" {
		t.Fatalf("week 3 should report the MLK holiday: %+v", entries[2])
	}
	if len(entries[1].Conflicts) != 0 {
		t.Fatalf("week 2 has no holiday: %+v", entries[1])
	}
	if last := entries[len(entries)-1]; last.Type != schedule.TypePlayoffs || last.WeekNumber != 12 {
		t.Fatalf("unexpected last entry: %+v", last)
	}
}

func TestScheduleService_Apply(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	svc := f.scheduleService()
	ctx := context.Background()

	applied, err := svc.Apply(ctx, memory.SeasonIDSpring2026)
	if err != nil {
		t.Fatalf("apply schedule: %v", err)
	}
	if len(applied.Created) != 20 || applied.Kept != 0 {
		t.Fatalf("expected 20 created and none kept, got created=%d kept=%d", len(applied.Created), applied.Kept)
	}

	weekOne, err := f.matches.ListBySeason(ctx, memory.SeasonIDSpring2026, 1)
	if err != nil {
		t.Fatalf("list week one: %v", err)
	}
	if len(weekOne) != 2 {
		t.Fatalf("seeded week one matches should be replaced, got %d", len(weekOne))
	}
	pairs := map[string]string{}
	for _, m := range weekOne {
		pairs[m.HomeTeamID] = m.AwayTeamID
	}
	if pairs[memory.TeamIDBreakMasters] != memory.TeamIDRackAttack || pairs[memory.TeamIDEightBallers] != memory.TeamIDCornerPockets {
		t.Fatalf("week one should follow the 4 team table: %v", pairs)
	}

	completed := applied.Created[0]
	completed.Status = match.StatusCompleted
	completed.WinnerTeamID = completed.HomeTeamID
	if err := f.matches.Update(ctx, completed); err != nil {
		t.Fatalf("complete match: %v", err)
	}

	again, err := svc.Apply(ctx, memory.SeasonIDSpring2026)
	if err != nil {
		t.Fatalf("reapply schedule: %v", err)
	}
	if again.Kept != 1 || len(again.Created) != 19 {
		t.Fatalf("played fixture should be kept, got created=%d kept=%d", len(again.Created), again.Kept)
	}
	all, _ := f.matches.ListBySeason(ctx, memory.SeasonIDSpring2026, 0)
	if len(all) != 20 {
		t.Fatalf("expected 20 matches after reapply, got %d", len(all))
	}
}

func TestScheduleService_Apply_RequiresContiguousPositions(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	extra := team.Team{
		ID:               "team-side-pocket",
		SeasonID:         memory.SeasonIDSpring2026,
		Name:             "Side Pocket",
		CaptainID:        "member-03",
		SchedulePosition: 7,
		PlayerIDs:        []string{"member-03"},
	}
	if err := f.teams.Create(context.Background(), extra); err != nil {
		t.Fatalf("create team: %v", err)
	}

	if _, err := f.scheduleService().Apply(context.Background(), memory.SeasonIDSpring2026); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestScheduleService_Calendar(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	raw, err := f.scheduleService().Calendar(context.Background(), memory.SeasonIDSpring2026)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	body := string(raw)
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n") || strings.Count(body, "BEGIN:VEVENT") != 12 {
		t.Fatalf("unexpected calendar:\n%s", body)
	}
	if !strings.Contains(body, "SUMMARY:Playoffs") {
		t.Fatalf("calendar should include playoffs")
	}
}

func TestScheduleService_UnknownSeason(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	if _, err := f.scheduleService().Preview(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleService_Apply_KeepsMatchesWithLineups(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	svc := f.scheduleService()
	ctx := context.Background()

	applied, err := svc.Apply(ctx, memory.SeasonIDSpring2026)
	if err != nil {
		t.Fatalf("apply schedule: %v", err)
	}
	target := applied.Created[0]
	home, _, err := f.teams.GetByID(ctx, target.HomeTeamID)
	if err != nil {
		t.Fatalf("get home team: %v", err)
	}
	view, err := f.lineupService().Submit(ctx, operator, SubmitLineupInput{
		MatchID: target.ID,
		TeamID:  home.ID,
		Slots:   fullSlots(home.PlayerIDs...),
	})
	if err != nil {
		t.Fatalf("submit lineup: %v", err)
	}

	again, err := svc.Apply(ctx, memory.SeasonIDSpring2026)
	if err != nil {
		t.Fatalf("reapply schedule: %v", err)
	}
	if again.Kept != 1 || len(again.Created) != 19 {
		t.Fatalf("match with a lineup should be kept, got created=%d kept=%d", len(again.Created), again.Kept)
	}

	kept, ok, err := f.matches.GetByID(ctx, target.ID)
	if err != nil || !ok {
		t.Fatalf("match with a lineup was dropped: ok=%v err=%v", ok, err)
	}
	if kept.HomeLineupID != view.Lineup.ID {
		t.Fatalf("kept match lost its lineup: %+v", kept)
	}
	if _, ok, _ := f.lineups.GetByMatchAndTeam(ctx, target.ID, home.ID); !ok {
		t.Fatalf("lineup of a kept match should survive reapply")
	}
}

func TestScheduleService_Apply_WaitsForMatchGuard(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	svc := f.scheduleService()
	ctx := context.Background()

	release := f.guard.Lock(memory.MatchIDSpringWeek1A)
	done := make(chan error, 1)
	go func() {
		_, err := svc.Apply(ctx, memory.SeasonIDSpring2026)
		done <- err
	}()

	select {
	case err := <-done:
		t.Fatalf("apply finished while a match change held the guard: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	release()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("apply schedule: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("apply never acquired the match guard")
	}

	// The seeded match was replaced, so a late lineup change sees it as gone.
	_, err := f.lineupService().Submit(ctx, captainBreakMasters, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   fullSlots("member-01", "member-02", "member-03"),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a replaced match, got %v", err)
	}
}
