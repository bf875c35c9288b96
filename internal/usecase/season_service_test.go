package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	seasonmock "github.com/riskibarqy/pool-league/internal/mocks/domain/season"
)

func TestSeasonService_Create_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seasonmock.NewRepository(t)
	svc := NewSeasonService(repo, &sequenceIDs{prefix: "season"})
	svc.now = func() time.Time { return time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC) }

	repo.
		On("Create", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.MatchedBy(func(s season.Season) bool {
			return s.ID == "season-001" && s.Format == handicap.Format5v5 && len(s.Blackouts) == 2
		})).
		Return(nil).
		Once()

	got, err := svc.Create(ctx, CreateSeasonInput{
		Name:          "  Fall 2026 Thursday  ",
		Format:        "5V5",
		StartDate:     "2026-09-03",
		SeasonLength:  14,
		EndBreakWeeks: 2,
		Blackouts:     []string{"2026-11-26", "2026/12/24"},
		Holidays:      []HolidayInput{{Date: "2026-09-07", Name: "Labor Day"}},
	})
	if err != nil {
		t.Fatalf("create season: %v", err)
	}
	if got.Name != "Fall 2026 Thursday" {
		t.Fatalf("name should be trimmed, got %q", got.Name)
	}
	if !got.StartDate.Equal(time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start date: %s", got.StartDate)
	}
	if len(got.Holidays) != 1 || got.Holidays[0].Name != "Labor Day" {
		t.Fatalf("unexpected holidays: %+v", got.Holidays)
	}
}

func TestSeasonService_Create_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CreateSeasonInput
	}{
		{name: "unknown format", input: CreateSeasonInput{Name: "x", Format: "8ball", StartDate: "2026-09-03", SeasonLength: 4}},
		{name: "bad start date", input: CreateSeasonInput{Name: "x", Format: "3v3", StartDate: "invalid date", SeasonLength: 4}},
		{name: "zero length", input: CreateSeasonInput{Name: "x", Format: "3v3", StartDate: "2026-09-03"}},
		{name: "negative break", input: CreateSeasonInput{Name: "x", Format: "3v3", StartDate: "2026-09-03", SeasonLength: 4, EndBreakWeeks: -1}},
		{name: "missing name", input: CreateSeasonInput{Format: "3v3", StartDate: "2026-09-03", SeasonLength: 4}},
		{name: "unnamed holiday", input: CreateSeasonInput{Name: "x", Format: "3v3", StartDate: "2026-09-03", SeasonLength: 4, Holidays: []HolidayInput{{Date: "2026-09-07"}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewSeasonService(seasonmock.NewRepository(t), &sequenceIDs{prefix: "season"})
			if _, err := svc.Create(context.Background(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSeasonService_Get_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	repo := seasonmock.NewRepository(t)
	repo.On("GetByID", mock.Anything, "missing").Return(season.Season{}, false, nil).Once()

	if _, err := NewSeasonService(repo, &sequenceIDs{}).Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
