package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pool-league/internal/domain/member"
	membermock "github.com/riskibarqy/pool-league/internal/mocks/domain/member"
)

func TestMemberService_ListSortsByNameUsingMockery(t *testing.T) {
	t.Parallel()

	repo := membermock.NewRepository(t)
	repo.
		On("List", mock.Anything).
		Return([]member.Member{{ID: "2", FirstName: "zoe"}, {ID: "1", FirstName: "Alex", LastName: "Burke"}}, nil).
		Once()

	got, err := NewMemberService(repo, &sequenceIDs{}).List(context.Background())
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if got[0].ID != "1" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestMemberService_Create(t *testing.T) {
	t.Parallel()

	repo := membermock.NewRepository(t)
	repo.
		On("Create", mock.Anything, mock.MatchedBy(func(m member.Member) bool {
			return m.ID == "member-001" && m.FirstName == "Alex" && m.Handicap == 4
		})).
		Return(nil).
		Once()

	svc := NewMemberService(repo, &sequenceIDs{prefix: "member"})
	if _, err := svc.Create(context.Background(), CreateMemberInput{FirstName: " Alex ", LastName: "Burke", Handicap: 4}); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateMemberInput{LastName: "Burke"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
