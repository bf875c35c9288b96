package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/member"
	"github.com/riskibarqy/pool-league/internal/platform/id"
)

type CreateMemberInput struct {
	FirstName string
	LastName  string
	Handicap  int
}

type MemberService struct {
	repo member.Repository
	ids  id.Generator
	now  func() time.Time
}

func NewMemberService(repo member.Repository, ids id.Generator) *MemberService {
	return &MemberService{repo: repo, ids: ids, now: time.Now}
}

func (s *MemberService) List(ctx context.Context) ([]member.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].FullName()) < strings.ToLower(items[j].FullName())
	})
	return items, nil
}

func (s *MemberService) Get(ctx context.Context, memberID string) (member.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.Get")
	defer span.End()

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return member.Member{}, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}
	item, exists, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return member.Member{}, fmt.Errorf("get member: %w", err)
	}
	if !exists {
		return member.Member{}, fmt.Errorf("%w: member=%s", ErrNotFound, memberID)
	}
	return item, nil
}

func (s *MemberService) Create(ctx context.Context, input CreateMemberInput) (member.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberService.Create")
	defer span.End()

	memberID, err := s.ids.NewID()
	if err != nil {
		return member.Member{}, fmt.Errorf("generate member id: %w", err)
	}
	item := member.Member{
		ID:        memberID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Handicap:  input.Handicap,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return member.Member{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return member.Member{}, fmt.Errorf("create member: %w", err)
	}
	return item, nil
}
