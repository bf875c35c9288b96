package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pool-league/internal/domain/member"
)

type MemberRepository struct {
	mu     sync.RWMutex
	items  map[string]member.Member
	orders []string
}

func NewMemberRepository(members []member.Member) *MemberRepository {
	items := make(map[string]member.Member, len(members))
	orders := make([]string, 0, len(members))
	for _, m := range members {
		items[m.ID] = m
		orders = append(orders, m.ID)
	}

	return &MemberRepository{items: items, orders: orders}
}

func (r *MemberRepository) List(_ context.Context) ([]member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]member.Member, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *MemberRepository) GetByID(_ context.Context, memberID string) (member.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[memberID]
	return m, ok, nil
}

func (r *MemberRepository) ListByIDs(_ context.Context, memberIDs []string) ([]member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]member.Member, 0, len(memberIDs))
	for _, id := range memberIDs {
		if m, ok := r.items[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemberRepository) Create(_ context.Context, m member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.ID]; exists {
		return fmt.Errorf("member %s already exists", m.ID)
	}
	r.items[m.ID] = m
	r.orders = append(r.orders, m.ID)
	return nil
}
