// Package resilient decorates repositories whose reads may hit a flaky store.
package resilient

import (
	"context"

	"github.com/riskibarqy/pool-league/internal/domain/standing"
	"github.com/riskibarqy/pool-league/internal/platform/resilience"
)

// RecordRepository retries failed record reads once and stops calling the
// store while its breaker is open.
type RecordRepository struct {
	next    standing.RecordRepository
	retry   resilience.RetryConfig
	breaker *resilience.Breaker
}

func NewRecordRepository(next standing.RecordRepository, retry resilience.RetryConfig, breaker *resilience.Breaker) *RecordRepository {
	return &RecordRepository{next: next, retry: retry, breaker: breaker}
}

func (r *RecordRepository) GetTeamRecord(ctx context.Context, seasonID, teamID string) (standing.TeamRecord, error) {
	return resilience.Guard(ctx, r.breaker, func(ctx context.Context) (standing.TeamRecord, error) {
		return resilience.Retry(ctx, r.retry, func(ctx context.Context) (standing.TeamRecord, error) {
			return r.next.GetTeamRecord(ctx, seasonID, teamID)
		})
	})
}
