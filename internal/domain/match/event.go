package match

import (
	"context"
	"time"
)

type EventType string

const (
	EventLineupSubmitted EventType = "lineup_submitted"
	EventLineupLocked    EventType = "lineup_locked"
	EventLineupUnlocked  EventType = "lineup_unlocked"
	EventScoreSubmitted  EventType = "score_submitted"
	EventMatchCompleted  EventType = "match_completed"
)

// ChangeEvent is one typed change on a match, delivered to feed subscribers.
type ChangeEvent struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	MatchID      string    `json:"match_id"`
	TeamID       string    `json:"team_id,omitempty"`
	Side         Side      `json:"side,omitempty"`
	Locked       bool      `json:"locked"`
	HomeGamesWon int       `json:"home_games_won"`
	AwayGamesWon int       `json:"away_games_won"`
	Status       Status    `json:"status,omitempty"`
	WinnerTeamID string    `json:"winner_team_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher emits match change events.
type EventPublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

// Subscription is an explicit handle on one match's change events. Events
// is closed after Close or when the subscribing context ends.
type Subscription interface {
	Events() <-chan ChangeEvent
	Close() error
}

// Feed is a per-match channel of change events.
type Feed interface {
	EventPublisher
	Subscribe(ctx context.Context, matchID string) (Subscription, error)
}
