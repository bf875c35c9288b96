package lineup

import (
	"errors"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
)

var (
	ErrIncomplete     = errors.New("lineup has open slots")
	ErrLocked         = errors.New("lineup is locked")
	ErrNotLocked      = errors.New("lineup is not locked")
	ErrOpponentLocked = errors.New("opponent lineup is locked")
)

// OpponentStatus is derived on every read, never stored.
type OpponentStatus string

const (
	OpponentAbsent   OpponentStatus = "absent"
	OpponentChoosing OpponentStatus = "choosing"
	OpponentReady    OpponentStatus = "ready"
)

// StatusOf derives the opponent status from the opponent's lineup, nil when
// the opponent has not submitted one.
func StatusOf(opponent *Lineup) OpponentStatus {
	switch {
	case opponent == nil || opponent.ID == "":
		return OpponentAbsent
	case opponent.Locked:
		return OpponentReady
	default:
		return OpponentChoosing
	}
}

// LockState is one side's view of the two-sided lock protocol.
type LockState struct {
	Locked   bool
	Complete bool
	Opponent OpponentStatus
}

// StateOf builds the view for own against opponent. Either may be nil.
func StateOf(format handicap.Format, own, opponent *Lineup) LockState {
	s := LockState{Opponent: StatusOf(opponent)}
	if own != nil {
		s.Locked = own.Locked
		s.Complete = own.IsComplete(format)
	}
	return s
}

func (s LockState) CanLock() bool {
	return !s.Locked && s.Complete
}

func (s LockState) CanUnlock() bool {
	return s.Locked && s.Opponent != OpponentReady
}

// CanProceedToScoring is a navigation gate; it changes no data.
func (s LockState) CanProceedToScoring() bool {
	return s.Locked && s.Opponent == OpponentReady
}

// Lock marks own locked when the protocol allows it.
func Lock(format handicap.Format, own *Lineup, opponent *Lineup, now time.Time) error {
	state := StateOf(format, own, opponent)
	switch {
	case state.Locked:
		return ErrLocked
	case !state.Complete:
		return ErrIncomplete
	}
	at := now.UTC()
	own.Locked = true
	own.LockedAt = &at
	own.UpdatedAt = at
	return nil
}

// Unlock clears own's lock while the opponent has not locked.
func Unlock(format handicap.Format, own *Lineup, opponent *Lineup, now time.Time) error {
	state := StateOf(format, own, opponent)
	switch {
	case !state.Locked:
		return ErrNotLocked
	case !state.CanUnlock():
		return ErrOpponentLocked
	}
	own.Locked = false
	own.LockedAt = nil
	own.UpdatedAt = now.UTC()
	return nil
}
