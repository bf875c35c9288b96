package usecase

import "strings"

// Actor is the caller a mutating operation runs on behalf of. Operators act
// for any team; members act only for teams they captain.
type Actor struct {
	MemberID string
	Operator bool
}

func (a Actor) canActFor(captainID string) bool {
	if a.Operator {
		return true
	}
	id := strings.TrimSpace(a.MemberID)
	return id != "" && id == captainID
}

// Recorder receives counters for operations worth watching in production.
type Recorder interface {
	LineupTransition(action string)
	ScoreSubmitted(status string)
	BonusDegraded()
}

type nopRecorder struct{}

func (nopRecorder) LineupTransition(string) {}
func (nopRecorder) ScoreSubmitted(string)   {}
func (nopRecorder) BonusDegraded()          {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
