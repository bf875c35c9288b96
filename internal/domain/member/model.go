package member

import (
	"fmt"
	"strings"
	"time"
)

// Member is a registered league player with a personal handicap.
type Member struct {
	ID        string
	FirstName string
	LastName  string
	Handicap  int
	CreatedAt time.Time
}

func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("member id is required")
	}
	if strings.TrimSpace(m.FirstName) == "" {
		return fmt.Errorf("member first name is required")
	}
	return nil
}
