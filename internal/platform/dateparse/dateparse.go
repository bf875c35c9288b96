// Package dateparse turns operator supplied dates into calendar days. ISO
// dates are tried first, then English phrases such as "tomorrow" or
// "next friday", resolved against a base date.
package dateparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var ErrUnparseable = errors.New("unrecognised date")

var isoLayouts = []string{time.DateOnly, time.RFC3339, "2006/01/02"}

// Parser is safe for concurrent use once built.
type Parser struct {
	w *when.Parser
}

func New() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

// Parse returns the UTC calendar day that raw denotes relative to base.
func (p *Parser) Parse(raw string, base time.Time) (time.Time, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparseable)
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return day(t), nil
		}
	}

	result, err := p.w.Parse(text, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnparseable, text, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, text)
	}
	return day(result.Time), nil
}

// ParseAll parses every value, reporting the first failure.
func (p *Parser) ParseAll(raw []string, base time.Time) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		t, err := p.Parse(r, base)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
