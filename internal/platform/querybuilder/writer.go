package querybuilder

import (
	"strconv"
	"strings"
)

// writer accumulates SQL text and positional ($n) arguments.
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) sql(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

func (w *writer) arg(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies raw SQL, binding each '?' to the next value.
func (w *writer) expr(raw string, values []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && next < len(values) {
			w.arg(values[next])
			next++
			continue
		}
		w.buf.WriteByte(raw[i])
	}
}

func (w *writer) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.sql(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.sql(" AND ")
		}
		c.write(w)
	}
}

func (w *writer) list(keyword string, items []string) {
	if len(items) == 0 {
		return
	}
	w.sql(" ", keyword, " ", strings.Join(items, ", "))
}

func (w *writer) result() (string, []any) {
	return w.buf.String(), w.args
}
