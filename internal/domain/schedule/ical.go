package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

var icalEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

// EncodeICS renders entries as all-day VEVENTs. uidPrefix keeps event ids
// stable across exports so calendar clients update instead of duplicating.
func EncodeICS(calendarName, uidPrefix string, entries []WeekEntry, stamp time.Time) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(parts ...string) {
		for _, p := range parts {
			_, _ = buf.WriteString(p)
		}
		_, _ = buf.WriteString("\r\n")
	}

	dtstamp := stamp.UTC().Format("20060102T150405Z")
	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//pool-league//schedule//EN")
	line("CALSCALE:GREGORIAN")
	line("X-WR-CALNAME:", icalEscaper.Replace(calendarName))
	for _, e := range entries {
		day := Day(e.Date)
		line("BEGIN:VEVENT")
		line("UID:", uidPrefix, "-", string(e.Type), "-", strconv.Itoa(e.WeekNumber), "@pool-league")
		line("DTSTAMP:", dtstamp)
		line("DTSTART;VALUE=DATE:", day.Format("20060102"))
		line("DTEND;VALUE=DATE:", day.AddDate(0, 0, 1).Format("20060102"))
		line("SUMMARY:", icalEscaper.Replace(e.Label))
		line("CATEGORIES:", strings.ToUpper(string(e.Type)))
		if len(e.Conflicts) > 0 {
			line("DESCRIPTION:", icalEscaper.Replace("Conflicts: "+strings.Join(e.Conflicts, ", ")))
		}
		line("END:VEVENT")
	}
	line("END:VCALENDAR")

	return append([]byte(nil), buf.B...)
}
