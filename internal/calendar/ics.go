// Package calendar renders a region's outages as an iCalendar feed.
package calendar

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pfrederiksen/ceb-outages/internal/daterange"
	"github.com/pfrederiksen/ceb-outages/internal/outage"
)

// maxLineOctets is the RFC 5545 content line limit, excluding CRLF.
const maxLineOctets = 75

// Generator renders iCalendar feeds. The clock supplies DTSTAMP.
type Generator struct {
	clock clockwork.Clock
}

// NewGenerator creates a Generator. A nil clock uses real time.
func NewGenerator(clock clockwork.Clock) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{clock: clock}
}

// GenerateICS renders region with a real-time DTSTAMP.
func GenerateICS(region outage.Region) string {
	return NewGenerator(nil).Generate(region)
}

// Generate renders one VEVENT per outage of region. Start and end are
// written as floating local times because the published schedule has no
// time zone.
func (g *Generator) Generate(region outage.Region) string {
	var ics strings.Builder
	writeLine := func(format string, args ...interface{}) {
		ics.WriteString(fold(fmt.Sprintf(format, args...)))
		ics.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//CEB Outages//ceb-outages//EN")
	writeLine("CALSCALE:GREGORIAN")
	writeLine("METHOD:PUBLISH")
	writeLine("X-WR-CALNAME:%s", escapeICS("Power outages - "+region.Name()))

	stamp := formatUTC(g.clock.Now())
	for i, o := range region.Outages() {
		writeLine("BEGIN:VEVENT")
		writeLine("UID:%s@ceb.mu", eventID(region.Name(), i, o))
		writeLine("DTSTAMP:%s", stamp)
		writeLine("DTSTART:%s", formatFloating(o.Date().Start()))
		writeLine("DTEND:%s", formatFloating(o.Date().End()))
		writeLine("SUMMARY:%s", escapeICS("Power outage - "+o.Locality()))
		writeLine("DESCRIPTION:%s", escapeICS(o.Streets()))
		writeLine("LOCATION:%s", escapeICS(o.Locality()))
		writeLine("STATUS:CONFIRMED")
		writeLine("TRANSP:OPAQUE")
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")
	return ics.String()
}

// eventID is stable across runs for the same published row.
func eventID(region string, index int, o outage.Outage) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%d|%s|%s", region, index, o.Date().Start().Format(daterange.Layout), o.Locality())
	return fmt.Sprintf("%x", h.Sum(nil))
}

func formatUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatFloating(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// fold splits a content line into CRLF+space continuations of at most
// maxLineOctets, never inside a UTF-8 sequence.
func fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var b strings.Builder
	limit := maxLineOctets
	n := 0
	for _, r := range line {
		size := len(string(r))
		if n+size > limit {
			b.WriteString("\r\n ")
			n = 0
			limit = maxLineOctets - 1 // leading space counts
		}
		b.WriteRune(r)
		n += size
	}
	return b.String()
}
