package daterange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrFormat is returned when the text does not look like an outage window.
	ErrFormat = errors.New("unrecognised date range format")
	// ErrDate is returned when the day, month, year or clock values are out of range.
	ErrDate = errors.New("invalid date")
	// ErrMonth is returned when the month name is not a known French month.
	ErrMonth = errors.New("unknown month")
)

// The day must not be preceded by another digit, otherwise "16 mai" would
// be read as day 6. Separators accept Unicode spaces such as the NBSP that
// &nbsp; decodes to.
var rangePattern = regexp.MustCompile(`(?i)(?:^|\D)(?P<day>\d{1,2})[\s\p{Zs}]+(?P<month>[^\s\p{Zs}]+)[\s\p{Zs}]+(?P<year>\d{4})\D+(?P<from>\d{2}:\d{2}:\d{2})[\s\p{Zs}]+à[\s\p{Zs}]+(?P<to>\d{2}:\d{2}:\d{2})$`)

// months maps lowercase NFC month names to their number. Only février and
// août accept an unaccented spelling.
var months = map[string]time.Month{
	"janvier":   time.January,
	"février":   time.February,
	"fevrier":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"août":      time.August,
	"aout":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December,
}

var lowerFrench = cases.Lower(language.French)

// LookupMonth returns the month number for a French month name.
// Matching ignores case and Unicode composition.
func LookupMonth(name string) (time.Month, error) {
	m, ok := months[lowerFrench.String(norm.NFC.String(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMonth, name)
	}
	return m, nil
}

// Parse reads a French outage window such as
// "Le Dimanche 7 août 2022 de 09:00:00 à 15:00:00".
func Parse(text string) (TimeRange, error) {
	normalized := norm.NFC.String(strings.TrimSpace(text))

	match := rangePattern.FindStringSubmatch(normalized)
	if match == nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrFormat, text)
	}
	group := func(name string) string {
		return match[rangePattern.SubexpIndex(name)]
	}

	month, err := LookupMonth(group("month"))
	if err != nil {
		return TimeRange{}, err
	}

	// Both groups are all digits, Atoi cannot fail.
	day, _ := strconv.Atoi(group("day"))
	year, _ := strconv.Atoi(group("year"))

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return TimeRange{}, fmt.Errorf("%w: %d %s %d", ErrDate, day, month, year)
	}

	start, err := atClock(date, group("from"))
	if err != nil {
		return TimeRange{}, err
	}
	end, err := atClock(date, group("to"))
	if err != nil {
		return TimeRange{}, err
	}

	return New(start, end), nil
}

// atClock combines a date with an "HH:MM:SS" clock value.
func atClock(date time.Time, clock string) (time.Time, error) {
	c, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", ErrDate, clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC), nil
}
