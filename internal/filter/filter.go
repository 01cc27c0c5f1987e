// Package filter narrows a region's outages down to the ones a reader cares
// about.
//
// Criteria combine with AND; values within one criterion combine with OR:
//
//	f := filter.NewFilter()
//	f.Localities = []string{"curepipe", "floreal"}
//	f.WeekendsOnly = true
//	weekendCurepipe := f.Apply(region.Outages())
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/ceb-outages/internal/outage"
)

// DayLayout is the accepted format for From/To values on the command line.
const DayLayout = "2006-01-02"

// Filter represents outage filtering criteria
type Filter struct {
	// Outages starting before From or after To are dropped (inclusive).
	From *time.Time
	To   *time.Time

	// Case-insensitive substring matches.
	Localities []string
	Streets    []string

	WeekendsOnly bool
}

// NewFilter creates a filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{
		Localities: []string{},
		Streets:    []string{},
	}
}

// ParseDay parses "YYYY-MM-DD" as a naive date. With endOfDay the result is
// the last second of that day, for use as an inclusive upper bound.
func ParseDay(s string, endOfDay bool) (*time.Time, error) {
	day, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want %s): %w", s, DayLayout, err)
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Second)
	}
	return &day, nil
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.From == nil &&
		f.To == nil &&
		len(f.Localities) == 0 &&
		len(f.Streets) == 0 &&
		!f.WeekendsOnly
}

// Matches checks if an outage passes all active criteria.
func (f *Filter) Matches(o outage.Outage) bool {
	if f.IsEmpty() {
		return true
	}

	start := o.Date().Start()
	if f.From != nil && start.Before(*f.From) {
		return false
	}
	if f.To != nil && start.After(*f.To) {
		return false
	}

	if f.WeekendsOnly {
		if wd := start.Weekday(); wd != time.Saturday && wd != time.Sunday {
			return false
		}
	}

	if !containsAny(o.Locality(), f.Localities) {
		return false
	}
	return containsAny(o.Streets(), f.Streets)
}

// Apply returns the outages that match, in their original order.
func (f *Filter) Apply(outages []outage.Outage) []outage.Outage {
	if f.IsEmpty() {
		return outages
	}

	filtered := make([]outage.Outage, 0, len(outages))
	for _, o := range outages {
		if f.Matches(o) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// containsAny reports whether s contains one of needles, ignoring case.
// An empty needle list matches everything.
func containsAny(s string, needles []string) bool {
	if len(needles) == 0 {
		return true
	}
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
