package daterange

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the textual form used when printing or serialising instants.
const Layout = "2006-01-02 15:04:05"

// TimeRange is a pair of naive (zone-less) instants.
// The location of both values is time.UTC and carries no meaning.
// Start is not guaranteed to be before End.
type TimeRange struct {
	start time.Time
	end   time.Time
}

// New creates a TimeRange from two instants.
func New(start, end time.Time) TimeRange {
	return TimeRange{start: start, end: end}
}

// Start returns the beginning of the range.
func (r TimeRange) Start() time.Time {
	return r.start
}

// End returns the end of the range.
func (r TimeRange) End() time.Time {
	return r.end
}

// SetStart replaces the beginning of the range.
func (r *TimeRange) SetStart(start time.Time) {
	r.start = start
}

// SetEnd replaces the end of the range.
func (r *TimeRange) SetEnd(end time.Time) {
	r.end = end
}

// Inverted reports whether End is before Start, which happens for windows
// crossing midnight since both instants are pinned to the same date.
func (r TimeRange) Inverted() bool {
	return r.end.Before(r.start)
}

// In returns a copy whose instants keep the same wall clock but are
// anchored in loc.
func (r TimeRange) In(loc *time.Location) TimeRange {
	return TimeRange{start: reanchor(r.start, loc), end: reanchor(r.end, loc)}
}

func reanchor(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s - %s", r.start.Format(Layout), r.end.Format(Layout))
}

// MarshalJSON encodes the range as {"start": "...", "end": "..."} using Layout.
func (r TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{
		Start: r.start.Format(Layout),
		End:   r.end.Format(Layout),
	})
}
