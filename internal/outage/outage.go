package outage

import (
	"encoding/json"
	"fmt"

	"github.com/pfrederiksen/ceb-outages/internal/daterange"
	"github.com/pfrederiksen/ceb-outages/internal/logger"
	"github.com/pfrederiksen/ceb-outages/internal/observability"
	"github.com/pfrederiksen/ceb-outages/internal/table"
)

// Column labels of the published outage tables.
const (
	ColumnDate     = "Date"
	ColumnLocality = "Locality"
	ColumnStreets  = "Streets"
)

// Placeholders used when a row has no locality or streets.
const (
	MissingLocality = "<locality missing>"
	MissingStreets  = "<streets missing>"
)

// Outage is one scheduled power interruption.
type Outage struct {
	date     daterange.TimeRange
	locality string
	streets  string
}

// NewOutage creates an Outage. Empty locality or streets are replaced by
// their placeholders.
func NewOutage(date daterange.TimeRange, locality, streets string) Outage {
	return Outage{
		date:     date,
		locality: orDefault(locality, MissingLocality),
		streets:  orDefault(streets, MissingStreets),
	}
}

func (o Outage) Date() daterange.TimeRange { return o.date }
func (o Outage) Locality() string          { return o.locality }
func (o Outage) Streets() string           { return o.streets }

func (o Outage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date     daterange.TimeRange `json:"date"`
		Locality string              `json:"locality"`
		Streets  string              `json:"streets"`
	}{o.date, o.locality, o.streets})
}

// Region is the ordered list of outages published for one region.
type Region struct {
	name    string
	outages []Outage
}

// NewRegion creates a Region holding a copy of outages.
func NewRegion(name string, outages []Outage) Region {
	return Region{name: name, outages: append(make([]Outage, 0, len(outages)), outages...)}
}

// Name returns the region key as published, e.g. "blackriver".
func (r Region) Name() string { return r.name }

// Len returns the number of outages.
func (r Region) Len() int { return len(r.outages) }

// Outages returns a copy of the outages in table order. The result is never
// nil, an empty region yields an empty slice.
func (r Region) Outages() []Outage {
	return append(make([]Outage, 0, len(r.outages)), r.outages...)
}

func (r Region) clone() Region {
	return Region{name: r.name, outages: r.Outages()}
}

func (r Region) MarshalJSON() ([]byte, error) {
	outages := r.outages
	if outages == nil {
		outages = []Outage{}
	}
	return json.Marshal(struct {
		Name    string   `json:"name"`
		Outages []Outage `json:"outages"`
	}{r.name, outages})
}

// ParseRegion parses one region's HTML fragment.
func ParseRegion(fragment string) (Region, error) {
	return parseRegion("", fragment, nil)
}

func parseRegion(name, fragment string, metrics *observability.Metrics) (Region, error) {
	rows, err := table.Extract(fragment)
	if err != nil {
		return Region{}, err
	}

	region := Region{name: name, outages: make([]Outage, 0, len(rows))}
	for i, row := range rows {
		if len(row) == 0 {
			logger.Warn("skipping empty row", logger.Fields{"region": name, "row": i})
			metrics.RowSkipped(observability.ReasonEmptyRow)
			continue
		}

		dateText, _ := row.Get(ColumnDate)
		if dateText == "" {
			logger.Warn("skipping row without date", logger.Fields{"region": name, "row": i})
			metrics.RowSkipped(observability.ReasonMissingDate)
			continue
		}

		date, err := daterange.Parse(dateText)
		if err != nil {
			return Region{}, fmt.Errorf("row %d: %w", i, err)
		}
		if date.Inverted() {
			logger.Warn("outage ends before it starts", logger.Fields{
				"region": name,
				"row":    i,
				"date":   dateText,
			})
			metrics.RangeInverted()
		}

		locality, _ := row.Get(ColumnLocality)
		streets, _ := row.Get(ColumnStreets)
		region.outages = append(region.outages, NewOutage(date, locality, streets))
	}

	return region, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
