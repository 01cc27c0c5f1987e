package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/ceb-outages/internal/calendar"
	"github.com/pfrederiksen/ceb-outages/internal/outage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

func parseFormat(s string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, len(allowed))
	for i, f := range allowed {
		if f == format {
			return format, nil
		}
		names[i] = "'" + string(f) + "'"
	}
	return "", fmt.Errorf("invalid format: %s (must be %s)", s, strings.Join(names, " or "))
}

// RegionView controls how a region is printed.
type RegionView struct {
	Sort  SortOrder
	First bool
}

// RegionSummary is one line of the regions listing.
type RegionSummary struct {
	Name    string `json:"name"`
	Outages int    `json:"outages"`
}

// RegionsResult is the JSON shape of the regions listing.
type RegionsResult struct {
	Regions []RegionSummary `json:"regions"`
	Dropped []string        `json:"dropped,omitempty"`
}

// WriteRegions lists every region of the catalog with its outage count.
func WriteRegions(w io.Writer, c *outage.Catalog, format OutputFormat) error {
	result := RegionsResult{Regions: make([]RegionSummary, 0, c.Len())}
	for _, name := range c.Names() {
		region, err := c.Lookup(name)
		if err != nil {
			return err
		}
		result.Regions = append(result.Regions, RegionSummary{Name: name, Outages: region.Len()})
	}
	for _, f := range c.Failures() {
		result.Dropped = append(result.Dropped, f.Region)
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		if len(result.Regions) == 0 {
			fmt.Fprintln(w, "No regions found.")
		}
		for _, r := range result.Regions {
			fmt.Fprintf(w, "%-20s %d\n", r.Name, r.Outages)
		}
		if len(result.Dropped) > 0 {
			fmt.Fprintf(w, "\nDropped (parse errors): %s\n", strings.Join(result.Dropped, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteRegion writes one region in the specified format
func WriteRegion(w io.Writer, region outage.Region, format OutputFormat, view RegionView) error {
	outages := region.Outages()
	sortOutages(outages, view.Sort)
	if view.First && len(outages) > 1 {
		outages = outages[:1]
	}

	switch format {
	case FormatJSON:
		if view.First {
			if len(outages) == 0 {
				return fmt.Errorf("region %q has no outages", region.Name())
			}
			return writeJSON(w, outages[0])
		}
		return writeJSON(w, struct {
			Name    string          `json:"name"`
			Outages []outage.Outage `json:"outages"`
		}{region.Name(), outages})
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(outage.NewRegion(region.Name(), outages)))
		return err
	case FormatText:
		return writeText(w, region.Name(), outages)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs outages as human-readable text
func writeText(w io.Writer, name string, outages []outage.Outage) error {
	if len(outages) == 0 {
		fmt.Fprintf(w, "No outages scheduled for %s.\n", name)
		return nil
	}

	fmt.Fprintf(w, "%s (%d outages):\n", name, len(outages))
	for _, o := range outages {
		fmt.Fprintf(w, "  %s  %s\n", o.Date(), o.Locality())
		fmt.Fprintf(w, "       Streets: %s\n", o.Streets())
	}
	return nil
}
