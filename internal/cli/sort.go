package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/ceb-outages/internal/outage"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByTable    SortOrder = "table"
	SortByStart    SortOrder = "start"
	SortByLocality SortOrder = "locality"
)

func parseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortByTable, SortByStart, SortByLocality:
		return order, nil
	case "":
		return SortByTable, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'table', 'start' or 'locality')", s)
	}
}

// sortOutages sorts outages in place. SortByTable keeps the published order.
func sortOutages(outages []outage.Outage, order SortOrder) {
	switch order {
	case SortByStart:
		sort.SliceStable(outages, func(i, j int) bool {
			return outages[i].Date().Start().Before(outages[j].Date().Start())
		})
	case SortByLocality:
		sort.SliceStable(outages, func(i, j int) bool {
			li, lj := strings.ToLower(outages[i].Locality()), strings.ToLower(outages[j].Locality())
			if li != lj {
				return li < lj
			}
			// Same locality, earliest first
			return outages[i].Date().Start().Before(outages[j].Date().Start())
		})
	}
}
