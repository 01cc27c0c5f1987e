package filter

import (
	"testing"
	"time"

	"github.com/pfrederiksen/ceb-outages/internal/daterange"
	"github.com/pfrederiksen/ceb-outages/internal/outage"
)

func newOutage(year int, month time.Month, day, hour int, locality, streets string) outage.Outage {
	start := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return outage.NewOutage(daterange.New(start, start.Add(4*time.Hour)), locality, streets)
}

func mustDay(t *testing.T, s string, endOfDay bool) *time.Time {
	t.Helper()
	d, err := ParseDay(s, endOfDay)
	if err != nil {
		t.Fatalf("ParseDay(%q) error = %v", s, err)
	}
	return d
}

func TestFilter_Matches(t *testing.T) {
	// Saturday 20 May 2023
	saturday := newOutage(2023, time.May, 20, 9, "CUREPIPE", "Royal Road, Elizabeth Avenue")
	// Tuesday 16 May 2023
	tuesday := newOutage(2023, time.May, 16, 8, "RIVIERE NOIRE", "MORC RAMDANEE")

	tests := []struct {
		name   string
		filter func() *Filter
		outage outage.Outage
		want   bool
	}{
		{
			name:   "empty filter matches",
			filter: NewFilter,
			outage: tuesday,
			want:   true,
		},
		{
			name: "locality substring ignores case",
			filter: func() *Filter {
				f := NewFilter()
				f.Localities = []string{"riviere"}
				return f
			},
			outage: tuesday,
			want:   true,
		},
		{
			name: "locality mismatch",
			filter: func() *Filter {
				f := NewFilter()
				f.Localities = []string{"moka", "flacq"}
				return f
			},
			outage: tuesday,
			want:   false,
		},
		{
			name: "street match",
			filter: func() *Filter {
				f := NewFilter()
				f.Streets = []string{"elizabeth"}
				return f
			},
			outage: saturday,
			want:   true,
		},
		{
			name: "weekends only rejects tuesday",
			filter: func() *Filter {
				f := NewFilter()
				f.WeekendsOnly = true
				return f
			},
			outage: tuesday,
			want:   false,
		},
		{
			name: "weekends only accepts saturday",
			filter: func() *Filter {
				f := NewFilter()
				f.WeekendsOnly = true
				return f
			},
			outage: saturday,
			want:   true,
		},
		{
			name: "to bound is inclusive for the whole day",
			filter: func() *Filter {
				f := NewFilter()
				f.To = mustDay(t, "2023-05-16", true)
				return f
			},
			outage: tuesday,
			want:   true,
		},
		{
			name: "from bound excludes earlier outages",
			filter: func() *Filter {
				f := NewFilter()
				f.From = mustDay(t, "2023-05-17", false)
				return f
			},
			outage: tuesday,
			want:   false,
		},
		{
			name: "all criteria must hold",
			filter: func() *Filter {
				f := NewFilter()
				f.Localities = []string{"curepipe"}
				f.From = mustDay(t, "2023-05-21", false)
				return f
			},
			outage: saturday,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter().Matches(tt.outage); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	outages := []outage.Outage{
		newOutage(2023, time.May, 16, 8, "RIVIERE NOIRE", "MORC RAMDANEE"),
		newOutage(2023, time.May, 17, 8, "CUREPIPE", "Royal Road"),
		newOutage(2023, time.May, 18, 8, "Curepipe Road", "Church St"),
	}

	f := NewFilter()
	f.Localities = []string{"curepipe"}
	got := f.Apply(outages)

	if len(got) != 2 {
		t.Fatalf("Apply() returned %d outages, want 2", len(got))
	}
	if got[0].Streets() != "Royal Road" || got[1].Streets() != "Church St" {
		t.Errorf("Apply() did not keep order: %v, %v", got[0].Streets(), got[1].Streets())
	}

	if all := NewFilter().Apply(outages); len(all) != 3 {
		t.Errorf("empty filter returned %d outages, want 3", len(all))
	}
}

func TestParseDay(t *testing.T) {
	start := mustDay(t, "2023-05-16", false)
	if got := start.Format(daterange.Layout); got != "2023-05-16 00:00:00" {
		t.Errorf("start = %s", got)
	}

	end := mustDay(t, " 2023-05-16 ", true)
	if got := end.Format(daterange.Layout); got != "2023-05-16 23:59:59" {
		t.Errorf("end = %s", got)
	}

	for _, bad := range []string{"", "16/05/2023", "2023-13-01"} {
		if _, err := ParseDay(bad, false); err == nil {
			t.Errorf("ParseDay(%q) expected error", bad)
		}
	}
}
