package daterange

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeRange_Accessors(t *testing.T) {
	start := time.Date(2022, 7, 8, 9, 10, 11, 0, time.UTC)
	end := time.Date(2022, 7, 8, 17, 0, 5, 0, time.UTC)

	r := New(start, end)
	if got := r.Start().Format(Layout); got != "2022-07-08 09:10:11" {
		t.Errorf("Start() = %s", got)
	}
	if got := r.End().Format(Layout); got != "2022-07-08 17:00:05" {
		t.Errorf("End() = %s", got)
	}
	if r.Inverted() {
		t.Error("Inverted() = true, want false")
	}

	r.SetStart(time.Date(2022, 7, 8, 18, 0, 0, 0, time.UTC))
	if !r.Inverted() {
		t.Error("Inverted() = false after moving start past end")
	}
	r.SetEnd(time.Date(2022, 7, 8, 19, 0, 0, 0, time.UTC))
	if got := r.String(); got != "2022-07-08 18:00:00 - 2022-07-08 19:00:00" {
		t.Errorf("String() = %q", got)
	}
}

func TestTimeRange_In(t *testing.T) {
	loc := time.FixedZone("MUT", 4*60*60)
	r := New(
		time.Date(2023, 5, 16, 8, 30, 0, 0, time.UTC),
		time.Date(2023, 5, 16, 16, 30, 0, 0, time.UTC),
	)

	got := r.In(loc)
	if got.Start().Location() != loc {
		t.Errorf("Start().Location() = %v, want %v", got.Start().Location(), loc)
	}
	if got.Start().Hour() != 8 || got.End().Hour() != 16 {
		t.Errorf("wall clock changed: %v", got)
	}
	if want := time.Date(2023, 5, 16, 4, 30, 0, 0, time.UTC); !got.Start().Equal(want) {
		t.Errorf("Start() = %v, want instant %v", got.Start(), want)
	}
}

func TestTimeRange_MarshalJSON(t *testing.T) {
	r := New(
		time.Date(2022, 8, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2022, 8, 7, 15, 0, 0, 0, time.UTC),
	)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"start":"2022-08-07 09:00:00","end":"2022-08-07 15:00:00"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
