package table

import (
	"errors"
	"testing"
)

const outageTable = `<h3>Black River</h3>
<table class="table table-sm fs-12" id="table-mauritius-blackriver">
    <thead>
        <th class="col bt-0">Date</th>
        <th class="col bt-0">Locality</th>
        <th class="col bt-0">Streets</th>
    </thead>
    <tbody>
<tr>
    <td class="align-top">Le mardi 16 mai 2023 de  08:30:00 à  16:30:00</td>
    <td class="align-top">  RIVIERE NOIRE </td>
    <td class="align-top">MORC RAMDANEE</td>
</tr>
<tr>
    <td class="align-top"></td>
    <td class="align-top"></td>
    <td class="align-top"></td>
</tr>
<tr>
    <td class="align-top">Le mercredi 17 mai 2023 de 09:00:00 à 11:00:00</td>
</tr>
    </tbody>
</table>
<table><tr><th>Other</th></tr><tr><td>ignored</td></tr></table>`

func TestExtract(t *testing.T) {
	rows, err := Extract(outageTable)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Extract() returned %d rows, want 3", len(rows))
	}

	first := rows[0]
	if got := first["Date"]; got != "Le mardi 16 mai 2023 de  08:30:00 à  16:30:00" {
		t.Errorf("rows[0][Date] = %q", got)
	}
	if got := first["Locality"]; got != "RIVIERE NOIRE" {
		t.Errorf("rows[0][Locality] = %q, want trimmed text", got)
	}
	if got := first["Streets"]; got != "MORC RAMDANEE" {
		t.Errorf("rows[0][Streets] = %q", got)
	}

	empty := rows[1]
	if v, ok := empty.Get("Date"); !ok || v != "" {
		t.Errorf("rows[1].Get(Date) = %q, %v, want empty and present", v, ok)
	}

	short := rows[2]
	if _, ok := short.Get("Locality"); ok {
		t.Error("rows[2] should not have a Locality column")
	}
	if _, ok := short.Get("Streets"); ok {
		t.Error("rows[2] should not have a Streets column")
	}
	if len(short) != 1 {
		t.Errorf("rows[2] has %d entries, want 1", len(short))
	}
}

func TestExtract_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantRows  int
		wantErr   error
		checkRows func(*testing.T, []Row)
	}{
		{
			name:    "no table",
			html:    `<h3>Moka</h3><p>Aucune coupure</p>`,
			wantErr: ErrNoTable,
		},
		{
			name:    "empty fragment",
			html:    "",
			wantErr: ErrNoTable,
		},
		{
			name:     "header only",
			html:     `<table><thead><tr><th>Date</th><th>Locality</th></tr></thead><tbody></tbody></table>`,
			wantRows: 0,
		},
		{
			name:     "first row used as header without th",
			html:     `<table><tr><td>Date</td><td>Locality</td></tr><tr><td>x</td><td>y</td></tr></table>`,
			wantRows: 1,
			checkRows: func(t *testing.T, rows []Row) {
				if rows[0]["Locality"] != "y" {
					t.Errorf("rows[0][Locality] = %q, want y", rows[0]["Locality"])
				}
			},
		},
		{
			name:     "extra cells are dropped",
			html:     `<table><tr><th>Date</th></tr><tr><td>a</td><td>b</td></tr></table>`,
			wantRows: 1,
			checkRows: func(t *testing.T, rows []Row) {
				if len(rows[0]) != 1 || rows[0]["Date"] != "a" {
					t.Errorf("rows[0] = %v, want map[Date:a]", rows[0])
				}
			},
		},
		{
			name:     "row without cells",
			html:     `<table><tr><th>Date</th></tr><tr></tr><tr><td>a</td></tr></table>`,
			wantRows: 2,
			checkRows: func(t *testing.T, rows []Row) {
				if len(rows[0]) != 0 {
					t.Errorf("rows[0] = %v, want empty", rows[0])
				}
				if rows[1]["Date"] != "a" {
					t.Errorf("rows[1][Date] = %q, want a", rows[1]["Date"])
				}
			},
		},
		{
			name:     "nested markup in cells",
			html:     `<table><tr><th>Streets</th></tr><tr><td><b>Royal</b> Road,<br>Church St</td></tr></table>`,
			wantRows: 1,
			checkRows: func(t *testing.T, rows []Row) {
				if rows[0]["Streets"] != "Royal Road,Church St" {
					t.Errorf("rows[0][Streets] = %q", rows[0]["Streets"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Extract(tt.html)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Extract() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if len(rows) != tt.wantRows {
				t.Fatalf("Extract() returned %d rows, want %d", len(rows), tt.wantRows)
			}
			if tt.checkRows != nil {
				tt.checkRows(t, rows)
			}
		})
	}
}
