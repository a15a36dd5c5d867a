package workdays

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/dias-uteis/internal/calendar"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/overlay"
	"github.com/username/dias-uteis/internal/selection"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

type fixture struct {
	overlay    *overlay.Store
	selection  *selection.Selection
	classifier *calendar.Classifier
}

func newFixture() *fixture {
	logger := zap.NewNop()
	holidays := holiday.NewCalendar(logger)
	f := &fixture{
		overlay:   overlay.NewStore(holidays, logger),
		selection: &selection.Selection{},
	}
	f.classifier = calendar.NewClassifier(holidays, f.overlay, f.selection, dateutil.Date(2024, 1, 1))
	return f
}

func (f *fixture) selectRange(start, end time.Time) {
	f.selection.Click(start)
	f.selection.Click(end)
}

func TestAggregate_FirstWeekOf2024(t *testing.T) {
	tests := []struct {
		name         string
		toggles      []time.Time
		wantDays     int
		wantHours    string
		wantHolidays []string
	}{
		{
			name:         "computed calendar",
			wantDays:     4,
			wantHours:    "32",
			wantHolidays: []string{"01/01/2024"},
		},
		{
			name:         "saturday worked",
			toggles:      []time.Time{dateutil.Date(2024, 1, 6)},
			wantDays:     5,
			wantHours:    "40",
			wantHolidays: []string{"01/01/2024"},
		},
		{
			name:         "new year worked",
			toggles:      []time.Time{dateutil.Date(2024, 1, 1)},
			wantDays:     5,
			wantHours:    "40",
			wantHolidays: nil,
		},
		{
			name:         "personal day off",
			toggles:      []time.Time{dateutil.Date(2024, 1, 3)},
			wantDays:     3,
			wantHours:    "24",
			wantHolidays: []string{"01/01/2024", "03/01/2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			for _, d := range tt.toggles {
				f.overlay.Toggle(d)
			}
			f.selectRange(dateutil.Date(2024, 1, 1), dateutil.Date(2024, 1, 7))

			res := Aggregate(f.selection, DefaultHoursPerDay, f.classifier)

			if !res.HasRange {
				t.Fatal("HasRange = false, want true")
			}
			if res.WorkingDays != tt.wantDays {
				t.Errorf("WorkingDays = %d, want %d", res.WorkingDays, tt.wantDays)
			}
			if got := res.WorkingHours.String(); got != tt.wantHours {
				t.Errorf("WorkingHours = %s, want %s", got, tt.wantHours)
			}
			if len(res.Holidays) != len(tt.wantHolidays) {
				t.Fatalf("Holidays = %d rows, want %d", len(res.Holidays), len(tt.wantHolidays))
			}
			for i, want := range tt.wantHolidays {
				if got := res.Holidays[i].FormattedDate; got != want {
					t.Errorf("Holidays[%d] = %s, want %s", i, got, want)
				}
			}
		})
	}
}

func TestAggregate_Rows(t *testing.T) {
	f := newFixture()
	f.overlay.Toggle(dateutil.Date(2024, 11, 21))
	f.selectRange(dateutil.Date(2024, 11, 30), dateutil.Date(2024, 11, 14))

	res := Aggregate(f.selection, decimal.RequireFromString("7.5"), f.classifier)

	// Nov 14..30: 12 weekdays minus Nov 15, Nov 20 and the personal Nov 21
	if res.WorkingDays != 9 {
		t.Errorf("WorkingDays = %d, want 9", res.WorkingDays)
	}
	if got := res.WorkingHours.String(); got != "67.5" {
		t.Errorf("WorkingHours = %s, want 67.5", got)
	}

	want := []struct {
		date   string
		name   string
		badges []holiday.Jurisdiction
	}{
		{"15/11/2024", holiday.ProclamacaoDaRepublica.Name, []holiday.Jurisdiction{holiday.JurisdictionNational}},
		{"20/11/2024", holiday.ConscienciaNegra.Name, []holiday.Jurisdiction{holiday.JurisdictionMunicipal, holiday.JurisdictionState}},
		{"21/11/2024", holiday.DefaultName, []holiday.Jurisdiction{holiday.JurisdictionPersonal}},
	}
	if len(res.Holidays) != len(want) {
		t.Fatalf("Holidays = %d rows, want %d", len(res.Holidays), len(want))
	}
	for i, w := range want {
		row := res.Holidays[i]
		if row.FormattedDate != w.date || row.Name != w.name {
			t.Errorf("Holidays[%d] = %s %q, want %s %q", i, row.FormattedDate, row.Name, w.date, w.name)
		}
		if len(row.Badges) != len(w.badges) {
			t.Errorf("Holidays[%d].Badges = %v, want %v", i, row.Badges, w.badges)
			continue
		}
		for j := range w.badges {
			if row.Badges[j] != w.badges[j] {
				t.Errorf("Holidays[%d].Badges = %v, want %v", i, row.Badges, w.badges)
			}
		}
	}
}

func TestAggregate_AcrossNewYear(t *testing.T) {
	f := newFixture()
	f.selectRange(dateutil.Date(2024, 12, 20), dateutil.Date(2025, 1, 10))

	res := Aggregate(f.selection, DefaultHoursPerDay, f.classifier)

	// 16 weekdays minus Dec 25 and Jan 1
	if res.WorkingDays != 14 {
		t.Errorf("WorkingDays = %d, want 14", res.WorkingDays)
	}
	if got := res.WorkingHours.String(); got != "112" {
		t.Errorf("WorkingHours = %s, want 112", got)
	}

	want := []struct {
		date string
		name string
	}{
		{"25/12/2024", holiday.Natal.Name},
		{"01/01/2025", holiday.ConfraternizacaoUniversal.Name},
	}
	if len(res.Holidays) != len(want) {
		t.Fatalf("Holidays = %v, want %d rows", res.Holidays, len(want))
	}
	for i, w := range want {
		row := res.Holidays[i]
		if row.FormattedDate != w.date || row.Name != w.name {
			t.Errorf("Holidays[%d] = %s %q, want %s %q", i, row.FormattedDate, row.Name, w.date, w.name)
		}
		if len(row.Badges) != 1 || row.Badges[0] != holiday.JurisdictionNational {
			t.Errorf("Holidays[%d].Badges = %v, want [National]", i, row.Badges)
		}
	}
}

func TestAggregate_WorkedWeekendHolidayNotListed(t *testing.T) {
	f := newFixture()
	// Sep 7 2024 is a Saturday
	f.overlay.Toggle(dateutil.Date(2024, 9, 7))
	f.selectRange(dateutil.Date(2024, 9, 7), dateutil.Date(2024, 9, 8))

	res := Aggregate(f.selection, DefaultHoursPerDay, f.classifier)
	if res.WorkingDays != 1 {
		t.Errorf("WorkingDays = %d, want 1", res.WorkingDays)
	}
	if len(res.Holidays) != 0 {
		t.Errorf("Holidays = %v, want none", res.Holidays)
	}
}

func TestAggregate_NoRange(t *testing.T) {
	f := newFixture()

	res := Aggregate(f.selection, DefaultHoursPerDay, f.classifier)
	if res.HasRange || res.WorkingDays != 0 || !res.WorkingHours.IsZero() || len(res.Holidays) != 0 {
		t.Errorf("Aggregate() on empty selection = %+v, want zero result", res)
	}

	f.selection.Click(dateutil.Date(2024, 1, 2))
	res = Aggregate(f.selection, DefaultHoursPerDay, f.classifier)
	if res.HasRange || res.WorkingDays != 0 {
		t.Errorf("Aggregate() with start only = %+v, want zero result", res)
	}
}

func TestAggregate_SingleDay(t *testing.T) {
	f := newFixture()
	f.selectRange(dateutil.Date(2024, 1, 2), dateutil.Date(2024, 1, 2))

	res := Aggregate(f.selection, DefaultHoursPerDay, f.classifier)
	if res.WorkingDays != 1 {
		t.Errorf("WorkingDays = %d, want 1", res.WorkingDays)
	}
}

func TestParseHoursPerDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8", "8"},
		{"7.5", "7.5"},
		{" 6 ", "6"},
		{"", "8"},
		{"abc", "8"},
		{"0", "8"},
		{"-4", "8"},
		{"7,5", "7.5"},
		{" 6,25 ", "6.25"},
		{"7,5,1", "8"},
		{"1.000,5", "8"},
		{"0,0", "8"},
	}
	for _, tt := range tests {
		if got := ParseHoursPerDay(tt.in).String(); got != tt.want {
			t.Errorf("ParseHoursPerDay(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
