package holiday

import (
	"testing"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

func TestEaster(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{1583, "1583-04-10"},
		{1818, "1818-03-22"},
		{1943, "1943-04-25"},
		{2000, "2000-04-23"},
		{2019, "2019-04-21"},
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
		{2038, "2038-04-25"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := dateutil.Key(Easter(tt.year)); got != tt.want {
				t.Errorf("Easter(%d) = %v, want %v", tt.year, got, tt.want)
			}
		})
	}
}

func TestEaster_AlwaysSundayInMarchOrApril(t *testing.T) {
	for year := 1583; year <= 3000; year++ {
		e := Easter(year)
		if e.Weekday() != time.Sunday {
			t.Fatalf("Easter(%d) = %v is a %v", year, dateutil.Key(e), e.Weekday())
		}
		if e.Month() != time.March && e.Month() != time.April {
			t.Fatalf("Easter(%d) = %v is not in March or April", year, dateutil.Key(e))
		}
		if e.Year() != year {
			t.Fatalf("Easter(%d) = %v has the wrong year", year, dateutil.Key(e))
		}
	}
}

func TestEaster_MatchesCalEasterOffset(t *testing.T) {
	ref := &cal.Holiday{Name: "Easter", Func: cal.CalcEasterOffset}
	for year := 1900; year <= 2100; year++ {
		actual, _ := ref.Calc(year)
		if !dateutil.IsSameDay(actual, Easter(year)) {
			t.Errorf("Easter(%d) = %v, cal says %v", year, dateutil.Key(Easter(year)), dateutil.Key(actual))
		}
	}
}

func TestMovableHolidays2024(t *testing.T) {
	if got := dateutil.Key(GoodFriday(2024)); got != "2024-03-29" {
		t.Errorf("GoodFriday(2024) = %v, want 2024-03-29", got)
	}
	if got := dateutil.Key(CorpusChristi(2024)); got != "2024-05-30" {
		t.Errorf("CorpusChristi(2024) = %v, want 2024-05-30", got)
	}
	if !National(2024).Has("2024-03-29") {
		t.Error("National(2024) is missing Good Friday")
	}
	if !Municipal(2024).Has("2024-05-30") {
		t.Error("Municipal(2024) is missing Corpus Christi")
	}
}

func TestSetSizes(t *testing.T) {
	for _, year := range []int{1999, 2023, 2024, 2025, 2026, 2030} {
		if n := National(year).Len(); n != 9 {
			t.Errorf("National(%d) has %d entries, want 9", year, n)
		}
		if n := Municipal(year).Len(); n != 3 {
			t.Errorf("Municipal(%d) has %d entries, want 3", year, n)
		}
		if n := State(year).Len(); n != 2 {
			t.Errorf("State(%d) has %d entries, want 2", year, n)
		}
	}
}

func TestSetSizes_GoodFridayOnTiradentes(t *testing.T) {
	// Easter 2000 was Apr 23, so Good Friday is Apr 21
	if n := National(2000).Len(); n != 8 {
		t.Errorf("National(2000) has %d entries, want 8", n)
	}
}

func TestSetsAreIndependent(t *testing.T) {
	m, s := Municipal(2024), State(2024)
	if !m.Has("2024-11-20") || !s.Has("2024-11-20") {
		t.Fatal("Nov 20 must be in both the municipal and the state set")
	}
	m.Remove("2024-11-20")
	if !State(2024).Has("2024-11-20") {
		t.Error("mutating one set must not affect a freshly built one")
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "Confraternização Universal"},
		{"2024-04-21", "Dia de Tiradentes"},
		{"2024-01-25", "Aniversário de São Paulo"},
		{"2024-11-20", "Dia da Consciência Negra"},
		{"2024-07-09", "Revolução Constitucionalista"},
		{"2024-12-25", "Natal"},
		{"2024-03-29", "Sexta-feira da Paixão"},
		{"2024-05-30", "Corpus Christi"},
		{"2024-03-15", "Folga"},
		{"2000-04-21", "Dia de Tiradentes"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := dateutil.ParseDate(tt.date)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if got := Name(d); got != tt.want {
				t.Errorf("Name(%v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestCalendar_Span(t *testing.T) {
	c := NewCalendar(zap.NewNop())

	span := c.Span(2024)
	for _, key := range []string{"2023-12-25", "2024-01-01", "2025-01-01", "2025-04-18"} {
		if !span.National.Has(key) {
			t.Errorf("Span(2024).National missing %s", key)
		}
	}
	if span.National.Has("2026-01-01") {
		t.Error("Span(2024) must stop at 2025")
	}
	if c.Span(2024) != span {
		t.Error("Span should be memoized")
	}
}

func TestCalendar_IsHolidayAndJurisdictions(t *testing.T) {
	c := NewCalendar(zap.NewNop())

	tests := []struct {
		date    time.Time
		holiday bool
		want    []Jurisdiction
	}{
		{dateutil.Date(2024, 1, 1), true, []Jurisdiction{JurisdictionNational}},
		{dateutil.Date(2024, 11, 20), true, []Jurisdiction{JurisdictionMunicipal, JurisdictionState}},
		{dateutil.Date(2024, 7, 9), true, []Jurisdiction{JurisdictionState}},
		{dateutil.Date(2024, 5, 30), true, []Jurisdiction{JurisdictionMunicipal}},
		{dateutil.Date(2024, 1, 2), false, nil},
	}

	for _, tt := range tests {
		t.Run(dateutil.Key(tt.date), func(t *testing.T) {
			if got := c.IsHoliday(tt.date); got != tt.holiday {
				t.Errorf("IsHoliday() = %v, want %v", got, tt.holiday)
			}
			got := c.JurisdictionsOf(tt.date)
			if len(got) != len(tt.want) {
				t.Fatalf("JurisdictionsOf() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("JurisdictionsOf()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCalendar_List(t *testing.T) {
	c := NewCalendar(zap.NewNop())

	entries := c.List(2024)
	// 9 national + 3 municipal + 2 state, Nov 20 shared
	if len(entries) != 13 {
		t.Fatalf("List(2024) returned %d entries, want 13", len(entries))
	}
	if entries[0].Name != "Confraternização Universal" {
		t.Errorf("first entry = %q, want Confraternização Universal", entries[0].Name)
	}
	for i := 1; i < len(entries); i++ {
		if !entries[i-1].Date.Before(entries[i].Date) {
			t.Errorf("entries not in date order at %d", i)
		}
	}
	for _, e := range entries {
		if dateutil.Key(e.Date) == "2024-11-20" && len(e.Jurisdictions) != 2 {
			t.Errorf("Nov 20 jurisdictions = %v, want municipal and state", e.Jurisdictions)
		}
	}

	y2000 := c.List(2000)
	for _, e := range y2000 {
		if dateutil.Key(e.Date) == "2000-04-21" && len(e.Jurisdictions) != 1 {
			t.Errorf("2000-04-21 jurisdictions = %v, want one national badge", e.Jurisdictions)
		}
	}
}

func TestJurisdictionString(t *testing.T) {
	if JurisdictionNational.String() != "National" || JurisdictionPersonal.String() != "Personal" {
		t.Error("unexpected jurisdiction names")
	}
}
