package locale

import (
	"testing"
	"time"

	"github.com/username/dias-uteis/internal/holiday"
)

func TestMonthName(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Janeiro"},
		{time.March, "Março"},
		{time.December, "Dezembro"},
		{time.Month(13), ""},
	}
	for _, tt := range tests {
		if got := MonthName(tt.month); got != tt.want {
			t.Errorf("MonthName(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestWeekdays(t *testing.T) {
	if got := WeekdayAbbrev(time.Saturday); got != "Sáb" {
		t.Errorf("WeekdayAbbrev(Saturday) = %q, want Sáb", got)
	}
	headers := WeekdayHeaders()
	if len(headers) != 7 || headers[0] != "Dom" {
		t.Errorf("WeekdayHeaders() = %v", headers)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "06/01/2024" {
		t.Errorf("FormatDate() = %q, want 06/01/2024", got)
	}
}

func TestBadges(t *testing.T) {
	tests := []struct {
		j     holiday.Jurisdiction
		label string
		class string
	}{
		{holiday.JurisdictionNational, "Nacional", "national"},
		{holiday.JurisdictionMunicipal, "Municipal (São Paulo)", "municipal"},
		{holiday.JurisdictionState, "Estadual (SP)", "state"},
		{holiday.JurisdictionPersonal, "Folga", "personal"},
	}
	for _, tt := range tests {
		if got := BadgeLabel(tt.j); got != tt.label {
			t.Errorf("BadgeLabel(%v) = %q, want %q", tt.j, got, tt.label)
		}
		if got := BadgeClass(tt.j); got != tt.class {
			t.Errorf("BadgeClass(%v) = %q, want %q", tt.j, got, tt.class)
		}
	}
}
