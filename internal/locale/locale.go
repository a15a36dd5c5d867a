// Package locale renders dates and labels the way a pt-BR reader expects.
package locale

import (
	"time"

	"github.com/username/dias-uteis/internal/holiday"
)

// NoHolidaysMessage is shown when a selected range holds no holiday
const NoHolidaysMessage = "Nenhum feriado ou folga no período selecionado."

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var weekdayAbbrevs = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// MonthName returns the Portuguese month name
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// WeekdayAbbrev returns the three letter weekday abbreviation
func WeekdayAbbrev(d time.Weekday) string {
	return weekdayAbbrevs[d%7]
}

// WeekdayHeaders returns the grid header row, Sunday first
func WeekdayHeaders() []string {
	return weekdayAbbrevs[:]
}

// FormatDate formats as DD/MM/YYYY
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// BadgeLabel is the text shown on a jurisdiction badge
func BadgeLabel(j holiday.Jurisdiction) string {
	switch j {
	case holiday.JurisdictionNational:
		return "Nacional"
	case holiday.JurisdictionMunicipal:
		return "Municipal (São Paulo)"
	case holiday.JurisdictionState:
		return "Estadual (SP)"
	default:
		return "Folga"
	}
}

// BadgeClass is the stylesheet class of a jurisdiction badge
func BadgeClass(j holiday.Jurisdiction) string {
	switch j {
	case holiday.JurisdictionNational:
		return "national"
	case holiday.JurisdictionMunicipal:
		return "municipal"
	case holiday.JurisdictionState:
		return "state"
	default:
		return "personal"
	}
}
