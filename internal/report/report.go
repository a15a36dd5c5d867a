// Package report prints calendar data as plain text for the command line.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/username/dias-uteis/internal/calendar"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/locale"
	"github.com/username/dias-uteis/internal/workdays"
)

// Grid markers
const (
	MarkHoliday  = '*'
	MarkOvertime = '+'
	MarkWeekend  = '.'
	MarkToday    = '!'
)

func badgeLabels(badges []holiday.Jurisdiction) string {
	labels := make([]string, 0, len(badges))
	for _, j := range badges {
		labels = append(labels, locale.BadgeLabel(j))
	}
	return strings.Join(labels, ", ")
}

// WriteSummary prints the totals of a range and its holiday listing
func WriteSummary(w io.Writer, res workdays.Result) error {
	if res.HasRange {
		fmt.Fprintf(w, "Período:     %s a %s\n", locale.FormatDate(res.Start), locale.FormatDate(res.End))
	}
	fmt.Fprintf(w, "Dias úteis:  %d\n", res.WorkingDays)
	fmt.Fprintf(w, "Horas úteis: %s\n\n", res.WorkingHours.String())

	if !res.HasRange {
		return nil
	}
	if len(res.Holidays) == 0 {
		_, err := fmt.Fprintln(w, locale.NoHolidaysMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Data\tTipo\tFeriado")
	for _, row := range res.Holidays {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.FormattedDate, badgeLabels(row.Badges), row.Name)
	}
	return tw.Flush()
}

// WriteHolidays prints the computed holidays of a year
func WriteHolidays(w io.Writer, entries []holiday.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Data\tDia\tTipo\tFeriado")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			locale.FormatDate(e.Date),
			locale.WeekdayAbbrev(e.Date.Weekday()),
			badgeLabels(e.Jurisdictions),
			e.Name)
	}
	return tw.Flush()
}

// WriteEaster prints Easter and the holidays derived from it
func WriteEaster(w io.Writer, year int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Páscoa\t%s\n", locale.FormatDate(holiday.Easter(year)))
	fmt.Fprintf(tw, "%s\t%s\n", holiday.SextaFeiraDaPaixao.Name, locale.FormatDate(holiday.GoodFriday(year)))
	fmt.Fprintf(tw, "%s\t%s\n", holiday.CorpusChristiDay.Name, locale.FormatDate(holiday.CorpusChristi(year)))
	return tw.Flush()
}

func marker(d *calendar.DayInfo) byte {
	switch {
	case d.Today:
		return MarkToday
	case d.Overtime:
		return MarkOvertime
	case d.Holiday:
		return MarkHoliday
	case d.Weekend:
		return MarkWeekend
	default:
		return ' '
	}
}

// WriteMonth prints a month grid, Sunday first, with a marker after each day
func WriteMonth(w io.Writer, m *calendar.MonthInfo) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", locale.MonthName(m.Month), m.Year)
	for i, h := range locale.WeekdayHeaders() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%-4s", h)
	}
	b.WriteString("\n")

	for _, week := range m.Weeks() {
		if !hasDay(week) {
			continue
		}
		cells := make([]string, 0, 7)
		for _, d := range week {
			if d == nil {
				cells = append(cells, "    ")
				continue
			}
			cells = append(cells, fmt.Sprintf("%3d%c", d.Date.Day(), marker(d)))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nDias úteis: %d  Fins de semana: %d  Feriados: %d\n", m.WorkDays, m.Weekends, m.Holidays)
	fmt.Fprintf(&b, "%c feriado  %c fim de semana trabalhado  %c fim de semana  %c hoje\n",
		MarkHoliday, MarkOvertime, MarkWeekend, MarkToday)

	_, err := io.WriteString(w, b.String())
	return err
}

func hasDay(week []*calendar.DayInfo) bool {
	for _, d := range week {
		if d != nil {
			return true
		}
	}
	return false
}

// DayLine describes a single day, e.g. for a toggled date
func DayLine(d *calendar.DayInfo) string {
	state := "dia útil"
	switch d.Type {
	case calendar.DayTypeHoliday:
		state = "feriado (" + d.Name + ")"
	case calendar.DayTypeWeekend:
		state = "fim de semana"
	case calendar.DayTypeOvertime:
		state = "fim de semana trabalhado"
	}
	return fmt.Sprintf("%s %s: %s", locale.WeekdayAbbrev(d.Date.Weekday()), locale.FormatDate(d.Date), state)
}
