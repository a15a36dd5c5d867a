// Package workdays counts the working days and hours of a selected range and
// lists the holidays inside it.
package workdays

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/dias-uteis/internal/calendar"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/locale"
	"github.com/username/dias-uteis/pkg/dateutil"
)

// DefaultHoursPerDay applies when no valid value was entered
var DefaultHoursPerDay = decimal.NewFromInt(8)

// Ranger exposes a complete date range, if there is one
type Ranger interface {
	Range() (start, end time.Time, ok bool)
}

// Row is one holiday inside the selected range
type Row struct {
	Date          time.Time
	FormattedDate string
	Badges        []holiday.Jurisdiction
	Name          string
}

// Result is the aggregate of a selected range
type Result struct {
	HasRange     bool
	Start        time.Time
	End          time.Time
	WorkingDays  int
	WorkingHours decimal.Decimal
	Holidays     []Row
}

// ParseHoursPerDay parses a decimal written with either a dot or a single
// comma as separator ("7.5", "7,5"). Empty, invalid, zero or negative input
// yields DefaultHoursPerDay.
func ParseHoursPerDay(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultHoursPerDay
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return DefaultHoursPerDay
	}
	return d
}

// Aggregate computes the totals of the selection's range. Without a complete
// range the result is zero days, zero hours and no holidays.
func Aggregate(sel Ranger, hoursPerDay decimal.Decimal, days calendar.Calendar) Result {
	start, end, ok := sel.Range()
	if !ok {
		return Result{WorkingHours: decimal.Zero}
	}
	return AggregateRange(start, end, hoursPerDay, days)
}

// AggregateRange walks start..end inclusive. The ends are swapped if needed.
func AggregateRange(start, end time.Time, hoursPerDay decimal.Decimal, days calendar.Calendar) Result {
	start, end = dateutil.Normalize(start), dateutil.Normalize(end)
	if end.Before(start) {
		start, end = end, start
	}

	res := Result{
		HasRange: true,
		Start:    start,
		End:      end,
		Holidays: []Row{},
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		info := days.GetDayInfo(d)
		if info.IsWorkday {
			res.WorkingDays++
		}
		if info.Holiday && !info.Overtime {
			res.Holidays = append(res.Holidays, Row{
				Date:          info.Date,
				FormattedDate: locale.FormatDate(info.Date),
				Badges:        info.Badges,
				Name:          info.Name,
			})
		}
	}

	res.WorkingHours = decimal.NewFromInt(int64(res.WorkingDays)).Mul(hoursPerDay)
	return res
}
