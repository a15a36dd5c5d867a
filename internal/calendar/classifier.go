package calendar

import (
	"time"

	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/pkg/dateutil"
)

// Overlay is the view of the user's holiday overlay the classifier needs
type Overlay interface {
	InOverlay(date time.Time) bool
	EffectiveHoliday(date time.Time) bool
	EffectiveWeekend(date time.Time) bool
	IsOvertime(date time.Time) bool
}

// Selection is the view of the current date selection the classifier needs
type Selection interface {
	IsSelected(date time.Time) bool
	InRange(date time.Time) bool
}

// Classifier derives day and month information from the computed holidays,
// the overlay and the selection. It holds no state of its own and must be
// used under the lock of whoever owns the overlay and the selection.
type Classifier struct {
	holidays  *holiday.Calendar
	overlay   Overlay
	selection Selection
	today     time.Time
}

// NewClassifier creates a classifier. selection may be nil.
func NewClassifier(holidays *holiday.Calendar, overlay Overlay, selection Selection, today time.Time) *Classifier {
	return &Classifier{
		holidays:  holidays,
		overlay:   overlay,
		selection: selection,
		today:     dateutil.Normalize(today),
	}
}

// IsWorkday checks if the given date counts as a working day
func (c *Classifier) IsWorkday(date time.Time) bool {
	if c.overlay.IsOvertime(date) {
		return true
	}
	return !c.overlay.EffectiveWeekend(date) && !c.overlay.EffectiveHoliday(date)
}

// GetDayInfo returns detailed info for a specific day
func (c *Classifier) GetDayInfo(date time.Time) *DayInfo {
	date = dateutil.Normalize(date)

	info := &DayInfo{
		Date:      date,
		Key:       dateutil.Key(date),
		IsWorkday: c.IsWorkday(date),
		Weekend:   c.overlay.EffectiveWeekend(date),
		Today:     dateutil.IsSameDay(date, c.today),
		Holiday:   c.overlay.EffectiveHoliday(date),
		Overtime:  c.overlay.IsOvertime(date),
	}
	if c.selection != nil {
		info.Selected = c.selection.IsSelected(date)
		info.InRange = c.selection.InRange(date)
	}

	inOverlay := c.overlay.InOverlay(date)
	if info.Holiday {
		info.PersonalHoliday = inOverlay
		info.Name = holiday.Name(date)
		info.Badges = c.badges(date, inOverlay)
	}

	switch {
	case info.Overtime:
		info.Type = DayTypeOvertime
	case info.Holiday:
		info.Type = DayTypeHoliday
	case info.Weekend:
		info.Type = DayTypeWeekend
	default:
		info.Type = DayTypeWorkday
	}

	return info
}

// badges are computed from raw set membership minus overlay presence, which is
// not the same predicate as the effective holiday status.
func (c *Classifier) badges(date time.Time, inOverlay bool) []holiday.Jurisdiction {
	var out []holiday.Jurisdiction
	if !inOverlay {
		out = c.holidays.JurisdictionsOf(date)
	}
	if len(out) == 0 {
		out = []holiday.Jurisdiction{holiday.JurisdictionPersonal}
	}
	return out
}

// GetMonthInfo returns calendar info for the entire month
func (c *Classifier) GetMonthInfo(year int, month time.Month) *MonthInfo {
	first := dateutil.Date(year, month, 1)
	n := dateutil.DaysInMonth(year, month)

	info := &MonthInfo{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayInfo, 0, n),
		Cells:         make([]*DayInfo, GridCells),
	}

	for day := 1; day <= n; day++ {
		d := c.GetDayInfo(dateutil.Date(year, month, day))
		info.Days = append(info.Days, *d)

		switch d.Type {
		case DayTypeWorkday, DayTypeOvertime:
			info.WorkDays++
		case DayTypeWeekend:
			info.Weekends++
		case DayTypeHoliday:
			info.Holidays++
		}
	}

	for i := range info.Days {
		info.Cells[info.LeadingBlanks+i] = &info.Days[i]
	}

	return info
}

// Weeks splits the grid into rows of seven cells
func (m *MonthInfo) Weeks() [][]*DayInfo {
	weeks := make([][]*DayInfo, 0, GridCells/7)
	for i := 0; i < len(m.Cells); i += 7 {
		weeks = append(weeks, m.Cells[i:i+7])
	}
	return weeks
}
