package calendar

import (
	"time"

	"github.com/username/dias-uteis/internal/holiday"
)

// GridCells is the number of cells in a month grid (six weeks)
const GridCells = 42

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeOvertime
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeOvertime:
		return "overtime"
	default:
		return "unknown"
	}
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date      time.Time
	Key       string
	Type      DayType
	IsWorkday bool // counts toward the working-day total

	Weekend         bool // weekend not converted into a working day
	Today           bool
	Selected        bool // selection start or end
	InRange         bool
	Holiday         bool // effective holiday
	PersonalHoliday bool // effective holiday coming from the overlay
	Overtime        bool // weekend converted into a working day

	// Set only for effective holidays
	Name   string
	Badges []holiday.Jurisdiction
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	WorkDays      int
	Weekends      int
	Holidays      int
	Days          []DayInfo

	// Cells is the six-week grid, Sunday first; nil entries are blanks
	Cells []*DayInfo
}

// Calendar interface for classifying days
type Calendar interface {
	// IsWorkday checks if the given date counts as a working day
	IsWorkday(date time.Time) bool

	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) *MonthInfo

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) *DayInfo
}
