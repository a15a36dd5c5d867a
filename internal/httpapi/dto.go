package httpapi

import (
	"encoding/json"
	"time"

	"github.com/username/dias-uteis/internal/calendar"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/locale"
	"github.com/username/dias-uteis/internal/session"
	"github.com/username/dias-uteis/internal/workdays"
	"github.com/username/dias-uteis/pkg/dateutil"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// BadgeDTO is one jurisdiction badge
type BadgeDTO struct {
	Jurisdiction string `json:"jurisdiction"`
	Label        string `json:"label"`
}

// HolidayDTO is one listed holiday
type HolidayDTO struct {
	Date          string     `json:"date"`
	FormattedDate string     `json:"formatted_date"`
	Name          string     `json:"name"`
	Badges        []BadgeDTO `json:"badges"`
}

// SelectionDTO is the selection state
type SelectionDTO struct {
	State string  `json:"state"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

// SummaryDTO is the aggregate of the selection
type SummaryDTO struct {
	WorkingDays  int          `json:"working_days"`
	WorkingHours string       `json:"working_hours"`
	Holidays     []HolidayDTO `json:"holidays"`
	Message      string       `json:"message,omitempty"`
}

// StateDTO is the whole session state
type StateDTO struct {
	Year            int          `json:"year"`
	EditMode        bool         `json:"edit_mode"`
	HoursInput      string       `json:"hours_input"`
	HoursPerDay     string       `json:"hours_per_day"`
	Selection       SelectionDTO `json:"selection"`
	Summary         SummaryDTO   `json:"summary"`
	Personal        []string     `json:"personal"`
	WorkingWeekends []string     `json:"working_weekends"`
	Today           string       `json:"today"`
}

// DayDTO is one day of a month view
type DayDTO struct {
	Date            string     `json:"date"`
	Day             int        `json:"day"`
	Weekday         string     `json:"weekday"`
	Type            string     `json:"type"`
	Workday         bool       `json:"workday"`
	Weekend         bool       `json:"weekend"`
	Today           bool       `json:"today"`
	Selected        bool       `json:"selected"`
	InRange         bool       `json:"in_range"`
	Holiday         bool       `json:"holiday"`
	PersonalHoliday bool       `json:"personal_holiday"`
	Overtime        bool       `json:"overtime"`
	Name            string     `json:"name,omitempty"`
	Badges          []BadgeDTO `json:"badges,omitempty"`
}

// MonthDTO is one month view
type MonthDTO struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	Name          string   `json:"name"`
	LeadingBlanks int      `json:"leading_blanks"`
	WorkDays      int      `json:"work_days"`
	Weekends      int      `json:"weekends"`
	Holidays      int      `json:"holidays"`
	Days          []DayDTO `json:"days"`
}

// EasterDTO lists the Easter based dates of a year
type EasterDTO struct {
	Year          int    `json:"year"`
	Easter        string `json:"easter"`
	GoodFriday    string `json:"good_friday"`
	CorpusChristi string `json:"corpus_christi"`
}

// HoursRequest sets the hours per day; numbers and strings are accepted
type HoursRequest struct {
	Hours any `json:"hours"`
}

// Input returns the raw hours text
func (r HoursRequest) Input() (string, bool) {
	switch v := r.Hours.(type) {
	case nil:
		return "", true
	case json.Number:
		return v.String(), true
	case string:
		return v, true
	default:
		return "", false
	}
}

// EditModeRequest switches edit mode
type EditModeRequest struct {
	Enabled bool `json:"enabled"`
}

// YearRequest sets the displayed year or moves it by delta
type YearRequest struct {
	Year  *int `json:"year,omitempty"`
	Delta int  `json:"delta,omitempty"`
}

func toBadgeDTOs(badges []holiday.Jurisdiction) []BadgeDTO {
	out := make([]BadgeDTO, 0, len(badges))
	for _, j := range badges {
		out = append(out, BadgeDTO{Jurisdiction: locale.BadgeClass(j), Label: locale.BadgeLabel(j)})
	}
	return out
}

func toSummaryDTO(res workdays.Result) SummaryDTO {
	dto := SummaryDTO{
		WorkingDays:  res.WorkingDays,
		WorkingHours: res.WorkingHours.String(),
		Holidays:     make([]HolidayDTO, 0, len(res.Holidays)),
	}
	for _, row := range res.Holidays {
		dto.Holidays = append(dto.Holidays, HolidayDTO{
			Date:          dateutil.Key(row.Date),
			FormattedDate: row.FormattedDate,
			Name:          row.Name,
			Badges:        toBadgeDTOs(row.Badges),
		})
	}
	if res.HasRange && len(res.Holidays) == 0 {
		dto.Message = locale.NoHolidaysMessage
	}
	return dto
}

func keyPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	k := dateutil.Key(*t)
	return &k
}

func toStateDTO(v session.View) StateDTO {
	return StateDTO{
		Year:        v.Year,
		EditMode:    v.EditMode,
		HoursInput:  v.HoursInput,
		HoursPerDay: v.HoursPerDay.String(),
		Selection: SelectionDTO{
			State: v.State.String(),
			Start: keyPtr(v.Start),
			End:   keyPtr(v.End),
		},
		Summary:         toSummaryDTO(v.Summary),
		Personal:        v.Personal,
		WorkingWeekends: v.WorkingWeekends,
		Today:           dateutil.Key(v.Today),
	}
}

func toDayDTO(d *calendar.DayInfo) DayDTO {
	dto := DayDTO{
		Date:            d.Key,
		Day:             d.Date.Day(),
		Weekday:         locale.WeekdayAbbrev(d.Date.Weekday()),
		Type:            d.Type.String(),
		Workday:         d.IsWorkday,
		Weekend:         d.Weekend,
		Today:           d.Today,
		Selected:        d.Selected,
		InRange:         d.InRange,
		Holiday:         d.Holiday,
		PersonalHoliday: d.PersonalHoliday,
		Overtime:        d.Overtime,
		Name:            d.Name,
	}
	if len(d.Badges) > 0 {
		dto.Badges = toBadgeDTOs(d.Badges)
	}
	return dto
}

func toMonthDTO(m *calendar.MonthInfo) MonthDTO {
	dto := MonthDTO{
		Year:          m.Year,
		Month:         int(m.Month),
		Name:          locale.MonthName(m.Month),
		LeadingBlanks: m.LeadingBlanks,
		WorkDays:      m.WorkDays,
		Weekends:      m.Weekends,
		Holidays:      m.Holidays,
		Days:          make([]DayDTO, 0, len(m.Days)),
	}
	for i := range m.Days {
		dto.Days = append(dto.Days, toDayDTO(&m.Days[i]))
	}
	return dto
}

func toHolidayDTOs(entries []holiday.Entry) []HolidayDTO {
	out := make([]HolidayDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, HolidayDTO{
			Date:          dateutil.Key(e.Date),
			FormattedDate: locale.FormatDate(e.Date),
			Name:          e.Name,
			Badges:        toBadgeDTOs(e.Jurisdictions),
		})
	}
	return out
}
