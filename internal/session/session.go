// Package session owns the mutable state of one calendar user: displayed
// year, edit mode, hours per day, overlay and selection.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/dias-uteis/internal/calendar"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/overlay"
	"github.com/username/dias-uteis/internal/selection"
	"github.com/username/dias-uteis/internal/workdays"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultMaxRangeYears bounds a selected range when Defaults leaves it unset
const DefaultMaxRangeYears = 10

// ErrRangeTooLong is returned when closing a range would exceed the
// session's maximum span. The selection is left unchanged.
var ErrRangeTooLong = errors.New("selected range is too long")

// Defaults are applied to every new session
type Defaults struct {
	Year          int
	HoursPerDay   decimal.Decimal
	MaxRangeYears int // 0 = DefaultMaxRangeYears
}

// Session is safe for concurrent use. Every operation runs to completion
// under the session lock.
type Session struct {
	mu sync.Mutex

	id          string
	holidays    *holiday.Calendar
	overlay     *overlay.Store
	selection   selection.Selection
	year        int
	editMode    bool
	hoursInput  string
	hoursPerDay decimal.Decimal
	maxRange    int
	lastSeen    time.Time

	now    func() time.Time
	logger *zap.Logger
}

// View is a consistent snapshot of a session
type View struct {
	ID              string
	Year            int
	EditMode        bool
	HoursInput      string
	HoursPerDay     decimal.Decimal
	State           selection.State
	Start           *time.Time
	End             *time.Time
	Summary         workdays.Result
	Personal        []string
	WorkingWeekends []string
	Today           time.Time

	// Months is only filled by Page
	Months []*calendar.MonthInfo
}

func newSession(id string, holidays *holiday.Calendar, defaults Defaults, now func() time.Time, logger *zap.Logger) *Session {
	hours := defaults.HoursPerDay
	if !hours.IsPositive() {
		hours = workdays.DefaultHoursPerDay
	}
	maxRange := defaults.MaxRangeYears
	if maxRange <= 0 {
		maxRange = DefaultMaxRangeYears
	}
	logger = logger.With(zap.String("session", id))
	return &Session{
		id:          id,
		holidays:    holidays,
		overlay:     overlay.NewStore(holidays, logger),
		year:        defaults.Year,
		hoursInput:  hours.String(),
		hoursPerDay: hours,
		maxRange:    maxRange,
		lastSeen:    now(),
		now:         now,
		logger:      logger,
	}
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

func (s *Session) touch() {
	s.lastSeen = s.now()
}

func (s *Session) classifier() *calendar.Classifier {
	return calendar.NewClassifier(s.holidays, s.overlay, &s.selection, s.now())
}

// Click dispatches a day click: a toggle in edit mode, a selection step otherwise
func (s *Session) Click(date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.editMode {
		s.overlay.Toggle(date)
		return nil
	}
	_, err := s.advance(date)
	return err
}

// Toggle flips the overlay status of date regardless of edit mode
func (s *Session) Toggle(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.overlay.Toggle(date)
}

// Select advances the selection with date regardless of edit mode
func (s *Session) Select(date time.Time) (selection.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return s.advance(date)
}

func (s *Session) advance(date time.Time) (selection.State, error) {
	if s.selection.State() == selection.StateStart {
		lo, _ := s.selection.Start()
		hi := dateutil.Normalize(date)
		if hi.Before(lo) {
			lo, hi = hi, lo
		}
		if hi.After(lo.AddDate(s.maxRange, 0, 0)) {
			return s.selection.State(), fmt.Errorf("%w: more than %d years", ErrRangeTooLong, s.maxRange)
		}
	}

	state := s.selection.Click(date)
	s.logger.Debug("Selection advanced",
		zap.String("date", dateutil.Key(date)),
		zap.Stringer("state", state))
	return state, nil
}

// Clear empties the selection and drops every overlay change
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection.Reset()
	s.overlay.Clear()
	s.logger.Debug("Session cleared")
}

// SetEditMode switches between toggling holidays and selecting dates
func (s *Session) SetEditMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.editMode = on
}

// ToggleEditMode flips edit mode and returns the new value
func (s *Session) ToggleEditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.editMode = !s.editMode
	return s.editMode
}

// SetHours stores the raw input and the parsed hours per day. Invalid input
// falls back to the default without an error.
func (s *Session) SetHours(input string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.hoursInput = input
	s.hoursPerDay = workdays.ParseHoursPerDay(input)
	return s.hoursPerDay
}

// SetYear changes the displayed year. The selection and overlay are kept.
func (s *Session) SetYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.year = year
}

// ShiftYear moves the displayed year by delta unless the result would leave
// [lo, hi]. It returns the displayed year and whether it moved.
func (s *Session) ShiftYear(delta, lo, hi int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	year := s.year + delta
	if year < lo || year > hi {
		return s.year, false
	}
	s.year = year
	return s.year, true
}

// Month returns the month view of the given month
func (s *Session) Month(year int, month time.Month) *calendar.MonthInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return s.classifier().GetMonthInfo(year, month)
}

// Months returns the twelve month views of the displayed year
func (s *Session) Months() []*calendar.MonthInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return s.months(s.classifier())
}

// Snapshot returns the current state and the aggregate of the selection
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return s.snapshot(s.classifier())
}

// Page returns the snapshot together with the month views of the displayed
// year, all taken under one lock.
func (s *Session) Page() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	c := s.classifier()
	v := s.snapshot(c)
	v.Months = s.months(c)
	return v
}

func (s *Session) months(c *calendar.Classifier) []*calendar.MonthInfo {
	months := make([]*calendar.MonthInfo, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, c.GetMonthInfo(s.year, m))
	}
	return months
}

func (s *Session) snapshot(c *calendar.Classifier) View {
	v := View{
		ID:              s.id,
		Year:            s.year,
		EditMode:        s.editMode,
		HoursInput:      s.hoursInput,
		HoursPerDay:     s.hoursPerDay,
		State:           s.selection.State(),
		Summary:         workdays.Aggregate(&s.selection, s.hoursPerDay, c),
		Personal:        s.overlay.Personal(),
		WorkingWeekends: s.overlay.WorkingWeekends(),
		Today:           dateutil.Normalize(s.now()),
	}
	if start, ok := s.selection.Start(); ok {
		v.Start = &start
	}
	if end, ok := s.selection.End(); ok {
		v.End = &end
	}
	return v
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
