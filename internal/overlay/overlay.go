// Package overlay keeps the user's manual changes on top of the computed
// holiday calendar: dates whose holiday status was flipped and weekend days
// converted into working days.
package overlay

import (
	"time"

	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

// HolidayChecker reports whether a date is a computed holiday
type HolidayChecker interface {
	IsHoliday(date time.Time) bool
}

// Store is not safe for concurrent use; it is owned by a single session.
type Store struct {
	holidays        HolidayChecker
	personal        holiday.DateSet
	workingWeekends holiday.DateSet
	logger          *zap.Logger
}

// NewStore creates an empty overlay on top of the given holidays
func NewStore(holidays HolidayChecker, logger *zap.Logger) *Store {
	return &Store{
		holidays:        holidays,
		personal:        holiday.NewDateSet(),
		workingWeekends: holiday.NewDateSet(),
		logger:          logger,
	}
}

// Toggle applies the edit-mode click rule to date.
//
// Weekend days move in and out of the working-weekend set; a computed holiday
// on such a weekend follows it into the personal overlay so that it is not
// listed as a holiday while worked. Weekdays flip their personal overlay
// membership, which suppresses a computed holiday or marks a day off.
func (s *Store) Toggle(date time.Time) {
	key := dateutil.Key(date)
	computed := s.IsComputedHoliday(date)

	if dateutil.IsWeekend(date) {
		if s.workingWeekends.Has(key) {
			s.workingWeekends.Remove(key)
			if computed {
				s.personal.Remove(key)
			}
		} else {
			s.workingWeekends.Add(key)
			if computed {
				s.personal.Add(key)
			}
		}
	} else if s.personal.Has(key) {
		s.personal.Remove(key)
	} else {
		s.personal.Add(key)
	}

	s.logger.Debug("Overlay toggled",
		zap.String("date", key),
		zap.Bool("computed_holiday", computed),
		zap.Bool("personal", s.personal.Has(key)),
		zap.Bool("working_weekend", s.workingWeekends.Has(key)))
}

// InOverlay reports whether date's holiday status differs from the computed one
func (s *Store) InOverlay(date time.Time) bool {
	return s.personal.Has(dateutil.Key(date))
}

// IsWorkingWeekend reports whether date was converted into a working day
func (s *Store) IsWorkingWeekend(date time.Time) bool {
	return s.workingWeekends.Has(dateutil.Key(date))
}

// IsComputedHoliday reports the holiday status before any overlay
func (s *Store) IsComputedHoliday(date time.Time) bool {
	return s.holidays.IsHoliday(date)
}

// EffectiveHoliday is the holiday status after the overlay: membership always
// inverts the computed default.
func (s *Store) EffectiveHoliday(date time.Time) bool {
	computed := s.IsComputedHoliday(date)
	if s.InOverlay(date) {
		return !computed
	}
	return computed
}

// EffectiveWeekend is true for Saturdays and Sundays not converted to work
func (s *Store) EffectiveWeekend(date time.Time) bool {
	return dateutil.IsWeekend(date) && !s.IsWorkingWeekend(date)
}

// IsOvertime reports a weekend day that is worked
func (s *Store) IsOvertime(date time.Time) bool {
	return dateutil.IsWeekend(date) && s.IsWorkingWeekend(date)
}

// Personal returns the overlay keys in date order
func (s *Store) Personal() []string {
	return s.personal.Keys()
}

// WorkingWeekends returns the converted weekend keys in date order
func (s *Store) WorkingWeekends() []string {
	return s.workingWeekends.Keys()
}

// Clear drops every manual change
func (s *Store) Clear() {
	s.personal = holiday.NewDateSet()
	s.workingWeekends = holiday.NewDateSet()
	s.logger.Debug("Overlay cleared")
}
