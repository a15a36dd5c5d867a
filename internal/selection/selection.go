package selection

import (
	"time"

	"github.com/username/dias-uteis/pkg/dateutil"
)

// State is the phase of the range selection
type State int

const (
	StateEmpty State = iota
	StateStart
	StateRange
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateRange:
		return "range"
	default:
		return "empty"
	}
}

// Selection is the working-day range picked by clicks.
// Invariant: when both ends are set, start <= end.
type Selection struct {
	start *time.Time
	end   *time.Time
}

// Click advances the selection with date:
// empty -> start, start -> ordered range, range -> new start.
func (s *Selection) Click(date time.Time) State {
	d := dateutil.Normalize(date)

	switch s.State() {
	case StateStart:
		start := *s.start
		if d.Before(start) {
			s.start, s.end = &d, &start
		} else {
			s.end = &d
		}
	default:
		s.start, s.end = &d, nil
	}

	return s.State()
}

// Reset returns the selection to empty
func (s *Selection) Reset() {
	s.start, s.end = nil, nil
}

// State returns the current phase
func (s *Selection) State() State {
	switch {
	case s.start == nil:
		return StateEmpty
	case s.end == nil:
		return StateStart
	default:
		return StateRange
	}
}

// Start returns the first selected date
func (s *Selection) Start() (time.Time, bool) {
	if s.start == nil {
		return time.Time{}, false
	}
	return *s.start, true
}

// End returns the last selected date; only set in the range state
func (s *Selection) End() (time.Time, bool) {
	if s.end == nil {
		return time.Time{}, false
	}
	return *s.end, true
}

// Range returns both ends when the range is complete
func (s *Selection) Range() (start, end time.Time, ok bool) {
	if s.State() != StateRange {
		return time.Time{}, time.Time{}, false
	}
	return *s.start, *s.end, true
}

// IsSelected reports whether date is one of the selected ends
func (s *Selection) IsSelected(date time.Time) bool {
	if s.start != nil && dateutil.IsSameDay(*s.start, date) {
		return true
	}
	return s.end != nil && dateutil.IsSameDay(*s.end, date)
}

// InRange reports whether date lies inside the complete range, ends included
func (s *Selection) InRange(date time.Time) bool {
	start, end, ok := s.Range()
	if !ok {
		return false
	}
	d := dateutil.Normalize(date)
	return !d.Before(start) && !d.After(end)
}
