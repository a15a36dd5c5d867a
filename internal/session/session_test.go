package session

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/selection"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}
	logger := zap.NewNop()
	store := NewStore(holiday.NewCalendar(logger), Defaults{HoursPerDay: decimal.NewFromInt(8)}, logger, WithClock(clock.Now))
	return store, clock
}

func TestSession_Defaults(t *testing.T) {
	store, _ := newTestStore(t)
	v := store.New().Snapshot()

	assert.Equal(t, 2024, v.Year)
	assert.False(t, v.EditMode)
	assert.Equal(t, "8", v.HoursInput)
	assert.Equal(t, selection.StateEmpty, v.State)
	assert.False(t, v.Summary.HasRange)
	assert.Equal(t, 0, v.Summary.WorkingDays)
	assert.True(t, v.Summary.WorkingHours.IsZero())
	assert.Equal(t, dateutil.Date(2024, 1, 10), v.Today)
}

func TestSession_ClickSelectsOutsideEditMode(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.New()

	s.Click(dateutil.Date(2024, 1, 7))
	v := s.Snapshot()
	require.NotNil(t, v.Start)
	assert.Nil(t, v.End)
	assert.Equal(t, selection.StateStart, v.State)

	s.Click(dateutil.Date(2024, 1, 1))
	v = s.Snapshot()
	require.NotNil(t, v.End)
	assert.Equal(t, dateutil.Date(2024, 1, 1), *v.Start)
	assert.Equal(t, dateutil.Date(2024, 1, 7), *v.End)
	assert.Equal(t, 4, v.Summary.WorkingDays)
	assert.Equal(t, "32", v.Summary.WorkingHours.String())
	require.Len(t, v.Summary.Holidays, 1)
	assert.Equal(t, "01/01/2024", v.Summary.Holidays[0].FormattedDate)
}

func TestSession_ClickTogglesInEditMode(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.New()

	s.Select(dateutil.Date(2024, 1, 1))
	s.Select(dateutil.Date(2024, 1, 7))

	assert.True(t, s.ToggleEditMode())
	s.Click(dateutil.Date(2024, 1, 6))

	v := s.Snapshot()
	assert.Equal(t, selection.StateRange, v.State, "edit mode clicks must not move the selection")
	assert.Equal(t, []string{"2024-01-06"}, v.WorkingWeekends)
	assert.Equal(t, 5, v.Summary.WorkingDays)
	assert.Equal(t, "40", v.Summary.WorkingHours.String())
}

func TestSession_Clear(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.New()

	s.Toggle(dateutil.Date(2024, 1, 1))
	s.Toggle(dateutil.Date(2024, 1, 6))
	s.Select(dateutil.Date(2024, 1, 1))
	s.Select(dateutil.Date(2024, 1, 7))
	s.SetEditMode(true)

	s.Clear()

	v := s.Snapshot()
	assert.Equal(t, selection.StateEmpty, v.State)
	assert.Empty(t, v.Personal)
	assert.Empty(t, v.WorkingWeekends)
	assert.Equal(t, 0, v.Summary.WorkingDays)
	assert.True(t, v.EditMode, "clear keeps edit mode")
}

func TestSession_SetHours(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.New()
	s.Select(dateutil.Date(2024, 1, 1))
	s.Select(dateutil.Date(2024, 1, 7))

	assert.Equal(t, "7.5", s.SetHours("7.5").String())
	assert.Equal(t, "30", s.Snapshot().Summary.WorkingHours.String())

	assert.Equal(t, "8", s.SetHours("nada").String())
	v := s.Snapshot()
	assert.Equal(t, "nada", v.HoursInput)
	assert.Equal(t, "32", v.Summary.WorkingHours.String())
}

func TestSession_Year(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.New()
	s.Select(dateutil.Date(2024, 3, 1))

	year, ok := s.ShiftYear(1, 1583, 9999)
	assert.True(t, ok)
	assert.Equal(t, 2025, year)
	year, ok = s.ShiftYear(-2, 1583, 9999)
	assert.True(t, ok)
	assert.Equal(t, 2023, year)

	year, ok = s.ShiftYear(8000, 1583, 9999)
	assert.False(t, ok)
	assert.Equal(t, 2023, year, "an out of range shift keeps the year")

	s.SetYear(2030)

	v := s.Page()
	assert.Equal(t, 2030, v.Year)
	assert.Equal(t, selection.StateStart, v.State, "changing year keeps the selection")
	require.Len(t, v.Months, 12)
	assert.Equal(t, time.January, v.Months[0].Month)
	assert.Equal(t, 2030, v.Months[11].Year)
}

func TestSession_Month(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.New()

	m := s.Month(2024, time.January)
	assert.Equal(t, 1, m.LeadingBlanks)
	assert.Len(t, m.Days, 31)
	assert.True(t, m.Days[9].Today)
}

func TestStore_GetOrCreate(t *testing.T) {
	store, _ := newTestStore(t)

	s, created := store.GetOrCreate("")
	assert.True(t, created)

	again, created := store.GetOrCreate(s.ID())
	assert.False(t, created)
	assert.Same(t, s, again)

	_, created = store.GetOrCreate("unknown")
	assert.True(t, created)
	assert.Equal(t, 2, store.Len())
}

func TestStore_Sweep(t *testing.T) {
	store, clock := newTestStore(t)

	idle := store.New()
	clock.Advance(2 * time.Hour)
	active := store.New()

	assert.Equal(t, 1, store.Sweep(time.Hour))

	_, ok := store.Get(idle.ID())
	assert.False(t, ok)
	_, ok = store.Get(active.ID())
	assert.True(t, ok)
	assert.Equal(t, 0, store.Sweep(time.Hour))
}

func TestSession_Concurrent(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Toggle(dateutil.Date(2024, 2, 1+i))
			_ = s.Page()
		}(i)
	}
	wg.Wait()

	// Feb 3, 4, 10 and 11 are weekend days
	v := s.Snapshot()
	assert.Len(t, v.Personal, 12)
	assert.Len(t, v.WorkingWeekends, 4)
}

func TestSession_RangeCap(t *testing.T) {
	logger := zap.NewNop()
	store := NewStore(holiday.NewCalendar(logger), Defaults{MaxRangeYears: 2}, logger)
	s := store.New()

	_, err := s.Select(dateutil.Date(2024, 3, 1))
	require.NoError(t, err)

	_, err = s.Select(dateutil.Date(2026, 3, 2))
	assert.ErrorIs(t, err, ErrRangeTooLong)
	_, err = s.Select(dateutil.Date(2022, 2, 28))
	assert.ErrorIs(t, err, ErrRangeTooLong, "the cap applies before the start too")
	assert.ErrorIs(t, s.Click(dateutil.Date(2030, 1, 1)), ErrRangeTooLong)

	v := s.Snapshot()
	assert.Equal(t, selection.StateStart, v.State)
	assert.False(t, v.Summary.HasRange)

	state, err := s.Select(dateutil.Date(2026, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, selection.StateRange, state)

	// a new start is never capped
	state, err = s.Select(dateutil.Date(1990, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, selection.StateStart, state)
}

func TestSession_RangeCapDefault(t *testing.T) {
	store, _ := newTestStore(t)
	s := store.New()

	_, err := s.Select(dateutil.Date(2024, 1, 1))
	require.NoError(t, err)
	_, err = s.Select(dateutil.Date(2034, 1, 2))
	assert.ErrorIs(t, err, ErrRangeTooLong)
	_, err = s.Select(dateutil.Date(2034, 1, 1))
	assert.NoError(t, err)
}
