package holiday

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultName labels a holiday with no known name (personal days off)
const DefaultName = "Folga"

// Jurisdiction identifies who declares a holiday
type Jurisdiction int

const (
	JurisdictionNational Jurisdiction = iota + 1
	JurisdictionMunicipal
	JurisdictionState
	JurisdictionPersonal
)

// Jurisdictions lists the computed jurisdictions in badge order
var Jurisdictions = []Jurisdiction{
	JurisdictionNational,
	JurisdictionMunicipal,
	JurisdictionState,
}

func (j Jurisdiction) String() string {
	switch j {
	case JurisdictionNational:
		return "National"
	case JurisdictionMunicipal:
		return "Municipal"
	case JurisdictionState:
		return "State"
	case JurisdictionPersonal:
		return "Personal"
	default:
		return fmt.Sprintf("Jurisdiction(%d)", int(j))
	}
}

// DateSet is a set of YYYY-MM-DD keys
type DateSet map[string]struct{}

// NewDateSet creates a set holding the given keys
func NewDateSet(keys ...string) DateSet {
	s := make(DateSet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

func (s DateSet) Add(key string)    { s[key] = struct{}{} }
func (s DateSet) Remove(key string) { delete(s, key) }
func (s DateSet) Len() int          { return len(s) }

func (s DateSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the keys in ascending (chronological) order
func (s DateSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Union returns a new set with the members of s and all others
func (s DateSet) Union(others ...DateSet) DateSet {
	out := make(DateSet, len(s))
	for k := range s {
		out.Add(k)
	}
	for _, o := range others {
		for k := range o {
			out.Add(k)
		}
	}
	return out
}

// National returns the national holidays of the year
func National(year int) DateSet { return build(year, nationalRules) }

// Municipal returns the São Paulo municipal holidays of the year
func Municipal(year int) DateSet { return build(year, municipalRules) }

// State returns the São Paulo state holidays of the year
func State(year int) DateSet { return build(year, stateRules) }

func build(year int, rules []*cal.Holiday) DateSet {
	s := make(DateSet, len(rules))
	for _, h := range rules {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		s.Add(dateutil.Key(actual))
	}
	return s
}

// Name returns the human readable name of a holiday on date. Fixed dates are
// matched by month and day, movable ones against the date's own year, and
// anything else is a personal day off.
func Name(date time.Time) string {
	if name, ok := fixedNames[dateutil.MonthDayKey(date)]; ok {
		return name
	}

	year := date.Year()
	if dateutil.IsSameDay(date, GoodFriday(year)) {
		return SextaFeiraDaPaixao.Name
	}
	if dateutil.IsSameDay(date, CorpusChristi(year)) {
		return CorpusChristiDay.Name
	}

	return DefaultName
}

func monthDay(month time.Month, day int) string {
	return fmt.Sprintf("%02d-%02d", int(month), day)
}

// Sets holds one holiday set per computed jurisdiction
type Sets struct {
	National  DateSet
	Municipal DateSet
	State     DateSet
}

// Of returns the set of the given jurisdiction
func (s *Sets) Of(j Jurisdiction) DateSet {
	switch j {
	case JurisdictionNational:
		return s.National
	case JurisdictionMunicipal:
		return s.Municipal
	case JurisdictionState:
		return s.State
	default:
		return nil
	}
}

// Contains reports whether key is a holiday in any jurisdiction
func (s *Sets) Contains(key string) bool {
	return s.National.Has(key) || s.Municipal.Has(key) || s.State.Has(key)
}

// Entry is one computed holiday with every jurisdiction observing it
type Entry struct {
	Date          time.Time
	Name          string
	Jurisdictions []Jurisdiction
}

// Calendar memoizes holiday sets by year. It is safe for concurrent use.
type Calendar struct {
	mu     sync.RWMutex
	years  map[int]*Sets
	spans  map[int]*Sets
	logger *zap.Logger
}

// NewCalendar creates a new holiday calendar
func NewCalendar(logger *zap.Logger) *Calendar {
	return &Calendar{
		years:  make(map[int]*Sets),
		spans:  make(map[int]*Sets),
		logger: logger,
	}
}

// Year returns the holiday sets of exactly one year
func (c *Calendar) Year(year int) *Sets {
	c.mu.RLock()
	sets, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return sets
	}

	sets = &Sets{
		National:  National(year),
		Municipal: Municipal(year),
		State:     State(year),
	}

	c.mu.Lock()
	c.years[year] = sets
	c.mu.Unlock()

	c.logger.Debug("Holiday sets computed",
		zap.Int("year", year),
		zap.Int("national", sets.National.Len()),
		zap.Int("municipal", sets.Municipal.Len()),
		zap.Int("state", sets.State.Len()))

	return sets
}

// Span returns the union of the holiday sets of year-1, year and year+1.
// Lookups for a date must go through the span of the date's year so that
// holidays near a year boundary are never evaluated against the wrong year.
func (c *Calendar) Span(year int) *Sets {
	c.mu.RLock()
	sets, ok := c.spans[year]
	c.mu.RUnlock()
	if ok {
		return sets
	}

	prev, cur, next := c.Year(year-1), c.Year(year), c.Year(year+1)
	sets = &Sets{
		National:  cur.National.Union(prev.National, next.National),
		Municipal: cur.Municipal.Union(prev.Municipal, next.Municipal),
		State:     cur.State.Union(prev.State, next.State),
	}

	c.mu.Lock()
	c.spans[year] = sets
	c.mu.Unlock()

	return sets
}

// IsHoliday reports whether date is a computed holiday in any jurisdiction
func (c *Calendar) IsHoliday(date time.Time) bool {
	return c.Span(date.Year()).Contains(dateutil.Key(date))
}

// JurisdictionsOf returns the jurisdictions whose set contains date
func (c *Calendar) JurisdictionsOf(date time.Time) []Jurisdiction {
	sets := c.Span(date.Year())
	key := dateutil.Key(date)

	var out []Jurisdiction
	for _, j := range Jurisdictions {
		if sets.Of(j).Has(key) {
			out = append(out, j)
		}
	}
	return out
}

// List returns every computed holiday of the year in date order
func (c *Calendar) List(year int) []Entry {
	byKey := make(map[string]*Entry)
	for _, j := range Jurisdictions {
		for _, h := range rulesFor(j) {
			actual, _ := h.Calc(year)
			if actual.IsZero() {
				continue
			}
			date := dateutil.Normalize(actual)
			key := dateutil.Key(date)

			e, ok := byKey[key]
			if !ok {
				e = &Entry{Date: date, Name: h.Name}
				byKey[key] = e
			}
			// Good Friday can land on Tiradentes; list the jurisdiction once
			if n := len(e.Jurisdictions); n > 0 && e.Jurisdictions[n-1] == j {
				continue
			}
			e.Jurisdictions = append(e.Jurisdictions, j)
		}
	}

	entries := make([]Entry, 0, len(byKey))
	for _, e := range byKey {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	c.logger.Debug("Holidays listed",
		zap.Int("year", year),
		zap.Int("count", len(entries)))

	return entries
}
