// Package export renders holidays as iCalendar feeds.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/locale"
	"github.com/username/dias-uteis/internal/workdays"
	"github.com/username/dias-uteis/pkg/dateutil"
)

// ProductID identifies the generator in every feed
const ProductID = "-//dias-uteis//Calendario//PT"

const uidDomain = "dias-uteis"

// Event is one all-day entry of a feed
type Event struct {
	Date   time.Time
	Name   string
	Badges []holiday.Jurisdiction
}

// FromEntries converts computed holidays to events
func FromEntries(entries []holiday.Entry) []Event {
	events := make([]Event, 0, len(entries))
	for _, e := range entries {
		events = append(events, Event{Date: e.Date, Name: e.Name, Badges: e.Jurisdictions})
	}
	return events
}

// FromResult converts the holiday listing of a selection to events
func FromResult(res workdays.Result) []Event {
	events := make([]Event, 0, len(res.Holidays))
	for _, row := range res.Holidays {
		events = append(events, Event{Date: row.Date, Name: row.Name, Badges: row.Badges})
	}
	return events
}

// Calendar builds a feed named name. stamp is used as DTSTAMP of every event.
func Calendar(name string, events []Event, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(name)

	for _, e := range events {
		date := dateutil.Normalize(e.Date)
		key := dateutil.Key(date)

		labels := make([]string, 0, len(e.Badges))
		for _, j := range e.Badges {
			labels = append(labels, locale.BadgeLabel(j))
		}

		event := cal.AddEvent(fmt.Sprintf("%s@%s", key, uidDomain))
		event.SetDtStampTime(stamp.UTC())
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetSummary(e.Name)
		if len(labels) > 0 {
			event.SetDescription(strings.Join(labels, ", "))
			event.AddProperty(ics.ComponentPropertyCategories, strings.Join(labels, ","))
		}
	}

	return cal
}

// HolidaysName is the feed name of a year's computed holidays
func HolidaysName(year int) string {
	return fmt.Sprintf("Feriados %d", year)
}

// SelectionName is the feed name of a selection listing
func SelectionName(res workdays.Result) string {
	if !res.HasRange {
		return "Feriados e folgas"
	}
	return fmt.Sprintf("Feriados e folgas %s a %s",
		locale.FormatDate(res.Start), locale.FormatDate(res.End))
}

// Write serializes cal to w
func Write(w io.Writer, cal *ics.Calendar) error {
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
