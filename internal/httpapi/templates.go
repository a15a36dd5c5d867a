package httpapi

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/username/dias-uteis/internal/calendar"
	"github.com/username/dias-uteis/internal/httpapi/ui"
	"github.com/username/dias-uteis/internal/locale"
	"github.com/username/dias-uteis/internal/session"
)

const pageTemplateGlob = "gohtml/*.gohtml"

var tmplFuncs = template.FuncMap{
	"monthName":         locale.MonthName,
	"weekdayHeaders":    locale.WeekdayHeaders,
	"formatDate":        locale.FormatDate,
	"badgeLabel":        locale.BadgeLabel,
	"badgeClass":        locale.BadgeClass,
	"noHolidaysMessage": func() string { return locale.NoHolidaysMessage },
	"dayClass":          dayClass,
}

// PageData is handed to the index template
type PageData struct {
	View session.View
}

// Pages renders the server side pages
type Pages struct {
	tmpl *template.Template
}

// NewPages parses the embedded templates
func NewPages() (*Pages, error) {
	tmpl, err := template.New("base").Funcs(tmplFuncs).ParseFS(ui.Files, pageTemplateGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Pages{tmpl: tmpl}, nil
}

// Render executes the named template into a buffer first so that a failing
// template never produces half a page.
func (p *Pages) Render(w io.Writer, name string, data any) error {
	buf := new(bytes.Buffer)
	if err := p.tmpl.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// dayClass lists the stylesheet classes of a grid cell
func dayClass(d *calendar.DayInfo) string {
	classes := []string{"day"}
	if d.Weekend {
		classes = append(classes, "weekend")
	}
	if d.Today {
		classes = append(classes, "today")
	}
	if d.Selected {
		classes = append(classes, "selected")
	}
	if d.InRange {
		classes = append(classes, "in-range")
	}
	if d.Holiday {
		classes = append(classes, "holiday")
		if d.PersonalHoliday {
			classes = append(classes, "personal-holiday")
		}
	}
	if d.Overtime {
		classes = append(classes, "overtime")
	}
	return strings.Join(classes, " ")
}
