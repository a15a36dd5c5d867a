package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/go-chi/chi/v5"
	"github.com/username/dias-uteis/internal/export"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

// GetState returns the session state and the aggregate of the selection
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStateDTO(h.session(w, r).Snapshot()))
}

// GetMonth returns one month view of the session
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month", fmt.Errorf("month must be between 1 and 12"))
		return
	}

	m := h.session(w, r).Month(year, time.Month(month))
	writeJSON(w, http.StatusOK, toMonthDTO(m))
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return time.Time{}, false
	}
	return date, true
}

// ClickDay dispatches a click on a day according to the edit mode
func (h *Handler) ClickDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	sess := h.session(w, r)
	if err := sess.Click(date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid range", err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(sess.Snapshot()))
}

// ToggleDay flips the holiday status of a day
func (h *Handler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	sess := h.session(w, r)
	sess.Toggle(date)
	writeJSON(w, http.StatusOK, toStateDTO(sess.Snapshot()))
}

// SelectDay advances the selection with a day
func (h *Handler) SelectDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	sess := h.session(w, r)
	if _, err := sess.Select(date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid range", err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(sess.Snapshot()))
}

// Clear clears the selection and the overlay
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.Clear()
	writeJSON(w, http.StatusOK, toStateDTO(sess.Snapshot()))
}

// SetHours sets the hours per day. Invalid values fall back to the default.
func (h *Handler) SetHours(w http.ResponseWriter, r *http.Request) {
	var req HoursRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err)
		return
	}
	input, ok := req.Input()
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request", fmt.Errorf("hours must be a number or a string"))
		return
	}

	sess := h.session(w, r)
	sess.SetHours(input)
	writeJSON(w, http.StatusOK, toStateDTO(sess.Snapshot()))
}

// SetEditMode switches edit mode
func (h *Handler) SetEditMode(w http.ResponseWriter, r *http.Request) {
	var req EditModeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err)
		return
	}

	sess := h.session(w, r)
	sess.SetEditMode(req.Enabled)
	writeJSON(w, http.StatusOK, toStateDTO(sess.Snapshot()))
}

// SetYear sets the displayed year, or moves it by delta
func (h *Handler) SetYear(w http.ResponseWriter, r *http.Request) {
	var req YearRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err)
		return
	}

	sess := h.session(w, r)
	switch {
	case req.Year != nil:
		if !validYear(*req.Year) {
			writeError(w, http.StatusBadRequest, "invalid year", fmt.Errorf("year must be between %d and %d", MinYear, MaxYear))
			return
		}
		sess.SetYear(*req.Year)
	case req.Delta != 0:
		if _, ok := sess.ShiftYear(req.Delta, MinYear, MaxYear); !ok {
			writeError(w, http.StatusBadRequest, "invalid year", fmt.Errorf("year must be between %d and %d", MinYear, MaxYear))
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "invalid request", fmt.Errorf("year or delta is required"))
		return
	}

	writeJSON(w, http.StatusOK, toStateDTO(sess.Snapshot()))
}

// queryYear reads ?year=, defaulting to the session's displayed year
func (h *Handler) queryYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return h.session(w, r).Snapshot().Year, true
	}
	year, err := parseYear(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return 0, false
	}
	return year, true
}

// ListHolidays returns the computed holidays of a year
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, ok := h.queryYear(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTOs(h.holidays.List(year)))
}

// GetEaster returns Easter and the holidays derived from it
func (h *Handler) GetEaster(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return
	}

	writeJSON(w, http.StatusOK, EasterDTO{
		Year:          year,
		Easter:        dateutil.Key(holiday.Easter(year)),
		GoodFriday:    dateutil.Key(holiday.GoodFriday(year)),
		CorpusChristi: dateutil.Key(holiday.CorpusChristi(year)),
	})
}

// HolidaysICS exports the computed holidays of a year
func (h *Handler) HolidaysICS(w http.ResponseWriter, r *http.Request) {
	year, ok := h.queryYear(w, r)
	if !ok {
		return
	}

	events := export.FromEntries(h.holidays.List(year))
	h.writeICS(w, fmt.Sprintf("feriados_%d.ics", year), export.Calendar(export.HolidaysName(year), events, h.now()))
}

// SelectionICS exports the holiday listing of the current selection
func (h *Handler) SelectionICS(w http.ResponseWriter, r *http.Request) {
	res := h.session(w, r).Snapshot().Summary
	events := export.FromResult(res)
	h.writeICS(w, "selecao.ics", export.Calendar(export.SelectionName(res), events, h.now()))
}

func (h *Handler) writeICS(w http.ResponseWriter, filename string, cal *ics.Calendar) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := export.Write(w, cal); err != nil {
		h.logger.Error("Failed to write calendar", zap.Error(err))
	}
}

// NotFound answers unknown routes
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found", nil)
}
