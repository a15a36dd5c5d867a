package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/session"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

// SessionCookie carries the session id
const SessionCookie = "dias_uteis_session"

// Supported year range; the Easter computation needs the Gregorian calendar
const (
	MinYear = 1583
	MaxYear = 9999
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	sessions *session.Store
	holidays *holiday.Calendar
	pages    *Pages
	now      func() time.Time
	logger   *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(sessions *session.Store, holidays *holiday.Calendar, pages *Pages, logger *zap.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		holidays: holidays,
		pages:    pages,
		now:      time.Now,
		logger:   logger,
	}
}

// session returns the caller's session, creating one and setting the cookie
// when the request carries no known id.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	sess, created := h.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func validYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	if !validYear(year) {
		return 0, fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	return year, nil
}

// parseDate accepts the date formats of dateutil.ParseDate within the
// supported year range
func parseDate(s string) (time.Time, error) {
	date, err := dateutil.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if !validYear(date.Year()) {
		return time.Time{}, fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	return date, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
