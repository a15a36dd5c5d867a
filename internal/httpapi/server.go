package httpapi

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/username/dias-uteis/internal/httpapi/ui"
	"go.uber.org/zap"
)

// RouterOptions configures NewRouter
type RouterOptions struct {
	// CORSOrigins enables CORS for the JSON API when not empty
	CORSOrigins []string
	// Protect wraps every mutating route, e.g. with Basic Auth
	Protect func(http.Handler) http.Handler
	Logger  *zap.Logger
}

// NewRouter creates a new router with all routes configured.
//
// Reads are public. Every route that changes session state goes through
// opts.Protect.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	protect := opts.Protect
	if protect == nil {
		protect = func(next http.Handler) http.Handler { return next }
	}

	static, _ := fs.Sub(ui.Files, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// HTML pages
	r.Get("/", h.Index)
	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/click", h.ClickForm)
		r.Post("/edit-mode", h.EditModeForm)
		r.Post("/clear", h.ClearForm)
		r.Post("/hours", h.HoursForm)
		r.Post("/year/prev", h.PrevYearForm)
		r.Post("/year/next", h.NextYearForm)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		if len(opts.CORSOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   opts.CORSOrigins,
				AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
				AllowCredentials: true,
			}))
		}

		r.Get("/state", h.GetState)
		r.Get("/months/{year}/{month}", h.GetMonth)
		r.Get("/holidays", h.ListHolidays)
		r.Get("/holidays.ics", h.HolidaysICS)
		r.Get("/selection.ics", h.SelectionICS)
		r.Get("/easter/{year}", h.GetEaster)

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Route("/days/{date}", func(r chi.Router) {
				r.Post("/click", h.ClickDay)
				r.Post("/toggle", h.ToggleDay)
				r.Post("/select", h.SelectDay)
			})
			r.Post("/clear", h.Clear)
			r.Put("/hours", h.SetHours)
			r.Put("/edit-mode", h.SetEditMode)
			r.Put("/year", h.SetYear)
		})

		r.NotFound(h.NotFound)
	})

	return r
}
