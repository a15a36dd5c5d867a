package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Index renders the twelve month calendar of the displayed year
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.Render(w, "index", PageData{View: sess.Page()}); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ClickForm handles a click on a day cell
func (h *Handler) ClickForm(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.FormValue("date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.session(w, r).Click(date); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	redirectHome(w, r)
}

// EditModeForm flips edit mode
func (h *Handler) EditModeForm(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).ToggleEditMode()
	redirectHome(w, r)
}

// ClearForm clears the selection and the overlay
func (h *Handler) ClearForm(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).Clear()
	redirectHome(w, r)
}

// HoursForm sets the hours per day
func (h *Handler) HoursForm(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).SetHours(r.FormValue("hours"))
	redirectHome(w, r)
}

// PrevYearForm shows the previous year; the first supported year stays put
func (h *Handler) PrevYearForm(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).ShiftYear(-1, MinYear, MaxYear)
	redirectHome(w, r)
}

// NextYearForm shows the next year
func (h *Handler) NextYearForm(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).ShiftYear(1, MinYear, MaxYear)
	redirectHome(w, r)
}
