package adapthttp

import (
	"net/http"

	"wellness/internal/app"
	"wellness/internal/domain"
)

func (s *Server) handleCalendarEvents(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		items, err := s.calendar.ListRange(r.Context(), user.ID, q.Get("start"), q.Get("end"))
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		if items == nil {
			items = []domain.CalendarEvent{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			Title             string `json:"title"`
			EventDate         string `json:"eventDate"`
			BalanceImpactType string `json:"balanceImpactType"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		ev, err := s.calendar.AddEvent(r.Context(), user.ID, app.EventInput{
			Title:  body.Title,
			Date:   body.EventDate,
			Impact: body.BalanceImpactType,
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"event": ev})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleCalendarEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user := userFromContext(r)
	if err := s.calendar.DeleteEvent(r.Context(), user.ID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleCalendarBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	user := userFromContext(r)
	balance, err := s.calendar.WeeklyBalance(r.Context(), user.ID, r.URL.Query().Get("weekStart"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}
