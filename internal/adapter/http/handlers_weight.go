package adapthttp

import (
	"net/http"
	"time"

	"wellness/internal/app"
	"wellness/internal/domain"
)

func (s *Server) handleWeightToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	user := userFromContext(r)
	today := localDayString(s.now())
	entry, err := s.weight.GetTodayWeight(r.Context(), user.ID, today)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "entry": entry})
}

func (s *Server) handleWeightLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	user := userFromContext(r)
	entry, err := s.weight.Latest(r.Context(), user.ID, r.URL.Query().Get("unit"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleWeightLogs(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		items, err := s.weight.ListRecent(r.Context(), user.ID, intQuery(r, "limit", 30))
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		if items == nil {
			items = []domain.WeightLog{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			Weight   float64    `json:"weight"`
			Unit     string     `json:"unit"`
			Notes    string     `json:"notes"`
			LoggedAt *time.Time `json:"loggedAt"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.weight.RecordWeight(r.Context(), user.ID, app.WeightInput{
			Weight:   body.Weight,
			Unit:     body.Unit,
			Notes:    body.Notes,
			LoggedAt: body.LoggedAt,
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleWeightLog(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var body struct {
			Weight *float64 `json:"weight"`
			Notes  *string  `json:"notes"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.weight.CorrectWeight(r.Context(), user.ID, id, domain.WeightLogPatch{
			Weight: body.Weight,
			Notes:  body.Notes,
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodDelete:
		if err := s.weight.DeleteWeight(r.Context(), user.ID, id); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		methodNotAllowed(w, http.MethodPatch, http.MethodDelete)
	}
}
