package adapthttp

import (
	"fmt"
	"net/http"
	"time"

	"wellness/internal/app"
	"wellness/internal/domain"
)

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		status, err := s.goals.Status(r.Context(), user.ID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, status)

	case http.MethodPut:
		var body struct {
			GoalType      string   `json:"goalType"`
			CurrentWeight *float64 `json:"currentWeight"`
			TargetWeight  *float64 `json:"targetWeight"`
			WeightUnit    string   `json:"weightUnit"`
			TargetDate    *string  `json:"targetDate"`
			WeeklyGoal    *float64 `json:"weeklyGoal"`
			ActivityLevel string   `json:"activityLevel"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		in := app.GoalInput{
			GoalType:      body.GoalType,
			CurrentWeight: body.CurrentWeight,
			TargetWeight:  body.TargetWeight,
			WeightUnit:    body.WeightUnit,
			WeeklyGoal:    body.WeeklyGoal,
			ActivityLevel: body.ActivityLevel,
		}
		if body.TargetDate != nil && *body.TargetDate != "" {
			td, err := parseDate(*body.TargetDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			in.TargetDate = &td
		}
		if _, err := s.goals.SetUserGoal(r.Context(), user.ID, in); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		status, err := s.goals.Status(r.Context(), user.ID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, status)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handleGoalHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	user := userFromContext(r)
	goals, err := s.goals.History(r.Context(), user.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if goals == nil {
		goals = []domain.UserGoal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": goals})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		view, err := s.calories.Profile(r.Context(), user.ID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	case http.MethodPut:
		var body struct {
			Sex           *string  `json:"sex"`
			BirthDate     *string  `json:"birthDate"`
			HeightCM      *float64 `json:"heightCm"`
			WeightLbs     *float64 `json:"weightLbs"`
			ActivityLevel *string  `json:"activityLevel"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		view, err := s.calories.UpdateProfile(r.Context(), user.ID, app.ProfileInput{
			Sex:           body.Sex,
			BirthDate:     body.BirthDate,
			HeightCM:      body.HeightCM,
			WeightLbs:     body.WeightLbs,
			ActivityLevel: body.ActivityLevel,
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

// parseDate accepts a calendar day, read in the server's zone, or a full
// RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
