package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeMessageError(w, err)
		return
	}
	if goals == nil {
		goals = []core.Goal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": goals})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title        string  `json:"title"`
		TargetAmount float64 `json:"targetAmount"`
		Deadline     string  `json:"deadline"`
		Category     string  `json:"category"`
		Color        string  `json:"color"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Date pickers submit a bare 2006-01-02 deadline; parseDate takes
	// either that or RFC3339.
	var deadline time.Time
	if body.Deadline != "" {
		var err error
		deadline, err = parseDate(body.Deadline)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid deadline")
			return
		}
	}

	g, err := s.goals.Create(r.Context(), userFrom(r.Context()).ID, services.CreateGoalInput{
		Title:        body.Title,
		TargetAmount: body.TargetAmount,
		Deadline:     deadline,
		Category:     body.Category,
		Color:        body.Color,
	})
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": g})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title         string  `json:"title"`
		TargetAmount  float64 `json:"targetAmount"`
		CurrentAmount float64 `json:"currentAmount"`
		Deadline      string  `json:"deadline"`
		Category      string  `json:"category"`
		Color         string  `json:"color"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := core.GoalPatch{
		Title:         body.Title,
		TargetAmount:  body.TargetAmount,
		CurrentAmount: body.CurrentAmount,
		Category:      body.Category,
		Color:         body.Color,
	}
	if body.Deadline != "" {
		deadline, err := parseDate(body.Deadline)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid deadline")
			return
		}
		patch.Deadline = deadline
	}

	g, err := s.goals.Update(r.Context(), r.PathValue("id"), userFrom(r.Context()).ID, patch)
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": g})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), r.PathValue("id"), userFrom(r.Context()).ID); err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
}

// handleContributeGoal adds to a goal's saved amount. The amount may
// arrive as a number or a numeric string.
func (s *Server) handleContributeGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount flexibleNumber `json:"amount"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	g, err := s.goals.Contribute(r.Context(), r.PathValue("id"), userFrom(r.Context()).ID, float64(body.Amount))
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": g})
}
