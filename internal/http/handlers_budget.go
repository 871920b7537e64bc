package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.List(r.Context())
	if err != nil {
		writeMessageError(w, err)
		return
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": budgets})
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Month    string  `json:"month"`
		Year     int     `json:"year"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := s.budgets.Create(r.Context(), services.CreateBudgetInput{
		Category: body.Category,
		Amount:   body.Amount,
		Month:    body.Month,
		Year:     body.Year,
	})
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": b})
}

// handleUpdateBudget replaces the ceiling only; category and period are
// immutable.
func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := s.budgets.UpdateAmount(r.Context(), r.PathValue("id"), body.Amount)
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b})
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
}

func (s *Server) handleBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.budgets.Alerts(r.Context())
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": alerts})
}

// handleListNotifications returns persisted budget alerts, newest first.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.notifications.ListNotifications(r.Context())
	if err != nil {
		writeMessageError(w, err)
		return
	}
	if notifications == nil {
		notifications = []core.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": notifications})
}
