package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.transactions.List(r.Context())
	if err != nil {
		transactionError(w, err)
		return
	}
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(transactions),
		"data":    transactions,
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text     string   `json:"text"`
		Amount   *float64 `json:"amount"`
		Category string   `json:"category"`
		Date     string   `json:"date"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeTransactionError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := services.CreateTransactionInput{
		Text:     body.Text,
		Category: body.Category,
	}
	if body.Amount != nil {
		in.Amount = *body.Amount
		in.HasAmount = true
	}
	if body.Date != "" {
		date, err := parseDate(body.Date)
		if err != nil {
			writeTransactionError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		in.Date = date
	}

	t, err := s.transactions.Create(r.Context(), in)
	if err != nil {
		transactionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": t})
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), r.PathValue("id")); err != nil {
		transactionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.transactions.Balance(r.Context())
	if err != nil {
		transactionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": balance})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = core.PeriodMonth
	}
	analytics, err := s.transactions.Analytics(r.Context(), period)
	if err != nil {
		transactionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": analytics})
}

// handleReport returns the date-range report as JSON, or as a CSV
// attachment when format=csv.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Format    string `json:"format"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeTransactionError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.StartDate == "" || body.EndDate == "" {
		writeTransactionError(w, http.StatusBadRequest, "Please provide start and end dates")
		return
	}
	for _, v := range []string{body.StartDate, body.EndDate} {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			writeTransactionError(w, http.StatusBadRequest, "Dates must use the YYYY-MM-DD format")
			return
		}
	}

	if body.Format == "csv" {
		csv, err := s.transactions.ReportCSV(r.Context(), body.StartDate, body.EndDate)
		if err != nil {
			transactionError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=expense-report.csv")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(csv))
		return
	}

	report, err := s.transactions.Report(r.Context(), body.StartDate, body.EndDate)
	if err != nil {
		transactionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": report})
}
