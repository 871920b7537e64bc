package http

import (
	"net/http"
	"strings"
	"testing"
)

func createTransaction(t *testing.T, s *Server, text string, amount float64, category, date string) map[string]any {
	t.Helper()
	body := map[string]any{"text": text, "amount": amount, "category": category}
	if date != "" {
		body["date"] = date
	}
	rr := doRequest(t, s, http.MethodPost, "/api/transactions", "", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create transaction: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	data, _ := decodeBody(t, rr)["data"].(map[string]any)
	return data
}

func TestTransactionCreateAndList(t *testing.T) {
	s := newTestServer(t)

	created := createTransaction(t, s, "coffee", -4.5, "Food", "")
	if created["_id"] == "" || created["_id"] == nil {
		t.Error("created transaction should carry an id")
	}

	rr := doRequest(t, s, http.MethodGet, "/api/transactions", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["success"] != true || body["count"] != float64(1) {
		t.Errorf("list envelope = %v", body)
	}
	data, _ := body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("data = %v", body["data"])
	}
}

func TestTransactionCreateValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing amount", map[string]any{"text": "coffee", "category": "Food"}},
		{"empty text", map[string]any{"amount": -4.5, "category": "Food"}},
		{"unknown category", map[string]any{"text": "coffee", "amount": -4.5, "category": "Gadgets"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, s, http.MethodPost, "/api/transactions", "", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			body := decodeBody(t, rr)
			if body["success"] != false || body["error"] == nil {
				t.Errorf("error envelope = %v", body)
			}
		})
	}
}

func TestTransactionDeleteNotFound(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodDelete, "/api/transactions/missing", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if decodeBody(t, rr)["success"] != false {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestTransactionBalance(t *testing.T) {
	s := newTestServer(t)
	createTransaction(t, s, "salary", 1000, "Income", "")
	createTransaction(t, s, "coffee", -49.99, "Food", "")

	rr := doRequest(t, s, http.MethodGet, "/api/transactions/balance", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	data, _ := decodeBody(t, rr)["data"].(map[string]any)
	if data["total"] != "950.01" || data["income"] != "1000.00" || data["expense"] != "49.99" {
		t.Errorf("balance = %v", data)
	}
}

func TestTransactionAnalytics(t *testing.T) {
	s := newTestServer(t)
	createTransaction(t, s, "groceries", -120, "Food", "")
	createTransaction(t, s, "bus", -80, "Transport", "")

	rr := doRequest(t, s, http.MethodGet, "/api/transactions/analytics?period=month", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	data, _ := decodeBody(t, rr)["data"].(map[string]any)
	if data["totalSpent"] != float64(200) {
		t.Errorf("totalSpent = %v, want 200", data["totalSpent"])
	}
	top, _ := data["topCategory"].(map[string]any)
	if top["name"] != "Food" || top["amount"] != float64(120) {
		t.Errorf("topCategory = %v", top)
	}
	if data["averageSpending"] != float64(100) {
		t.Errorf("averageSpending = %v, want 100", data["averageSpending"])
	}
}

func TestTransactionReportJSON(t *testing.T) {
	s := newTestServer(t)
	createTransaction(t, s, "salary", 1000, "Income", "2024-01-01")
	createTransaction(t, s, "dinner", -40, "Food", "2024-01-15")

	rr := doRequest(t, s, http.MethodPost, "/api/transactions/report", "", map[string]any{
		"startDate": "2024-01-01", "endDate": "2024-01-31",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	data, _ := decodeBody(t, rr)["data"].(map[string]any)
	summary, _ := data["summary"].(map[string]any)
	if summary["totalIncome"] != float64(1000) || summary["totalExpense"] != float64(40) || summary["netSavings"] != float64(960) {
		t.Errorf("summary = %v", summary)
	}
}

func TestTransactionReportCSV(t *testing.T) {
	s := newTestServer(t)
	createTransaction(t, s, "Coffee", -4.5, "Food", "2024-01-05")

	rr := doRequest(t, s, http.MethodPost, "/api/transactions/report", "", map[string]any{
		"startDate": "2024-01-01", "endDate": "2024-01-31", "format": "csv",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "expense-report.csv") {
		t.Errorf("Content-Disposition = %q", got)
	}
	want := "Date,Description,Category,Amount\n2024-01-05,Coffee,Food,-4.5\n"
	if rr.Body.String() != want {
		t.Errorf("csv = %q, want %q", rr.Body.String(), want)
	}
}

func TestTransactionReportMissingDates(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodPost, "/api/transactions/report", "", map[string]any{
		"startDate": "2024-01-01",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	rr = doRequest(t, s, http.MethodPost, "/api/transactions/report", "", map[string]any{
		"startDate": "01/01/2024", "endDate": "2024-01-31",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed date: status = %d, want 400", rr.Code)
	}
}
