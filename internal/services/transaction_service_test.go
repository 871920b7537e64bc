package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateTransactionValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTransactionInput
		wantErr error
	}{
		{
			name:    "missing amount",
			input:   CreateTransactionInput{Text: "coffee", Category: "Food"},
			wantErr: core.ErrMissingAmount,
		},
		{
			name:    "empty text",
			input:   CreateTransactionInput{Amount: -4.5, HasAmount: true, Category: "Food"},
			wantErr: core.ErrEmptyText,
		},
		{
			name:    "whitespace text",
			input:   CreateTransactionInput{Text: "   ", Amount: -4.5, HasAmount: true, Category: "Food"},
			wantErr: core.ErrEmptyText,
		},
		{
			name:    "unknown category",
			input:   CreateTransactionInput{Text: "coffee", Amount: -4.5, HasAmount: true, Category: "Gadgets"},
			wantErr: core.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTransactionService(&fakeTransactionStore{})
			_, err := svc.Create(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateTransactionDefaults(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeTransactionStore{}
	svc := NewTransactionService(store)
	svc.now = fixedClock(now)

	got, err := svc.Create(context.Background(), CreateTransactionInput{
		Text: "coffee", Amount: -4.5, HasAmount: true, Category: "Food",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.ID == "" {
		t.Error("Create() should mint an ID")
	}
	if !got.Date.Equal(now) {
		t.Errorf("Date = %v, want creation instant %v", got.Date, now)
	}
	if len(store.transactions) != 1 {
		t.Fatalf("stored %d transactions, want 1", len(store.transactions))
	}

	// Explicit date is kept.
	date := now.AddDate(0, 0, -3)
	got, err = svc.Create(context.Background(), CreateTransactionInput{
		Text: "groceries", Amount: -30, HasAmount: true, Category: "Food", Date: date,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !got.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", got.Date, date)
	}
}

func TestBalanceFromLedger(t *testing.T) {
	store := &fakeTransactionStore{transactions: []core.Transaction{
		{ID: "1", Amount: 1000},
		{ID: "2", Amount: -49.99},
		{ID: "3", Amount: -0.01},
	}}
	svc := NewTransactionService(store)

	got, err := svc.Balance(context.Background())
	if err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	want := core.Balance{Total: "950.00", Income: "1000.00", Expense: "50.00"}
	if got != want {
		t.Errorf("Balance() = %+v, want %+v", got, want)
	}
}

func TestAnalyticsWindow(t *testing.T) {
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeTransactionStore{transactions: []core.Transaction{
		{ID: "in", Amount: -20, Category: "Food", Date: now.AddDate(0, 0, -2)},
		{ID: "edge", Amount: -5, Category: "Transport", Date: now.AddDate(0, 0, -7)},
		{ID: "out", Amount: -100, Category: "Shopping", Date: now.AddDate(0, 0, -10)},
	}}
	svc := NewTransactionService(store)
	svc.now = fixedClock(now)

	got, err := svc.Analytics(context.Background(), core.PeriodWeek)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if got.TotalSpent != 25 {
		t.Errorf("TotalSpent = %v, want 25 (week window)", got.TotalSpent)
	}
	if _, ok := got.CategorySpending["Shopping"]; ok {
		t.Error("transaction outside the week window must not count")
	}
	if got.Period != core.PeriodWeek {
		t.Errorf("Period = %q", got.Period)
	}
}

func TestReportInclusiveRange(t *testing.T) {
	store := &fakeTransactionStore{transactions: []core.Transaction{
		{ID: "1", Text: "salary", Amount: 1000, Category: "Income",
			Date: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "2", Text: "dinner", Amount: -40, Category: "Food",
			Date: time.Date(2024, time.January, 31, 20, 0, 0, 0, time.UTC)},
		{ID: "3", Text: "february", Amount: -10, Category: "Food",
			Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewTransactionService(store)

	got, err := svc.Report(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("Transactions = %d, want 2 (end day inclusive, next month excluded)", len(got.Transactions))
	}
	if got.Summary.NetSavings != 960 {
		t.Errorf("NetSavings = %v, want 960", got.Summary.NetSavings)
	}
	if got.Period.StartDate != "2024-01-01" || got.Period.EndDate != "2024-01-31" {
		t.Errorf("Period = %+v", got.Period)
	}
}

func TestReportBadDates(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{})
	if _, err := svc.Report(context.Background(), "not-a-date", "2024-01-31"); err == nil {
		t.Error("Report() should reject a malformed start date")
	}
	if _, err := svc.ReportCSV(context.Background(), "2024-01-01", "31/01/2024"); err == nil {
		t.Error("ReportCSV() should reject a malformed end date")
	}
}

func TestReportCSVRendering(t *testing.T) {
	store := &fakeTransactionStore{transactions: []core.Transaction{
		{ID: "1", Text: "Coffee", Amount: -4.5, Category: "Food",
			Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewTransactionService(store)

	got, err := svc.ReportCSV(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("ReportCSV() error = %v", err)
	}
	want := "Date,Description,Category,Amount\n2024-01-05,Coffee,Food,-4.5\n"
	if got != want {
		t.Errorf("ReportCSV() = %q, want %q", got, want)
	}
}
