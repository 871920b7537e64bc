package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// TransactionService handles the transaction ledger and its derived
// aggregates (balance, analytics, reports).
type TransactionService struct {
	store TransactionStore
	now   func() time.Time
}

func NewTransactionService(store TransactionStore) *TransactionService {
	return &TransactionService{
		store: store,
		now:   time.Now,
	}
}

func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// CreateTransactionInput carries the caller-supplied transaction fields.
// A zero Date defaults to the creation instant.
type CreateTransactionInput struct {
	Text      string
	Amount    float64
	HasAmount bool
	Category  string
	Date      time.Time
}

func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (core.Transaction, error) {
	if !in.HasAmount {
		return core.Transaction{}, core.ErrMissingAmount
	}

	now := s.now().UTC()
	t := core.Transaction{
		ID:        uuid.NewString(),
		Text:      in.Text,
		Amount:    in.Amount,
		Category:  in.Category,
		Date:      in.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if t.Date.IsZero() {
		t.Date = now
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.CreateTransaction(ctx, &t); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTransaction(ctx, id)
}

// Balance reduces the full ledger into total, income and expense.
func (s *TransactionService) Balance(ctx context.Context) (core.Balance, error) {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return core.Balance{}, fmt.Errorf("load transactions: %w", err)
	}
	return core.ComputeBalance(transactions), nil
}

// Analytics builds the spending rollup for period (week, month or year;
// anything else falls back to month).
func (s *TransactionService) Analytics(ctx context.Context, period string) (core.Analytics, error) {
	start := core.PeriodStart(period, s.now())
	transactions, err := s.store.ListTransactionsSince(ctx, start)
	if err != nil {
		return core.Analytics{}, fmt.Errorf("load transactions: %w", err)
	}
	return core.ComputeAnalytics(period, transactions), nil
}

// Report summarizes the ledger over the inclusive [startDate, endDate]
// range; both bounds use the 2006-01-02 form.
func (s *TransactionService) Report(ctx context.Context, startDate, endDate string) (core.Report, error) {
	transactions, err := s.reportTransactions(ctx, startDate, endDate)
	if err != nil {
		return core.Report{}, err
	}
	return core.ComputeReport(startDate, endDate, transactions), nil
}

// ReportCSV renders the same range as CSV.
func (s *TransactionService) ReportCSV(ctx context.Context, startDate, endDate string) (string, error) {
	transactions, err := s.reportTransactions(ctx, startDate, endDate)
	if err != nil {
		return "", err
	}
	return core.ReportCSV(transactions), nil
}

func (s *TransactionService) reportTransactions(ctx context.Context, startDate, endDate string) ([]core.Transaction, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("parse start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date: %w", err)
	}
	// End bound is inclusive of the whole end day.
	end = end.AddDate(0, 0, 1).Add(-time.Second)

	transactions, err := s.store.ListTransactionsBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return transactions, nil
}
