package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// BudgetService manages monthly category budgets. Spent values are never
// stored; they are recomputed from the transaction ledger on every read.
type BudgetService struct {
	store     BudgetStore
	publisher AlertPublisher
	now       func() time.Time
}

// NewBudgetService wires the budget store and an optional alert publisher;
// a nil publisher keeps alerts working without a broker.
func NewBudgetService(store BudgetStore, publisher AlertPublisher) *BudgetService {
	return &BudgetService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// List returns the current calendar month's budgets with derived spent.
func (s *BudgetService) List(ctx context.Context) ([]core.Budget, error) {
	now := s.now()
	budgets, err := s.store.ListBudgets(ctx, now.Month().String(), now.Year())
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	for i := range budgets {
		spent, err := s.spentFor(ctx, budgets[i].Category, now)
		if err != nil {
			return nil, err
		}
		budgets[i].Spent = spent
	}
	return budgets, nil
}

// CreateBudgetInput carries the caller-supplied budget fields. Month and
// year default to the current calendar period when zero.
type CreateBudgetInput struct {
	Category string
	Amount   float64
	Month    string
	Year     int
}

func (s *BudgetService) Create(ctx context.Context, in CreateBudgetInput) (core.Budget, error) {
	if !core.ValidTransactionCategory(in.Category) {
		return core.Budget{}, core.ErrInvalidCategory
	}
	if in.Amount <= 0 {
		return core.Budget{}, core.ErrInvalidAmount
	}

	now := s.now().UTC()
	b := core.Budget{
		ID:        uuid.NewString(),
		Category:  in.Category,
		Amount:    in.Amount,
		Month:     in.Month,
		Year:      in.Year,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if b.Month == "" {
		b.Month = now.Month().String()
	}
	if b.Year == 0 {
		b.Year = now.Year()
	}

	if err := s.store.CreateBudget(ctx, &b); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

// UpdateAmount replaces a budget's ceiling and returns it with a fresh
// spent value.
func (s *BudgetService) UpdateAmount(ctx context.Context, id string, amount float64) (core.Budget, error) {
	if amount <= 0 {
		return core.Budget{}, core.ErrInvalidAmount
	}
	now := s.now()
	b, err := s.store.UpdateBudgetAmount(ctx, id, amount, now.UTC())
	if err != nil {
		return core.Budget{}, err
	}
	spent, err := s.spentFor(ctx, b.Category, now)
	if err != nil {
		return core.Budget{}, err
	}
	b.Spent = spent
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteBudget(ctx, id)
}

// Alerts evaluates the current month's budgets against the alert
// threshold. Every alert is also published to the broker, best effort:
// a publish failure never fails the read.
func (s *BudgetService) Alerts(ctx context.Context) ([]core.BudgetAlert, error) {
	now := s.now()
	budgets, err := s.store.ListBudgets(ctx, now.Month().String(), now.Year())
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	alerts := []core.BudgetAlert{}
	for _, b := range budgets {
		spent, err := s.spentFor(ctx, b.Category, now)
		if err != nil {
			return nil, err
		}
		alert := core.CheckAlert(b, spent)
		if alert == nil {
			continue
		}
		alerts = append(alerts, *alert)
		s.publishAlert(ctx, *alert)
	}
	return alerts, nil
}

func (s *BudgetService) publishAlert(ctx context.Context, alert core.BudgetAlert) {
	logger := log.FromContext(ctx)
	if s.publisher == nil {
		logger.WarnContext(ctx, "AMQP publisher not available, skipping alert message",
			log.FieldCategory, alert.Category)
		return
	}
	if err := s.publisher.PublishBudgetAlert(ctx, amqp.NewBudgetAlertMessage(alert)); err != nil {
		logger.ErrorContext(ctx, "Failed to publish budget alert",
			log.FieldCategory, alert.Category, log.FieldError, err)
	}
}

// spentFor sums |amount| over the category's transactions in now's
// calendar month.
func (s *BudgetService) spentFor(ctx context.Context, category string, now time.Time) (float64, error) {
	start, end := core.MonthBounds(now)
	transactions, err := s.store.ListTransactionsByCategory(ctx, category, start, end)
	if err != nil {
		return 0, fmt.Errorf("load %s transactions: %w", category, err)
	}
	return core.SpentAmount(transactions), nil
}
