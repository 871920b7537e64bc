package worker

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

type memNotificationStore struct {
	notifications []core.Notification
}

func (m *memNotificationStore) CreateNotification(_ context.Context, n *core.Notification) error {
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memNotificationStore) ListNotifications(context.Context) ([]core.Notification, error) {
	return m.notifications, nil
}

type memBudgetStore struct {
	budgets      []core.Budget
	transactions []core.Transaction
}

func (m *memBudgetStore) CreateBudget(_ context.Context, b *core.Budget) error {
	m.budgets = append(m.budgets, *b)
	return nil
}

func (m *memBudgetStore) ListBudgets(_ context.Context, month string, year int) ([]core.Budget, error) {
	var out []core.Budget
	for _, b := range m.budgets {
		if b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBudgetStore) UpdateBudgetAmount(_ context.Context, id string, amount float64, _ time.Time) (core.Budget, error) {
	return core.Budget{}, core.ErrNotFound
}

func (m *memBudgetStore) DeleteBudget(_ context.Context, _ string) error {
	return core.ErrNotFound
}

func (m *memBudgetStore) ListTransactionsByCategory(_ context.Context, category string, start, end time.Time) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, t := range m.transactions {
		if t.Category == category && !t.Date.Before(start) && t.Date.Before(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func TestHandleAlertMessage(t *testing.T) {
	store := &memNotificationStore{}
	w := NewAlertWorker(store, services.NewBudgetService(&memBudgetStore{}, nil))

	msg := amqp.NewBudgetAlertMessage(core.BudgetAlert{
		Category:   "Food",
		Budget:     500,
		Spent:      470,
		Percentage: "94.0",
		Message:    "You've used 94.0% of your Food budget!",
	})
	if err := w.HandleAlertMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleAlertMessage() error = %v", err)
	}

	if len(store.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(store.notifications))
	}
	n := store.notifications[0]
	if n.Category != "Food" || n.Message != msg.Alert.Message {
		t.Errorf("notification = %+v", n)
	}
	if n.ID == "" {
		t.Error("notification should get a minted ID")
	}
}

func TestSweepPersistsMissedAlerts(t *testing.T) {
	now := time.Now()
	budgetStore := &memBudgetStore{
		budgets: []core.Budget{
			{ID: "b-1", Category: "Food", Amount: 100, Month: now.Month().String(), Year: now.Year()},
			{ID: "b-2", Category: "Transport", Amount: 100, Month: now.Month().String(), Year: now.Year()},
		},
		transactions: []core.Transaction{
			{ID: "1", Category: "Food", Amount: -95, Date: now},
			{ID: "2", Category: "Transport", Amount: -10, Date: now},
		},
	}
	notifStore := &memNotificationStore{}
	w := NewAlertWorker(notifStore, services.NewBudgetService(budgetStore, nil))

	if err := w.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if len(notifStore.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1 (only Food is over threshold)", len(notifStore.notifications))
	}

	// A second sweep with unchanged spending is a no-op.
	if err := w.Sweep(context.Background()); err != nil {
		t.Fatalf("second Sweep() error = %v", err)
	}
	if len(notifStore.notifications) != 1 {
		t.Errorf("sweep must not duplicate existing notifications, got %d", len(notifStore.notifications))
	}
}
