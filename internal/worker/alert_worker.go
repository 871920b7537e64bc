// Package worker contains the budget-alert worker: it turns alert
// messages into persisted notifications and sweeps the store as a backup
// for lost messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

type AlertWorker struct {
	notifications services.NotificationStore
	budgets       *services.BudgetService
	now           func() time.Time
}

// NewAlertWorker wires the notification store and a budget service used by
// the sweep. The budget service must not publish (nil publisher), or the
// sweep would feed the queue it backs up.
func NewAlertWorker(notifications services.NotificationStore, budgets *services.BudgetService) *AlertWorker {
	return &AlertWorker{
		notifications: notifications,
		budgets:       budgets,
		now:           time.Now,
	}
}

// HandleAlertMessage persists one consumed alert as a notification.
func (w *AlertWorker) HandleAlertMessage(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	n := core.Notification{
		ID:        uuid.NewString(),
		Category:  msg.Alert.Category,
		Message:   msg.Alert.Message,
		CreatedAt: w.now().UTC(),
	}
	if err := w.notifications.CreateNotification(ctx, &n); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	slog.InfoContext(ctx, "Persisted budget alert notification",
		"category", n.Category,
		"percentage", msg.Alert.Percentage)
	return nil
}

// Sweep recomputes the current alerts straight from the store and persists
// any that have no notification with the same message yet. This recovers
// alerts whose messages were lost between API and broker.
func (w *AlertWorker) Sweep(ctx context.Context) error {
	alerts, err := w.budgets.Alerts(ctx)
	if err != nil {
		return fmt.Errorf("recompute alerts: %w", err)
	}
	if len(alerts) == 0 {
		return nil
	}

	existing, err := w.notifications.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n.Message] = true
	}

	created := 0
	for _, alert := range alerts {
		if seen[alert.Message] {
			continue
		}
		n := core.Notification{
			ID:        uuid.NewString(),
			Category:  alert.Category,
			Message:   alert.Message,
			CreatedAt: w.now().UTC(),
		}
		if err := w.notifications.CreateNotification(ctx, &n); err != nil {
			slog.ErrorContext(ctx, "Failed to persist swept alert",
				"category", alert.Category, "error", err)
			continue
		}
		created++
	}

	if created > 0 {
		slog.InfoContext(ctx, "Sweep persisted missed alerts", "count", created)
	}
	return nil
}

// RunSweep runs Sweep every interval until ctx is done.
func (w *AlertWorker) RunSweep(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				slog.ErrorContext(ctx, "Alert sweep failed", "error", err)
			}
		}
	}
}
