// Package services orchestrates domain operations across the record store
// and the AMQP publisher.
package services

import (
	"context"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

// Store interfaces are declared here, on the consumer side, so services
// can be tested against in-memory fakes. *storage.SQLiteRepository
// satisfies all of them.

type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *core.Transaction) error
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsSince(ctx context.Context, since time.Time) ([]core.Transaction, error)
	ListTransactionsBetween(ctx context.Context, start, end time.Time) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type BudgetStore interface {
	CreateBudget(ctx context.Context, b *core.Budget) error
	ListBudgets(ctx context.Context, month string, year int) ([]core.Budget, error)
	UpdateBudgetAmount(ctx context.Context, id string, amount float64, now time.Time) (core.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
	ListTransactionsByCategory(ctx context.Context, category string, start, end time.Time) ([]core.Transaction, error)
}

type GoalStore interface {
	CreateGoal(ctx context.Context, g *core.Goal) error
	ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
	GetGoal(ctx context.Context, id, userID string) (core.Goal, error)
	UpdateGoal(ctx context.Context, g *core.Goal) error
	DeleteGoal(ctx context.Context, id, userID string) error
	ContributeToGoal(ctx context.Context, id, userID string, amount float64, now time.Time) (core.Goal, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *core.User) error
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
	GetUserByID(ctx context.Context, id string) (core.User, error)
	UpdateUser(ctx context.Context, u *core.User) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *core.Notification) error
	ListNotifications(ctx context.Context) ([]core.Notification, error)
}

// AlertPublisher pushes budget alerts onto the message broker. A nil
// publisher disables publishing without disabling alerts.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}
