package services

import (
	"context"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

// In-memory fakes for the store interfaces. Slices keep insertion order;
// tests insert in the order the real store would return.

type fakeTransactionStore struct {
	transactions []core.Transaction
}

func (f *fakeTransactionStore) CreateTransaction(_ context.Context, t *core.Transaction) error {
	f.transactions = append([]core.Transaction{*t}, f.transactions...)
	return nil
}

func (f *fakeTransactionStore) ListTransactions(context.Context) ([]core.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeTransactionStore) ListTransactionsSince(_ context.Context, since time.Time) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, t := range f.transactions {
		if !t.Date.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) ListTransactionsBetween(_ context.Context, start, end time.Time) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, t := range f.transactions {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) DeleteTransaction(_ context.Context, id string) error {
	for i, t := range f.transactions {
		if t.ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

type fakeBudgetStore struct {
	budgets      []core.Budget
	transactions []core.Transaction
}

func (f *fakeBudgetStore) CreateBudget(_ context.Context, b *core.Budget) error {
	for _, existing := range f.budgets {
		if existing.Category == b.Category && existing.Month == b.Month && existing.Year == b.Year {
			return core.ErrConflict
		}
	}
	f.budgets = append(f.budgets, *b)
	return nil
}

func (f *fakeBudgetStore) ListBudgets(_ context.Context, month string, year int) ([]core.Budget, error) {
	var out []core.Budget
	for _, b := range f.budgets {
		if b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgetStore) UpdateBudgetAmount(_ context.Context, id string, amount float64, now time.Time) (core.Budget, error) {
	for i := range f.budgets {
		if f.budgets[i].ID == id {
			f.budgets[i].Amount = amount
			f.budgets[i].UpdatedAt = now
			return f.budgets[i], nil
		}
	}
	return core.Budget{}, core.ErrNotFound
}

func (f *fakeBudgetStore) DeleteBudget(_ context.Context, id string) error {
	for i, b := range f.budgets {
		if b.ID == id {
			f.budgets = append(f.budgets[:i], f.budgets[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeBudgetStore) ListTransactionsByCategory(_ context.Context, category string, start, end time.Time) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, t := range f.transactions {
		if t.Category == category && !t.Date.Before(start) && t.Date.Before(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeGoalStore struct {
	goals []core.Goal
}

func (f *fakeGoalStore) CreateGoal(_ context.Context, g *core.Goal) error {
	f.goals = append(f.goals, *g)
	return nil
}

func (f *fakeGoalStore) ListGoals(_ context.Context, userID string) ([]core.Goal, error) {
	var out []core.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) GetGoal(_ context.Context, id, userID string) (core.Goal, error) {
	for _, g := range f.goals {
		if g.ID == id && g.UserID == userID {
			return g, nil
		}
	}
	return core.Goal{}, core.ErrNotFound
}

func (f *fakeGoalStore) UpdateGoal(_ context.Context, g *core.Goal) error {
	for i := range f.goals {
		if f.goals[i].ID == g.ID && f.goals[i].UserID == g.UserID {
			f.goals[i] = *g
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeGoalStore) DeleteGoal(_ context.Context, id, userID string) error {
	for i, g := range f.goals {
		if g.ID == id && g.UserID == userID {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeGoalStore) ContributeToGoal(ctx context.Context, id, userID string, amount float64, now time.Time) (core.Goal, error) {
	g, err := f.GetGoal(ctx, id, userID)
	if err != nil {
		return core.Goal{}, err
	}
	g.Contribute(amount)
	g.UpdatedAt = now
	if err := f.UpdateGoal(ctx, &g); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

type fakeUserStore struct {
	users []core.User
}

func (f *fakeUserStore) CreateUser(_ context.Context, u *core.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return core.ErrConflict
		}
	}
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, core.ErrNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (core.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return core.User{}, core.ErrNotFound
}

func (f *fakeUserStore) UpdateUser(_ context.Context, u *core.User) error {
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = *u
			return nil
		}
	}
	return core.ErrNotFound
}

type capturePublisher struct {
	published []*amqp.BudgetAlertMessage
	err       error
}

func (p *capturePublisher) PublishBudgetAlert(_ context.Context, msg *amqp.BudgetAlertMessage) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}
