// Package storage implements the record store on SQLite. Times are
// persisted as unix seconds; constraints the domain relies on (unique
// email, unique budget period, atomic goal contributions) live here.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports store reachability, used by the health endpoint.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ---- users ----

func (r *SQLiteRepository) CreateUser(ctx context.Context, u *core.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, monthly_income, currency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.MonthlyIncome, u.Currency,
		u.CreatedAt.Unix(), u.UpdatedAt.Unix())
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", u.Email, core.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (core.User, error) {
	var u core.User
	var createdAt, updatedAt int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.MonthlyIncome, &u.Currency, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return u, nil
}

const userColumns = `id, name, email, password_hash, monthly_income, currency, created_at, updated_at`

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scanUser(row)
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *SQLiteRepository) UpdateUser(ctx context.Context, u *core.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, monthly_income = ?, currency = ?, updated_at = ?
		 WHERE id = ?`,
		u.Name, u.Email, u.MonthlyIncome, u.Currency, u.UpdatedAt.Unix(), u.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", u.Email, core.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ---- transactions ----

const transactionColumns = `id, text, amount, category, date, created_at, updated_at`

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t *core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, text, amount, category, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Text, t.Amount, t.Category, t.Date.Unix(), t.CreatedAt.Unix(), t.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var date, createdAt, updatedAt int64
		if err := rows.Scan(&t.ID, &t.Text, &t.Amount, &t.Category, &date, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Date = time.Unix(date, 0).UTC()
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		t.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListTransactions returns all transactions sorted by date descending.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY date DESC, created_at DESC`)
}

// ListTransactionsSince returns transactions with date >= since, newest first.
func (r *SQLiteRepository) ListTransactionsSince(ctx context.Context, since time.Time) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE date >= ? ORDER BY date DESC, created_at DESC`,
		since.Unix())
}

// ListTransactionsBetween returns transactions with date in [start, end]
// inclusive, newest first.
func (r *SQLiteRepository) ListTransactionsBetween(ctx context.Context, start, end time.Time) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE date >= ? AND date <= ? ORDER BY date DESC, created_at DESC`,
		start.Unix(), end.Unix())
}

// ListTransactionsByCategory returns one category's transactions with date
// in [start, end), newest first. Used for a budget's derived spent value.
func (r *SQLiteRepository) ListTransactionsByCategory(ctx context.Context, category string, start, end time.Time) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE category = ? AND date >= ? AND date < ? ORDER BY date DESC, created_at DESC`,
		category, start.Unix(), end.Unix())
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ---- budgets ----

const budgetColumns = `id, category, amount, month, year, created_at, updated_at`

func (r *SQLiteRepository) scanBudget(row *sql.Row) (core.Budget, error) {
	var b core.Budget
	var createdAt, updatedAt int64
	err := row.Scan(&b.ID, &b.Category, &b.Amount, &b.Month, &b.Year, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("scan budget: %w", err)
	}
	b.CreatedAt = time.Unix(createdAt, 0).UTC()
	b.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return b, nil
}

// CreateBudget inserts a budget. The unique index on (category, month,
// year) makes duplicate periods a Conflict even under concurrent creates.
func (r *SQLiteRepository) CreateBudget(ctx context.Context, b *core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (id, category, amount, month, year, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Category, b.Amount, b.Month, b.Year, b.CreatedAt.Unix(), b.UpdatedAt.Unix())
	if isUniqueViolation(err) {
		return fmt.Errorf("budget %s %s %d: %w", b.Category, b.Month, b.Year, core.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

// ListBudgets returns the budgets for one calendar period.
func (r *SQLiteRepository) ListBudgets(ctx context.Context, month string, year int) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE month = ? AND year = ? ORDER BY created_at`,
		month, year)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var createdAt, updatedAt int64
		if err := rows.Scan(&b.ID, &b.Category, &b.Amount, &b.Month, &b.Year, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.CreatedAt = time.Unix(createdAt, 0).UTC()
		b.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateBudgetAmount replaces a budget's ceiling; category and period are
// immutable after creation.
func (r *SQLiteRepository) UpdateBudgetAmount(ctx context.Context, id string, amount float64, now time.Time) (core.Budget, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET amount = ?, updated_at = ? WHERE id = ?`,
		amount, now.Unix(), id)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Budget{}, core.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id)
	return r.scanBudget(row)
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ---- goals ----

const goalColumns = `id, user_id, title, target_amount, current_amount, deadline, category, is_completed, color, created_at, updated_at`

func scanGoalRow(scan func(...any) error) (core.Goal, error) {
	var g core.Goal
	var deadline, createdAt, updatedAt int64
	var completed int
	err := scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
		&deadline, &g.Category, &completed, &g.Color, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, core.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("scan goal: %w", err)
	}
	g.Deadline = time.Unix(deadline, 0).UTC()
	g.IsCompleted = completed != 0
	g.CreatedAt = time.Unix(createdAt, 0).UTC()
	g.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return g, nil
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g *core.Goal) error {
	completed := 0
	if g.IsCompleted {
		completed = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, title, target_amount, current_amount, deadline, category, is_completed, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.TargetAmount, g.CurrentAmount, g.Deadline.Unix(),
		g.Category, completed, g.Color, g.CreatedAt.Unix(), g.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

// ListGoals returns one user's goals, newest first.
func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		g, err := scanGoalRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetGoal looks a goal up by (id, owner); a goal belonging to another user
// is indistinguishable from a missing one.
func (r *SQLiteRepository) GetGoal(ctx context.Context, id, userID string) (core.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	return scanGoalRow(row.Scan)
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g *core.Goal) error {
	completed := 0
	if g.IsCompleted {
		completed = 1
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET title = ?, target_amount = ?, current_amount = ?, deadline = ?, category = ?, is_completed = ?, color = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		g.Title, g.TargetAmount, g.CurrentAmount, g.Deadline.Unix(), g.Category,
		completed, g.Color, g.UpdatedAt.Unix(), g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ContributeToGoal applies a contribution inside one SQL transaction so
// concurrent contributions to the same goal cannot lose updates.
func (r *SQLiteRepository) ContributeToGoal(ctx context.Context, id, userID string, amount float64, now time.Time) (core.Goal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Goal{}, fmt.Errorf("begin contribution: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	g, err := scanGoalRow(row.Scan)
	if err != nil {
		return core.Goal{}, err
	}

	g.Contribute(amount)
	g.UpdatedAt = now

	completed := 0
	if g.IsCompleted {
		completed = 1
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE goals SET current_amount = ?, is_completed = ?, updated_at = ? WHERE id = ?`,
		g.CurrentAmount, completed, g.UpdatedAt.Unix(), g.ID); err != nil {
		return core.Goal{}, fmt.Errorf("apply contribution: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Goal{}, fmt.Errorf("commit contribution: %w", err)
	}
	return g, nil
}

// ---- notifications ----

func (r *SQLiteRepository) CreateNotification(ctx context.Context, n *core.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, category, message, created_at) VALUES (?, ?, ?, ?)`,
		n.ID, n.Category, n.Message, n.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListNotifications returns persisted alerts, newest first.
func (r *SQLiteRepository) ListNotifications(ctx context.Context) ([]core.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, message, created_at FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var out []core.Notification
	for rows.Next() {
		var n core.Notification
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Category, &n.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, n)
	}
	return out, rows.Err()
}
