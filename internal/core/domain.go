package core

import (
	"errors"
	"strings"
	"time"
)

// Transaction categories form a closed set; a transaction outside it is
// rejected at creation.
var TransactionCategories = []string{
	"Food", "Transport", "Entertainment", "Utilities",
	"Healthcare", "Shopping", "Income", "Other",
}

// Goal categories. Unknown values fall back to DefaultGoalCategory.
var GoalCategories = []string{
	"Savings", "Vacation", "Emergency Fund", "Investment", "Education", "Other",
}

const (
	DefaultGoalCategory = "Savings"
	DefaultGoalColor    = "#3498db"
	DefaultCurrency     = "USD"
)

type (
	User struct {
		ID            string    `json:"_id"`
		Name          string    `json:"name"`
		Email         string    `json:"email"`
		PasswordHash  string    `json:"-"`
		MonthlyIncome float64   `json:"monthlyIncome"`
		Currency      string    `json:"currency"`
		CreatedAt     time.Time `json:"createdAt"`
		UpdatedAt     time.Time `json:"updatedAt"`
	}

	// Transaction is a single income (positive amount) or expense
	// (negative amount) record. Immutable once created.
	Transaction struct {
		ID        string    `json:"_id"`
		Text      string    `json:"text"`
		Amount    float64   `json:"amount"`
		Category  string    `json:"category"`
		Date      time.Time `json:"date"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	// Budget is a spending ceiling for one category in one calendar
	// month. Spent is derived on read and never persisted.
	Budget struct {
		ID        string    `json:"_id"`
		Category  string    `json:"category"`
		Amount    float64   `json:"amount"`
		Month     string    `json:"month"` // long month name, e.g. "January"
		Year      int       `json:"year"`
		Spent     float64   `json:"spent"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	Goal struct {
		ID            string    `json:"_id"`
		UserID        string    `json:"user"`
		Title         string    `json:"title"`
		TargetAmount  float64   `json:"targetAmount"`
		CurrentAmount float64   `json:"currentAmount"`
		Deadline      time.Time `json:"deadline"`
		Category      string    `json:"category"`
		IsCompleted   bool      `json:"isCompleted"`
		Color         string    `json:"color"`
		CreatedAt     time.Time `json:"createdAt"`
		UpdatedAt     time.Time `json:"updatedAt"`
	}

	// Notification is a persisted budget alert, written by the alert
	// worker.
	Notification struct {
		ID        string    `json:"_id"`
		Category  string    `json:"category"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")

	ErrMissingFields   = errors.New("name, email and password are required")
	ErrEmptyText       = errors.New("text description is required")
	ErrMissingAmount   = errors.New("amount is required")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidCategory = errors.New("invalid category")
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidTarget   = errors.New("target amount must be positive")
	ErrMissingDeadline = errors.New("deadline is required")
)

// ValidTransactionCategory reports whether c is in the closed category set.
func ValidTransactionCategory(c string) bool {
	for _, v := range TransactionCategories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidGoalCategory(c string) bool {
	for _, v := range GoalCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Validate checks the creation invariants for a transaction.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if !ValidTransactionCategory(t.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// Validate checks the creation invariants for a goal.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.TargetAmount <= 0 {
		return ErrInvalidTarget
	}
	if g.Deadline.IsZero() {
		return ErrMissingDeadline
	}
	return nil
}

// MonthBounds returns the first instant of now's calendar month and the
// first instant of the following month.
func MonthBounds(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}
