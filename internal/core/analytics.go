package core

import (
	"math"
	"strings"
	"time"
)

// Analytics periods.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

type (
	// Balance is the all-time rollup of transaction amounts. Fields are
	// pre-rounded strings with two decimal places.
	Balance struct {
		Total   string `json:"total"`
		Income  string `json:"income"`
		Expense string `json:"expense"`
	}

	CategoryTotal struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}

	// Analytics is the spending rollup for one period window. Spending
	// only counts expense (negative-amount) transactions.
	Analytics struct {
		CategorySpending map[string]float64 `json:"categorySpending"`
		MonthlyTrend     map[string]float64 `json:"monthlyTrend"`
		TotalSpent       float64            `json:"totalSpent"`
		Period           string             `json:"period"`
		TopCategory      *CategoryTotal     `json:"topCategory"`
		TransactionCount int                `json:"transactionCount"`
		AverageSpending  float64            `json:"averageSpending"`
	}

	ReportPeriod struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}

	ReportSummary struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpense"`
		NetSavings   float64 `json:"netSavings"`
	}

	// Report is the structured expense report for a date range.
	Report struct {
		Period            ReportPeriod       `json:"period"`
		Summary           ReportSummary      `json:"summary"`
		CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
		Transactions      []Transaction      `json:"transactions"`
	}
)

// ComputeBalance reduces all transactions into total, income and expense.
// Expense is reported as a positive magnitude.
func ComputeBalance(transactions []Transaction) Balance {
	var total, income, expense float64
	for _, t := range transactions {
		total += t.Amount
		if t.Amount > 0 {
			income += t.Amount
		} else if t.Amount < 0 {
			expense += t.Amount
		}
	}
	// math.Abs instead of negation: a ledger without expenses would
	// otherwise render the negated +0 as "-0.00".
	return Balance{
		Total:   FormatFixed2(total),
		Income:  FormatFixed2(income),
		Expense: FormatFixed2(math.Abs(expense)),
	}
}

// PeriodStart returns the inclusive window start for an analytics period:
// trailing seven days for week, first of the calendar month for month,
// January 1st for year. Unknown periods fall back to month.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// ComputeAnalytics builds the spending rollup over transactions, which must
// already be filtered to the period window and sorted by date descending.
// The descending order fixes the tie-break for TopCategory: on equal spend
// the category encountered first wins.
func ComputeAnalytics(period string, transactions []Transaction) Analytics {
	a := Analytics{
		CategorySpending: make(map[string]float64),
		MonthlyTrend:     make(map[string]float64),
		Period:           period,
		TransactionCount: len(transactions),
	}

	var order []string
	for _, t := range transactions {
		if t.Amount >= 0 {
			continue
		}
		spend := -t.Amount
		if _, seen := a.CategorySpending[t.Category]; !seen {
			order = append(order, t.Category)
		}
		a.CategorySpending[t.Category] += spend
		a.TotalSpent += spend
		label := t.Date.Format("Jan 2006")
		a.MonthlyTrend[label] += spend
	}

	for _, name := range order {
		if a.TopCategory == nil || a.CategorySpending[name] > a.TopCategory.Amount {
			a.TopCategory = &CategoryTotal{Name: name, Amount: a.CategorySpending[name]}
		}
	}

	if n := len(a.CategorySpending); n > 0 {
		a.AverageSpending = a.TotalSpent / float64(n)
	}

	return a
}

// ComputeReport summarizes transactions for [startDate, endDate]. The
// transactions must already be filtered to the range and sorted by date
// descending; they are echoed back in the report body.
func ComputeReport(startDate, endDate string, transactions []Transaction) Report {
	r := Report{
		Period:            ReportPeriod{StartDate: startDate, EndDate: endDate},
		CategoryBreakdown: make(map[string]float64),
		Transactions:      transactions,
	}
	for _, t := range transactions {
		if t.Amount > 0 {
			r.Summary.TotalIncome += t.Amount
		} else if t.Amount < 0 {
			r.Summary.TotalExpense += -t.Amount
			r.CategoryBreakdown[t.Category] += -t.Amount
		}
		r.Summary.NetSavings += t.Amount
	}
	return r
}

// ReportCSV renders the report transactions as CSV with the fixed header
// Date,Description,Category,Amount and one row per transaction.
func ReportCSV(transactions []Transaction) string {
	var b strings.Builder
	b.WriteString("Date,Description,Category,Amount\n")
	for _, t := range transactions {
		b.WriteString(t.Date.Format("2006-01-02"))
		b.WriteByte(',')
		b.WriteString(t.Text)
		b.WriteByte(',')
		b.WriteString(t.Category)
		b.WriteByte(',')
		b.WriteString(FormatAmount(t.Amount))
		b.WriteByte('\n')
	}
	return b.String()
}
