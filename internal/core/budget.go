package core

// AlertThreshold is the fixed consumption percentage at which a budget
// alert fires (inclusive).
const AlertThreshold = 90.0

// BudgetAlert is the derived warning for a budget close to (or past) its
// ceiling. Percentage keeps one decimal place as a string, matching the
// wire contract.
type BudgetAlert struct {
	Category   string  `json:"category"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Percentage string  `json:"percentage"`
	Message    string  `json:"message"`
}

// SpentAmount sums absolute amounts over transactions, used for a budget's
// derived spent value. Callers pass transactions already filtered to the
// budget's category and calendar month.
func SpentAmount(transactions []Transaction) float64 {
	var spent float64
	for _, t := range transactions {
		if t.Amount < 0 {
			spent += -t.Amount
		} else {
			spent += t.Amount
		}
	}
	return spent
}

// CheckAlert evaluates the threshold for one budget with its recomputed
// spent value. Returns nil when consumption is below the threshold.
func CheckAlert(b Budget, spent float64) *BudgetAlert {
	percentage := spent / b.Amount * 100
	if percentage < AlertThreshold {
		return nil
	}
	pct := FormatFixed1(percentage)
	return &BudgetAlert{
		Category:   b.Category,
		Budget:     b.Amount,
		Spent:      spent,
		Percentage: pct,
		Message:    "You've used " + pct + "% of your " + b.Category + " budget!",
	}
}
