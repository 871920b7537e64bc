package core

import "time"

// GoalPatch carries the partial-update fields for a goal. The merge keeps
// the old value for any zero-value field: a caller cannot reset
// CurrentAmount to 0 or clear a string through this path.
type GoalPatch struct {
	Title         string    `json:"title"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      time.Time `json:"deadline"`
	Category      string    `json:"category"`
	Color         string    `json:"color"`
}

// ApplyPatch merges p into g and re-evaluates completion. Completion only
// moves forward: once completed a goal never transitions back to active,
// and the patch path does not clamp CurrentAmount.
func (g *Goal) ApplyPatch(p GoalPatch) {
	if p.Title != "" {
		g.Title = p.Title
	}
	if p.TargetAmount != 0 {
		g.TargetAmount = p.TargetAmount
	}
	if p.CurrentAmount != 0 {
		g.CurrentAmount = p.CurrentAmount
	}
	if !p.Deadline.IsZero() {
		g.Deadline = p.Deadline
	}
	if p.Category != "" {
		g.Category = p.Category
	}
	if p.Color != "" {
		g.Color = p.Color
	}
	if g.CurrentAmount >= g.TargetAmount {
		g.IsCompleted = true
	}
}

// Contribute adds amount to the goal's saved total. Crossing the target
// clamps CurrentAmount to TargetAmount and marks the goal completed;
// over-contribution is discarded. Negative amounts are accepted and lower
// progress.
func (g *Goal) Contribute(amount float64) {
	g.CurrentAmount += amount
	if g.CurrentAmount >= g.TargetAmount {
		g.CurrentAmount = g.TargetAmount
		g.IsCompleted = true
	}
}
