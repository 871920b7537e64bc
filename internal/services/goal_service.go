package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// GoalService manages savings goals. Every operation is scoped to the
// calling user; another user's goal behaves like a missing one.
type GoalService struct {
	store GoalStore
	now   func() time.Time
}

func NewGoalService(store GoalStore) *GoalService {
	return &GoalService{
		store: store,
		now:   time.Now,
	}
}

func (s *GoalService) List(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

// CreateGoalInput carries the caller-supplied goal fields. Unknown or
// empty categories fall back to Savings; an empty color gets the default.
type CreateGoalInput struct {
	Title        string
	TargetAmount float64
	Deadline     time.Time
	Category     string
	Color        string
}

func (s *GoalService) Create(ctx context.Context, userID string, in CreateGoalInput) (core.Goal, error) {
	now := s.now().UTC()
	g := core.Goal{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         in.Title,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: 0,
		Deadline:      in.Deadline,
		Category:      in.Category,
		Color:         in.Color,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !core.ValidGoalCategory(g.Category) {
		g.Category = core.DefaultGoalCategory
	}
	if g.Color == "" {
		g.Color = core.DefaultGoalColor
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	if err := s.store.CreateGoal(ctx, &g); err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return g, nil
}

// Update merges patch into the goal; zero-value fields keep their old
// values.
func (s *GoalService) Update(ctx context.Context, id, userID string, patch core.GoalPatch) (core.Goal, error) {
	g, err := s.store.GetGoal(ctx, id, userID)
	if err != nil {
		return core.Goal{}, err
	}

	g.ApplyPatch(patch)
	g.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateGoal(ctx, &g); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	return s.store.DeleteGoal(ctx, id, userID)
}

// Contribute adds amount to the goal's saved total, clamping at the
// target. The store applies the read-modify-write atomically.
func (s *GoalService) Contribute(ctx context.Context, id, userID string, amount float64) (core.Goal, error) {
	return s.store.ContributeToGoal(ctx, id, userID, amount, s.now().UTC())
}
