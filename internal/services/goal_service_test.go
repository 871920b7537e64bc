package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
)

func seedGoalStore(goals ...core.Goal) *fakeGoalStore {
	return &fakeGoalStore{goals: goals}
}

func TestGoalCreateDefaults(t *testing.T) {
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	deadline := now.AddDate(1, 0, 0)
	store := seedGoalStore()
	svc := NewGoalService(store)
	svc.now = fixedClock(now)

	g, err := svc.Create(context.Background(), "u-1", CreateGoalInput{
		Title: "New car", TargetAmount: 15000, Deadline: deadline, Category: "Spaceship",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Category != core.DefaultGoalCategory {
		t.Errorf("Category = %q, want fallback %q", g.Category, core.DefaultGoalCategory)
	}
	if g.Color != core.DefaultGoalColor {
		t.Errorf("Color = %q, want default %q", g.Color, core.DefaultGoalColor)
	}
	if g.CurrentAmount != 0 || g.IsCompleted {
		t.Errorf("new goal should start empty and active: %+v", g)
	}
	if g.UserID != "u-1" {
		t.Errorf("UserID = %q", g.UserID)
	}
}

func TestGoalCreateValidation(t *testing.T) {
	deadline := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		input   CreateGoalInput
		wantErr error
	}{
		{"empty title", CreateGoalInput{TargetAmount: 100, Deadline: deadline}, core.ErrEmptyTitle},
		{"zero target", CreateGoalInput{Title: "Trip", Deadline: deadline}, core.ErrInvalidTarget},
		{"negative target", CreateGoalInput{Title: "Trip", TargetAmount: -5, Deadline: deadline}, core.ErrInvalidTarget},
		{"missing deadline", CreateGoalInput{Title: "Trip", TargetAmount: 100}, core.ErrMissingDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGoalService(seedGoalStore())
			_, err := svc.Create(context.Background(), "u-1", tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGoalUpdateMerge(t *testing.T) {
	deadline := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := seedGoalStore(core.Goal{
		ID: "g-1", UserID: "u-1", Title: "Trip", TargetAmount: 1000,
		CurrentAmount: 250, Deadline: deadline, Category: "Vacation", Color: "#fff",
	})
	svc := NewGoalService(store)

	g, err := svc.Update(context.Background(), "g-1", "u-1", core.GoalPatch{Title: "Big trip"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if g.Title != "Big trip" {
		t.Errorf("Title = %q", g.Title)
	}
	// Zero-value fields keep their old values.
	if g.TargetAmount != 1000 || g.CurrentAmount != 250 || g.Category != "Vacation" {
		t.Errorf("zero-value patch fields must not reset: %+v", g)
	}
}

func TestGoalOperationsScopedToOwner(t *testing.T) {
	deadline := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := seedGoalStore(core.Goal{
		ID: "g-1", UserID: "u-1", Title: "Trip", TargetAmount: 1000, Deadline: deadline,
	})
	svc := NewGoalService(store)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "g-1", "u-2", core.GoalPatch{Title: "x"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-user update error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "g-1", "u-2"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-user delete error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Contribute(ctx, "g-1", "u-2", 10); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-user contribute error = %v, want ErrNotFound", err)
	}

	goals, err := svc.List(ctx, "u-2")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("another user's goals leaked: %+v", goals)
	}
}

func TestGoalContributeClampsAndCompletes(t *testing.T) {
	deadline := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := seedGoalStore(core.Goal{
		ID: "g-1", UserID: "u-1", Title: "Trip", TargetAmount: 500,
		CurrentAmount: 400, Deadline: deadline,
	})
	svc := NewGoalService(store)

	g, err := svc.Contribute(context.Background(), "g-1", "u-1", 200)
	if err != nil {
		t.Fatalf("Contribute() error = %v", err)
	}
	if g.CurrentAmount != 500 || !g.IsCompleted {
		t.Errorf("contribute past target = %+v, want clamp at 500 and completed", g)
	}

	// Negative contributions lower progress but completion is terminal.
	g, err = svc.Contribute(context.Background(), "g-1", "u-1", -100)
	if err != nil {
		t.Fatalf("Contribute() error = %v", err)
	}
	if g.CurrentAmount != 400 {
		t.Errorf("CurrentAmount = %v, want 400", g.CurrentAmount)
	}
	if !g.IsCompleted {
		t.Error("completion must not revert")
	}
}
