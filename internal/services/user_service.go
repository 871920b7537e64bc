package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/auth"
	"fintrack/internal/core"
)

// UserService handles registration, authentication and profile upkeep.
type UserService struct {
	store UserStore
	now   func() time.Time
}

func NewUserService(store UserStore) *UserService {
	return &UserService{
		store: store,
		now:   time.Now,
	}
}

// RegisterInput carries the registration fields. MonthlyIncome and
// Currency are optional; Currency defaults to USD.
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	MonthlyIncome float64
	Currency      string
}

// Register creates an account with a bcrypt password hash. A taken email
// is a Conflict.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (core.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return core.User{}, core.ErrMissingFields
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	u := core.User{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		MonthlyIncome: in.MonthlyIncome,
		Currency:      in.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if u.Currency == "" {
		u.Currency = core.DefaultCurrency
	}
	if err := s.store.CreateUser(ctx, &u); err != nil {
		return core.User{}, err
	}
	return u, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (core.User, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return core.User{}, core.ErrUnauthorized
	}
	if err != nil {
		return core.User{}, fmt.Errorf("load user: %w", err)
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return core.User{}, core.ErrUnauthorized
	}
	return u, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (core.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// UserPatch carries the partial-update fields for a profile. The merge
// keeps the old value for any zero-value field.
type UserPatch struct {
	Name          string
	Email         string
	MonthlyIncome float64
	Currency      string
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, patch UserPatch) (core.User, error) {
	u, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return core.User{}, err
	}

	if patch.Name != "" {
		u.Name = patch.Name
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if patch.MonthlyIncome != 0 {
		u.MonthlyIncome = patch.MonthlyIncome
	}
	if patch.Currency != "" {
		u.Currency = patch.Currency
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateUser(ctx, &u); err != nil {
		return core.User{}, err
	}
	return u, nil
}
