// Package http exposes the REST surface: auth, transactions, budgets,
// goals and notifications, plus the service banner and health endpoints.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// Pinger reports store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	http.Server

	transactions  *services.TransactionService
	budgets       *services.BudgetService
	goals         *services.GoalService
	users         *services.UserService
	notifications services.NotificationStore
	tokens        *auth.TokenIssuer
	store         Pinger

	allowedOrigin string
	rateLimiter   *rateLimiter
	profileCache  *cache.LRU[core.User]
	logger        *log.Logger
	shutdownOnce  sync.Once
}

// Deps bundles the server's collaborators.
type Deps struct {
	Transactions  *services.TransactionService
	Budgets       *services.BudgetService
	Goals         *services.GoalService
	Users         *services.UserService
	Notifications services.NotificationStore
	Tokens        *auth.TokenIssuer
	Store         Pinger
	AllowedOrigin string
	Logger        *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		transactions:  deps.Transactions,
		budgets:       deps.Budgets,
		goals:         deps.Goals,
		users:         deps.Users,
		notifications: deps.Notifications,
		tokens:        deps.Tokens,
		store:         deps.Store,
		allowedOrigin: deps.AllowedOrigin,
		rateLimiter:   newRateLimiter(),
		profileCache:  cache.NewLRU[core.User](1024, time.Minute),
		logger:        deps.Logger.WithComponent(log.ComponentHTTP),
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.withMiddleware(mux),
	}

	mux.HandleFunc("GET /{$}", s.handleBanner)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/profile", s.requireAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /api/auth/profile", s.requireAuth(s.handleUpdateProfile))

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("GET /api/transactions/balance", s.handleBalance)
	mux.HandleFunc("GET /api/transactions/analytics", s.handleAnalytics)
	mux.HandleFunc("POST /api/transactions/report", s.handleReport)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/alerts", s.handleBudgetAlerts)

	mux.HandleFunc("GET /api/goals", s.requireAuth(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.requireAuth(s.handleCreateGoal))
	mux.HandleFunc("PUT /api/goals/{id}", s.requireAuth(s.handleUpdateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.requireAuth(s.handleDeleteGoal))
	mux.HandleFunc("POST /api/goals/{id}/add", s.requireAuth(s.handleContributeGoal))

	mux.HandleFunc("GET /api/notifications", s.handleListNotifications)

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		s.profileCache.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleBanner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Personal Finance Tracker API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":          "/api/auth",
			"transactions":  "/api/transactions",
			"budgets":       "/api/budgets",
			"goals":         "/api/goals",
			"notifications": "/api/notifications",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "error",
			"database": "disconnected",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}
