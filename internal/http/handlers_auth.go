package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

// authResponse is the flat profile-plus-token object returned by
// register, login and profile update.
type authResponse struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	Currency      string  `json:"currency"`
	Token         string  `json:"token"`
}

func (s *Server) authResponseFor(u core.User) (authResponse, error) {
	token, err := s.tokens.Issue(u.ID, time.Now())
	if err != nil {
		return authResponse{}, err
	}
	return authResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		MonthlyIncome: u.MonthlyIncome,
		Currency:      u.Currency,
		Token:         token,
	}, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          string  `json:"name"`
		Email         string  `json:"email"`
		Password      string  `json:"password"`
		MonthlyIncome float64 `json:"monthlyIncome"`
		Currency      string  `json:"currency"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.users.Register(r.Context(), services.RegisterInput{
		Name:          body.Name,
		Email:         body.Email,
		Password:      body.Password,
		MonthlyIncome: body.MonthlyIncome,
		Currency:      body.Currency,
	})
	if err != nil {
		writeMessageError(w, err)
		return
	}

	resp, err := s.authResponseFor(u)
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.users.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	resp, err := s.authResponseFor(u)
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}

// handleUpdateProfile patches the caller's profile and reissues a token.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          string  `json:"name"`
		Email         string  `json:"email"`
		MonthlyIncome float64 `json:"monthlyIncome"`
		Currency      string  `json:"currency"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.users.UpdateProfile(r.Context(), userFrom(r.Context()).ID, services.UserPatch{
		Name:          body.Name,
		Email:         body.Email,
		MonthlyIncome: body.MonthlyIncome,
		Currency:      body.Currency,
	})
	if err != nil {
		writeMessageError(w, err)
		return
	}
	s.profileCache.Delete(u.ID)

	resp, err := s.authResponseFor(u)
	if err != nil {
		writeMessageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
