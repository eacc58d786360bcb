package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Tyrowin/moodsync/internal/metrics"
	"github.com/Tyrowin/moodsync/internal/users"
)

// RegisterRequest is the /register body. Age arrives as a number or a
// numeric string depending on the client.
type RegisterRequest struct {
	FullName string     `json:"fullName"`
	Email    string     `json:"email"`
	Age      FlexibleID `json:"age"`
	Gender   string     `json:"gender"`
	Password string     `json:"password"`
}

// LoginRequest is the /login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PublicUser is the profile returned by register and login.
type PublicUser struct {
	ID       string `json:"id"`
	UserID   int64  `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Age      int    `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

func publicUser(u users.User) PublicUser {
	return PublicUser{
		ID:       u.ID,
		UserID:   u.UserID,
		FullName: u.FullName,
		Email:    u.Email,
		Age:      u.Age,
		Gender:   u.Gender,
	}
}

func parseAge(v FlexibleID) int {
	age, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil || age < 0 {
		return 0
	}
	return age
}

// Register handles user signup.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.log.Info().Str("email", req.Email).Str("gender", req.Gender).Msg("new user registration")

	user, err := s.users.Register(users.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Age:      parseAge(req.Age),
		Gender:   req.Gender,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		s.Error(w, http.StatusBadRequest, "User with this email already exists")
		return
	case errors.Is(err, users.ErrMissingCredentials):
		s.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, users.ErrPasswordTooLong):
		s.Error(w, http.StatusBadRequest, "Password must be at most 72 bytes")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("registration failed")
		s.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	metrics.UsersRegistered.Inc()
	s.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Welcome to MoodSync! Your emotional journey begins now.",
		"userId":  user.UserID,
		"user":    publicUser(user),
	})
}

// Login checks credentials and hands out a session token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.log.Info().Str("email", req.Email).Msg("login attempt")

	user, err := s.users.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrMissingCredentials):
		metrics.Logins.WithLabelValues("invalid").Inc()
		s.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, users.ErrUserNotFound):
		metrics.Logins.WithLabelValues("not_found").Inc()
		s.Error(w, http.StatusUnauthorized, "User not found. Please check your email or register first.")
		return
	case errors.Is(err, users.ErrInvalidPassword):
		metrics.Logins.WithLabelValues("bad_password").Inc()
		s.Error(w, http.StatusUnauthorized, "Invalid password")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("login failed")
		s.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user", user.ID).Msg("failed to sign session token")
		s.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	s.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Welcome back to MoodSync!",
		"token":   token,
		"user":    publicUser(user),
	})
}

// ListUsers is a debug listing of every account.
func (s *Server) ListUsers(w http.ResponseWriter, _ *http.Request) {
	list := s.users.List()
	s.JSON(w, http.StatusOK, map[string]any{
		"users": list,
		"count": len(list),
	})
}
