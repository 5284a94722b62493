// Package mockserver implements the backend wire contract in memory: the
// auth endpoints and the multipart upload endpoint. It exists for local
// development and wire-level tests; the real backend is the production
// contract.
package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/client/token"
	"github.com/hashedin27-max/GCS-Upload/internal/common"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
)

// Config controls the mock backend.
type Config struct {
	Secret   []byte
	TokenTTL time.Duration
	SpoolDir string // where uploaded files land; "" keeps them in memory only
	Username string
	Password string
}

func (c Config) withDefaults() Config {
	if c.TokenTTL == 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.Username == "" {
		c.Username = "admin"
	}
	if c.Password == "" {
		c.Password = "password123"
	}
	if len(c.Secret) == 0 {
		c.Secret = []byte("mock-signing-secret")
	}
	return c
}

type server struct {
	cfg Config
	log logging.Logger
}

// NewRouter builds the HTTP router for the mock backend.
func NewRouter(cfg Config, log logging.Logger) *mux.Router {
	s := &server{cfg: cfg.withDefaults(), log: log}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.Handle("/api/upload", s.requireAuth(http.HandlerFunc(s.handleUpload))).Methods(http.MethodPost)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *server) demoUser() *models.User {
	return &models.User{
		ID:       "1",
		Username: s.cfg.Username,
		Email:    s.cfg.Username + "@example.com",
		Role:     "administrator",
	}
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.LoginResponse{Message: "malformed request"})
		return
	}

	if req.Username != s.cfg.Username || req.Password != s.cfg.Password {
		s.log.Info(r.Context(), "login rejected", "username", req.Username)
		writeJSON(w, http.StatusUnauthorized, models.LoginResponse{
			Success: false,
			Message: "Invalid username or password",
		})
		return
	}

	user := s.demoUser()
	tok, err := token.Mint(user.ID, user.Username, user.Role, s.cfg.Secret, s.cfg.TokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.LoginResponse{Message: "token generation failed"})
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		User:    user,
		Token:   tok,
		Message: "Login successful",
	})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// nothing is held server side, the client clears its own session
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	// Refresh requests arrive without the bearer header (the authorizer
	// exempts auth endpoints), so the demo backend simply issues a fresh
	// credential for the demo user.
	user := s.demoUser()
	tok, err := token.Mint(user.ID, user.Username, user.Role, s.cfg.Secret, s.cfg.TokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.RefreshResponse{Message: "token generation failed"})
		return
	}
	writeJSON(w, http.StatusOK, models.RefreshResponse{Success: true, Token: tok})
}

type claimsKey struct{}

// requireAuth validates the bearer credential and stashes its claims in the
// request context. Missing or invalid credentials get 401.
func (s *server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.parseBearer(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func (s *server) parseBearer(r *http.Request) (*token.Claims, error) {
	header := r.Header.Get(common.AuthorizationHeader)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return nil, common.ErrUnauthorized
	}
	raw := strings.TrimPrefix(header, common.BearerPrefix)

	claims := &token.Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
