package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/forumkit/pkg/auth"
)

// Service exposes the auth controller over HTTP. Rendering is out of
// scope; every endpoint speaks JSON.
type Service struct {
	controller *auth.Controller
	log        *slog.Logger
}

// NewService creates the auth HTTP service
func NewService(controller *auth.Controller, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		controller: controller,
		log:        log,
	}
}

// Handle returns the module router.
//
//	POST /login    {"username","password"}
//	POST /logout
//	POST /register {"username","password"}
//	GET  /session
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", s.login)
	r.Post("/logout", s.logout)
	r.Post("/register", s.register)
	r.Get("/session", s.session)

	return r
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	ok, err := s.controller.Login(r.Context(), w, r, req.Username, req.Password)
	if err != nil {
		s.log.ErrorContext(r.Context(), "login failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "temporary failure")
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Service) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Logout(r.Context(), w, r); err != nil {
		s.log.ErrorContext(r.Context(), "logout failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "temporary failure")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Service) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := s.controller.Register(r.Context(), r, req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			writeError(w, http.StatusConflict, "username taken")
			return
		}
		s.log.ErrorContext(r.Context(), "registration failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "temporary failure")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// session reports the current authentication state. A valid login
// cookie silently re-authenticates an expired session first.
func (s *Service) session(w http.ResponseWriter, r *http.Request) {
	sess, err := s.controller.Authenticate(r.Context(), w, r)
	if err != nil {
		s.log.ErrorContext(r.Context(), "session check failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "temporary failure")
		return
	}

	user, ok := s.controller.CurrentUser(sess)
	if !ok {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		UserID:        user.ID,
		Username:      user.Username,
		Avatar:        user.Avatar,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
