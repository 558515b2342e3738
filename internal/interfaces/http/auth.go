package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"centavo/internal/domain/user"
	"centavo/internal/shared/auth"
	"centavo/internal/shared/messages"
	"centavo/internal/shared/middleware"
)

// AuthHandler handles registration, login and session inspection
type AuthHandler struct {
	userRepo user.Repository
	jwt      *auth.JWT
	tokenTTL time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userRepo user.Repository, jwt *auth.JWT, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, jwt: jwt, tokenTTL: tokenTTL}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleRegister creates a new user account
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	created, err := h.userRepo.Create(r.Context(), user.CreateParams{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			respondError(w, http.StatusConflict, messages.ErrEmailTaken)
			return
		}
		log.Printf("Error creating user: %v", err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	h.issueSession(w, created, http.StatusCreated)
}

// HandleLogin authenticates a user by email and password
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	found, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, messages.ErrInvalidCredentials)
			return
		}
		log.Printf("Error loading user by email: %v", err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	if err := auth.VerifyPassword(found.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, messages.ErrInvalidCredentials)
		return
	}

	h.issueSession(w, found, http.StatusOK)
}

// HandleLogout clears the session cookie
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondOK(w)
}

// HandleMe returns the authenticated user
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	found, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
			return
		}
		log.Printf("Error loading user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	respondData(w, http.StatusOK, found)
}

// issueSession signs a token, sets the web cookie and returns the token in
// the body for mobile clients.
func (h *AuthHandler) issueSession(w http.ResponseWriter, u *user.User, status int) {
	token, err := h.jwt.Generate(u.ID, u.Email)
	if err != nil {
		log.Printf("Error signing token for user %d: %v", u.ID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondData(w, status, AuthResponse{Token: token, User: u})
}
