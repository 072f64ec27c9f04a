package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SAILENDHRAB21/PriceBite/internal/auth"
	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
)

// AuthService is the consumer-side contract for registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Profile(userID string) (domain.User, time.Time, error)
}

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type authResponseDTO struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token,omitempty"`
	User    *userDTO `json:"user,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, false, "invalid JSON body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, false, "All fields are required")
		return
	}
	if len(req.Password) < 6 {
		respondMessage(w, http.StatusBadRequest, false, "Password must be at least 6 characters long")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respondMessage(w, http.StatusBadRequest, false, "User with this email already exists")
			return
		}
		respondMessage(w, http.StatusInternalServerError, false, "Server error during registration")
		return
	}

	respondJSON(w, http.StatusCreated, authResponseDTO{
		Success: true,
		Message: "Registration successful",
		Token:   token,
		User:    &userDTO{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, false, "invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, false, "Email and password are required")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, false, "Invalid credentials")
			return
		}
		respondMessage(w, http.StatusInternalServerError, false, "Server error during login")
		return
	}

	respondJSON(w, http.StatusOK, authResponseDTO{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    &userDTO{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Verify reports whether the presented token is still valid. The auth
// middleware has already resolved the user by the time this runs.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, false, "No token provided")
		return
	}

	respondJSON(w, http.StatusOK, authResponseDTO{
		Success: true,
		User:    &userDTO{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, false, "No token provided")
		return
	}

	profile, createdAt, err := h.auth.Profile(user.ID)
	if err != nil {
		respondMessage(w, http.StatusNotFound, false, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, authResponseDTO{
		Success: true,
		User:    &userDTO{ID: profile.ID, Name: profile.Name, Email: profile.Email, CreatedAt: &createdAt},
	})
}
