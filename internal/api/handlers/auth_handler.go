package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ubaidjmi/voiceai-be/internal/auth"
	"github.com/ubaidjmi/voiceai-be/internal/models"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration. A successful registration also
// issues a session token so the client can sign in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	user, err := h.users.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateUser):
			writeError(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, models.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, "Password is too weak")
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
			writeError(w, http.StatusInternalServerError, "Registration failed. Please try again.")
		}
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		writeError(w, http.StatusInternalServerError, "Registration failed. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			// Same response for unknown email and wrong password.
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Login failed")
		writeError(w, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		writeError(w, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}
