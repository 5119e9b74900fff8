package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ubaidjmi/voiceai-be/internal/models"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

// ProfileHandler handles HTTP requests for the caller's own account.
type ProfileHandler struct {
	service services.UserServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service services.UserServiceProvider) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get returns the caller's profile, never including the password hash.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to fetch profile")
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update changes the caller's username and email.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(claims.UserID, payload.Username, payload.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to update profile")
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.ChangePassword(claims.UserID, payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, models.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "Current password is incorrect")
		case errors.Is(err, models.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, "Password is too weak")
		default:
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to change password")
			writeError(w, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
