package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ubaidjmi/voiceai-be/internal/models"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

// SettingsHandler handles HTTP requests for per-user settings.
type SettingsHandler struct {
	service services.SettingsServiceProvider
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service services.SettingsServiceProvider) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get returns the caller's settings, creating defaults on first read.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	settings, err := h.service.Get(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to fetch settings")
		writeError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update applies a partial settings change with upsert semantics.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var update models.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.service.Update(claims.UserID, update)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to update settings")
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// SetWakeWord changes the caller's wake word.
func (h *SettingsHandler) SetWakeWord(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var payload struct {
		WakeWord string `json:"wakeWord"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.service.SetWakeWord(claims.UserID, payload.WakeWord)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to change wake word")
		writeError(w, http.StatusInternalServerError, "Failed to change wake word")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
