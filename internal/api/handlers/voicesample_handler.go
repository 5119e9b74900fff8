package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ubaidjmi/voiceai-be/internal/models"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

// VoiceSampleHandler handles HTTP requests for voice sample metadata.
type VoiceSampleHandler struct {
	service services.VoiceSampleServiceProvider
}

// NewVoiceSampleHandler creates a new VoiceSampleHandler.
func NewVoiceSampleHandler(service services.VoiceSampleServiceProvider) *VoiceSampleHandler {
	return &VoiceSampleHandler{service: service}
}

// List returns the caller's voice samples, newest first.
func (h *VoiceSampleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	samples, err := h.service.List(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to fetch voice samples")
		writeError(w, http.StatusInternalServerError, "Failed to fetch voice samples")
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

// Create stores a new voice sample record for the caller.
func (h *VoiceSampleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var payload struct {
		Quality  string  `json:"quality"`
		Duration float64 `json:"duration"`
		FilePath string  `json:"filePath"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sample, err := h.service.Create(claims.UserID, payload.Quality, payload.Duration, payload.FilePath)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to add voice sample")
		writeError(w, http.StatusInternalServerError, "Failed to add voice sample")
		return
	}
	writeJSON(w, http.StatusCreated, sample)
}

// Delete removes one of the caller's voice samples.
func (h *VoiceSampleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(claims.UserID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Voice sample not found")
			return
		}
		log.Error().Err(err).Str("sample_id", id).Msg("Failed to delete voice sample")
		writeError(w, http.StatusInternalServerError, "Failed to delete voice sample")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Voice sample deleted successfully"})
}

// Clear removes all of the caller's voice samples.
func (h *VoiceSampleHandler) Clear(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAll(claims.UserID); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to clear voice samples")
		writeError(w, http.StatusInternalServerError, "Failed to clear voice samples")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All voice samples deleted successfully"})
}
