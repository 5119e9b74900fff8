package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ubaidjmi/voiceai-be/internal/models"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

// Reset scopes accepted by the reset endpoint.
const (
	ResetAll           = "all"
	ResetConversations = "conversations"
	ResetVoiceSamples  = "voiceSamples"
)

// DataHandler serves the whole-account export and reset operations.
type DataHandler struct {
	users         services.UserServiceProvider
	conversations services.ConversationServiceProvider
	samples       services.VoiceSampleServiceProvider
	settings      services.SettingsServiceProvider
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(
	users services.UserServiceProvider,
	conversations services.ConversationServiceProvider,
	samples services.VoiceSampleServiceProvider,
	settings services.SettingsServiceProvider,
) *DataHandler {
	return &DataHandler{
		users:         users,
		conversations: conversations,
		samples:       samples,
		settings:      settings,
	}
}

// ExportBundle is the payload returned by the export endpoint.
type ExportBundle struct {
	User          models.User           `json:"user"`
	Conversations []models.Conversation `json:"conversations"`
	VoiceSamples  []models.VoiceSample  `json:"voiceSamples"`
	Settings      models.Settings       `json:"settings"`
	ExportedAt    string                `json:"exportedAt"`
}

// Export gathers everything the caller owns. The four reads are issued
// concurrently and joined; no ordering between them is required.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var (
		bundle ExportBundle
		errs   [4]error
		wg     sync.WaitGroup
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		bundle.User, errs[0] = h.users.GetUserByID(claims.UserID)
	}()
	go func() {
		defer wg.Done()
		bundle.Conversations, errs[1] = h.conversations.ListAll(claims.UserID)
	}()
	go func() {
		defer wg.Done()
		bundle.VoiceSamples, errs[2] = h.samples.List(claims.UserID)
	}()
	go func() {
		defer wg.Done()
		bundle.Settings, errs[3] = h.settings.Get(claims.UserID)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to export data")
			writeError(w, http.StatusInternalServerError, "Failed to export data")
			return
		}
	}

	bundle.ExportedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, bundle)
}

// Reset clears the caller's data for the requested scope. The "all" scope
// also restores settings to their defaults; the settings record itself is
// kept.
func (h *DataHandler) Reset(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var payload struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Type == ResetAll || payload.Type == ResetConversations {
		if err := h.conversations.DeleteAll(claims.UserID); err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to reset conversations")
			writeError(w, http.StatusInternalServerError, "Failed to reset data")
			return
		}
	}

	if payload.Type == ResetAll || payload.Type == ResetVoiceSamples {
		if err := h.samples.DeleteAll(claims.UserID); err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to reset voice samples")
			writeError(w, http.StatusInternalServerError, "Failed to reset data")
			return
		}
	}

	if payload.Type == ResetAll {
		if _, err := h.settings.ResetDefaults(claims.UserID); err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to reset settings")
			writeError(w, http.StatusInternalServerError, "Failed to reset data")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s data reset successfully", payload.Type),
	})
}
