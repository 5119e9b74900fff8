package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ubaidjmi/voiceai-be/internal/assistant"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

// minTrainingSamples is how many stored samples voice training requires.
const minTrainingSamples = 3

// AssistantHandler serves the canned-response query endpoint and the voice
// training simulation.
type AssistantHandler struct {
	samples       services.VoiceSampleServiceProvider
	trainingDelay time.Duration
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(samples services.VoiceSampleServiceProvider, trainingDelay time.Duration) *AssistantHandler {
	return &AssistantHandler{samples: samples, trainingDelay: trainingDelay}
}

// Query returns a canned reply for the submitted message.
func (h *AssistantHandler) Query(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireClaims(w, r); !ok {
		return
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response": assistant.Respond(payload.Message, time.Now()),
	})
}

// TrainVoice simulates training a voice model. It requires at least three
// stored samples and holds the response for a fixed interval; no model is
// actually trained.
func (h *AssistantHandler) TrainVoice(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	count, err := h.samples.Count(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to count voice samples")
		writeError(w, http.StatusInternalServerError, "Failed to train voice model")
		return
	}

	if count < minTrainingSamples {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "More samples needed",
			"message": "Please record at least 3 voice samples.",
		})
		return
	}

	select {
	case <-time.After(h.trainingDelay):
	case <-r.Context().Done():
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Training complete",
		"success":     true,
		"samplesUsed": count,
	})
}
