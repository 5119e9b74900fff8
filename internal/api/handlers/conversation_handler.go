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

// ConversationHandler handles HTTP requests for conversation transcripts.
type ConversationHandler struct {
	service services.ConversationServiceProvider
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(service services.ConversationServiceProvider) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// List returns the caller's ten most recent conversations.
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	conversations, err := h.service.ListRecent(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to fetch conversations")
		writeError(w, http.StatusInternalServerError, "Failed to fetch conversations")
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}

// Create starts a new conversation for the caller.
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var payload struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	conversation, err := h.service.Create(claims.UserID, payload.Messages)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to create conversation")
		writeError(w, http.StatusInternalServerError, "Failed to create conversation")
		return
	}
	writeJSON(w, http.StatusCreated, conversation)
}

// AddMessage appends a message to one of the caller's conversations.
func (h *ConversationHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var payload struct {
		Text   string `json:"text"`
		IsUser bool   `json:"isUser"`
		Time   string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message := models.Message{Text: payload.Text, IsUser: payload.IsUser, Time: payload.Time}
	conversation, err := h.service.AppendMessage(claims.UserID, id, message)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Error().Err(err).Str("conversation_id", id).Msg("Failed to add message")
		writeError(w, http.StatusInternalServerError, "Failed to add message")
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

// Delete removes one of the caller's conversations.
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(claims.UserID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Error().Err(err).Str("conversation_id", id).Msg("Failed to delete conversation")
		writeError(w, http.StatusInternalServerError, "Failed to delete conversation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation deleted successfully"})
}
