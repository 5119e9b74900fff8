package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ubaidjmi/voiceai-be/internal/models"
)

// recentConversationLimit caps the conversation list endpoint.
const recentConversationLimit = 10

// ConversationServiceProvider defines the interface for conversation services.
type ConversationServiceProvider interface {
	ListRecent(userID string) ([]models.Conversation, error)
	ListAll(userID string) ([]models.Conversation, error)
	Create(userID string, messages []models.Message) (models.Conversation, error)
	AppendMessage(userID, conversationID string, message models.Message) (models.Conversation, error)
	Delete(userID, conversationID string) error
	DeleteAll(userID string) error
}

// ConversationService provides business logic for conversation transcripts.
// Every query is filtered by the owner's user id; a conversation owned by
// another user behaves exactly like a missing one.
type ConversationService struct {
	db *sql.DB
}

// NewConversationService creates a new ConversationService.
func NewConversationService(db *sql.DB) *ConversationService {
	return &ConversationService{db: db}
}

// scanConversation is a helper to scan a conversation from a row or rows object.
func scanConversation(scanner interface{ Scan(...interface{}) error }) (models.Conversation, error) {
	var conv models.Conversation
	if err := scanner.Scan(&conv.ID, &conv.UserID, &conv.MessagesJSON, &conv.CreatedAt); err != nil {
		return conv, err
	}
	if err := conv.PrepareForAPI(); err != nil {
		return conv, err
	}
	return conv, nil
}

// ListRecent returns the owner's most recent conversations, newest first,
// capped at ten.
func (s *ConversationService) ListRecent(userID string) ([]models.Conversation, error) {
	return s.list(userID, recentConversationLimit)
}

// ListAll returns every conversation the owner has, newest first. Used by
// the data export.
func (s *ConversationService) ListAll(userID string) ([]models.Conversation, error) {
	return s.list(userID, -1)
}

func (s *ConversationService) list(userID string, limit int) ([]models.Conversation, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, messages_json, created_at FROM conversations WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

// Create stores a new conversation for the owner.
func (s *ConversationService) Create(userID string, messages []models.Message) (models.Conversation, error) {
	now := time.Now().UTC()
	for i := range messages {
		if messages[i].CreatedAt.IsZero() {
			messages[i].CreatedAt = now
		}
	}

	conv := models.Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Messages:  messages,
		CreatedAt: now,
	}
	if err := conv.PrepareForSave(); err != nil {
		return models.Conversation{}, err
	}

	_, err := s.db.Exec("INSERT INTO conversations(id, user_id, messages_json, created_at) VALUES(?, ?, ?, ?)",
		conv.ID, conv.UserID, conv.MessagesJSON, conv.CreatedAt)
	if err != nil {
		return models.Conversation{}, err
	}
	return conv, nil
}

// AppendMessage adds a message to the end of an owned conversation's
// transcript. Concurrent appends to the same conversation are not
// serialized.
func (s *ConversationService) AppendMessage(userID, conversationID string, message models.Message) (models.Conversation, error) {
	row := s.db.QueryRow(
		"SELECT id, user_id, messages_json, created_at FROM conversations WHERE id = ? AND user_id = ?",
		conversationID, userID)
	conv, err := scanConversation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Conversation{}, models.ErrNotFound
		}
		return models.Conversation{}, err
	}

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	conv.Messages = append(conv.Messages, message)
	if err := conv.PrepareForSave(); err != nil {
		return models.Conversation{}, err
	}

	_, err = s.db.Exec("UPDATE conversations SET messages_json = ? WHERE id = ? AND user_id = ?",
		conv.MessagesJSON, conversationID, userID)
	if err != nil {
		return models.Conversation{}, err
	}
	return conv, nil
}

// Delete removes an owned conversation.
func (s *ConversationService) Delete(userID, conversationID string) error {
	res, err := s.db.Exec("DELETE FROM conversations WHERE id = ? AND user_id = ?", conversationID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteAll removes every conversation the owner has.
func (s *ConversationService) DeleteAll(userID string) error {
	_, err := s.db.Exec("DELETE FROM conversations WHERE user_id = ?", userID)
	return err
}
