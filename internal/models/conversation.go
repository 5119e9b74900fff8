package models

import (
	"encoding/json"
	"time"
)

// Message is a single entry in a conversation transcript. Messages are
// append-only; they are never edited or removed individually.
type Message struct {
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

// Conversation is an owner-scoped transcript of assistant messages.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`

	// MessagesJSON holds the serialized transcript as stored in the
	// messages_json column.
	MessagesJSON string `json:"-"`
}

// PrepareForSave serializes the transcript into MessagesJSON.
func (c *Conversation) PrepareForSave() error {
	if c.Messages == nil {
		c.Messages = []Message{}
	}
	data, err := json.Marshal(c.Messages)
	if err != nil {
		return err
	}
	c.MessagesJSON = string(data)
	return nil
}

// PrepareForAPI deserializes MessagesJSON back into the Messages slice.
func (c *Conversation) PrepareForAPI() error {
	c.Messages = []Message{}
	if c.MessagesJSON == "" {
		return nil
	}
	return json.Unmarshal([]byte(c.MessagesJSON), &c.Messages)
}
