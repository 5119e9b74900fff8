package models

import "time"

// VoiceSample holds the metadata of a recorded voice sample. The audio
// itself is stored outside this service; only the file path is kept.
type VoiceSample struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Quality   string    `json:"quality"`
	Duration  float64   `json:"duration"`
	FilePath  string    `json:"filePath"`
	CreatedAt time.Time `json:"createdAt"`
}
