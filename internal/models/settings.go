package models

import "time"

// Settings is the per-user assistant configuration. At most one settings
// record exists per user.
type Settings struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	WakeWord          string    `json:"wakeWord"`
	Sensitivity       int       `json:"sensitivity"`
	VoiceSpeed        int       `json:"voiceSpeed"`
	BackgroundService bool      `json:"backgroundService"`
	VoiceCloning      bool      `json:"voiceCloning"`
	OfflineMode       bool      `json:"offlineMode"`
	Notifications     bool      `json:"notifications"`
	DarkMode          bool      `json:"darkMode"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// SettingsUpdate is a partial settings change. Nil fields are left as-is.
type SettingsUpdate struct {
	WakeWord          *string `json:"wakeWord"`
	Sensitivity       *int    `json:"sensitivity"`
	VoiceSpeed        *int    `json:"voiceSpeed"`
	BackgroundService *bool   `json:"backgroundService"`
	VoiceCloning      *bool   `json:"voiceCloning"`
	OfflineMode       *bool   `json:"offlineMode"`
	Notifications     *bool   `json:"notifications"`
	DarkMode          *bool   `json:"darkMode"`
}

// DefaultSettings returns the settings a user starts with and is reset to.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:            userID,
		WakeWord:          "Hey Assistant",
		Sensitivity:       75,
		VoiceSpeed:        50,
		BackgroundService: true,
		VoiceCloning:      true,
		OfflineMode:       false,
		Notifications:     true,
		DarkMode:          false,
	}
}
