package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ubaidjmi/voiceai-be/internal/models"
)

// SettingsServiceProvider defines the interface for settings services.
type SettingsServiceProvider interface {
	Get(userID string) (models.Settings, error)
	Update(userID string, update models.SettingsUpdate) (models.Settings, error)
	SetWakeWord(userID, wakeWord string) (models.Settings, error)
	ResetDefaults(userID string) (models.Settings, error)
}

// SettingsService provides business logic for per-user settings. A settings
// record is at most 1:1 with a user; reads lazily create it with defaults
// and updates have upsert semantics.
type SettingsService struct {
	db *sql.DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the owner's settings, creating the default record if none
// exists yet.
func (s *SettingsService) Get(userID string) (models.Settings, error) {
	settings, err := s.get(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, err
	}
	return s.createDefaults(userID)
}

func (s *SettingsService) get(userID string) (models.Settings, error) {
	var settings models.Settings
	row := s.db.QueryRow(`SELECT id, user_id, wake_word, sensitivity, voice_speed, background_service,
		voice_cloning, offline_mode, notifications, dark_mode, updated_at
		FROM settings WHERE user_id = ?`, userID)
	err := row.Scan(&settings.ID, &settings.UserID, &settings.WakeWord, &settings.Sensitivity,
		&settings.VoiceSpeed, &settings.BackgroundService, &settings.VoiceCloning,
		&settings.OfflineMode, &settings.Notifications, &settings.DarkMode, &settings.UpdatedAt)
	return settings, err
}

func (s *SettingsService) createDefaults(userID string) (models.Settings, error) {
	settings := models.DefaultSettings(userID)
	settings.ID = uuid.New().String()
	settings.UpdatedAt = time.Now().UTC()

	_, err := s.db.Exec(`INSERT INTO settings(id, user_id, wake_word, sensitivity, voice_speed,
		background_service, voice_cloning, offline_mode, notifications, dark_mode, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settings.ID, settings.UserID, settings.WakeWord, settings.Sensitivity, settings.VoiceSpeed,
		settings.BackgroundService, settings.VoiceCloning, settings.OfflineMode,
		settings.Notifications, settings.DarkMode, settings.UpdatedAt)
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// Update applies a partial change to the owner's settings, creating the
// record with defaults first if it does not exist.
func (s *SettingsService) Update(userID string, update models.SettingsUpdate) (models.Settings, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return models.Settings{}, err
	}

	if update.WakeWord != nil {
		settings.WakeWord = *update.WakeWord
	}
	if update.Sensitivity != nil {
		settings.Sensitivity = *update.Sensitivity
	}
	if update.VoiceSpeed != nil {
		settings.VoiceSpeed = *update.VoiceSpeed
	}
	if update.BackgroundService != nil {
		settings.BackgroundService = *update.BackgroundService
	}
	if update.VoiceCloning != nil {
		settings.VoiceCloning = *update.VoiceCloning
	}
	if update.OfflineMode != nil {
		settings.OfflineMode = *update.OfflineMode
	}
	if update.Notifications != nil {
		settings.Notifications = *update.Notifications
	}
	if update.DarkMode != nil {
		settings.DarkMode = *update.DarkMode
	}
	settings.UpdatedAt = time.Now().UTC()

	return s.save(settings)
}

// SetWakeWord changes only the wake word.
func (s *SettingsService) SetWakeWord(userID, wakeWord string) (models.Settings, error) {
	return s.Update(userID, models.SettingsUpdate{WakeWord: &wakeWord})
}

// ResetDefaults overwrites the owner's settings with the default values.
// The record is kept, not deleted.
func (s *SettingsService) ResetDefaults(userID string) (models.Settings, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return models.Settings{}, err
	}

	defaults := models.DefaultSettings(userID)
	defaults.ID = settings.ID
	defaults.UpdatedAt = time.Now().UTC()
	return s.save(defaults)
}

func (s *SettingsService) save(settings models.Settings) (models.Settings, error) {
	_, err := s.db.Exec(`UPDATE settings SET wake_word = ?, sensitivity = ?, voice_speed = ?,
		background_service = ?, voice_cloning = ?, offline_mode = ?, notifications = ?,
		dark_mode = ?, updated_at = ? WHERE user_id = ?`,
		settings.WakeWord, settings.Sensitivity, settings.VoiceSpeed,
		settings.BackgroundService, settings.VoiceCloning, settings.OfflineMode,
		settings.Notifications, settings.DarkMode, settings.UpdatedAt, settings.UserID)
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
