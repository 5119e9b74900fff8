package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubaidjmi/voiceai-be/internal/models"
)

func TestSettingsGet_LazyCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsService(db)

	// No registration happened for this id; first read creates defaults.
	got, err := settings.Get("orphan-user")
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Hey Assistant", got.WakeWord)
	assert.Equal(t, 75, got.Sensitivity)

	again, err := settings.Get("orphan-user")
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)
}

func TestSettingsUpdate_PartialUpsert(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	settings := NewSettingsService(db)
	owner := registerTestUser(t, users, "alice", "alice@example.com")

	darkMode := true
	sensitivity := 60
	updated, err := settings.Update(owner, models.SettingsUpdate{
		DarkMode:    &darkMode,
		Sensitivity: &sensitivity,
	})
	require.NoError(t, err)
	assert.True(t, updated.DarkMode)
	assert.Equal(t, 60, updated.Sensitivity)
	// Untouched fields keep their values.
	assert.Equal(t, "Hey Assistant", updated.WakeWord)
	assert.Equal(t, 50, updated.VoiceSpeed)
	assert.True(t, updated.Notifications)

	got, err := settings.Get(owner)
	require.NoError(t, err)
	assert.Equal(t, updated.ID, got.ID)
	assert.True(t, got.DarkMode)
	assert.Equal(t, 60, got.Sensitivity)
	assert.Equal(t, "Hey Assistant", got.WakeWord)
}

func TestSettingsSetWakeWord(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	settings := NewSettingsService(db)
	owner := registerTestUser(t, users, "alice", "alice@example.com")

	updated, err := settings.SetWakeWord(owner, "Hey Jarvis")
	require.NoError(t, err)
	assert.Equal(t, "Hey Jarvis", updated.WakeWord)
	assert.Equal(t, 75, updated.Sensitivity)
}

func TestSettingsResetDefaults_KeepsRecord(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	settings := NewSettingsService(db)
	owner := registerTestUser(t, users, "alice", "alice@example.com")

	original, err := settings.Get(owner)
	require.NoError(t, err)

	word := "Hey Jarvis"
	offline := true
	_, err = settings.Update(owner, models.SettingsUpdate{WakeWord: &word, OfflineMode: &offline})
	require.NoError(t, err)

	reset, err := settings.ResetDefaults(owner)
	require.NoError(t, err)
	// Same record, default values.
	assert.Equal(t, original.ID, reset.ID)
	assert.Equal(t, "Hey Assistant", reset.WakeWord)
	assert.Equal(t, 75, reset.Sensitivity)
	assert.Equal(t, 50, reset.VoiceSpeed)
	assert.True(t, reset.BackgroundService)
	assert.True(t, reset.VoiceCloning)
	assert.False(t, reset.OfflineMode)
	assert.True(t, reset.Notifications)
	assert.False(t, reset.DarkMode)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(1) FROM settings WHERE user_id = ?", owner).Scan(&count))
	assert.Equal(t, 1, count)
}
