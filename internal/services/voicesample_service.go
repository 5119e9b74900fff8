package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ubaidjmi/voiceai-be/internal/models"
)

// VoiceSampleServiceProvider defines the interface for voice sample services.
type VoiceSampleServiceProvider interface {
	List(userID string) ([]models.VoiceSample, error)
	Create(userID, quality string, duration float64, filePath string) (models.VoiceSample, error)
	Delete(userID, sampleID string) error
	DeleteAll(userID string) error
	Count(userID string) (int, error)
}

// VoiceSampleService provides business logic for voice sample metadata.
type VoiceSampleService struct {
	db *sql.DB
}

// NewVoiceSampleService creates a new VoiceSampleService.
func NewVoiceSampleService(db *sql.DB) *VoiceSampleService {
	return &VoiceSampleService{db: db}
}

// List returns the owner's voice samples, newest first.
func (s *VoiceSampleService) List(userID string) ([]models.VoiceSample, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, quality, duration, file_path, created_at FROM voice_samples WHERE user_id = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := []models.VoiceSample{}
	for rows.Next() {
		var sample models.VoiceSample
		if err := rows.Scan(&sample.ID, &sample.UserID, &sample.Quality, &sample.Duration, &sample.FilePath, &sample.CreatedAt); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

// Create stores a new voice sample record for the owner.
func (s *VoiceSampleService) Create(userID, quality string, duration float64, filePath string) (models.VoiceSample, error) {
	sample := models.VoiceSample{
		ID:        uuid.New().String(),
		UserID:    userID,
		Quality:   quality,
		Duration:  duration,
		FilePath:  filePath,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec("INSERT INTO voice_samples(id, user_id, quality, duration, file_path, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		sample.ID, sample.UserID, sample.Quality, sample.Duration, sample.FilePath, sample.CreatedAt)
	if err != nil {
		return models.VoiceSample{}, err
	}
	return sample, nil
}

// Delete removes an owned voice sample.
func (s *VoiceSampleService) Delete(userID, sampleID string) error {
	res, err := s.db.Exec("DELETE FROM voice_samples WHERE id = ? AND user_id = ?", sampleID, userID)
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

// DeleteAll removes every voice sample the owner has.
func (s *VoiceSampleService) DeleteAll(userID string) error {
	_, err := s.db.Exec("DELETE FROM voice_samples WHERE user_id = ?", userID)
	return err
}

// Count returns how many voice samples the owner has stored.
func (s *VoiceSampleService) Count(userID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(1) FROM voice_samples WHERE user_id = ?", userID).Scan(&count)
	return count, err
}
