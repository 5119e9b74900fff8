package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"

	"github.com/ubaidjmi/voiceai-be/internal/models"
)

// passwordMinEntropyBits is the floor applied to new passwords. Roughly a
// lowercase word of 10+ characters or a shorter mixed-charset one.
const passwordMinEntropyBits = 40

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	UpdateProfile(id, username, email string) (models.User, error)
	ChangePassword(id, currentPassword, newPassword string) error
}

// UserService provides business logic for account management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user with a hashed password and, in the same
// transaction, the user's default settings record. Taken usernames and
// emails fail with models.ErrDuplicateUser.
func (s *UserService) Register(username, email, password string) (models.User, error) {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE username = ? OR email = ?", username, email).Scan(&exists)
	if err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, models.ErrDuplicateUser
	}

	if err := passwordvalidator.Validate(password, passwordMinEntropyBits); err != nil {
		return models.User{}, models.ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec("INSERT INTO users(id, username, email, password_hash, created_at) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	settings := models.DefaultSettings(user.ID)
	settings.ID = uuid.New().String()
	settings.UpdatedAt = time.Now().UTC()
	_, err = tx.Exec(`INSERT INTO settings(id, user_id, wake_word, sensitivity, voice_speed,
		background_service, voice_cloning, offline_mode, notifications, dark_mode, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settings.ID, settings.UserID, settings.WakeWord, settings.Sensitivity, settings.VoiceSpeed,
		settings.BackgroundService, settings.VoiceCloning, settings.OfflineMode,
		settings.Notifications, settings.DarkMode, settings.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown emails and wrong
// passwords both return models.ErrInvalidCredentials.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, models.ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile updates a user's identity fields.
func (s *UserService) UpdateProfile(id, username, email string) (models.User, error) {
	res, err := s.db.Exec("UPDATE users SET username = ?, email = ? WHERE id = ?", username, email, id)
	if err != nil {
		return models.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if affected == 0 {
		return models.User{}, models.ErrNotFound
	}
	return s.GetUserByID(id)
}

// ChangePassword verifies the current password, then hashes and stores a
// new one.
func (s *UserService) ChangePassword(id, currentPassword, newPassword string) error {
	var currentHash string
	row := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id)
	if err := row.Scan(&currentHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(currentPassword)); err != nil {
		return models.ErrInvalidCredentials
	}

	if err := passwordvalidator.Validate(newPassword, passwordMinEntropyBits); err != nil {
		return models.ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), id)
	return err
}
