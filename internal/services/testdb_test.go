package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ubaidjmi/voiceai-be/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// One connection so every query sees the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func registerTestUser(t *testing.T, users *UserService, username, email string) string {
	t.Helper()
	user, err := users.Register(username, email, "correct-horse-battery")
	require.NoError(t, err)
	return user.ID
}
