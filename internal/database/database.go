package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		-- Transcript stored as a JSON array of message objects
		messages_json TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS voice_samples (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		quality TEXT,
		duration REAL,
		file_path TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id),
		wake_word TEXT NOT NULL,
		sensitivity INTEGER NOT NULL,
		voice_speed INTEGER NOT NULL,
		background_service INTEGER NOT NULL,
		voice_cloning INTEGER NOT NULL,
		offline_mode INTEGER NOT NULL,
		notifications INTEGER NOT NULL,
		dark_mode INTEGER NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_conversations_user_created
		ON conversations(user_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_voice_samples_user_created
		ON voice_samples(user_id, created_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
