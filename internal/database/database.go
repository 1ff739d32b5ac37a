package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "quiz_user")
	password := getEnv("DB_PASSWORD", "quiz_password")
	dbname := getEnv("DB_NAME", "quiz")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// Migrate creates the question bank schema. The bank is static data:
// rows are inserted by an operator, read once at startup, and never
// written by the server.
func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS questions (
		id                   BIGSERIAL PRIMARY KEY,
		question             TEXT NOT NULL,
		options              TEXT[] NOT NULL CHECK (array_length(options, 1) >= 2),
		correct_answer_index INT NOT NULL CHECK (correct_answer_index >= 0),
		category             VARCHAR(100) NOT NULL,
		explanation          TEXT NOT NULL DEFAULT '',
		created_at           TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
