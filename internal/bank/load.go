package bank

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lib/pq"
	"github.com/quizhall/server/internal/models"
)

// LoadFile reads a JSON question bank and returns a validated store.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse questions file: %w", err)
	}

	return NewStore(questions)
}

// LoadDB reads the full question bank from postgres and returns a
// validated store. The bank is read once at startup; the database is
// not consulted again afterwards.
func LoadDB(db *sql.DB) (*Store, error) {
	rows, err := db.Query(
		`SELECT question, options, correct_answer_index, category, explanation
		 FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.Text, pq.Array(&q.Options), &q.CorrectAnswerIndex, &q.Category, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return NewStore(questions)
}
