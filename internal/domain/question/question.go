package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/permitprep/backend/internal/domain/category"
)

// Question is a single multiple-choice DMV question.
type Question struct {
	ID           string            `json:"id"`
	Text         string            `json:"text"`
	Options      []string          `json:"options"`
	CorrectIndex int               `json:"correct_index"`
	Category     category.Category `json:"category"`
	Explanation  string            `json:"explanation,omitempty"`
	ImageName    string            `json:"image_name,omitempty"`
}

// Pool is an in-memory collection of questions loaded once at startup.
type Pool struct {
	Questions []Question
}

// Load reads a question pool from a JSON file. A missing or malformed
// file is reported as an error; callers treat that as "pool
// unavailable" and fall back rather than surfacing it to the user.
func Load(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}

	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse question file %s: %w", path, err)
	}

	for i, q := range questions {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("question %d (%s): %w", i, q.ID, err)
		}
	}

	return &Pool{Questions: questions}, nil
}

func validate(q Question) error {
	if q.Text == "" {
		return errors.New("empty text")
	}
	if len(q.Options) < 2 || len(q.Options) > 4 {
		return fmt.Errorf("expected 2-4 options, got %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct_index %d out of range", q.CorrectIndex)
	}
	if _, err := category.Parse(string(q.Category)); err != nil {
		return err
	}
	return nil
}

// Size returns the number of questions in the pool.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return len(p.Questions)
}

// ByCategory returns the questions belonging to the given category.
func (p *Pool) ByCategory(cat category.Category) []Question {
	if p == nil {
		return nil
	}
	var out []Question
	for _, q := range p.Questions {
		if q.Category == cat {
			out = append(out, q)
		}
	}
	return out
}
