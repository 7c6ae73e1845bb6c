package curriculum

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Question is a single multiple-choice practice question. Options canonically
// hold four entries but the count is not enforced anywhere in the pipeline.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Hints       []string `json:"hints,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// Set is a titled, grade-tagged bundle of practice questions. Set ids are
// stable but NOT unique across a dataset: duplicate ids with different titles
// are observed in real data, so anything resolving a set by id must be
// prepared to disambiguate.
type Set struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	GradeLevel  int        `json:"grade_level"`
	Topic       string     `json:"topic,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Questions   []Question `json:"questions"`
}

// GradeLabel renders a grade level for reports, with kindergarten spelled out.
func GradeLabel(grade int) string {
	if grade == 0 {
		return "Kindergarten"
	}
	return fmt.Sprintf("Grade %d", grade)
}

// Load reads a dataset file and materializes it fully in memory.
func Load(path string) ([]*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var sets []*Set
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return sets, nil
}

// Save writes the dataset back in the same schema it was read in. The file is
// the single shared mutable resource of the pipeline; callers are expected to
// be the only writer.
func Save(path string, sets []*Set) error {
	data, err := json.MarshalIndent(sets, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// Normalize collapses a string for answer/option comparison: lowercase,
// trimmed, internal spaces removed. Comparison only, never stored.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

// AnswerInOptions reports whether q.Answer matches one of q.Options under
// Normalize.
func AnswerInOptions(q *Question) bool {
	for _, opt := range q.Options {
		if Normalize(opt) == Normalize(q.Answer) {
			return true
		}
	}
	return false
}
