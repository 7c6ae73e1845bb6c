package curriculum

import (
	"strings"
	"testing"
)

const validDataset = `[
  {
    "id": "g1-add-1",
    "title": "Addition Facts",
    "grade_level": 1,
    "topic": "Addition",
    "questions": [
      {
        "question": "What is 1 + 1?",
        "options": ["1", "2", "3", "4"],
        "answer": "2"
      }
    ]
  }
]`

func TestCheckSchemaValid(t *testing.T) {
	msgs, err := CheckSchema([]byte(validDataset))
	if err != nil {
		t.Fatalf("CheckSchema: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no violations, got %v", msgs)
	}
}

func TestCheckSchemaMissingRequired(t *testing.T) {
	doc := `[{"id": "x", "title": "T", "questions": []}]`
	msgs, err := CheckSchema([]byte(doc))
	if err != nil {
		t.Fatalf("CheckSchema: %v", err)
	}
	found := false
	for _, m := range msgs {
		if strings.Contains(m, "grade_level") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected grade_level violation, got %v", msgs)
	}
}

func TestCheckSchemaWrongShape(t *testing.T) {
	msgs, err := CheckSchema([]byte(`{"not": "an array"}`))
	if err != nil {
		t.Fatalf("CheckSchema: %v", err)
	}
	if len(msgs) == 0 {
		t.Fatal("object root must be rejected")
	}
}

func TestCheckSchemaBadQuestion(t *testing.T) {
	doc := `[
  {
    "id": "g1-add-1",
    "title": "Addition Facts",
    "grade_level": 1,
    "questions": [
      {"question": "too few options", "options": ["only one"], "answer": "only one"}
    ]
  }
]`
	msgs, err := CheckSchema([]byte(doc))
	if err != nil {
		t.Fatalf("CheckSchema: %v", err)
	}
	if len(msgs) == 0 {
		t.Fatal("expected minItems violation for options")
	}
}

func TestCheckSchemaInvalidJSON(t *testing.T) {
	if _, err := CheckSchema([]byte("{oops")); err == nil {
		t.Fatal("expected error for unparseable document")
	}
}
