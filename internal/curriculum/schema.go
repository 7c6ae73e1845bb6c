package curriculum

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// datasetSchema describes the dataset file: an array of curriculum sets. It is
// intentionally loose about optional fields; the rule auditor and reconciler
// enforce the interesting invariants.
const datasetSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "grade_level", "questions"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "grade_level": {"type": "integer", "minimum": 0},
      "topic": {"type": "string"},
      "difficulty": {"type": "string"},
      "questions": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["question", "options", "answer"],
          "properties": {
            "question": {"type": "string", "minLength": 1},
            "options": {"type": "array", "items": {"type": "string"}, "minItems": 2},
            "answer": {"type": "string"},
            "hints": {"type": "array", "items": {"type": "string"}},
            "explanation": {"type": "string"},
            "image": {"type": "string"}
          }
        }
      }
    }
  }
}`

// CheckSchema validates raw dataset bytes against the dataset schema and
// returns one message per violation. An empty slice means the document
// conforms.
func CheckSchema(data []byte) ([]string, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(datasetSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return msgs, nil
}

// CheckSchemaFile validates a dataset file on disk.
func CheckSchemaFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return CheckSchema(data)
}
