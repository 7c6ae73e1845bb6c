// Package jsonx extracts JSON payloads from LLM responses, which routinely
// arrive wrapped in markdown code fences or surrounded by prose.
package jsonx

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no JSON payload found in text")

// StripFences removes a surrounding markdown code fence (``` or ```json) if
// present and trims whitespace.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// slice returns the outermost open..close span of text, from the first open
// delimiter to the last close delimiter.
func slice(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// UnmarshalArray strips fences, slices out the outermost JSON array and
// decodes it into out.
func UnmarshalArray(text string, out any) error {
	s, ok := slice(StripFences(text), '[', ']')
	if !ok {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(s), out)
}

// UnmarshalObject strips fences, slices out the outermost JSON object and
// decodes it into out.
func UnmarshalObject(text string, out any) error {
	s, ok := slice(StripFences(text), '{', '}')
	if !ok {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(s), out)
}
