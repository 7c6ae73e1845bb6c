package jsonx

import (
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n[1,2]\n```":   "[1,2]",
		"```\n{\"a\":1}\n```":   "{\"a\":1}",
		"  [1,2]  ":             "[1,2]",
		"no fences {\"a\": 1}":  "no fences {\"a\": 1}",
	}
	for in, want := range cases {
		if got := StripFences(in); got != want {
			t.Fatalf("StripFences(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnmarshalArray(t *testing.T) {
	var out []int
	text := "Here is the result:\n```json\n[1, 2, 3]\n```\nLet me know!"
	if err := UnmarshalArray(text, &out); err != nil {
		t.Fatalf("UnmarshalArray: %v", err)
	}
	if len(out) != 3 || out[2] != 3 {
		t.Fatalf("decoded %v", out)
	}
}

func TestUnmarshalArrayNoPayload(t *testing.T) {
	var out []int
	err := UnmarshalArray("nothing to see here", &out)
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

func TestUnmarshalObject(t *testing.T) {
	var out struct {
		Title string `json:"title"`
	}
	text := "Sure! ```json\n{\"title\": \"Addition Facts\"}\n``` done"
	if err := UnmarshalObject(text, &out); err != nil {
		t.Fatalf("UnmarshalObject: %v", err)
	}
	if out.Title != "Addition Facts" {
		t.Fatalf("decoded %+v", out)
	}
}

func TestUnmarshalObjectOutermostSpan(t *testing.T) {
	// Nested braces must not truncate the payload.
	var out struct {
		Inner struct {
			A int `json:"a"`
		} `json:"inner"`
	}
	if err := UnmarshalObject(`prefix {"inner": {"a": 1}} suffix`, &out); err != nil {
		t.Fatalf("UnmarshalObject: %v", err)
	}
	if out.Inner.A != 1 {
		t.Fatalf("decoded %+v", out)
	}
}

func TestUnmarshalArrayGarbageInsideSpan(t *testing.T) {
	var out []int
	if err := UnmarshalArray("[1, 2, oops]", &out); err == nil {
		t.Fatal("expected decode error for invalid JSON")
	}
}
