package coach

import (
	"errors"
	"testing"
)

func TestDecodeObjectFencedResponse(t *testing.T) {
	raw := "```json\n{\"intent\": \"career_coach_agent\", \"confidence\": 0.7}\n```"

	var parsed struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	if err := decodeObject(raw, &parsed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Intent != "career_coach_agent" {
		t.Fatalf("unexpected intent: %q", parsed.Intent)
	}
	if parsed.Confidence != 0.7 {
		t.Fatalf("unexpected confidence: %v", parsed.Confidence)
	}
}

func TestDecodeObjectSurroundingProse(t *testing.T) {
	raw := `Sure! Here is the classification you asked for:
{"intent": "job_fit_agent", "confidence": 0.85}
Let me know if you need anything else.`

	var parsed struct {
		Intent string `json:"intent"`
	}
	if err := decodeObject(raw, &parsed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Intent != "job_fit_agent" {
		t.Fatalf("unexpected intent: %q", parsed.Intent)
	}
}

func TestDecodeObjectNoObject(t *testing.T) {
	var parsed struct{}
	err := decodeObject("this response carries no structure at all", &parsed)
	if !errors.Is(err, errNoJSONObject) {
		t.Fatalf("expected errNoJSONObject, got %v", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\": 1}\n```": `{"a": 1}`,
		"```\n{\"a\": 1}\n```":     `{"a": 1}`,
		"  {\"a\": 1}  ":           `{"a": 1}`,
	}

	for input, want := range cases {
		if got := stripFences(input); got != want {
			t.Fatalf("stripFences(%q) = %q, want %q", input, got, want)
		}
	}
}
