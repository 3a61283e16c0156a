package gemini

import (
	"testing"

	"google.golang.org/genai"
)

func TestCollectTextJoinsCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "  first  "},
					{Text: ""},
					{Text: "second"},
				}},
			},
			nil,
			{Content: nil},
		},
	}

	got := collectText(resp)
	want := "first\nsecond"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCollectTextEmptyResponse(t *testing.T) {
	if got := collectText(nil); got != "" {
		t.Fatalf("expected empty string for nil response, got %q", got)
	}

	if got := collectText(&genai.GenerateContentResponse{}); got != "" {
		t.Fatalf("expected empty string for empty response, got %q", got)
	}
}
