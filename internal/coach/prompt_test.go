package coach

import (
	"strings"
	"testing"

	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
	"github.com/manjuraavi/linkedin-career-coach/internal/session"
)

func TestHistoryDigestEmpty(t *testing.T) {
	if got := historyDigest(nil); got != conversationStart {
		t.Fatalf("expected conversation start marker, got %q", got)
	}
}

func TestHistoryDigestWindowAndClip(t *testing.T) {
	long := strings.Repeat("x", 300)
	history := make([]session.Message, 0, 10)
	for i := 0; i < 9; i++ {
		role := session.RoleUser
		if i%2 == 1 {
			role = session.RoleAssistant
		}
		history = append(history, session.Message{Role: role, Content: long})
	}
	history = append(history, session.Message{Role: session.RoleUser, Content: "latest question"})

	digest := historyDigest(history)

	parts := strings.Split(digest, " | ")
	if len(parts) != historyWindow {
		t.Fatalf("expected %d digested messages, got %d", historyWindow, len(parts))
	}
	if !strings.HasSuffix(digest, "User: latest question") {
		t.Fatalf("expected digest to end with the newest message: %s", digest)
	}

	for _, part := range parts[:historyWindow-1] {
		content := strings.SplitN(part, ": ", 2)[1]
		if len([]rune(content)) != historyMessageLimit {
			t.Fatalf("expected clipped message of %d runes, got %d", historyMessageLimit, len([]rune(content)))
		}
	}
}

func TestHistoryDigestUnknownRole(t *testing.T) {
	digest := historyDigest([]session.Message{{Role: "system", Content: "note"}})
	if digest != "Message: note" {
		t.Fatalf("unexpected digest for unknown role: %q", digest)
	}
}

func TestFormatExperience(t *testing.T) {
	if got := formatExperience(nil); got != "No experience data provided" {
		t.Fatalf("unexpected empty rendering: %q", got)
	}

	entries := []profile.Experience{
		{Title: "Senior Engineer", Company: "Acme"},
		{Title: "", Company: "Globex"},
		{Title: "Analyst", Company: ""},
		{Title: "Intern", Company: "Initech"},
	}

	got := formatExperience(entries)
	want := "Senior Engineer at Acme; Unknown Position at Globex; Analyst at Unknown Company"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if strings.Contains(got, "Intern") {
		t.Fatalf("expected only the first three positions: %q", got)
	}
}

func TestFormatEducation(t *testing.T) {
	if got := formatEducation(nil); got != "No education data provided" {
		t.Fatalf("unexpected empty rendering: %q", got)
	}

	entries := []profile.Education{
		{Degree: "BSc Computer Science", School: "MIT"},
		{Degree: "MSc", School: "Stanford"},
		{Degree: "PhD", School: "Berkeley"},
	}

	got := formatEducation(entries)
	want := "BSc Computer Science from MIT; MSc from Stanford"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestChatPayloadIncludesJobOnRequest(t *testing.T) {
	state := &TurnState{
		UserQuestion:   "How do I improve?",
		JobDescription: "Senior Backend Engineer",
		Profile: &profile.Record{
			Name:   "Jordan Smith",
			Skills: []string{"Go", "SQL"},
		},
		History: []session.Message{{Role: session.RoleUser, Content: "hello"}},
	}

	withJob := chatPayload(state, true, "Closing line.")
	if !strings.Contains(withJob, "**Target Job:** Senior Backend Engineer") {
		t.Fatalf("expected target job block: %s", withJob)
	}
	if !strings.Contains(withJob, "- Name: Jordan Smith") {
		t.Fatalf("expected profile name: %s", withJob)
	}
	if !strings.Contains(withJob, "- Skills: Go, SQL") {
		t.Fatalf("expected skills list: %s", withJob)
	}
	if !strings.Contains(withJob, "**Current Question:** How do I improve?") {
		t.Fatalf("expected current question block: %s", withJob)
	}
	if !strings.HasSuffix(withJob, "Closing line.") {
		t.Fatalf("expected closing instruction at the end: %s", withJob)
	}

	withoutJob := chatPayload(state, false, "Closing line.")
	if strings.Contains(withoutJob, "**Target Job:**") {
		t.Fatalf("target job must be omitted: %s", withoutJob)
	}
}

func TestChatPayloadNilProfile(t *testing.T) {
	state := &TurnState{UserQuestion: "hi"}

	payload := chatPayload(state, false, "")
	if !strings.Contains(payload, "- Name: User") {
		t.Fatalf("expected placeholder name for missing profile: %s", payload)
	}
	if !strings.Contains(payload, conversationStart) {
		t.Fatalf("expected conversation start marker: %s", payload)
	}
}
