package coach

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
	"github.com/manjuraavi/linkedin-career-coach/internal/session"
)

type stubFetcher struct {
	record *profile.Record
	err    error
	urls   []string
}

func (f *stubFetcher) FetchProfile(_ context.Context, url string) (*profile.Record, error) {
	f.urls = append(f.urls, url)
	return f.record, f.err
}

func newTestService(t *testing.T, completer *stubCompleter) (*Service, session.Store) {
	t.Helper()

	store := session.NewMemoryStore()
	engine := NewEngine(completer, zap.NewNop())
	fetcher := &stubFetcher{record: testProfile()}

	return NewService(engine, store, fetcher, zap.NewNop()), store
}

func TestStartSessionBootstrapsWelcome(t *testing.T) {
	svc, store := newTestService(t, &stubCompleter{})

	sess, err := svc.StartSession(context.Background(), "https://www.linkedin.com/in/jordan/", "Senior Backend Engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("expected a generated session id")
	}
	if sess.JobDescription != "Senior Backend Engineer" {
		t.Fatalf("unexpected job description: %q", sess.JobDescription)
	}
	if len(sess.History) != 1 {
		t.Fatalf("expected exactly the welcome message, got %d entries", len(sess.History))
	}
	if sess.History[0].Role != session.RoleAssistant {
		t.Fatalf("welcome must come from the assistant")
	}
	if !strings.Contains(sess.History[0].Content, "Jordan Smith") {
		t.Fatalf("welcome must address the user by name: %q", sess.History[0].Content)
	}
	if sess.CreatedAt.IsZero() {
		t.Fatalf("expected creation time to be stamped")
	}

	stored, err := store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if stored.Profile == nil || stored.Profile.Name != "Jordan Smith" {
		t.Fatalf("profile not persisted: %+v", stored.Profile)
	}
}

func TestStartSessionFetchFailure(t *testing.T) {
	store := session.NewMemoryStore()
	engine := NewEngine(&stubCompleter{}, zap.NewNop())
	fetcher := &stubFetcher{err: errors.New("scrape timed out")}
	svc := NewService(engine, store, fetcher, zap.NewNop())

	if _, err := svc.StartSession(context.Background(), "https://www.linkedin.com/in/jordan/", ""); err == nil {
		t.Fatalf("expected fetch error to propagate")
	}
}

func TestStartSessionEmptyProfile(t *testing.T) {
	store := session.NewMemoryStore()
	engine := NewEngine(&stubCompleter{}, zap.NewNop())
	fetcher := &stubFetcher{record: &profile.Record{}}
	svc := NewService(engine, store, fetcher, zap.NewNop())

	if _, err := svc.StartSession(context.Background(), "https://www.linkedin.com/in/jordan/", ""); err == nil {
		t.Fatalf("expected an error for an empty profile")
	}
}

func TestChatFullTurn(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`{"intent": "job_fit_agent", "confidence": 0.9, "reasoning": "Asks about fit"}`,
		"## Match Score: 85\nStrong match overall.",
	}}
	svc, store := newTestService(t, completer)

	sess, err := svc.StartSession(context.Background(), "https://www.linkedin.com/in/jordan/", "Senior Backend Engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	question := "What's my fit score for Senior Backend Engineer?"
	reply, err := svc.Chat(context.Background(), sess.ID, question)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "## Match Score: 85\nStrong match overall." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	stored, err := store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// welcome, user question, assistant reply
	if len(stored.History) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(stored.History))
	}
	if stored.History[1].Role != session.RoleUser || stored.History[1].Content != question {
		t.Fatalf("user message not recorded: %+v", stored.History[1])
	}
	if stored.History[2].Role != session.RoleAssistant || stored.History[2].Content != reply {
		t.Fatalf("assistant reply not recorded: %+v", stored.History[2])
	}

	raw, ok := stored.Results["job_fit"]
	if !ok {
		t.Fatalf("expected the job_fit result slot to be persisted, got %v", stored.Results)
	}
	var persisted Result
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("persisted result is not valid JSON: %v", err)
	}
	if persisted.Type != TypeJobFitAnalysis {
		t.Fatalf("unexpected persisted type: %s", persisted.Type)
	}
	if persisted.UserQuestion != question {
		t.Fatalf("persisted result not correlated with the question: %q", persisted.UserQuestion)
	}
	if !persisted.Success {
		t.Fatalf("expected a successful persisted result")
	}
}

func TestChatAgentFailureReturnsApology(t *testing.T) {
	completer := &stubCompleter{err: errors.New("model unavailable")}
	svc, _ := newTestService(t, completer)

	sess, err := svc.StartSession(context.Background(), "https://www.linkedin.com/in/jordan/", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply, err := svc.Chat(context.Background(), sess.ID, "How do I negotiate salary?")
	if err != nil {
		t.Fatalf("a failed agent must not fail the chat call: %v", err)
	}
	if reply != careerCoachApology {
		t.Fatalf("expected apology reply, got %q", reply)
	}
}

func TestChatUnknownSession(t *testing.T) {
	svc, _ := newTestService(t, &stubCompleter{})

	_, err := svc.Chat(context.Background(), "missing", "hello")
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChatSecondTurnSeesHistory(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`{"intent": "career_coach_agent", "confidence": 0.8}`,
		"First answer.",
		`{"intent": "career_coach_agent", "confidence": 0.8}`,
		"Second answer.",
	}}
	svc, _ := newTestService(t, completer)

	sess, err := svc.StartSession(context.Background(), "https://www.linkedin.com/in/jordan/", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Chat(context.Background(), sess.ID, "first question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Chat(context.Background(), sess.ID, "second question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The second agent call (4th completion overall) sees the earlier exchange.
	payload := completer.calls[3].payload
	if !strings.Contains(payload, "User: first question") {
		t.Fatalf("earlier question missing from history digest: %s", payload)
	}
	if !strings.Contains(payload, "Assistant: First answer.") {
		t.Fatalf("earlier answer missing from history digest: %s", payload)
	}
	if !strings.Contains(payload, "**Current Question:** second question") {
		t.Fatalf("current question missing: %s", payload)
	}
}
