package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
	"github.com/manjuraavi/linkedin-career-coach/internal/session"
)

const (
	welcomeTemplate = "Hello %s! I've analyzed your LinkedIn profile. I'm here to help you with career coaching, profile analysis, job fit assessment, and content enhancement. What would you like to explore today?"

	genericReply = "I understand. Let me provide some insights."
)

// resultKeys maps an intent to the session result slot its payload is
// persisted under.
var resultKeys = map[Intent]string{
	IntentProfileAnalyzer: "analysis",
	IntentJobFit:          "job_fit",
	IntentContentEnhancer: "enhanced_content",
	IntentCareerCoach:     "coaching",
}

// ProfileFetcher resolves a public LinkedIn URL into a normalized profile.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, url string) (*profile.Record, error)
}

// Service owns session lifecycle and turn execution on top of the engine.
type Service struct {
	engine  *Engine
	store   session.Store
	locker  *session.Locker
	fetcher ProfileFetcher
	logger  *zap.Logger
}

func NewService(engine *Engine, store session.Store, fetcher ProfileFetcher, logger *zap.Logger) *Service {
	return &Service{
		engine:  engine,
		store:   store,
		locker:  session.NewLocker(),
		fetcher: fetcher,
		logger:  logger,
	}
}

// StartSession scrapes the given profile URL, creates a session seeded with a
// welcome message, and returns it.
func (s *Service) StartSession(ctx context.Context, profileURL, jobDescription string) (*session.Session, error) {
	record, err := s.fetcher.FetchProfile(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if record == nil || record.Name == "" {
		return nil, fmt.Errorf("profile for %q came back empty", profileURL)
	}

	sess := &session.Session{
		ID:             uuid.NewString(),
		Profile:        record,
		JobDescription: jobDescription,
		History: []session.Message{
			{Role: session.RoleAssistant, Content: fmt.Sprintf(welcomeTemplate, record.DisplayName())},
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.logger.Info("session started",
		zap.String("session_id", sess.ID),
		zap.String("profile", record.DisplayName()),
	)

	return sess, nil
}

// Chat runs one conversational turn for the session and returns the
// assistant's reply. Concurrent turns for the same session are serialized.
func (s *Service) Chat(ctx context.Context, sessionID, message string) (string, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	userMsg := session.Message{Role: session.RoleUser, Content: message}
	if err := s.store.AppendMessage(ctx, sessionID, userMsg); err != nil {
		return "", fmt.Errorf("recording message: %w", err)
	}

	initial := TurnState{
		SessionID:      sessionID,
		UserQuestion:   message,
		Profile:        sess.Profile,
		JobDescription: sess.JobDescription,
		History:        append(sess.History, userMsg),
		Command:        CommandChat,
	}

	final, err := s.engine.RunTurn(ctx, initial)
	if err != nil {
		return "", err
	}

	reply := s.extractReply(&final)
	s.persistResults(ctx, sessionID, &final)

	if err := s.store.AppendMessage(ctx, sessionID, session.Message{Role: session.RoleAssistant, Content: reply}); err != nil {
		return "", fmt.Errorf("recording reply: %w", err)
	}

	return reply, nil
}

// extractReply picks the user-facing message out of the final state. The
// classified intent's slot wins when it answered this question; otherwise any
// fresh slot serves, and a canned line covers the empty case.
func (s *Service) extractReply(state *TurnState) string {
	if state.Err != "" {
		return "I encountered an error: " + state.Err
	}

	if state.Classification != nil {
		if r := state.ResultFor(state.Classification.Intent); fresh(r, state.UserQuestion) {
			return r.Message
		}
	}
	for _, r := range state.results() {
		if fresh(r, state.UserQuestion) {
			return r.Message
		}
	}

	s.logger.Warn("turn produced no result", zap.String("session_id", state.SessionID))
	return genericReply
}

func (s *Service) persistResults(ctx context.Context, sessionID string, state *TurnState) {
	for intent, key := range resultKeys {
		r := state.ResultFor(intent)
		if !fresh(r, state.UserQuestion) {
			continue
		}
		payload, err := json.Marshal(r)
		if err != nil {
			continue
		}
		if err := s.store.PutResult(ctx, sessionID, key, payload); err != nil {
			s.logger.Warn("storing result failed",
				zap.String("session_id", sessionID),
				zap.String("slot", key),
				zap.Error(err),
			)
		}
	}
}

func fresh(r *Result, question string) bool {
	return r != nil && r.Message != "" && r.UserQuestion == question
}
