package coach

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
	"github.com/manjuraavi/linkedin-career-coach/internal/metrics"
)

//go:embed intent_prompt.md
var intentPrompt string

const (
	fallbackConfidence = 0.7
	defaultConfidence  = 0.5
)

// fallbackGroups are the ordered keyword groups used when the completion
// collaborator fails or returns something unusable. First match wins.
var fallbackGroups = []struct {
	intent   Intent
	keywords []string
}{
	{IntentProfileAnalyzer, []string{"analyze", "strengths", "weaknesses", "profile analysis", "what are my"}},
	{IntentJobFit, []string{"job fit", "match", "requirements", "score", "how well", "fit for", "qualify"}},
	{IntentContentEnhancer, []string{"rewrite", "enhance", "improve", "about section", "headline", "experience", "make my", "better"}},
}

// Classifier maps a free-text question to the agent that should handle it.
type Classifier struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewClassifier(completer ai.Completer, logger *zap.Logger) *Classifier {
	return &Classifier{completer: completer, logger: logger}
}

// Classify never fails outward: every error degrades to the keyword fallback.
func (c *Classifier) Classify(ctx context.Context, question, sessionID string) *Classification {
	payload := fmt.Sprintf("Classify this user question: %q\n\nReturn only the JSON response.", question)

	raw, err := c.completer.Complete(ctx, intentPrompt, payload)
	if err != nil {
		c.logger.Warn("intent completion failed, using keyword fallback",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		metrics.IntentFallbacks.WithLabelValues("completion_error").Inc()
		return c.fallback(question, sessionID)
	}

	var parsed struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := decodeObject(raw, &parsed); err != nil {
		c.logger.Warn("unparsable intent response, using keyword fallback",
			zap.String("session_id", sessionID),
		)
		metrics.IntentFallbacks.WithLabelValues("parse_error").Inc()
		return c.fallback(question, sessionID)
	}

	intent := Intent(strings.TrimSpace(parsed.Intent))
	if !intent.Valid() {
		c.logger.Warn("model declared an unknown intent, using keyword fallback",
			zap.String("session_id", sessionID),
			zap.String("declared_intent", parsed.Intent),
		)
		metrics.IntentFallbacks.WithLabelValues("invalid_intent").Inc()
		return c.fallback(question, sessionID)
	}

	if parsed.Confidence <= 0 {
		parsed.Confidence = 0.8
	}
	if parsed.Reasoning == "" {
		parsed.Reasoning = "Classified based on question content"
	}

	c.logger.Info("intent classified",
		zap.String("session_id", sessionID),
		zap.String("intent", string(intent)),
		zap.Float64("confidence", parsed.Confidence),
	)

	return &Classification{
		Intent:     intent,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
		SessionID:  sessionID,
		Success:    true,
	}
}

// fallback matches lower-cased keyword groups in a fixed order and defaults to
// the career coach when nothing matches.
func (c *Classifier) fallback(question, sessionID string) *Classification {
	lowered := strings.ToLower(question)

	for _, group := range fallbackGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return &Classification{
					Intent:     group.intent,
					Confidence: fallbackConfidence,
					Reasoning:  fmt.Sprintf("Fallback: matched %q", keyword),
					SessionID:  sessionID,
					Success:    true,
				}
			}
		}
	}

	return &Classification{
		Intent:     IntentCareerCoach,
		Confidence: defaultConfidence,
		Reasoning:  "Fallback: defaulted to career coach",
		SessionID:  sessionID,
		Success:    true,
	}
}
