package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
)

const profileAnalyzerSystemPrompt = `You are an expert LinkedIn profile analyst. When users ask about their profile, provide detailed, actionable insights in a conversational tone. Use markdown formatting and be specific about their profile data. Consider the conversation history when providing analysis.`

const profileAnalyzerApology = "I apologize, but I encountered an issue analyzing your profile. Please try rephrasing your question."

// ProfileAnalyzer answers questions about profile strengths, weaknesses and
// overall assessment.
type ProfileAnalyzer struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewProfileAnalyzer(completer ai.Completer, logger *zap.Logger) *ProfileAnalyzer {
	return &ProfileAnalyzer{completer: completer, logger: logger}
}

func (a *ProfileAnalyzer) Intent() Intent { return IntentProfileAnalyzer }

func (a *ProfileAnalyzer) Run(ctx context.Context, state *TurnState) *Delta {
	payload := chatPayload(state, false,
		"Please provide a detailed, helpful response that directly addresses their question about their profile. Be specific and actionable. Consider what was discussed previously in the conversation.")

	result := completeChat(ctx, a.completer, a.logger,
		IntentProfileAnalyzer, TypeProfileAnalysis, profileAnalyzerSystemPrompt, payload, profileAnalyzerApology, state)

	return &Delta{Analysis: result}
}

// ProfileAnalysis is the structured batch-mode output.
type ProfileAnalysis struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
	Raw         string   `json:"raw,omitempty"`
}

// Analyze runs the batch (non-chat) analysis. When the model response carries
// no parsable object, the raw text is preserved instead of failing.
func (a *ProfileAnalyzer) Analyze(ctx context.Context, p *profile.Record) (*ProfileAnalysis, error) {
	payload := fmt.Sprintf(`Given the following profile, analyze strengths, weaknesses, and give 3-5 actionable suggestions.

Profile About: %s
Experience: %s
Skills: %s

Respond in JSON with keys: strengths, weaknesses, suggestions.`,
		p.About, formatExperience(p.Experience), formatSkills(p.Skills))

	raw, err := a.completer.Complete(ctx, "You are a LinkedIn profile analysis expert.", payload)
	if err != nil {
		return nil, fmt.Errorf("profile analysis: %w", err)
	}

	var analysis ProfileAnalysis
	if err := decodeObject(raw, &analysis); err != nil {
		a.logger.Warn("unparsable profile analysis, keeping raw text")
		return &ProfileAnalysis{Raw: raw}, nil
	}

	return &analysis, nil
}
