package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
)

const contentEnhancerSystemPrompt = `You are an expert LinkedIn content enhancer specializing in profile optimization and ATS (Applicant Tracking System) compatibility.

Key Requirements:
- Provide specific, actionable content improvements
- Include relevant keywords for the target role
- Use clear markdown formatting with headers and bullet points
- Explain why each change improves the content
- Focus on ATS optimization and readability
- Be specific about the requested content section

Response Format:
1. **Current Content Analysis** - Brief assessment of existing content
2. **Enhanced Version** - Improved content with keywords
3. **Key Improvements** - Specific changes made and why
4. **ATS Optimization Tips** - Additional suggestions for better visibility
5. **Keywords Added** - List of relevant keywords incorporated`

const contentEnhancerApology = "I apologize, but I encountered an issue enhancing your content. Please try rephrasing your question."

// ContentEnhancer rewrites and improves individual profile sections.
type ContentEnhancer struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewContentEnhancer(completer ai.Completer, logger *zap.Logger) *ContentEnhancer {
	return &ContentEnhancer{completer: completer, logger: logger}
}

func (a *ContentEnhancer) Intent() Intent { return IntentContentEnhancer }

func (a *ContentEnhancer) Run(ctx context.Context, state *TurnState) *Delta {
	payload := chatPayload(state, false,
		"Please provide specific content improvements that directly address their request. Include enhanced versions and explain why the changes are better.")

	result := completeChat(ctx, a.completer, a.logger,
		IntentContentEnhancer, TypeContentEnhancement, contentEnhancerSystemPrompt, payload, contentEnhancerApology, state)

	return &Delta{EnhancedContent: result}
}

// EnhancedContent is the structured batch-mode output.
type EnhancedContent struct {
	EnhancedAbout    string   `json:"enhanced_about"`
	EnhancedHeadline string   `json:"enhanced_headline"`
	Tips             []string `json:"tips"`
	Raw              string   `json:"raw,omitempty"`
}

// Enhance runs the batch (non-chat) enhancement of the about section and
// headline. An unparsable response degrades to the raw text.
func (a *ContentEnhancer) Enhance(ctx context.Context, p *profile.Record) (*EnhancedContent, error) {
	payload := fmt.Sprintf(`Rewrite and enhance the following profile content for clarity, impact, and keyword coverage.

About: %s
Headline: %s
Experience: %s
Skills: %s

Respond in JSON with keys: enhanced_about, enhanced_headline, tips.`,
		p.About, p.Headline, formatExperience(p.Experience), formatSkills(p.Skills))

	raw, err := a.completer.Complete(ctx, "You are a LinkedIn content optimization expert.", payload)
	if err != nil {
		return nil, fmt.Errorf("content enhancement: %w", err)
	}

	var enhanced EnhancedContent
	if err := decodeObject(raw, &enhanced); err != nil {
		a.logger.Warn("unparsable enhancement, keeping raw text")
		return &EnhancedContent{Raw: raw}, nil
	}

	return &enhanced, nil
}
