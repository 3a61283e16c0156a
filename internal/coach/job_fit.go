package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
)

const jobFitSystemPrompt = `You are an expert job fit analyst. When users ask about their job fit, provide detailed analysis with specific insights about their match with the target role.

Key Requirements:
- Always provide a match score (0-100) at the beginning
- Use clear markdown formatting with headers and bullet points
- Be specific about strengths and areas for improvement
- Include actionable recommendations
- Be encouraging but honest about gaps
- Consider the conversation history when providing analysis

Response Format:
1. Start with a clear match score and overall assessment
2. List specific strengths that match the role
3. Identify key gaps or areas for improvement
4. Provide actionable recommendations
5. End with a summary of fit potential`

const jobFitApology = "I apologize, but I encountered an issue analyzing your job fit. Please try rephrasing your question."

// JobFitAgent scores how well the profile matches the session's target job.
type JobFitAgent struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewJobFitAgent(completer ai.Completer, logger *zap.Logger) *JobFitAgent {
	return &JobFitAgent{completer: completer, logger: logger}
}

func (a *JobFitAgent) Intent() Intent { return IntentJobFit }

func (a *JobFitAgent) Run(ctx context.Context, state *TurnState) *Delta {
	payload := chatPayload(state, true,
		"Please provide a detailed job fit analysis following the specified format. Include a clear match score and be specific about how well they match the role requirements.")

	result := completeChat(ctx, a.completer, a.logger,
		IntentJobFit, TypeJobFitAnalysis, jobFitSystemPrompt, payload, jobFitApology, state)

	return &Delta{JobFit: result}
}

// JobFitReport is the structured batch-mode output.
type JobFitReport struct {
	MatchScore      float64  `json:"match_score"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
	Raw             string   `json:"raw,omitempty"`
}

// Evaluate runs the batch (non-chat) fit analysis against a job description.
// An unparsable model response degrades to a report carrying the raw text.
func (a *JobFitAgent) Evaluate(ctx context.Context, p *profile.Record, jobDescription string) (*JobFitReport, error) {
	payload := fmt.Sprintf(`Analyze the fit between this profile and job description.

Profile:
- About: %s
- Experience: %s
- Skills: %s

Job Description: %s

Provide analysis in JSON format with:
- match_score: 0-100 score
- strengths: array of matching strengths
- gaps: array of skill/experience gaps
- recommendations: array of improvement suggestions`,
		p.About, formatExperience(p.Experience), formatSkills(p.Skills), jobDescription)

	raw, err := a.completer.Complete(ctx, "You are a job fit analysis expert.", payload)
	if err != nil {
		return nil, fmt.Errorf("job fit analysis: %w", err)
	}

	var report JobFitReport
	if err := decodeObject(raw, &report); err != nil {
		a.logger.Warn("unparsable job fit report, keeping raw text")
		return &JobFitReport{Raw: raw}, nil
	}

	return &report, nil
}
