package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
)

const careerCoachSystemPrompt = `You are an expert LinkedIn Career Coach and Personal Branding specialist. You have deep expertise in:

- LinkedIn profile optimization and ATS compatibility
- Career development and transition strategies
- Industry trends and job market analysis
- Skill gap identification and learning paths
- Professional networking and personal branding
- Interview preparation and job search tactics

Key Guidelines:
- Always reference the user's actual profile data when giving advice
- Provide specific, actionable recommendations with clear next steps
- Be encouraging but honest about areas needing improvement
- Suggest concrete resources (courses, certifications, tools) when relevant
- Use a conversational, supportive tone like a professional mentor
- Remember context from previous messages in this conversation

Response Format:
- Use markdown formatting for better readability
- Include bullet points for actionable items
- Structure longer responses with clear headings`

const careerCoachApology = "I apologize, but I encountered a technical issue. Please try rephrasing your question or ask something else about your career development."

// CareerCoach handles broad, exploratory career questions. It is also the
// default route when classification is missing or unclear.
type CareerCoach struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewCareerCoach(completer ai.Completer, logger *zap.Logger) *CareerCoach {
	return &CareerCoach{completer: completer, logger: logger}
}

func (a *CareerCoach) Intent() Intent { return IntentCareerCoach }

func (a *CareerCoach) Run(ctx context.Context, state *TurnState) *Delta {
	payload := chatPayload(state, true,
		"Please provide a helpful, detailed response that directly addresses their question while leveraging their profile data and career context. Be specific and actionable.")

	result := completeChat(ctx, a.completer, a.logger,
		IntentCareerCoach, TypeChatResponse, careerCoachSystemPrompt, payload, careerCoachApology, state)

	return &Delta{Coaching: result}
}

// LearningResource points at one course or certification for a missing skill.
type LearningResource struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// CoachingPlan is the structured batch-mode output.
type CoachingPlan struct {
	Advice      []string                      `json:"advice"`
	GrowthAreas []string                      `json:"growth_areas"`
	NextSteps   []string                      `json:"next_steps"`
	Resources   map[string][]LearningResource `json:"resources"`
	CareerPaths []string                      `json:"career_paths"`
}

// neutralCoachingPlan is substituted when the model response carries no
// parsable object.
func neutralCoachingPlan() *CoachingPlan {
	return &CoachingPlan{
		Advice:      []string{"Focus on developing your core skills and gaining relevant experience"},
		GrowthAreas: []string{"Continue building your professional network and staying updated with industry trends"},
		NextSteps:   []string{"Update your profile regularly and seek feedback from mentors"},
		Resources:   map[string][]LearningResource{},
		CareerPaths: []string{"Consider exploring different roles within your field"},
	}
}

// Plan runs the batch (non-chat) coaching analysis: first a missing-skills
// pass against the job description, then the full guidance plan.
func (a *CareerCoach) Plan(ctx context.Context, p *profile.Record, jobDescription string) (*CoachingPlan, error) {
	missing := a.missingSkills(ctx, p, jobDescription)

	payload := fmt.Sprintf(`As an expert career coach, provide comprehensive career guidance based on this profile and job target.

Profile:
- About: %s
- Experience: %s
- Skills: %s

Target Job: %s
Missing Skills: %v

Provide detailed guidance in JSON format with these keys:
- advice: Array of career advice points
- growth_areas: Array of key areas for development
- next_steps: Array of specific actionable steps
- resources: Object mapping each missing skill to array of learning resources with name, provider, and url
- career_paths: Array of suggested career progression paths`,
		p.About, formatExperience(p.Experience), formatSkills(p.Skills), jobDescription, missing)

	raw, err := a.completer.Complete(ctx, "You are an expert career coach providing comprehensive guidance.", payload)
	if err != nil {
		return nil, fmt.Errorf("career coaching: %w", err)
	}

	var plan CoachingPlan
	if err := decodeObject(raw, &plan); err != nil {
		a.logger.Warn("unparsable coaching plan, substituting neutral plan")
		return neutralCoachingPlan(), nil
	}

	return &plan, nil
}

// missingSkills is best-effort: any failure yields an empty list, the plan is
// still produced.
func (a *CareerCoach) missingSkills(ctx context.Context, p *profile.Record, jobDescription string) []string {
	payload := fmt.Sprintf(`Analyze the following profile against this job description and identify missing or weak skills.

Profile:
- About: %s
- Experience: %s
- Skills: %s

Job Description: %s

Return a JSON object with key 'missing_skills' containing an array of missing skills.`,
		p.About, formatExperience(p.Experience), formatSkills(p.Skills), jobDescription)

	raw, err := a.completer.Complete(ctx, "You are a skill gap analysis expert.", payload)
	if err != nil {
		a.logger.Warn("missing skills analysis failed", zap.Error(err))
		return nil
	}

	var parsed struct {
		MissingSkills []string `json:"missing_skills"`
	}
	if err := decodeObject(raw, &parsed); err != nil {
		return nil
	}

	return parsed.MissingSkills
}
