// Package coach implements the conversational routing core: one user question
// is classified, dispatched to exactly one specialized agent, and the turn
// terminates once that agent has answered the current question.
package coach

import (
	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
	"github.com/manjuraavi/linkedin-career-coach/internal/session"
)

// Intent identifies one of the specialized agents. The values double as the
// classification labels the completion collaborator is asked to produce.
type Intent string

const (
	IntentProfileAnalyzer Intent = "profile_analyzer_agent"
	IntentJobFit          Intent = "job_fit_agent"
	IntentContentEnhancer Intent = "content_enhancer_agent"
	IntentCareerCoach     Intent = "career_coach_agent"
)

// Intents lists every routable intent in a fixed order.
var Intents = []Intent{IntentProfileAnalyzer, IntentJobFit, IntentContentEnhancer, IntentCareerCoach}

func (i Intent) Valid() bool {
	switch i {
	case IntentProfileAnalyzer, IntentJobFit, IntentContentEnhancer, IntentCareerCoach:
		return true
	}
	return false
}

// Result type tags.
const (
	TypeProfileAnalysis    = "profile_analysis"
	TypeJobFitAnalysis     = "job_fit_analysis"
	TypeContentEnhancement = "content_enhancement"
	TypeChatResponse       = "chat_response"
	TypeError              = "error"
)

// CommandChat marks a turn driven by a user question.
const CommandChat = "chat"

// Classification is the outcome of one intent-classification step. It lives
// for a single turn; the next turn re-classifies.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	SessionID  string  `json:"session_id,omitempty"`
	Success    bool    `json:"success"`
}

// Result is what an agent produces for one question. UserQuestion is the
// correlation key: it must equal the question that triggered the agent, so the
// router can tell a fresh answer from a stale one.
type Result struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	SessionID    string `json:"session_id"`
	UserQuestion string `json:"user_question"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// TurnState carries everything accumulated during one turn. It is created
// fresh per turn and discarded afterwards; only the chat history and the last
// result per agent survive into the session store.
type TurnState struct {
	Command        string
	SessionID      string
	UserQuestion   string
	JobDescription string
	Profile        *profile.Record
	History        []session.Message

	Classification  *Classification
	Analysis        *Result
	JobFit          *Result
	EnhancedContent *Result
	Coaching        *Result

	Err      string
	ForceEnd bool
}

// results returns the four agent slots in a fixed order.
func (s *TurnState) results() [4]*Result {
	return [4]*Result{s.Coaching, s.Analysis, s.JobFit, s.EnhancedContent}
}

// ResultFor returns the slot the given intent writes to.
func (s *TurnState) ResultFor(intent Intent) *Result {
	switch intent {
	case IntentProfileAnalyzer:
		return s.Analysis
	case IntentJobFit:
		return s.JobFit
	case IntentContentEnhancer:
		return s.EnhancedContent
	case IntentCareerCoach:
		return s.Coaching
	}
	return nil
}

// Delta is the partial state one step returns. Merge semantics are field-wise:
// History appends, every other field overwrites when set.
type Delta struct {
	Classification  *Classification
	Analysis        *Result
	JobFit          *Result
	EnhancedContent *Result
	Coaching        *Result
	History         []session.Message
	Err             string
	ForceEnd        bool
}

func (s *TurnState) Merge(d *Delta) {
	if d == nil {
		return
	}

	if d.Classification != nil {
		s.Classification = d.Classification
	}
	if d.Analysis != nil {
		s.Analysis = d.Analysis
	}
	if d.JobFit != nil {
		s.JobFit = d.JobFit
	}
	if d.EnhancedContent != nil {
		s.EnhancedContent = d.EnhancedContent
	}
	if d.Coaching != nil {
		s.Coaching = d.Coaching
	}
	if len(d.History) > 0 {
		s.History = append(s.History, d.History...)
	}
	if d.Err != "" {
		s.Err = d.Err
	}
	if d.ForceEnd {
		s.ForceEnd = true
	}
}
