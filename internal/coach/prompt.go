package coach

import (
	"fmt"
	"strings"

	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
	"github.com/manjuraavi/linkedin-career-coach/internal/session"
)

const (
	// historyWindow is how many trailing messages make it into a prompt.
	historyWindow = 6
	// historyMessageLimit caps each digested message, in runes.
	historyMessageLimit = 150

	conversationStart = "This is the beginning of our conversation."
)

// historyDigest renders the last historyWindow messages as a compact single
// line, each message clipped to historyMessageLimit runes.
func historyDigest(history []session.Message) string {
	if len(history) == 0 {
		return conversationStart
	}

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	parts := make([]string, 0, len(recent))
	for _, msg := range recent {
		content := clip(msg.Content, historyMessageLimit)
		switch msg.Role {
		case session.RoleUser:
			parts = append(parts, "User: "+content)
		case session.RoleAssistant:
			parts = append(parts, "Assistant: "+content)
		default:
			parts = append(parts, "Message: "+content)
		}
	}

	return strings.Join(parts, " | ")
}

// clip truncates s to at most limit runes, without an ellipsis.
func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// formatExperience renders up to the three most recent positions.
func formatExperience(entries []profile.Experience) string {
	if len(entries) == 0 {
		return "No experience data provided"
	}

	if len(entries) > 3 {
		entries = entries[:3]
	}

	parts := make([]string, 0, len(entries))
	for _, exp := range entries {
		title := exp.Title
		if title == "" {
			title = "Unknown Position"
		}
		company := exp.Company
		if company == "" {
			company = "Unknown Company"
		}
		parts = append(parts, fmt.Sprintf("%s at %s", title, company))
	}

	return strings.Join(parts, "; ")
}

// formatEducation renders up to two education entries.
func formatEducation(entries []profile.Education) string {
	if len(entries) == 0 {
		return "No education data provided"
	}

	if len(entries) > 2 {
		entries = entries[:2]
	}

	parts := make([]string, 0, len(entries))
	for _, edu := range entries {
		entry := strings.TrimSpace(fmt.Sprintf("%s from %s", edu.Degree, edu.School))
		if entry != "from" {
			parts = append(parts, entry)
		}
	}

	if len(parts) == 0 {
		return "No education data provided"
	}

	return strings.Join(parts, "; ")
}

func formatSkills(skills []string) string {
	if len(skills) == 0 {
		return "Not specified"
	}
	return strings.Join(skills, ", ")
}

// profileBlock assembles the profile summary shared by every agent prompt.
func profileBlock(p *profile.Record) string {
	if p == nil {
		p = &profile.Record{}
	}

	var b strings.Builder

	b.WriteString("**User Profile:**\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.DisplayName())
	fmt.Fprintf(&b, "- About: %s\n", p.About)
	fmt.Fprintf(&b, "- Experience: %s\n", formatExperience(p.Experience))
	fmt.Fprintf(&b, "- Education: %s\n", formatEducation(p.Education))
	fmt.Fprintf(&b, "- Skills: %s\n", formatSkills(p.Skills))

	return b.String()
}

// chatPayload assembles the user-role payload for a chat-mode agent call.
// jobDescription is included only by the agents that need it.
func chatPayload(state *TurnState, includeJob bool, closing string) string {
	var b strings.Builder

	b.WriteString(profileBlock(state.Profile))
	b.WriteString("\n")

	if includeJob {
		fmt.Fprintf(&b, "**Target Job:** %s\n\n", state.JobDescription)
	}

	fmt.Fprintf(&b, "**Conversation History:** %s\n\n", historyDigest(state.History))
	fmt.Fprintf(&b, "**Current Question:** %s\n\n", state.UserQuestion)
	b.WriteString(closing)

	return b.String()
}
