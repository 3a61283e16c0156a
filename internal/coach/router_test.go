package coach

import "testing"

func chatState(question string) *TurnState {
	return &TurnState{
		Command:      CommandChat,
		SessionID:    "s1",
		UserQuestion: question,
	}
}

func TestNextTerminatesOnError(t *testing.T) {
	state := chatState("anything")
	state.Err = "completion blew up"
	state.Classification = &Classification{Intent: IntentJobFit, Success: true}

	if d := Next(state); !d.Terminate {
		t.Fatalf("expected termination on error, got route to %s", d.Next)
	}
}

func TestNextTerminatesOnForceEnd(t *testing.T) {
	state := chatState("anything")
	state.ForceEnd = true

	if d := Next(state); !d.Terminate {
		t.Fatalf("expected termination on force end")
	}
}

func TestNextTerminatesOnFreshResult(t *testing.T) {
	state := chatState("How well do I fit this role?")
	state.Classification = &Classification{Intent: IntentJobFit, Success: true}
	state.JobFit = &Result{
		Message:      "You match well.",
		Type:         TypeJobFitAnalysis,
		UserQuestion: "How well do I fit this role?",
		Success:      true,
	}

	if d := Next(state); !d.Terminate {
		t.Fatalf("expected termination on fresh result, got route to %s", d.Next)
	}
}

func TestNextTerminatesOnFreshResultInAnySlot(t *testing.T) {
	// The answer landed in a slot other than the classified one; the turn is
	// still done.
	state := chatState("What should I work on?")
	state.Classification = &Classification{Intent: IntentProfileAnalyzer, Success: true}
	state.Coaching = &Result{
		Message:      "Work on your headline.",
		Type:         TypeChatResponse,
		UserQuestion: "What should I work on?",
		Success:      true,
	}

	if d := Next(state); !d.Terminate {
		t.Fatalf("expected termination on fresh coaching result, got route to %s", d.Next)
	}
}

func TestNextIgnoresStaleResult(t *testing.T) {
	state := chatState("Rewrite my about section")
	state.Classification = &Classification{Intent: IntentContentEnhancer, Success: true}
	state.EnhancedContent = &Result{
		Message:      "Old answer.",
		Type:         TypeContentEnhancement,
		UserQuestion: "an earlier question",
		Success:      true,
	}

	d := Next(state)
	if d.Terminate {
		t.Fatalf("stale result must not terminate the turn")
	}
	if d.Next != IntentContentEnhancer {
		t.Fatalf("expected route to content enhancer, got %s", d.Next)
	}
}

func TestNextRoutesClassifiedIntent(t *testing.T) {
	for _, intent := range Intents {
		state := chatState("a question")
		state.Classification = &Classification{Intent: intent, Success: true}

		d := Next(state)
		if d.Terminate {
			t.Fatalf("unexpected termination for %s", intent)
		}
		if d.Next != intent {
			t.Fatalf("expected route to %s, got %s", intent, d.Next)
		}
	}
}

func TestNextDefaultsToCareerCoach(t *testing.T) {
	state := chatState("a question")

	d := Next(state)
	if d.Terminate {
		t.Fatalf("unexpected termination without classification")
	}
	if d.Next != IntentCareerCoach {
		t.Fatalf("expected default route to career coach, got %s", d.Next)
	}
}
