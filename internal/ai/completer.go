package ai

import "context"

// Completer is the text-completion collaborator used by the intent classifier
// and all advisors. Implementations are expected to be safe for concurrent use.
type Completer interface {
	// Complete submits a system instruction plus a user payload and returns the
	// textual response. Failures are reported as *CompletionError.
	Complete(ctx context.Context, systemInstruction, userPayload string) (string, error)
}

// CompletionError wraps any failure of the completion collaborator
// (network, auth, quota, empty response).
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return "completion via " + e.Provider + ": " + e.Err.Error()
}

func (e *CompletionError) Unwrap() error { return e.Err }
