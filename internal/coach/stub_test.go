package coach

import "context"

type completion struct {
	instruction string
	payload     string
}

// stubCompleter replays a queue of canned responses and records every call.
// The last response repeats once the queue runs dry.
type stubCompleter struct {
	responses []string
	err       error
	calls     []completion
}

func (s *stubCompleter) Complete(_ context.Context, instruction, payload string) (string, error) {
	s.calls = append(s.calls, completion{instruction: instruction, payload: payload})
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}

	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}
