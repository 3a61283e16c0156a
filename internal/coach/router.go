package coach

// Decision is the router verdict for one step of a turn.
type Decision struct {
	Terminate bool
	Next      Intent
}

// Next decides whether the turn is complete or which agent runs next. It is a
// pure function: it reads the state and never mutates it.
//
// Decision order, first match wins:
//  1. an error or an explicit end request terminates the turn;
//  2. in chat mode, a result whose correlation key matches the current
//     question means the answer has been produced, terminate;
//  3. a classification routes to its intent;
//  4. with no classification yet, default to the career coach.
func Next(s *TurnState) Decision {
	if s.Err != "" || s.ForceEnd {
		return Decision{Terminate: true}
	}

	if s.Command == CommandChat {
		// All four slots are checked every time, not only the one matching
		// the classified intent. An agent writing under an unexpected slot
		// must still complete the turn.
		for _, r := range s.results() {
			if r != nil && r.UserQuestion == s.UserQuestion {
				return Decision{Terminate: true}
			}
		}
	}

	if s.Classification != nil && s.Classification.Intent.Valid() {
		return Decision{Next: s.Classification.Intent}
	}

	return Decision{Next: IntentCareerCoach}
}
