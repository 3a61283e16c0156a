package coach

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
	"github.com/manjuraavi/linkedin-career-coach/internal/metrics"
)

// maxTurnSteps bounds router/agent iterations within one turn. A well-behaved
// turn takes two steps (classifier, one agent); hitting the cap means a
// contract violation somewhere and is fatal for the turn.
const maxTurnSteps = 10

// ErrTurnLoop reports a turn that exceeded the iteration cap.
var ErrTurnLoop = errors.New("turn exceeded the iteration cap")

// Engine drives one turn: classification first, then repeated
// (agent, router) steps until the router terminates.
type Engine struct {
	classifier *Classifier
	agents     map[Intent]Agent
	route      func(*TurnState) Decision
	logger     *zap.Logger
}

func NewEngine(completer ai.Completer, logger *zap.Logger) *Engine {
	agents := map[Intent]Agent{
		IntentProfileAnalyzer: NewProfileAnalyzer(completer, logger),
		IntentJobFit:          NewJobFitAgent(completer, logger),
		IntentContentEnhancer: NewContentEnhancer(completer, logger),
		IntentCareerCoach:     NewCareerCoach(completer, logger),
	}

	return &Engine{
		classifier: NewClassifier(completer, logger),
		agents:     agents,
		route:      Next,
		logger:     logger,
	}
}

// RunTurn executes one turn starting from the classifier. Each step's delta
// is merged into the state before the router decides the next move. Agents
// never fail the turn themselves; the only error is the iteration cap.
func (e *Engine) RunTurn(ctx context.Context, initial TurnState) (TurnState, error) {
	state := initial
	started := time.Now()

	classify := func(s *TurnState) *Delta {
		return &Delta{Classification: e.classifier.Classify(ctx, s.UserQuestion, s.SessionID)}
	}

	var current Agent
	for step := 0; step < maxTurnSteps; step++ {
		var delta *Delta
		if current == nil {
			delta = classify(&state)
		} else {
			e.logger.Info("running agent",
				zap.String("session_id", state.SessionID),
				zap.String("agent", string(current.Intent())),
			)
			delta = current.Run(ctx, &state)
		}
		state.Merge(delta)

		decision := e.route(&state)
		if decision.Terminate {
			e.observeTurn(&state, started, "completed")
			return state, nil
		}

		agent, ok := e.agents[decision.Next]
		if !ok {
			// The router only emits valid intents; an unregistered one
			// falls back to the coach rather than spinning.
			agent = e.agents[IntentCareerCoach]
		}
		current = agent
	}

	e.logger.Error("turn did not terminate",
		zap.String("session_id", state.SessionID),
		zap.Int("steps", maxTurnSteps),
	)
	e.observeTurn(&state, started, "loop")

	return state, ErrTurnLoop
}

func (e *Engine) observeTurn(state *TurnState, started time.Time, outcome string) {
	intent := "unknown"
	if state.Classification != nil {
		intent = string(state.Classification.Intent)
	}
	if outcome == "completed" && state.Err != "" {
		outcome = "error"
	}

	metrics.TurnsTotal.WithLabelValues(intent, outcome).Inc()
	metrics.TurnDuration.WithLabelValues(intent).Observe(time.Since(started).Seconds())
}
