package coach

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
	"github.com/manjuraavi/linkedin-career-coach/internal/metrics"
	"github.com/manjuraavi/linkedin-career-coach/internal/utils"
)

// Agent is one specialized responder. Run never returns an error: a failed
// completion is folded into the returned delta as a non-successful result, so
// the turn always terminates with something displayable.
type Agent interface {
	Intent() Intent
	Run(ctx context.Context, state *TurnState) *Delta
}

const previewLimit = 200

// completeChat performs one chat-mode completion call on behalf of an agent
// and shapes the outcome into a Result stamped with the current question.
func completeChat(ctx context.Context, completer ai.Completer, logger *zap.Logger,
	agent Intent, resultType, systemPrompt, payload, apology string, state *TurnState,
) *Result {
	logger.Debug("agent request",
		zap.String("agent", string(agent)),
		zap.String("session_id", state.SessionID),
		zap.String("payload_preview", utils.TruncateForLog(payload, previewLimit)),
	)

	raw, err := completer.Complete(ctx, systemPrompt, payload)
	if err != nil {
		logger.Error("agent completion failed",
			zap.String("agent", string(agent)),
			zap.String("session_id", state.SessionID),
			zap.Error(err),
		)
		metrics.AdvisorFailures.WithLabelValues(string(agent)).Inc()

		return &Result{
			Message:      apology,
			Type:         TypeError,
			SessionID:    state.SessionID,
			UserQuestion: state.UserQuestion,
			Success:      false,
			Error:        err.Error(),
		}
	}

	logger.Debug("agent response",
		zap.String("agent", string(agent)),
		zap.String("session_id", state.SessionID),
		zap.String("response_preview", utils.TruncateForLog(raw, previewLimit)),
	)

	return &Result{
		Message:      strings.TrimSpace(raw),
		Type:         resultType,
		SessionID:    state.SessionID,
		UserQuestion: state.UserQuestion,
		Success:      true,
	}
}
