package executor

import (
	"context"

	"github.com/flowbot-io/flowbot/ai"
	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/model"
	"go.uber.org/zap"
)

const AI_CONTEXT_HISTORY_LIMIT = 5

var _ Handler = new(aiHandler)

type aiHandler struct {
	baseHandler
	client ai.Client
}

func NewAiHandler(client ai.Client) *aiHandler {
	return &aiHandler{
		baseHandler: baseHandler{model.NODE_TYPE_AI},
		client:      client,
	}
}

// Execute delegates to the AI collaborator. A missing client or a failed call
// degrades to a fixed apology; the conversation advances regardless.
func (h *aiHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	result := Result{NextNodeId: h.next(ec, node.Id, 0)}

	prompt := ec.Vars.Interpolate(node.Data.Prompt)
	if node.Data.Prompt == "" {
		prompt = ec.UserInput
		if prompt == "" {
			// Reached partway through a turn, the raw text lives in the
			// session variables.
			prompt = ec.Vars.GetString("lastUserInput")
		}
	}

	if h.client == nil {
		result.Message = DEFAULT_AI_ERROR_MESSAGE
		return result, nil
	}

	response, err := h.client.Generate(ctx, ai.Request{
		Prompt:      prompt,
		Context:     h.buildContext(ec),
		Model:       node.Data.Model,
		Temperature: node.Data.Temperature,
	})
	if err != nil {
		logger.Warn("ai node call failed", zap.String("nodeId", node.Id), zap.Error(err))
		result.Message = DEFAULT_AI_ERROR_MESSAGE
		return result, nil
	}
	result.Message = response
	return result, nil
}

// buildContext collects the last few history entries and every string valued
// variable except lastUserInput, which is already the prompt fallback.
func (h *aiHandler) buildContext(ec *ExecContext) ai.Context {
	history := ec.Session.History
	if len(history) > AI_CONTEXT_HISTORY_LIMIT {
		history = history[len(history)-AI_CONTEXT_HISTORY_LIMIT:]
	}
	vars := ec.Vars.StringValues()
	delete(vars, "lastUserInput")
	return ai.Context{History: history, Variables: vars}
}
