package executor

import (
	"context"
	"fmt"

	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/validate"
)

var _ Handler = new(questionHandler)

type questionHandler struct {
	baseHandler
}

func NewQuestionHandler() *questionHandler {
	return &questionHandler{baseHandler{model.NODE_TYPE_QUESTION}}
}

func (h *questionHandler) Validate(node model.Node) error {
	if node.Data.InputType == validate.INPUT_TYPE_CHOICE && len(node.Data.Choices) == 0 {
		return fmt.Errorf("nodeId=%s, choice question must define choices", node.Id)
	}
	return nil
}

// Execute asks on an empty input and consumes the answer otherwise. The node
// re-presents itself until it has seen a valid answer, so the session pointer
// parks here between the prompt and the reply.
func (h *questionHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	prompt := node.Data.Question
	if prompt == "" {
		prompt = node.Data.Message
	}

	if ec.UserInput == "" {
		return Result{
			Message:    ec.Vars.Interpolate(prompt),
			NextNodeId: node.Id,
			Actions:    h.choiceActions(node),
		}, nil
	}

	// The answer is stored before validation, so the raw value survives even
	// when the user is re-prompted.
	if node.Data.VariableName != "" {
		ec.Vars.Set(node.Data.VariableName, ec.UserInput)
	}

	if node.Data.InputType != "" {
		res := validate.Input(ec.UserInput, node.Data.InputType, node.Data.Choices)
		if !res.Valid {
			return Result{
				Message:    res.Error,
				NextNodeId: node.Id,
				Actions:    h.choiceActions(node),
			}, nil
		}
	}

	return Result{NextNodeId: h.next(ec, node.Id, 0)}, nil
}

func (h *questionHandler) choiceActions(node model.Node) []model.Action {
	if node.Data.InputType != validate.INPUT_TYPE_CHOICE {
		return nil
	}
	return []model.Action{{Type: model.ACTION_SHOW_CHOICES, Choices: node.Data.Choices}}
}
