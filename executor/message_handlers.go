package executor

import (
	"context"

	"github.com/flowbot-io/flowbot/model"
)

var _ Handler = new(startHandler)
var _ Handler = new(messageHandler)
var _ Handler = new(databaseHandler)
var _ Handler = new(endHandler)

type startHandler struct {
	baseHandler
}

func NewStartHandler() *startHandler {
	return &startHandler{baseHandler{model.NODE_TYPE_START}}
}

func (h *startHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	message := node.Data.Message
	if message == "" {
		message = DEFAULT_GREETING_MESSAGE
	}
	return Result{
		Message:    ec.Vars.Interpolate(message),
		NextNodeId: h.next(ec, node.Id, 0),
	}, nil
}

type messageHandler struct {
	baseHandler
}

func NewMessageHandler() *messageHandler {
	return &messageHandler{baseHandler{model.NODE_TYPE_MESSAGE}}
}

func (h *messageHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	return Result{
		Message:    ec.Vars.Interpolate(node.Data.Message),
		NextNodeId: h.next(ec, node.Id, 0),
	}, nil
}

// databaseHandler is a stub, it always reports success.
type databaseHandler struct {
	baseHandler
}

func NewDatabaseHandler() *databaseHandler {
	return &databaseHandler{baseHandler{model.NODE_TYPE_DATABASE}}
}

func (h *databaseHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	message := node.Data.Message
	if message == "" {
		message = DEFAULT_DATABASE_MESSAGE
	}
	return Result{
		Message:    ec.Vars.Interpolate(message),
		NextNodeId: h.next(ec, node.Id, 0),
	}, nil
}

type endHandler struct {
	baseHandler
}

func NewEndHandler() *endHandler {
	return &endHandler{baseHandler{model.NODE_TYPE_END}}
}

func (h *endHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	message := node.Data.Message
	if message == "" {
		message = DEFAULT_FAREWELL_MESSAGE
	}
	return Result{Message: ec.Vars.Interpolate(message)}, nil
}
