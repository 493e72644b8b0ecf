package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/flowbot-io/flowbot/model"
)

const DEFAULT_DELAY_SECONDS = 1.0

var _ Handler = new(delayHandler)

type delayHandler struct {
	baseHandler
}

func NewDelayHandler() *delayHandler {
	return &delayHandler{baseHandler{model.NODE_TYPE_DELAY}}
}

func (h *delayHandler) Validate(node model.Node) error {
	if node.Data.Duration < 0 {
		return fmt.Errorf("nodeId=%s, delay duration %f wrong", node.Id, node.Data.Duration)
	}
	return nil
}

// Execute suspends this session's continuation only; other sessions are not
// blocked. A typing action carries the duration so the UI can animate it.
func (h *delayHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	seconds := node.Data.Duration
	if seconds == 0 {
		seconds = DEFAULT_DELAY_SECONDS
	}
	delay := time.Duration(seconds * float64(time.Second))

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	return Result{
		NextNodeId: h.next(ec, node.Id, 0),
		Actions:    []model.Action{{Type: model.ACTION_TYPING, Duration: delay.Milliseconds()}},
	}, nil
}
