package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/model"
	"go.uber.org/zap"
)

var _ Handler = new(webhookHandler)

type webhookHandler struct {
	baseHandler
	client *http.Client
}

func NewWebhookHandler(client *http.Client) *webhookHandler {
	return &webhookHandler{
		baseHandler: baseHandler{model.NODE_TYPE_WEBHOOK},
		client:      client,
	}
}

func (h *webhookHandler) Validate(node model.Node) error {
	if len(node.Data.Url) == 0 {
		return fmt.Errorf("nodeId=%s, webhook url can not be empty", node.Id)
	}
	return nil
}

// Execute posts the variable snapshot to the configured URL. Both outcomes
// advance normally; the configured message for either outcome may be empty,
// in which case no bot utterance is produced.
func (h *webhookHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	result := Result{NextNodeId: h.next(ec, node.Id, 0)}

	if err := h.post(ctx, ec, node); err != nil {
		logger.Warn("webhook node call failed", zap.String("nodeId", node.Id), zap.Error(err))
		if node.Data.ErrorMessage != "" {
			result.Message = ec.Vars.Interpolate(node.Data.ErrorMessage)
		}
		return result, nil
	}
	if node.Data.Message != "" {
		result.Message = ec.Vars.Interpolate(node.Data.Message)
	}
	return result, nil
}

func (h *webhookHandler) post(ctx context.Context, ec *ExecContext, node model.Node) error {
	payload, err := json.Marshal(map[string]any{
		"variables": ec.Vars.Snapshot(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"nodeId":    node.Id,
	})
	if err != nil {
		return err
	}
	url := ec.Vars.Interpolate(node.Data.Url)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
