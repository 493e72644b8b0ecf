package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/model"
	"go.uber.org/zap"
)

var _ Handler = new(apiHandler)

type apiHandler struct {
	baseHandler
	client *http.Client
}

func NewApiHandler(client *http.Client) *apiHandler {
	return &apiHandler{
		baseHandler: baseHandler{model.NODE_TYPE_API},
		client:      client,
	}
}

func (h *apiHandler) Validate(node model.Node) error {
	if len(node.Data.Url) == 0 {
		return fmt.Errorf("nodeId=%s, api url can not be empty", node.Id)
	}
	return nil
}

// Execute issues the configured HTTP call. Failures never propagate: the user
// sees the configured or default error message and the conversation advances
// exactly as it would on success.
func (h *apiHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	result := Result{NextNodeId: h.next(ec, node.Id, 0)}

	body, status, err := h.call(ctx, ec, node)
	if err != nil {
		logger.Warn("api node call failed", zap.String("nodeId", node.Id), zap.Error(err))
		message := node.Data.ErrorMessage
		if message == "" {
			message = DEFAULT_API_ERROR_MESSAGE
		}
		result.Message = ec.Vars.Interpolate(message)
		return result, nil
	}

	ec.Vars.Set("apiResponse", body)
	ec.Vars.Set("apiStatus", status)
	message := node.Data.SuccessMessage
	if message == "" {
		message = DEFAULT_API_SUCCESS_MESSAGE
	}
	result.Message = ec.Vars.Interpolate(message)
	return result, nil
}

func (h *apiHandler) call(ctx context.Context, ec *ExecContext, node model.Node) (string, int, error) {
	url := ec.Vars.Interpolate(node.Data.Url)
	method := strings.ToUpper(node.Data.Method)
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if node.Data.Body != nil {
		raw, err := json.Marshal(node.Data.Body)
		if err != nil {
			return "", 0, err
		}
		reqBody = strings.NewReader(ec.Vars.Interpolate(string(raw)))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return "", 0, err
	}
	// Caller supplied headers override the default content type.
	req.Header.Set("Content-Type", "application/json")
	for k, v := range node.Data.Headers {
		req.Header.Set(k, ec.Vars.Interpolate(v))
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, fmt.Errorf("api call returned status %d", resp.StatusCode)
	}
	return string(respBody), resp.StatusCode, nil
}
