package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flowbot-io/flowbot/model"
)

type Context struct {
	History   []model.HistoryEntry `json:"history"`
	Variables map[string]string    `json:"variables"`
}

type Request struct {
	Prompt      string  `json:"prompt"`
	Context     Context `json:"context"`
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Client is the AI generation collaborator. The engine treats it as an opaque
// call/response service.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

var _ Client = new(HttpClient)

type HttpClient struct {
	baseUrl string
	client  *http.Client
}

func NewHttpClient(baseUrl string, timeout time.Duration) *HttpClient {
	return &HttpClient{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HttpClient) Generate(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+"/api/ai/generate-response", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("error decoding ai response %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("ai service returned status %d: %s", resp.StatusCode, body.Error)
	}
	if body.Error != "" {
		return "", fmt.Errorf("ai service error: %s", body.Error)
	}
	return body.Response, nil
}
