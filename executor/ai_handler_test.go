package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/flowbot-io/flowbot/ai"
	"github.com/flowbot-io/flowbot/graph"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/variables"
	"github.com/stretchr/testify/require"
)

type stubAiClient struct {
	response string
	err      error
	lastReq  ai.Request
}

func (s *stubAiClient) Generate(ctx context.Context, req ai.Request) (string, error) {
	s.lastReq = req
	return s.response, s.err
}

func aiContext(input string) *ExecContext {
	session := model.NewSessionState("s1", "ai")
	session.AppendUserMessage("hi")
	session.AppendBotMessage("hello there")
	return &ExecContext{
		Session:   session,
		Vars:      variables.NewStore(map[string]any{"name": "alice", "lastUserInput": input}),
		UserInput: input,
		Walker: graph.NewWalker([]model.Connection{
			{From: model.Endpoint{NodeId: "ai"}, To: model.Endpoint{NodeId: "next"}},
		}),
	}
}

func TestAiNodeGenerates(t *testing.T) {
	client := &stubAiClient{response: "Sure, happy to help."}
	handler := NewAiHandler(client)
	ec := aiContext("help me")
	node := model.Node{
		Id:   "ai",
		Type: model.NODE_TYPE_AI,
		Data: model.NodeData{Prompt: "Assist {{name}}", Model: "gpt-4", Temperature: 0.2},
	}
	result, err := handler.Execute(context.Background(), ec, node)
	require.NoError(t, err)
	require.Equal(t, "Sure, happy to help.", result.Message)
	require.Equal(t, "next", result.NextNodeId)
	require.Equal(t, "Assist alice", client.lastReq.Prompt)
	require.Equal(t, "gpt-4", client.lastReq.Model)
	require.Len(t, client.lastReq.Context.History, 2)
	require.Equal(t, "alice", client.lastReq.Context.Variables["name"])
	// The raw user input is not duplicated into the variable context.
	require.NotContains(t, client.lastReq.Context.Variables, "lastUserInput")
}

func TestAiNodePromptDefaultsToUserInput(t *testing.T) {
	client := &stubAiClient{response: "ok"}
	handler := NewAiHandler(client)
	_, err := handler.Execute(context.Background(), aiContext("what is the weather"), model.Node{Id: "ai", Type: model.NODE_TYPE_AI})
	require.NoError(t, err)
	require.Equal(t, "what is the weather", client.lastReq.Prompt)
}

func TestAiNodePromptFallsBackToLastUserInput(t *testing.T) {
	client := &stubAiClient{response: "ok"}
	handler := NewAiHandler(client)
	ec := aiContext("")
	ec.Vars.Set("lastUserInput", "what is the weather")
	_, err := handler.Execute(context.Background(), ec, model.Node{Id: "ai", Type: model.NODE_TYPE_AI})
	require.NoError(t, err)
	require.Equal(t, "what is the weather", client.lastReq.Prompt)
}

func TestAiNodeFallsBackOnError(t *testing.T) {
	handler := NewAiHandler(&stubAiClient{err: errors.New("upstream down")})
	result, err := handler.Execute(context.Background(), aiContext("help"), model.Node{Id: "ai", Type: model.NODE_TYPE_AI})
	require.NoError(t, err)
	require.Equal(t, DEFAULT_AI_ERROR_MESSAGE, result.Message)
	require.Equal(t, "next", result.NextNodeId)
}

func TestAiNodeWithoutClient(t *testing.T) {
	handler := NewAiHandler(nil)
	result, err := handler.Execute(context.Background(), aiContext("help"), model.Node{Id: "ai", Type: model.NODE_TYPE_AI})
	require.NoError(t, err)
	require.Equal(t, DEFAULT_AI_ERROR_MESSAGE, result.Message)
}
