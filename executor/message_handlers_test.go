package executor

import (
	"context"
	"testing"
	"time"

	"github.com/flowbot-io/flowbot/graph"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/variables"
	"github.com/stretchr/testify/require"
)

func simpleContext(nodeId string, vars map[string]any) *ExecContext {
	return &ExecContext{
		Session: model.NewSessionState("s1", nodeId),
		Vars:    variables.NewStore(vars),
		Walker: graph.NewWalker([]model.Connection{
			{From: model.Endpoint{NodeId: nodeId}, To: model.Endpoint{NodeId: "next"}},
		}),
	}
}

func TestStartNode(t *testing.T) {
	handler := NewStartHandler()

	result, err := handler.Execute(context.Background(), simpleContext("start", nil), model.Node{
		Id: "start", Type: model.NODE_TYPE_START, Data: model.NodeData{Message: "Hello!"},
	})
	require.NoError(t, err)
	require.Equal(t, "Hello!", result.Message)
	require.Equal(t, "next", result.NextNodeId)

	result, err = handler.Execute(context.Background(), simpleContext("start", nil), model.Node{
		Id: "start", Type: model.NODE_TYPE_START,
	})
	require.NoError(t, err)
	require.Equal(t, DEFAULT_GREETING_MESSAGE, result.Message)
}

func TestMessageNode(t *testing.T) {
	handler := NewMessageHandler()
	result, err := handler.Execute(context.Background(), simpleContext("m", map[string]any{"name": "alice"}), model.Node{
		Id: "m", Type: model.NODE_TYPE_MESSAGE, Data: model.NodeData{Message: "Hi {{name}}, {{missing}}!"},
	})
	require.NoError(t, err)
	require.Equal(t, "Hi alice, {{missing}}!", result.Message)
	require.Equal(t, "next", result.NextNodeId)
}

func TestDatabaseNode(t *testing.T) {
	handler := NewDatabaseHandler()
	result, err := handler.Execute(context.Background(), simpleContext("db", nil), model.Node{
		Id: "db", Type: model.NODE_TYPE_DATABASE,
	})
	require.NoError(t, err)
	require.Equal(t, DEFAULT_DATABASE_MESSAGE, result.Message)
	require.Equal(t, "next", result.NextNodeId)
}

func TestEndNode(t *testing.T) {
	handler := NewEndHandler()
	result, err := handler.Execute(context.Background(), simpleContext("end", nil), model.Node{
		Id: "end", Type: model.NODE_TYPE_END,
	})
	require.NoError(t, err)
	require.Equal(t, DEFAULT_FAREWELL_MESSAGE, result.Message)
	require.Empty(t, result.NextNodeId)
}

func TestDelayNode(t *testing.T) {
	handler := NewDelayHandler()
	started := time.Now()
	result, err := handler.Execute(context.Background(), simpleContext("d", nil), model.Node{
		Id: "d", Type: model.NODE_TYPE_DELAY, Data: model.NodeData{Duration: 0.05},
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(started), 50*time.Millisecond)
	require.Equal(t, "next", result.NextNodeId)
	require.Len(t, result.Actions, 1)
	require.Equal(t, model.ACTION_TYPING, result.Actions[0].Type)
	require.Equal(t, int64(50), result.Actions[0].Duration)
}

func TestDelayNodeCancelled(t *testing.T) {
	handler := NewDelayHandler()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := handler.Execute(ctx, simpleContext("d", nil), model.Node{
		Id: "d", Type: model.NODE_TYPE_DELAY, Data: model.NodeData{Duration: 10},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRegistryCoversAllNodeTypes(t *testing.T) {
	registry := NewRegistry(nil, nil)
	for _, nodeType := range []model.NodeType{
		model.NODE_TYPE_START, model.NODE_TYPE_MESSAGE, model.NODE_TYPE_QUESTION,
		model.NODE_TYPE_CONDITION, model.NODE_TYPE_API, model.NODE_TYPE_AI,
		model.NODE_TYPE_DELAY, model.NODE_TYPE_WEBHOOK, model.NODE_TYPE_DATABASE,
		model.NODE_TYPE_END,
	} {
		handler, ok := registry.Get(nodeType)
		require.True(t, ok, string(nodeType))
		require.Equal(t, nodeType, handler.Type())
	}
	_, ok := registry.Get(model.NodeType("teleport"))
	require.False(t, ok)
}
