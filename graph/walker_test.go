package graph

import (
	"testing"

	"github.com/flowbot-io/flowbot/model"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestNextNodeId(t *testing.T) {
	walker := NewWalker([]model.Connection{
		{From: model.Endpoint{NodeId: "a"}, To: model.Endpoint{NodeId: "b"}},
		{From: model.Endpoint{NodeId: "cond", OutputIndex: intPtr(0)}, To: model.Endpoint{NodeId: "yes"}},
		{From: model.Endpoint{NodeId: "cond", OutputIndex: intPtr(1)}, To: model.Endpoint{NodeId: "no"}},
	})

	next, ok := walker.NextNodeId("a", 0)
	require.True(t, ok)
	require.Equal(t, "b", next)

	next, ok = walker.NextNodeId("cond", 0)
	require.True(t, ok)
	require.Equal(t, "yes", next)

	next, ok = walker.NextNodeId("cond", 1)
	require.True(t, ok)
	require.Equal(t, "no", next)

	_, ok = walker.NextNodeId("a", 1)
	require.False(t, ok)

	_, ok = walker.NextNodeId("unknown", 0)
	require.False(t, ok)
}

func TestNextNodeIdFirstMatchWins(t *testing.T) {
	walker := NewWalker([]model.Connection{
		{From: model.Endpoint{NodeId: "a", OutputIndex: intPtr(0)}, To: model.Endpoint{NodeId: "first"}},
		{From: model.Endpoint{NodeId: "a", OutputIndex: intPtr(0)}, To: model.Endpoint{NodeId: "second"}},
	})
	next, ok := walker.NextNodeId("a", 0)
	require.True(t, ok)
	require.Equal(t, "first", next)
}

func TestValidate(t *testing.T) {
	graph := &model.FlowGraph{
		Nodes: model.NodeMap{
			"s": {Id: "s", Type: model.NODE_TYPE_START},
			"m": {Id: "m", Type: model.NODE_TYPE_MESSAGE},
		},
		Connections: []model.Connection{
			{From: model.Endpoint{NodeId: "s"}, To: model.Endpoint{NodeId: "m"}},
		},
	}
	require.NoError(t, Validate(graph))

	startId, err := FindStartNode(graph)
	require.NoError(t, err)
	require.Equal(t, "s", startId)
}

func TestValidateNoStartNode(t *testing.T) {
	graph := &model.FlowGraph{
		Nodes: model.NodeMap{"m": {Id: "m", Type: model.NODE_TYPE_MESSAGE}},
	}
	require.ErrorIs(t, Validate(graph), model.ErrNoStartNode)
}

func TestValidateDanglingConnection(t *testing.T) {
	graph := &model.FlowGraph{
		Nodes: model.NodeMap{"s": {Id: "s", Type: model.NODE_TYPE_START}},
		Connections: []model.Connection{
			{From: model.Endpoint{NodeId: "s"}, To: model.Endpoint{NodeId: "ghost"}},
		},
	}
	require.Error(t, Validate(graph))
}

func TestValidateDuplicatePort(t *testing.T) {
	graph := &model.FlowGraph{
		Nodes: model.NodeMap{
			"s": {Id: "s", Type: model.NODE_TYPE_START},
			"a": {Id: "a", Type: model.NODE_TYPE_MESSAGE},
			"b": {Id: "b", Type: model.NODE_TYPE_MESSAGE},
		},
		Connections: []model.Connection{
			{From: model.Endpoint{NodeId: "s"}, To: model.Endpoint{NodeId: "a"}},
			{From: model.Endpoint{NodeId: "s", OutputIndex: intPtr(0)}, To: model.Endpoint{NodeId: "b"}},
		},
	}
	require.Error(t, Validate(graph))
}
