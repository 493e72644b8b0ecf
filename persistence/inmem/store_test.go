package inmem

import (
	"context"
	"testing"

	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/persistence"
	"github.com/stretchr/testify/require"
)

func TestInMemSessionStorage(t *testing.T) {
	storage := NewInMemSessionStorage()
	ctx := context.Background()

	_, err := storage.Get(ctx, "s1")
	require.Equal(t, persistence.SessionNotFoundError{Id: "s1"}, err)

	session := model.NewSessionState("s1", "start")
	session.Variables["name"] = "Alice"
	session.AppendUserMessage("hi")
	require.NoError(t, storage.Save(ctx, session))

	loaded, err := storage.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotSame(t, session, loaded)
	require.Equal(t, session, loaded)

	require.NoError(t, storage.Delete(ctx, "s1"))
	_, err = storage.Get(ctx, "s1")
	require.Error(t, err)
}

func TestInMemSessionStorageIsolatesState(t *testing.T) {
	storage := NewInMemSessionStorage()
	ctx := context.Background()

	session := model.NewSessionState("s1", "start")
	require.NoError(t, storage.Save(ctx, session))

	// Mutating either the saved session or a loaded one must not leak
	// into what the store hands out next.
	session.AppendBotMessage("later")
	first, err := storage.Get(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, first.History)

	first.Variables["name"] = "Alice"
	first.CurrentNodeId = "elsewhere"
	second, err := storage.Get(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, second.Variables)
	require.Equal(t, "start", second.CurrentNodeId)
}

func TestInMemMetadataStorage(t *testing.T) {
	storage := NewInMemMetadataStorage()

	_, err := storage.GetFlowDefinition("support")
	require.Equal(t, persistence.FlowNotFoundError{Name: "support"}, err)

	def := model.FlowDefinition{Name: "support"}
	require.NoError(t, storage.SaveFlowDefinition(def))

	loaded, err := storage.GetFlowDefinition("support")
	require.NoError(t, err)
	require.Equal(t, "support", loaded.Name)

	require.NoError(t, storage.DeleteFlowDefinition("support"))
	_, err = storage.GetFlowDefinition("support")
	require.Error(t, err)
}
