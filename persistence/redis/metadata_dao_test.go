package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/persistence"
	"github.com/stretchr/testify/require"
)

func TestRedisMetadataStorage(t *testing.T) {
	srv := miniredis.RunT(t)
	storage := NewRedisMetadataStorage(Config{Addrs: []string{srv.Addr()}, Namespace: "test"})

	def := model.FlowDefinition{
		Name: "support",
		Nodes: model.NodeMap{
			"start": {Id: "start", Type: model.NODE_TYPE_START},
		},
		Connections: []model.Connection{},
	}
	require.NoError(t, storage.SaveFlowDefinition(def))
	require.True(t, srv.Exists("test:flowdef:support"))

	loaded, err := storage.GetFlowDefinition("support")
	require.NoError(t, err)
	require.Equal(t, "support", loaded.Name)
	require.Equal(t, model.NODE_TYPE_START, loaded.Nodes["start"].Type)

	require.NoError(t, storage.DeleteFlowDefinition("support"))
	_, err = storage.GetFlowDefinition("support")
	require.Equal(t, persistence.FlowNotFoundError{Name: "support"}, err)
}
