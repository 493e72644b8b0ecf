package graph

import "github.com/flowbot-io/flowbot/model"

// Walker resolves the next node to visit from the ordered connection list.
type Walker struct {
	connections []model.Connection
}

func NewWalker(connections []model.Connection) *Walker {
	return &Walker{connections: connections}
}

// NextNodeId returns the target of the first connection leaving currentNodeId
// at the given output index. An absent outputIndex on a connection counts as
// index 0, which keeps graphs authored before multi-output nodes working.
// The second return is false when no connection matches.
func (w *Walker) NextNodeId(currentNodeId string, outputIndex int) (string, bool) {
	for _, conn := range w.connections {
		if conn.From.NodeId != currentNodeId {
			continue
		}
		effectiveIndex := 0
		if conn.From.OutputIndex != nil {
			effectiveIndex = *conn.From.OutputIndex
		}
		if effectiveIndex == outputIndex {
			return conn.To.NodeId, true
		}
	}
	return "", false
}
