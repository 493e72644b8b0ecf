package graph

import (
	"fmt"

	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/model"
	"go.uber.org/zap"
)

// FindStartNode scans the graph for the single node of type start. A graph
// without one cannot seed a session pointer.
func FindStartNode(g *model.FlowGraph) (string, error) {
	for id, node := range g.Nodes {
		if node.Type == model.NODE_TYPE_START {
			return id, nil
		}
	}
	return "", model.ErrNoStartNode
}

// Validate runs authoring time checks over a graph: a start node exists,
// connection endpoints refer to defined nodes, and no two connections leave
// the same (node, outputIndex) port. Unreachable nodes are legal and only
// logged.
func Validate(g *model.FlowGraph) error {
	if _, err := FindStartNode(g); err != nil {
		return err
	}
	startCount := 0
	for _, node := range g.Nodes {
		if node.Type == model.NODE_TYPE_START {
			startCount++
		}
	}
	if startCount > 1 {
		return fmt.Errorf("flow graph has %d start nodes, want exactly one", startCount)
	}
	seen := make(map[string]bool)
	for _, conn := range g.Connections {
		if _, ok := g.Nodes[conn.From.NodeId]; !ok {
			return fmt.Errorf("connection from undefined node %s", conn.From.NodeId)
		}
		if _, ok := g.Nodes[conn.To.NodeId]; !ok {
			return fmt.Errorf("connection to undefined node %s", conn.To.NodeId)
		}
		index := 0
		if conn.From.OutputIndex != nil {
			index = *conn.From.OutputIndex
		}
		port := fmt.Sprintf("%s:%d", conn.From.NodeId, index)
		if seen[port] {
			return fmt.Errorf("duplicate connection from node %s output %d", conn.From.NodeId, index)
		}
		seen[port] = true
	}
	for _, id := range unreachableNodes(g) {
		logger.Warn("node is unreachable from start", zap.String("nodeId", id))
	}
	return nil
}

func unreachableNodes(g *model.FlowGraph) []string {
	startId, err := FindStartNode(g)
	if err != nil {
		return nil
	}
	visited := map[string]bool{startId: true}
	queue := []string{startId}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, conn := range g.Connections {
			if conn.From.NodeId == current && !visited[conn.To.NodeId] {
				visited[conn.To.NodeId] = true
				queue = append(queue, conn.To.NodeId)
			}
		}
	}
	var unreachable []string
	for id := range g.Nodes {
		if !visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	return unreachable
}
