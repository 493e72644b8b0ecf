package model

import (
	"errors"
	"fmt"
)

var ErrNoStartNode = errors.New("flow graph has no start node")

var ErrConversationEnded = errors.New("conversation already ended")

type CurrentNodeNotFoundError struct {
	NodeId string
}

func (e CurrentNodeNotFoundError) Error() string {
	return fmt.Sprintf("current node %s not found in flow graph", e.NodeId)
}

type UnknownNodeTypeError struct {
	NodeType NodeType
}

func (e UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("unknown node type %s", e.NodeType)
}
