package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type NodeType string

const NODE_TYPE_START NodeType = "start"
const NODE_TYPE_MESSAGE NodeType = "message"
const NODE_TYPE_QUESTION NodeType = "question"
const NODE_TYPE_CONDITION NodeType = "condition"
const NODE_TYPE_API NodeType = "api"
const NODE_TYPE_AI NodeType = "ai"
const NODE_TYPE_DELAY NodeType = "delay"
const NODE_TYPE_WEBHOOK NodeType = "webhook"
const NODE_TYPE_DATABASE NodeType = "database"
const NODE_TYPE_END NodeType = "end"

// NodeData carries the type specific configuration authored in the editor.
// Only the fields relevant to the node's type are set.
type NodeData struct {
	Message        string            `json:"message,omitempty"`
	Question       string            `json:"question,omitempty"`
	InputType      string            `json:"inputType,omitempty"`
	VariableName   string            `json:"variableName,omitempty"`
	Choices        []string          `json:"choices,omitempty"`
	Variable       string            `json:"variable,omitempty"`
	Operator       string            `json:"operator,omitempty"`
	Value          any               `json:"value,omitempty"`
	Expression     string            `json:"expression,omitempty"`
	Url            string            `json:"url,omitempty"`
	Method         string            `json:"method,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	Body           any               `json:"body,omitempty"`
	Prompt         string            `json:"prompt,omitempty"`
	Model          string            `json:"model,omitempty"`
	Temperature    float64           `json:"temperature,omitempty"`
	Duration       float64           `json:"duration,omitempty"`
	SuccessMessage string            `json:"successMessage,omitempty"`
	ErrorMessage   string            `json:"errorMessage,omitempty"`
}

type Node struct {
	Id   string   `json:"id"`
	Type NodeType `json:"type"`
	Data NodeData `json:"data"`
}

// Endpoint identifies one side of a connection. OutputIndex is a pointer so
// the walker can tell an authored 0 apart from an absent index.
type Endpoint struct {
	NodeId      string `json:"nodeId"`
	OutputIndex *int   `json:"outputIndex,omitempty"`
	InputIndex  *int   `json:"inputIndex,omitempty"`
}

type Connection struct {
	From Endpoint `json:"from"`
	To   Endpoint `json:"to"`
}

// NodeMap accepts both JSON shapes the editor produces: a plain object keyed
// by node id, and the [[id, node], ...] pair array a serialized Map becomes.
type NodeMap map[string]Node

func (m *NodeMap) UnmarshalJSON(data []byte) error {
	out := make(map[string]Node)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pairs [][]json.RawMessage
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return err
		}
		for _, pair := range pairs {
			if len(pair) != 2 {
				return fmt.Errorf("node entry must be a [id, node] pair, got %d elements", len(pair))
			}
			var id string
			if err := json.Unmarshal(pair[0], &id); err != nil {
				return err
			}
			var node Node
			if err := json.Unmarshal(pair[1], &node); err != nil {
				return err
			}
			if node.Id == "" {
				node.Id = id
			}
			out[id] = node
		}
	} else {
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return err
		}
		for id, node := range out {
			if node.Id == "" {
				node.Id = id
				out[id] = node
			}
		}
	}
	*m = out
	return nil
}

type FlowGraph struct {
	Nodes       NodeMap      `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// FlowDefinition is the stored, named form of a graph.
type FlowDefinition struct {
	Name        string       `json:"name"`
	Nodes       NodeMap      `json:"nodes"`
	Connections []Connection `json:"connections"`
}

func (d *FlowDefinition) Graph() *FlowGraph {
	return &FlowGraph{Nodes: d.Nodes, Connections: d.Connections}
}
