package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/flowbot-io/flowbot/analytics"
	"github.com/flowbot-io/flowbot/executor"
	"github.com/flowbot-io/flowbot/graph"
	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/metrics"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/variables"
	"go.uber.org/zap"
)

// MAX_CHAIN_STEPS bounds how many nodes a single user message may execute.
// A graph that chains this far without reaching a wait point is cyclic.
const MAX_CHAIN_STEPS = 100

// Engine drives one conversation turn per user message. The caller owns
// serialization of calls per session and persistence of the returned state.
type Engine struct {
	registry *executor.Registry
}

func New(registry *executor.Registry) *Engine {
	return &Engine{registry: registry}
}

// NewSession seeds a session pointer at the graph's start node. A graph
// without a start node cannot host a conversation at all.
func (e *Engine) NewSession(g *model.FlowGraph, sessionId string) (*model.SessionState, error) {
	startId, err := graph.FindStartNode(g)
	if err != nil {
		return nil, err
	}
	return model.NewSessionState(sessionId, startId), nil
}

// ProcessMessage runs one conversation turn. The current node consumes the
// user's text, then execution chains through nodes that do not wait for input,
// stopping at a question awaiting its answer, an authored end node, or a dead
// end. Every bot utterance lands in history; the envelope's message is the
// last one. Any error hands the session back exactly as it arrived.
func (e *Engine) ProcessMessage(ctx context.Context, flowName string, g *model.FlowGraph, session *model.SessionState, userMessage string) (*model.Response, error) {
	if session.Ended() {
		return nil, model.ErrConversationEnded
	}
	node, ok := g.Nodes[session.CurrentNodeId]
	if !ok {
		metrics.MessageProcessedCount.WithLabelValues(flowName, "error").Inc()
		return nil, model.CurrentNodeNotFoundError{NodeId: session.CurrentNodeId}
	}
	handler, ok := e.registry.Get(node.Type)
	if !ok {
		metrics.MessageProcessedCount.WithLabelValues(flowName, "error").Inc()
		return nil, model.UnknownNodeTypeError{NodeType: node.Type}
	}

	savedNodeId := session.CurrentNodeId
	savedHistory := session.History
	savedVariables := session.Variables
	session.Variables = copyVariables(session.Variables)
	fail := func(err error) (*model.Response, error) {
		session.CurrentNodeId = savedNodeId
		session.History = savedHistory
		session.Variables = savedVariables
		metrics.MessageProcessedCount.WithLabelValues(flowName, "error").Inc()
		return nil, err
	}

	session.AppendUserMessage(userMessage)
	vars := variables.NewStore(session.Variables)
	vars.Set("lastUserInput", userMessage)
	walker := graph.NewWalker(g.Connections)

	response := &model.Response{Success: true}
	input := userMessage
	for steps := 0; ; steps++ {
		if steps == MAX_CHAIN_STEPS {
			return fail(fmt.Errorf("flow %s chained %d nodes without waiting for input, aborting a likely cycle", flowName, steps))
		}
		ec := &executor.ExecContext{
			FlowName:  flowName,
			Session:   session,
			Vars:      vars,
			Walker:    walker,
			UserInput: input,
		}
		start := time.Now()
		result, err := handler.Execute(ctx, ec, node)
		metrics.NodeExecutionDuration.WithLabelValues(string(node.Type)).Observe(time.Since(start).Seconds())
		if err != nil {
			analytics.RecordNodeFailure(flowName, session.Id, node.Id, string(node.Type), err.Error())
			return fail(err)
		}
		analytics.RecordNodeSuccess(flowName, session.Id, node.Id, string(node.Type))

		if result.Message != "" {
			session.AppendBotMessage(result.Message)
			response.Message = result.Message
		}
		response.Actions = append(response.Actions, result.Actions...)

		if result.NextNodeId == "" {
			if node.Type == model.NODE_TYPE_END {
				session.CurrentNodeId = ""
				response.Ended = true
				response.EndedReason = model.ENDED_REASON_END_NODE
			} else {
				// The graph dead ends short of an authored end node. The
				// pointer stays parked here so callers can see where.
				session.CurrentNodeId = node.Id
				next := node.Id
				response.NextNodeId = &next
				response.Ended = true
				response.EndedReason = model.ENDED_REASON_DEAD_END
				logger.Warn("flow dead end, conversation ended without an end node",
					zap.String("flow", flowName), zap.String("nodeId", node.Id))
			}
			analytics.RecordConversationEnded(flowName, session.Id, response.EndedReason)
			break
		}
		if result.NextNodeId == node.Id {
			// The node wants this turn's reply, wait for the user.
			session.CurrentNodeId = node.Id
			next := node.Id
			response.NextNodeId = &next
			break
		}

		nextNode, ok := g.Nodes[result.NextNodeId]
		if !ok {
			return fail(model.CurrentNodeNotFoundError{NodeId: result.NextNodeId})
		}
		nextHandler, ok := e.registry.Get(nextNode.Type)
		if !ok {
			return fail(model.UnknownNodeTypeError{NodeType: nextNode.Type})
		}
		session.CurrentNodeId = nextNode.Id
		node, handler = nextNode, nextHandler
		// Only the node the turn began on sees the user's text.
		input = ""
	}

	response.Variables = session.Variables
	response.SessionData = session
	metrics.MessageProcessedCount.WithLabelValues(flowName, "success").Inc()
	return response, nil
}

func copyVariables(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
