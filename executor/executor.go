package executor

import (
	"context"
	"net/http"
	"time"

	"github.com/flowbot-io/flowbot/ai"
	"github.com/flowbot-io/flowbot/graph"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/variables"
)

const DEFAULT_GREETING_MESSAGE = "Hello! How can I help you today?"
const DEFAULT_FAREWELL_MESSAGE = "Thank you for chatting with us. Goodbye!"
const DEFAULT_API_SUCCESS_MESSAGE = "Your request was processed successfully."
const DEFAULT_API_ERROR_MESSAGE = "Sorry, something went wrong while processing your request."
const DEFAULT_AI_ERROR_MESSAGE = "I'm sorry, I couldn't come up with a response right now."
const DEFAULT_DATABASE_MESSAGE = "Done! Your information has been saved."

// ExecContext carries the per invocation state a handler operates on. It is
// owned by a single ProcessMessage call.
type ExecContext struct {
	FlowName  string
	Session   *model.SessionState
	Vars      *variables.Store
	Walker    *graph.Walker
	UserInput string
}

// Result is a handler's output. NextNodeId empty means there is no node to
// visit next. Message empty means no bot utterance is produced.
type Result struct {
	Message    string
	NextNodeId string
	Actions    []model.Action
}

// Handler executes one node kind. Expected failure modes (network errors,
// invalid input, parse errors) never surface as errors; handlers degrade to a
// fallback message and resolve the next node normally.
type Handler interface {
	Type() model.NodeType
	Validate(node model.Node) error
	Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error)
}

type baseHandler struct {
	nodeType model.NodeType
}

func (b *baseHandler) Type() model.NodeType {
	return b.nodeType
}

func (b *baseHandler) Validate(node model.Node) error {
	return nil
}

// next resolves the outgoing edge, empty when the graph dead ends here.
func (b *baseHandler) next(ec *ExecContext, nodeId string, outputIndex int) string {
	nextId, ok := ec.Walker.NextNodeId(nodeId, outputIndex)
	if !ok {
		return ""
	}
	return nextId
}

// Registry holds one handler per node type. A lookup miss means the graph
// carries a type this engine does not know, which is an authoring error.
type Registry struct {
	handlers map[model.NodeType]Handler
}

func NewRegistry(aiClient ai.Client, httpClient *http.Client) *Registry {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	registry := &Registry{handlers: make(map[model.NodeType]Handler)}
	for _, h := range []Handler{
		NewStartHandler(),
		NewMessageHandler(),
		NewQuestionHandler(),
		NewConditionHandler(),
		NewApiHandler(httpClient),
		NewAiHandler(aiClient),
		NewDelayHandler(),
		NewWebhookHandler(httpClient),
		NewDatabaseHandler(),
		NewEndHandler(),
	} {
		registry.handlers[h.Type()] = h
	}
	return registry
}

func (r *Registry) Get(nodeType model.NodeType) (Handler, bool) {
	h, ok := r.handlers[nodeType]
	return h, ok
}
