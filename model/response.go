package model

const ACTION_SHOW_CHOICES = "showChoices"
const ACTION_TYPING = "typing"

const ENDED_REASON_END_NODE = "end_node"
const ENDED_REASON_DEAD_END = "dead_end"

// Action is a side effect directive for the presentation layer; the engine
// performs no I/O for these.
type Action struct {
	Type     string   `json:"type"`
	Choices  []string `json:"choices,omitempty"`
	Duration int64    `json:"duration,omitempty"`
}

type Response struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message,omitempty"`
	NextNodeId  *string        `json:"nextNodeId"`
	Variables   map[string]any `json:"variables"`
	SessionData *SessionState  `json:"sessionData"`
	Actions     []Action       `json:"actions,omitempty"`
	Ended       bool           `json:"ended,omitempty"`
	EndedReason string         `json:"endedReason,omitempty"`
	Error       string         `json:"error,omitempty"`
}
