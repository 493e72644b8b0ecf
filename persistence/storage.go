package persistence

import (
	"context"
	"fmt"

	"github.com/flowbot-io/flowbot/model"
)

type SessionNotFoundError struct {
	Id string
}

func (e SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %s not found", e.Id)
}

type FlowNotFoundError struct {
	Name string
}

func (e FlowNotFoundError) Error() string {
	return fmt.Sprintf("flow definition %s not found", e.Name)
}

// SessionStorage persists conversation state between messages. The engine
// does not dictate the storage format beyond the SessionState shape.
type SessionStorage interface {
	Save(ctx context.Context, session *model.SessionState) error
	Get(ctx context.Context, sessionId string) (*model.SessionState, error)
	Delete(ctx context.Context, sessionId string) error
}
