package service

import (
	"context"
	"sync"

	"github.com/flowbot-io/flowbot/engine"
	"github.com/flowbot-io/flowbot/metadata"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/persistence"
	"github.com/google/uuid"
)

// ChatService glues the engine to persistence. It serializes concurrent
// ProcessMessage calls against the same session id, since a double submitted
// message racing an in-flight external call would otherwise corrupt the
// session pointer.
type ChatService struct {
	metadataService metadata.Service
	sessionStorage  persistence.SessionStorage
	engine          *engine.Engine
	sessionLocks    sync.Map
}

func NewChatService(metadataService metadata.Service, sessionStorage persistence.SessionStorage, eng *engine.Engine) *ChatService {
	return &ChatService{
		metadataService: metadataService,
		sessionStorage:  sessionStorage,
		engine:          eng,
	}
}

func (s *ChatService) lockFor(sessionId string) *sync.Mutex {
	lock, _ := s.sessionLocks.LoadOrStore(sessionId, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// ProcessMessage runs one conversation step against a named flow. An empty
// sessionId starts a fresh session. The session is persisted only when the
// step succeeds, so a failed step never stores a corrupted pointer.
func (s *ChatService) ProcessMessage(ctx context.Context, flowName string, sessionId string, message string) (*model.Response, error) {
	g, err := s.metadataService.GetFlowGraph(flowName)
	if err != nil {
		return nil, err
	}
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	lock := s.lockFor(sessionId)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessionStorage.Get(ctx, sessionId)
	if err != nil {
		if _, ok := err.(persistence.SessionNotFoundError); !ok {
			return nil, err
		}
		session, err = s.engine.NewSession(g, sessionId)
		if err != nil {
			return nil, err
		}
	}

	response, err := s.engine.ProcessMessage(ctx, flowName, g, session, message)
	if err != nil {
		return nil, err
	}
	if err := s.sessionStorage.Save(ctx, session); err != nil {
		return nil, err
	}
	return response, nil
}

func (s *ChatService) GetSession(ctx context.Context, sessionId string) (*model.SessionState, error) {
	return s.sessionStorage.Get(ctx, sessionId)
}

func (s *ChatService) EndSession(ctx context.Context, sessionId string) error {
	lock := s.lockFor(sessionId)
	lock.Lock()
	defer lock.Unlock()
	err := s.sessionStorage.Delete(ctx, sessionId)
	s.sessionLocks.Delete(sessionId)
	return err
}
