package inmem

import (
	"context"
	"encoding/json"

	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/persistence"
	c "github.com/patrickmn/go-cache"
)

var _ persistence.SessionStorage = new(inMemSessionStorage)

// inMemSessionStorage keeps sessions as marshaled snapshots, same as the
// redis store, so callers never share live state through it.
type inMemSessionStorage struct {
	cache *c.Cache
}

func NewInMemSessionStorage() *inMemSessionStorage {
	return &inMemSessionStorage{
		cache: c.New(c.NoExpiration, 0),
	}
}

func (s *inMemSessionStorage) Save(ctx context.Context, session *model.SessionState) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.cache.Set(session.Id, data, c.NoExpiration)
	return nil
}

func (s *inMemSessionStorage) Get(ctx context.Context, sessionId string) (*model.SessionState, error) {
	value, found := s.cache.Get(sessionId)
	if !found {
		return nil, persistence.SessionNotFoundError{Id: sessionId}
	}
	session := new(model.SessionState)
	if err := json.Unmarshal(value.([]byte), session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *inMemSessionStorage) Delete(ctx context.Context, sessionId string) error {
	s.cache.Delete(sessionId)
	return nil
}
