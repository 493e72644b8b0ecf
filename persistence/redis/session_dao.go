package redis

import (
	"context"
	"encoding/json"

	rd "github.com/go-redis/redis/v9"

	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/persistence"
)

var _ persistence.SessionStorage = new(redisSessionStorage)

type redisSessionStorage struct {
	*baseDao
}

func NewRedisSessionStorage(conf Config) *redisSessionStorage {
	return &redisSessionStorage{baseDao: newBaseDao(conf)}
}

func (s *redisSessionStorage) Save(ctx context.Context, session *model.SessionState) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	key := s.getNamespaceKey("session", session.Id)
	return s.redisClient.Set(ctx, key, data, 0).Err()
}

func (s *redisSessionStorage) Get(ctx context.Context, sessionId string) (*model.SessionState, error) {
	key := s.getNamespaceKey("session", sessionId)
	data, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == rd.Nil {
			return nil, persistence.SessionNotFoundError{Id: sessionId}
		}
		return nil, err
	}
	var session model.SessionState
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *redisSessionStorage) Delete(ctx context.Context, sessionId string) error {
	key := s.getNamespaceKey("session", sessionId)
	return s.redisClient.Del(ctx, key).Err()
}
