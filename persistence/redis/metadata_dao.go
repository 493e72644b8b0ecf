package redis

import (
	"context"
	"encoding/json"

	rd "github.com/go-redis/redis/v9"

	"github.com/flowbot-io/flowbot/metadata"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/persistence"
)

var _ metadata.Storage = new(redisMetadataStorage)

type redisMetadataStorage struct {
	*baseDao
}

func NewRedisMetadataStorage(conf Config) *redisMetadataStorage {
	return &redisMetadataStorage{baseDao: newBaseDao(conf)}
}

func (s *redisMetadataStorage) SaveFlowDefinition(def model.FlowDefinition) error {
	data, err := json.Marshal(def)
	if err != nil {
		return err
	}
	key := s.getNamespaceKey("flowdef", def.Name)
	return s.redisClient.Set(context.Background(), key, data, 0).Err()
}

func (s *redisMetadataStorage) GetFlowDefinition(name string) (*model.FlowDefinition, error) {
	key := s.getNamespaceKey("flowdef", name)
	data, err := s.redisClient.Get(context.Background(), key).Result()
	if err != nil {
		if err == rd.Nil {
			return nil, persistence.FlowNotFoundError{Name: name}
		}
		return nil, err
	}
	var def model.FlowDefinition
	if err := json.Unmarshal([]byte(data), &def); err != nil {
		return nil, err
	}
	return &def, nil
}

func (s *redisMetadataStorage) DeleteFlowDefinition(name string) error {
	key := s.getNamespaceKey("flowdef", name)
	return s.redisClient.Del(context.Background(), key).Err()
}
