package inmem

import (
	"github.com/flowbot-io/flowbot/metadata"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/persistence"
	c "github.com/patrickmn/go-cache"
)

var _ metadata.Storage = new(inMemMetadataStorage)

type inMemMetadataStorage struct {
	cache *c.Cache
}

func NewInMemMetadataStorage() *inMemMetadataStorage {
	return &inMemMetadataStorage{
		cache: c.New(c.NoExpiration, 0),
	}
}

func (s *inMemMetadataStorage) SaveFlowDefinition(def model.FlowDefinition) error {
	s.cache.Set(def.Name, &def, c.NoExpiration)
	return nil
}

func (s *inMemMetadataStorage) GetFlowDefinition(name string) (*model.FlowDefinition, error) {
	value, found := s.cache.Get(name)
	if !found {
		return nil, persistence.FlowNotFoundError{Name: name}
	}
	return value.(*model.FlowDefinition), nil
}

func (s *inMemMetadataStorage) DeleteFlowDefinition(name string) error {
	s.cache.Delete(name)
	return nil
}
