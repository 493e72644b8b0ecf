package metadata

import (
	"fmt"
	"time"

	"github.com/flowbot-io/flowbot/executor"
	"github.com/flowbot-io/flowbot/graph"
	"github.com/flowbot-io/flowbot/model"
	c "github.com/patrickmn/go-cache"
)

type Service interface {
	GetFlowGraph(name string) (*model.FlowGraph, error)
	GetFlowDefinition(name string) (*model.FlowDefinition, error)
	SaveFlowDefinition(def model.FlowDefinition) error
	DeleteFlowDefinition(name string) error
	ValidateFlowDefinition(def model.FlowDefinition) error
}

type ServiceImpl struct {
	storage  Storage
	registry *executor.Registry
	cache    *c.Cache
}

func NewMetadataService(storage Storage, registry *executor.Registry) Service {
	return &ServiceImpl{
		storage:  storage,
		registry: registry,
		cache:    c.New(c.NoExpiration, 10*time.Minute),
	}
}

// GetFlowGraph returns the graph of a stored definition, cached until the
// definition changes.
func (s *ServiceImpl) GetFlowGraph(name string) (*model.FlowGraph, error) {
	if cached, found := s.cache.Get(name); found {
		return cached.(*model.FlowGraph), nil
	}
	def, err := s.storage.GetFlowDefinition(name)
	if err != nil {
		return nil, err
	}
	g := def.Graph()
	s.cache.Set(name, g, c.NoExpiration)
	return g, nil
}

func (s *ServiceImpl) GetFlowDefinition(name string) (*model.FlowDefinition, error) {
	return s.storage.GetFlowDefinition(name)
}

func (s *ServiceImpl) SaveFlowDefinition(def model.FlowDefinition) error {
	if err := s.ValidateFlowDefinition(def); err != nil {
		return err
	}
	if err := s.storage.SaveFlowDefinition(def); err != nil {
		return err
	}
	s.cache.Delete(def.Name)
	return nil
}

func (s *ServiceImpl) DeleteFlowDefinition(name string) error {
	if err := s.storage.DeleteFlowDefinition(name); err != nil {
		return err
	}
	s.cache.Delete(name)
	return nil
}

// ValidateFlowDefinition runs authoring time checks: structural graph checks,
// known node types and per node configuration.
func (s *ServiceImpl) ValidateFlowDefinition(def model.FlowDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("flow definition name can not be empty")
	}
	for id, node := range def.Nodes {
		if node.Id != "" && node.Id != id {
			return fmt.Errorf("node key %s does not match node id %s", id, node.Id)
		}
		handler, ok := s.registry.Get(node.Type)
		if !ok {
			return model.UnknownNodeTypeError{NodeType: node.Type}
		}
		if err := handler.Validate(node); err != nil {
			return err
		}
	}
	return graph.Validate(def.Graph())
}
