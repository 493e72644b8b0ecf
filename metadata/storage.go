package metadata

import "github.com/flowbot-io/flowbot/model"

type Storage interface {
	SaveFlowDefinition(def model.FlowDefinition) error
	GetFlowDefinition(name string) (*model.FlowDefinition, error)
	DeleteFlowDefinition(name string) error
}
