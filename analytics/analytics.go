package analytics

type DataCollectorType string

const LOG_FILE_DATA_COLLECTOR DataCollectorType = "LOG_FILE_DATA_COLLECTOR"
const KAFKA_DATA_COLLECTOR DataCollectorType = "KAFKA_DATA_COLLECTOR"
const NOOP_DATA_COLLECTOR DataCollectorType = "NOOP_DATA_COLLECTOR"

type DataCollectorConfig struct {
	CollectorType DataCollectorType
	FileName      string
	KafkaAddrs    []string
	KafkaTopic    string
}

// ExecutionDataCollector consumes execution events. The engine is the only
// producer; aggregation happens elsewhere.
type ExecutionDataCollector interface {
	RecordNodeSuccess(flowName string, sessionId string, nodeId string, nodeType string)
	RecordNodeFailure(flowName string, sessionId string, nodeId string, nodeType string, reason string)
	RecordConversationEnded(flowName string, sessionId string, reason string)
}

var executionCollector ExecutionDataCollector = noopCollector{}

func InitDataCollector(config DataCollectorConfig) error {
	switch config.CollectorType {
	case LOG_FILE_DATA_COLLECTOR:
		c, err := NewLogFileDataCollector(config.FileName)
		if err != nil {
			return err
		}
		executionCollector = c
	case KAFKA_DATA_COLLECTOR:
		executionCollector = NewKafkaDataCollector(config.KafkaAddrs, config.KafkaTopic)
	}
	return nil
}

func RecordNodeSuccess(flowName string, sessionId string, nodeId string, nodeType string) {
	executionCollector.RecordNodeSuccess(flowName, sessionId, nodeId, nodeType)
}

func RecordNodeFailure(flowName string, sessionId string, nodeId string, nodeType string, reason string) {
	executionCollector.RecordNodeFailure(flowName, sessionId, nodeId, nodeType, reason)
}

func RecordConversationEnded(flowName string, sessionId string, reason string) {
	executionCollector.RecordConversationEnded(flowName, sessionId, reason)
}

type noopCollector struct{}

func (noopCollector) RecordNodeSuccess(flowName string, sessionId string, nodeId string, nodeType string) {
}
func (noopCollector) RecordNodeFailure(flowName string, sessionId string, nodeId string, nodeType string, reason string) {
}
func (noopCollector) RecordConversationEnded(flowName string, sessionId string, reason string) {}
