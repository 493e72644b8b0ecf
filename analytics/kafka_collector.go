package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flowbot-io/flowbot/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaDataCollector publishes execution events to a topic for downstream
// aggregation.
type KafkaDataCollector struct {
	writer *kafka.Writer
}

func NewKafkaDataCollector(addrs []string, topic string) *KafkaDataCollector {
	return &KafkaDataCollector{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(addrs...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
	}
}

func (kc *KafkaDataCollector) publish(sessionId string, event map[string]any) {
	event["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	err = kc.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(sessionId),
		Value: payload,
	})
	if err != nil {
		logger.Error("error publishing execution event", zap.Error(err))
	}
}

func (kc *KafkaDataCollector) RecordNodeSuccess(flowName string, sessionId string, nodeId string, nodeType string) {
	kc.publish(sessionId, map[string]any{
		"event": "node_success", "flow": flowName, "sessionId": sessionId, "nodeId": nodeId, "nodeType": nodeType,
	})
}

func (kc *KafkaDataCollector) RecordNodeFailure(flowName string, sessionId string, nodeId string, nodeType string, reason string) {
	kc.publish(sessionId, map[string]any{
		"event": "node_failure", "flow": flowName, "sessionId": sessionId, "nodeId": nodeId, "nodeType": nodeType, "reason": reason,
	})
}

func (kc *KafkaDataCollector) RecordConversationEnded(flowName string, sessionId string, reason string) {
	kc.publish(sessionId, map[string]any{
		"event": "conversation_ended", "flow": flowName, "sessionId": sessionId, "reason": reason,
	})
}

func (kc *KafkaDataCollector) Close() error {
	return kc.writer.Close()
}
