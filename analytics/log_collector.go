package analytics

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogFileDataCollector struct {
	fileName string
	logger   *zap.Logger
}

func NewLogFileDataCollector(fileName string) (*LogFileDataCollector, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.StacktraceKey = "" // to hide stacktrace info
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	writer := zapcore.AddSync(logFile)
	core := zapcore.NewTee(zapcore.NewCore(fileEncoder, writer, zapcore.InfoLevel))
	return &LogFileDataCollector{
		fileName: fileName,
		logger:   zap.New(core),
	}, nil
}

func (lc *LogFileDataCollector) RecordNodeSuccess(flowName string, sessionId string, nodeId string, nodeType string) {
	lc.logger.Info("node_success", zap.String("flow", flowName), zap.String("sessionId", sessionId), zap.String("nodeId", nodeId), zap.String("nodeType", nodeType))
}

func (lc *LogFileDataCollector) RecordNodeFailure(flowName string, sessionId string, nodeId string, nodeType string, reason string) {
	lc.logger.Info("node_failure", zap.String("flow", flowName), zap.String("sessionId", sessionId), zap.String("nodeId", nodeId), zap.String("nodeType", nodeType), zap.String("reason", reason))
}

func (lc *LogFileDataCollector) RecordConversationEnded(flowName string, sessionId string, reason string) {
	lc.logger.Info("conversation_ended", zap.String("flow", flowName), zap.String("sessionId", sessionId), zap.String("reason", reason))
}
