package model

import "time"

const HISTORY_TYPE_USER = "user"
const HISTORY_TYPE_BOT = "bot"

type HistoryEntry struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionState is owned by a single conversation. CurrentNodeId empty means
// the conversation has ended.
type SessionState struct {
	Id            string         `json:"id,omitempty"`
	CurrentNodeId string         `json:"currentNodeId"`
	Variables     map[string]any `json:"variables"`
	History       []HistoryEntry `json:"history"`
}

func NewSessionState(id string, startNodeId string) *SessionState {
	return &SessionState{
		Id:            id,
		CurrentNodeId: startNodeId,
		Variables:     make(map[string]any),
		History:       make([]HistoryEntry, 0),
	}
}

func (s *SessionState) AppendUserMessage(message string) {
	s.History = append(s.History, HistoryEntry{Type: HISTORY_TYPE_USER, Message: message, Timestamp: time.Now()})
}

func (s *SessionState) AppendBotMessage(message string) {
	s.History = append(s.History, HistoryEntry{Type: HISTORY_TYPE_BOT, Message: message, Timestamp: time.Now()})
}

func (s *SessionState) Ended() bool {
	return s.CurrentNodeId == ""
}
