package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/model"
)

type processRequest struct {
	ChatbotData model.FlowGraph     `json:"chatbotData"`
	UserMessage string              `json:"userMessage"`
	SessionData *model.SessionState `json:"sessionData"`
	SessionId   string              `json:"sessionId"`
}

type messageRequest struct {
	SessionId string `json:"sessionId"`
	Message   string `json:"message"`
}

// HandleProcess is the stateless surface: the caller supplies the graph and
// session snapshot inline and persists the returned session data itself.
func (s *Server) HandleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	session := req.SessionData
	if session == nil {
		var err error
		session, err = s.engine.NewSession(&req.ChatbotData, req.SessionId)
		if err != nil {
			logger.Error("error creating session", zap.Error(err))
			respondWithJSON(w, http.StatusOK, errorEnvelope(err))
			return
		}
	}

	response, err := s.engine.ProcessMessage(r.Context(), "adhoc", &req.ChatbotData, session, req.UserMessage)
	if err != nil {
		logger.Error("error processing message", zap.Error(err))
		respondWithJSON(w, http.StatusOK, errorEnvelope(err))
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}

// HandleMessage is the stateful surface: the graph comes from the metadata
// store and the session from the session store.
func (s *Server) HandleMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	flowName, ok := vars["flow"]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	response, err := s.chatService.ProcessMessage(r.Context(), flowName, req.SessionId, req.Message)
	if err != nil {
		logger.Error("error processing message", zap.String("flow", flowName), zap.String("sessionId", req.SessionId), zap.Error(err))
		respondWithJSON(w, http.StatusOK, errorEnvelope(err))
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}

// errorEnvelope maps engine failures to the user facing envelope. Everything
// except an already ended conversation collapses to the generic apology.
func errorEnvelope(err error) *model.Response {
	if errors.Is(err, model.ErrConversationEnded) {
		return &model.Response{
			Success: false,
			Error:   "conversation_ended",
			Message: CONVERSATION_ENDED_MESSAGE,
			Ended:   true,
		}
	}
	return &model.Response{
		Success: false,
		Error:   err.Error(),
		Message: GENERIC_ERROR_MESSAGE,
	}
}
