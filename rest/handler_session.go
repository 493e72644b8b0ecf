package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowbot-io/flowbot/logger"
)

func (s *Server) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionId, ok := vars["id"]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, err := s.chatService.GetSession(r.Context(), sessionId)
	if err != nil {
		logger.Error("error getting session", zap.String("sessionId", sessionId), zap.Error(err))
		respondWithError(w, http.StatusNotFound, "session not found")
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

func (s *Server) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionId, ok := vars["id"]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := s.chatService.EndSession(r.Context(), sessionId); err != nil {
		logger.Error("error ending session", zap.String("sessionId", sessionId), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "error ending session")
		return
	}
	respondOKWithoutBody(w)
}
