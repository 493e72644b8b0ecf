package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/model"
)

func (s *Server) HandleCreateFlowDefinition(w http.ResponseWriter, r *http.Request) {
	var def model.FlowDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if err := s.metadataService.SaveFlowDefinition(def); err != nil {
		logger.Error("error saving flow definition", zap.String("name", def.Name), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(w, map[string]any{"name": def.Name})
}

func (s *Server) HandleGetFlowDefinition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name, ok := vars["name"]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	def, err := s.metadataService.GetFlowDefinition(name)
	if err != nil {
		logger.Error("error getting flow definition", zap.String("name", name), zap.Error(err))
		respondWithError(w, http.StatusNotFound, "flow definition not found")
		return
	}
	respondWithJSON(w, http.StatusOK, def)
}

func (s *Server) HandleDeleteFlowDefinition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name, ok := vars["name"]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := s.metadataService.DeleteFlowDefinition(name); err != nil {
		logger.Error("error deleting flow definition", zap.String("name", name), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "error deleting flow definition")
		return
	}
	respondOKWithoutBody(w)
}
