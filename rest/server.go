package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/flowbot-io/flowbot/engine"
	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/metadata"
	"github.com/flowbot-io/flowbot/service"
)

const GENERIC_ERROR_MESSAGE = "I'm sorry, I encountered an error. Please try again."
const CONVERSATION_ENDED_MESSAGE = "This conversation has already ended. Please start a new session."

type Server struct {
	http.Server
	Port            int
	metadataService metadata.Service
	chatService     *service.ChatService
	engine          *engine.Engine
}

func NewServer(httpPort int, metadataService metadata.Service, chatService *service.ChatService, eng *engine.Engine) (*Server, error) {
	s := &Server{
		Server: http.Server{
			Addr:        fmt.Sprintf(":%d", httpPort),
			IdleTimeout: 2 * time.Second,
		},
		metadataService: metadataService,
		chatService:     chatService,
		engine:          eng,
		Port:            httpPort,
	}

	router := mux.NewRouter()
	router.HandleFunc("/chat/process", s.HandleProcess).Methods(http.MethodPost)
	router.HandleFunc("/chat/{flow}/message", s.HandleMessage).Methods(http.MethodPost)

	router.HandleFunc("/session/{id}", s.HandleGetSession).Methods(http.MethodGet)
	router.HandleFunc("/session/{id}", s.HandleEndSession).Methods(http.MethodDelete)

	router.HandleFunc("/metadata/flow", s.HandleCreateFlowDefinition).Methods(http.MethodPost)
	router.HandleFunc("/metadata/flow/{name}", s.HandleGetFlowDefinition).Methods(http.MethodGet)
	router.HandleFunc("/metadata/flow/{name}", s.HandleDeleteFlowDefinition).Methods(http.MethodDelete)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.Use(loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server")
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOK(w http.ResponseWriter, message map[string]any) {
	respondWithJSON(w, http.StatusOK, message)
}

func respondOKWithoutBody(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
