package agent

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/flowbot-io/flowbot/ai"
	"github.com/flowbot-io/flowbot/analytics"
	"github.com/flowbot-io/flowbot/config"
	"github.com/flowbot-io/flowbot/engine"
	"github.com/flowbot-io/flowbot/executor"
	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/metadata"
	"github.com/flowbot-io/flowbot/metrics"
	"github.com/flowbot-io/flowbot/persistence"
	"github.com/flowbot-io/flowbot/persistence/inmem"
	"github.com/flowbot-io/flowbot/persistence/redis"
	"github.com/flowbot-io/flowbot/rest"
	"github.com/flowbot-io/flowbot/service"
)

type Agent struct {
	Config          config.Config
	registry        *executor.Registry
	metadataService metadata.Service
	sessionStorage  persistence.SessionStorage
	engine          *engine.Engine
	chatService     *service.ChatService
	httpServer      *rest.Server
	shutdown        bool
	shutdownLock    sync.Mutex
}

func New(conf config.Config) (*Agent, error) {
	a := &Agent{
		Config: conf,
	}
	setup := []func() error{
		a.setupAnalytics,
		a.setupRegistry,
		a.setupStorage,
		a.setupMetadataService,
		a.setupEngine,
		a.setupChatService,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	metrics.Register()
	return a, nil
}

func (a *Agent) setupAnalytics() error {
	return analytics.InitDataCollector(a.Config.AnalyticsConfig)
}

func (a *Agent) setupRegistry() error {
	var aiClient ai.Client
	if a.Config.AiServiceUrl != "" {
		timeout := time.Duration(a.Config.AiTimeoutSeconds) * time.Second
		aiClient = ai.NewHttpClient(a.Config.AiServiceUrl, timeout)
	}
	a.registry = executor.NewRegistry(aiClient, &http.Client{Timeout: 30 * time.Second})
	return nil
}

func (a *Agent) setupStorage() error {
	switch a.Config.StorageType {
	case config.STORAGE_TYPE_REDIS:
		conf := redis.Config{
			Addrs:     a.Config.RedisConfig.Addrs,
			Namespace: a.Config.RedisConfig.Namespace,
		}
		a.sessionStorage = redis.NewRedisSessionStorage(conf)
	case config.STORAGE_TYPE_INMEM:
		a.sessionStorage = inmem.NewInMemSessionStorage()
	default:
		return fmt.Errorf("unknown storage type %s", a.Config.StorageType)
	}
	return nil
}

func (a *Agent) setupMetadataService() error {
	var storage metadata.Storage
	switch a.Config.StorageType {
	case config.STORAGE_TYPE_REDIS:
		conf := redis.Config{
			Addrs:     a.Config.RedisConfig.Addrs,
			Namespace: a.Config.RedisConfig.Namespace,
		}
		storage = redis.NewRedisMetadataStorage(conf)
	default:
		storage = inmem.NewInMemMetadataStorage()
	}
	a.metadataService = metadata.NewMetadataService(storage, a.registry)
	return nil
}

func (a *Agent) setupEngine() error {
	a.engine = engine.New(a.registry)
	return nil
}

func (a *Agent) setupChatService() error {
	a.chatService = service.NewChatService(a.metadataService, a.sessionStorage, a.engine)
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.metadataService, a.chatService, a.engine)
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) Start() error {
	go func() {
		if err := a.httpServer.Start(); err != nil && err != http.ErrServerClosed {
			_ = a.Shutdown()
			panic(err)
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down server")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	return a.httpServer.Stop()
}
