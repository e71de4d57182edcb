// @title           Content Ingestion API
// @version         1.0
// @description     This API turns uploaded client documents into structured content-calendar items
// @termsOfService  http://swagger.io/terms/

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/contentflow/ingestAPI/internal/config"
	"github.com/contentflow/ingestAPI/internal/data/store"
	jobmodel "github.com/contentflow/ingestAPI/internal/domain/jobModel"
	"github.com/contentflow/ingestAPI/internal/handlers"
	"github.com/contentflow/ingestAPI/internal/ingestion"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm/gemini"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm/openai"
	"github.com/contentflow/ingestAPI/internal/job"
	"github.com/contentflow/ingestAPI/internal/server"
	"github.com/contentflow/ingestAPI/internal/worker"
	"github.com/contentflow/ingestAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext),
		ImportStore:       store.GetRedisImportStore(serviceContext),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil || serviceConfig.ImportStore == nil {
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			logger.Error("Redis stores are offline. Shutting down.")
			return
		}
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.ImportStore = store.InitInMemoryImportStore()
	}
	service := job.InitJobService(serviceConfig)

	llmProvider, models := initProvider(serviceContext)
	if llmProvider == nil {
		logger.Error("Completion provider failed to initialize. Shutting down.")
		return
	}

	ingestionService := ingestion.NewService(llmProvider, serviceConfig.ImportStore, models)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, ingestionService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func initProvider(ctx context.Context) (llm.Provider, ingestion.Models) {
	if config.LLMProvider == "openai" {
		provider := openai.GetOpenAIClient(os.Getenv("OPENAI_API_KEY"))
		return provider, ingestion.Models{
			Structure:  config.OpenAIStructureModel,
			Extraction: config.OpenAIExtractionModel,
		}
	}
	provider := gemini.GetGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"))
	return provider, ingestion.Models{
		Structure:  config.GeminiStructureModel,
		Extraction: config.GeminiExtractionModel,
	}
}
