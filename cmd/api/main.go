// @title           Docuchat API
// @version         1.0
// @description     Document ingestion and chat over uploaded documents

// @contact.name    me lol
// @contact.url
// @contact.email

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
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dkasturi/docuchat/internal/chat"
	"github.com/dkasturi/docuchat/internal/config"
	"github.com/dkasturi/docuchat/internal/data/store"
	"github.com/dkasturi/docuchat/internal/domain/assetModel"
	"github.com/dkasturi/docuchat/internal/domain/chatModel"
	"github.com/dkasturi/docuchat/internal/embedding"
	"github.com/dkasturi/docuchat/internal/embedding/googleEmbedding"
	"github.com/dkasturi/docuchat/internal/embedding/openaiEmbedding"
	"github.com/dkasturi/docuchat/internal/handlers"
	"github.com/dkasturi/docuchat/internal/ingest"
	"github.com/dkasturi/docuchat/internal/mcpserver"
	"github.com/dkasturi/docuchat/internal/responder"
	"github.com/dkasturi/docuchat/internal/responder/gemini"
	"github.com/dkasturi/docuchat/internal/server"
	"github.com/dkasturi/docuchat/internal/vectorDB/qdrantDB"
	"github.com/dkasturi/docuchat/internal/watcher"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

var (
	listenAddr string
	mcpMode    bool
	watchDir   string
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve MCP tools on stdio instead of HTTP")
	flag.StringVar(&watchDir, "watch-dir", config.WatchDir, "auto-ingest documents dropped into this directory")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found")
	}

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init session store
	var sessions chatModel.SessionStore
	if redisSessions := store.GetRedisSessionStore(serviceContext); redisSessions != nil {
		sessions = redisSessions
	} else {
		logger.Error("Redis store is offline, chat sessions will not survive restarts")
		sessions = store.InitInMemorySessionStore()
	}

	//init asset store
	var assets assetModel.AssetStore
	if qdrantAssets := qdrantDB.GetQdrantAssetStore(serviceContext); qdrantAssets != nil {
		assets = qdrantAssets
	} else {
		logger.Error("Qdrant is offline, assets will be kept in memory")
		assets = store.InitInMemoryAssetStore()
	}

	//init embedding backend
	var encoder embedding.Embedder
	switch config.EmbeddingProvider {
	case "openai":
		encoder = openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, os.Getenv("OPENAI_API_KEY"))
	default:
		encoder = googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, os.Getenv("GEMINI_API_KEY"))
	}
	if encoder == nil {
		logger.Error("Embedding service failed to initialize. Shutting down.")
		return
	}
	embeddingService := embedding.NewService(encoder, config.EncoderWindowChars)

	ingestService := ingest.NewService(assets, embeddingService)

	//init responder
	var r responder.Responder
	switch config.ResponderKind {
	case "gemini":
		r = gemini.GetGeminiResponder(serviceContext, os.Getenv("GEMINI_API_KEY"), config.GeminiModelName, assets)
	default:
		r = responder.NewEcho()
	}
	if r == nil {
		logger.Error("Responder failed to initialize. Shutting down.")
		return
	}

	sessionManager := chat.NewManager(sessions)
	pipeline := chat.NewPipeline(sessions, r)

	if mcpMode {
		if err := mcpserver.Run(serviceContext, mcpserver.Deps{
			Ingest:   ingestService,
			Sessions: sessionManager,
			Pipeline: pipeline,
		}); err != nil {
			logger.Error("MCP server stopped", "error", err)
		}
		return
	}

	handlers.InitHandlers(ingestService, sessionManager, pipeline)

	if watchDir != "" {
		w, err := watcher.NewWatcher(ingestService)
		if err != nil {
			logger.Error("Could not create the directory watcher", "error", err)
		} else if err := w.Watch(serviceContext, watchDir); err != nil {
			logger.Error("Could not watch directory", "dir", watchDir, "error", err)
		}
	}

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
