package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/dkasturi/docuchat/internal/adapter/utils"
	"github.com/dkasturi/docuchat/internal/config"
	"github.com/dkasturi/docuchat/internal/middleware"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/", middleware.IndexPageHandler)
	r.Router.Post("/", middleware.UploadHandler)
	r.Router.Post("/api/documents/process", middleware.ProcessDocumentHandler)
	r.Router.Post("/api/chat/start", middleware.StartChatHandler)
	r.Router.Post("/api/chat/message", middleware.ChatMessageHandler)
	r.Router.Post("/api/chat/stream", middleware.ChatStreamHandler)
	r.Router.Get("/api/chat/history", middleware.ChatHistoryHandler)
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
