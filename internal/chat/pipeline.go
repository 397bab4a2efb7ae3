package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/dkasturi/docuchat/internal/domain/chatModel"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
	"github.com/dkasturi/docuchat/internal/metrics"
	"github.com/dkasturi/docuchat/internal/responder"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

// Pipeline turns a user message on a started chat into a reply and records
// the exchange. Message returns the whole reply at once; Stream hands it
// out chunk by chunk through emit and appends to history exactly once,
// after the last chunk, so both modes leave identical history behind.
type Pipeline interface {
	Message(ctx context.Context, chatId string, userMessage string) (string, error)
	Stream(ctx context.Context, chatId string, userMessage string, emit func(chunk string) error) error
}

type pipeline struct {
	sessions  chatModel.SessionStore
	responder responder.Responder
	logger    *logger_i.Logger
}

// NewPipeline constructor
func NewPipeline(sessions chatModel.SessionStore, r responder.Responder) Pipeline {
	return &pipeline{
		sessions:  sessions,
		responder: r,
		logger:    logger_i.NewLogger("Response Pipeline"),
	}
}

func (p *pipeline) Message(ctx context.Context, chatId string, userMessage string) (string, error) {
	response, err := p.respond(ctx, chatId, userMessage)
	if err != nil {
		return "", err
	}

	if err := p.sessions.AppendExchange(ctx, chatId, chatModel.HistoryEntry{User: userMessage, Bot: response}); err != nil {
		p.logger.Error("Failed to append exchange", "chatId", chatId, "error", err)
		return "", err
	}
	return response, nil
}

func (p *pipeline) Stream(ctx context.Context, chatId string, userMessage string, emit func(chunk string) error) error {
	response, err := p.respond(ctx, chatId, userMessage)
	if err != nil {
		// no chunks were emitted, the transport turns this into one error event
		return err
	}

	metrics.IncrementActiveStreams()
	defer metrics.DecrementActiveStreams()

	// one chunk per character, in order
	for _, r := range response {
		if err := emit(string(r)); err != nil {
			// receiver went away; not an error, but stop pushing chunks
			p.logger.Debug("Stream receiver disconnected", "chatId", chatId, "error", err)
			break
		}
	}

	// history records the full response exactly once, disconnect or not,
	// so streaming stays consistent with the synchronous mode
	if err := p.sessions.AppendExchange(ctx, chatId, chatModel.HistoryEntry{User: userMessage, Bot: response}); err != nil {
		p.logger.Error("Failed to append exchange", "chatId", chatId, "error", err)
		return err
	}
	return nil
}

// respond runs the shared validate-resolve-compute steps of both modes.
func (p *pipeline) respond(ctx context.Context, chatId string, userMessage string) (string, error) {
	if chatId == "" || userMessage == "" {
		return "", fmt.Errorf("%w: chat id and message are required", commonModels.ErrInvalidArgument)
	}

	assetId, err := p.sessions.GetBinding(ctx, chatId)
	if err != nil {
		return "", err
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("response_generation", time.Since(start)) }()

	response, err := p.responder.Respond(ctx, assetId, userMessage)
	if err != nil {
		p.logger.Error("Responder failed", "chatId", chatId, "error", err)
		return "", err
	}
	return response, nil
}
