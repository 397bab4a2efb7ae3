package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkasturi/docuchat/internal/adapter/utils"
	"github.com/dkasturi/docuchat/internal/domain/chatModel"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

// Manager owns chat sessions: creation, the chat->asset binding, and the
// accumulated history. Start accepts any non-empty asset id without
// checking the document store; a dangling binding only surfaces when a
// responder actually dereferences it.
type Manager interface {
	Start(ctx context.Context, assetId string) (string, error)
	History(ctx context.Context, chatId string) ([]chatModel.HistoryEntry, error)
}

type manager struct {
	sessions chatModel.SessionStore
	logger   *logger_i.Logger
}

// NewManager constructor
func NewManager(sessions chatModel.SessionStore) Manager {
	return &manager{
		sessions: sessions,
		logger:   logger_i.NewLogger("Chat Manager"),
	}
}

func (m *manager) Start(ctx context.Context, assetId string) (string, error) {
	if strings.TrimSpace(assetId) == "" {
		return "", fmt.Errorf("%w: asset id is required", commonModels.ErrInvalidArgument)
	}

	chatId := utils.GetNewUUID()
	if err := m.sessions.CreateSession(ctx, chatId, assetId); err != nil {
		m.logger.Error("Error creating session", "chatId", chatId, "error", err)
		return "", err
	}
	m.logger.Debug("Started chat", "chatId", chatId, "assetId", assetId)
	return chatId, nil
}

func (m *manager) History(ctx context.Context, chatId string) ([]chatModel.HistoryEntry, error) {
	if strings.TrimSpace(chatId) == "" {
		return nil, fmt.Errorf("%w: chat id is required", commonModels.ErrInvalidArgument)
	}
	return m.sessions.GetHistory(ctx, chatId)
}
