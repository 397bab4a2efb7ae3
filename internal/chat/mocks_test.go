package chat_test

import (
	"context"

	"github.com/dkasturi/docuchat/internal/domain/chatModel"
)

// MockSessionStore implements chatModel.SessionStore
type MockSessionStore struct {
	OnCreateSession  func(ctx context.Context, chatId string, assetId string) error
	OnGetBinding     func(ctx context.Context, chatId string) (string, error)
	OnAppendExchange func(ctx context.Context, chatId string, entry chatModel.HistoryEntry) error
	OnGetHistory     func(ctx context.Context, chatId string) ([]chatModel.HistoryEntry, error)
}

func (m *MockSessionStore) CreateSession(ctx context.Context, chatId string, assetId string) error {
	if m.OnCreateSession != nil {
		return m.OnCreateSession(ctx, chatId, assetId)
	}
	return nil
}

func (m *MockSessionStore) GetBinding(ctx context.Context, chatId string) (string, error) {
	if m.OnGetBinding != nil {
		return m.OnGetBinding(ctx, chatId)
	}
	return "default-asset", nil
}

func (m *MockSessionStore) AppendExchange(ctx context.Context, chatId string, entry chatModel.HistoryEntry) error {
	if m.OnAppendExchange != nil {
		return m.OnAppendExchange(ctx, chatId, entry)
	}
	return nil
}

func (m *MockSessionStore) GetHistory(ctx context.Context, chatId string) ([]chatModel.HistoryEntry, error) {
	if m.OnGetHistory != nil {
		return m.OnGetHistory(ctx, chatId)
	}
	return nil, nil
}

// MockResponder implements responder.Responder
type MockResponder struct {
	OnRespond func(ctx context.Context, assetId string, userMessage string) (string, error)
}

func (m *MockResponder) Respond(ctx context.Context, assetId string, userMessage string) (string, error) {
	if m.OnRespond != nil {
		return m.OnRespond(ctx, assetId, userMessage)
	}
	return "default response", nil
}
