package chatModel

import "context"

// HistoryEntry is one recorded user/response exchange within a session.
type HistoryEntry struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// SessionStore owns chat sessions and their histories. Sessions live for
// the process lifetime. History is append-only and ordered by arrival of
// the append call; AppendExchange on an unknown chat id returns
// commonModels.ErrNotFound and mutates nothing.
type SessionStore interface {
	CreateSession(ctx context.Context, chatId string, assetId string) error
	GetBinding(ctx context.Context, chatId string) (string, error)
	AppendExchange(ctx context.Context, chatId string, entry HistoryEntry) error
	GetHistory(ctx context.Context, chatId string) ([]HistoryEntry, error)
}
