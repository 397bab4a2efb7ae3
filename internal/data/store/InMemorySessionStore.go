package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkasturi/docuchat/internal/domain/chatModel"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem SessionStore")

// InMemorySessionStore keeps bindings and histories in process memory.
// One lock covers both maps so an append can validate the binding and
// extend the history as a single mutually-exclusive step.
type InMemorySessionStore struct {
	lock     *sync.RWMutex
	bindings map[string]string
	history  map[string][]chatModel.HistoryEntry
}

func InitInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		lock:     new(sync.RWMutex),
		bindings: make(map[string]string),
		history:  make(map[string][]chatModel.HistoryEntry),
	}
}

func (store *InMemorySessionStore) CreateSession(ctx context.Context, chatId string, assetId string) error {
	store.lock.Lock()
	defer store.lock.Unlock()
	if _, exists := store.bindings[chatId]; exists {
		return fmt.Errorf("chat id already exists: %s", chatId)
	}
	store.bindings[chatId] = assetId
	store.history[chatId] = make([]chatModel.HistoryEntry, 0)
	inMemLogger.Debug("Created session", "chat Id", chatId)
	return nil
}

func (store *InMemorySessionStore) GetBinding(ctx context.Context, chatId string) (string, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	assetId, found := store.bindings[chatId]
	if !found {
		return "", fmt.Errorf("%w: unknown chat id", commonModels.ErrNotFound)
	}
	return assetId, nil
}

func (store *InMemorySessionStore) AppendExchange(ctx context.Context, chatId string, entry chatModel.HistoryEntry) error {
	store.lock.Lock()
	defer store.lock.Unlock()
	if _, found := store.bindings[chatId]; !found {
		return fmt.Errorf("%w: unknown chat id", commonModels.ErrNotFound)
	}
	store.history[chatId] = append(store.history[chatId], entry)
	return nil
}

func (store *InMemorySessionStore) GetHistory(ctx context.Context, chatId string) ([]chatModel.HistoryEntry, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	if _, found := store.bindings[chatId]; !found {
		return nil, fmt.Errorf("%w: unknown chat id", commonModels.ErrNotFound)
	}
	history := store.history[chatId]
	out := make([]chatModel.HistoryEntry, len(history))
	copy(out, history)
	return out, nil
}
