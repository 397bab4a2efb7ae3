package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkasturi/docuchat/internal/config"
	"github.com/dkasturi/docuchat/internal/data/redisStore"
	"github.com/dkasturi/docuchat/internal/domain/chatModel"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

const (
	bindingKeyPrefix = "chat:"
	historyKeyPrefix = "history:"
)

type RedisSessionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisSessionStore)
	if inner == nil {
		return nil
	}
	return &RedisSessionStore{
		store:  inner,
		logger: logger_i.NewLogger("SessionStore"),
	}
}

func (s *RedisSessionStore) CreateSession(ctx context.Context, chatId string, assetId string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("creating session")

	// SETNX so a duplicate id can never silently rebind an existing session
	ok, err := s.store.SetNX(ctx, bindingKeyPrefix+chatId, assetId)
	if err != nil {
		log.Error("error creating session", "error", err)
		return err
	}
	if !ok {
		return fmt.Errorf("chat id already exists: %s", chatId)
	}
	return nil
}

func (s *RedisSessionStore) GetBinding(ctx context.Context, chatId string) (string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)

	assetId, err := s.store.Get(ctx, bindingKeyPrefix+chatId)
	if s.store.IsNil(err) {
		return "", fmt.Errorf("%w: unknown chat id", commonModels.ErrNotFound)
	} else if err != nil {
		log.Error("error resolving binding", "error", err)
		return "", err
	}
	return assetId, nil
}

func (s *RedisSessionStore) AppendExchange(ctx context.Context, chatId string, entry chatModel.HistoryEntry) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)

	found, err := s.store.Exists(ctx, bindingKeyPrefix+chatId)
	if err != nil {
		log.Error("error validating chat id", "error", err)
		return err
	}
	if !found {
		return fmt.Errorf("%w: unknown chat id", commonModels.ErrNotFound)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	// RPUSH is atomic, so appends land in call order
	if err := s.store.ListPush(ctx, historyKeyPrefix+chatId, data); err != nil {
		log.Error("error saving exchange", "error", err)
		return err
	}
	log.Debug("Saved exchange")
	return nil
}

func (s *RedisSessionStore) GetHistory(ctx context.Context, chatId string) ([]chatModel.HistoryEntry, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("Getting history")

	found, err := s.store.Exists(ctx, bindingKeyPrefix+chatId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: unknown chat id", commonModels.ErrNotFound)
	}

	raw, err := s.store.ListGetAll(ctx, historyKeyPrefix+chatId)
	if err != nil {
		log.Error("Error getting history", "error", err)
		return nil, err
	}

	history := make([]chatModel.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry chatModel.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, nil
}

func TestSessionStore(store *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
