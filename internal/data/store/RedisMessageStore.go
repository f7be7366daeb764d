package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/data/redisStore"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

type RedisMessageStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisMessageStore(ctx context.Context, addr string, secret string) *RedisMessageStore {
	inner := redisStore.GetRedisStore(ctx, addr, secret, config.RedisMessageStore)
	if inner == nil {
		return nil
	}
	return &RedisMessageStore{
		store:  inner,
		logger: logger_i.NewLogger("MessageStore"),
	}
}

func (s *RedisMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	isFound, err := s.store.Exists(ctx, chatId)
	if s.store.IsNil(err) {
		return false
	} else if err != nil {
		log.Error("Failed to check if chatId exists", "err", err)
		return false
	}
	return isFound
}

func (s *RedisMessageStore) TrySaveChat(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	if !s.ValidateChatId(ctx, id) {
		err := errors.New("invalid chat id")
		log.Error("Failed validation before saving", "err", err)
		return err
	}
	return s.saveTurn(ctx, id, conversation)
}

func (s *RedisMessageStore) saveTurn(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	err := s.store.ListPush(ctx, id, marshalTurn(conversation, s.logger))
	if err != nil {
		log.Error("error saving chat", "error", err)
	}
	return err
}

func (s *RedisMessageStore) InitNewChat(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	log.Debug("Initializing new chat")
	if err := s.store.Del(ctx, id); err != nil && !s.store.IsNil(err) {
		log.Error("Error initializing chat", "error", err)
	}
	return s.saveTurn(ctx, id, jobModel.JobPayload{})
}

func (s *RedisMessageStore) ResetChat(ctx context.Context, id string) error {
	return s.InitNewChat(ctx, id)
}

// GetMessageHistory returns the most recent conversation turns,
// oldest first, ready to hand to the LLM.
func (s *RedisMessageStore) GetMessageHistory(ctx context.Context, chatId string) ([]string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)

	res, err := s.store.ListGetRecent(ctx, chatId, config.ChatHistoryWindow)
	if err != nil {
		log.Error("Error getting history", "error", err)
		return nil, err
	}
	return res, nil
}

func TestMessageStore(store *redisStore.Store) *RedisMessageStore {
	return &RedisMessageStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}

func marshalTurn(payload jobModel.JobPayload, logger *logger_i.Logger) []byte {
	if payload.Question == "" && payload.Answer == "" {
		// chat init marker
		return []byte("{}")
	}
	data, err := json.Marshal(struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}{payload.Question, payload.Answer})
	if err != nil {
		logger.Error("Error marshalling chat turn", "error", err)
		return []byte(fmt.Sprintf(`{"question":%q}`, payload.Question))
	}
	return data
}
