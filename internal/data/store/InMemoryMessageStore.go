package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
)

type InMemoryMessageStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]jobModel.JobPayload
}

func InitMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]jobModel.JobPayload),
	}
}

func (store *InMemoryMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	_, ok := store.chatMap[chatId]
	return ok
}

func (store *InMemoryMessageStore) TrySaveChat(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	if !store.ValidateChatId(ctx, id) {
		return nil
	}
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = append(store.chatMap[id], conversation)
	return nil
}

func (store *InMemoryMessageStore) InitNewChat(ctx context.Context, id string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = make([]jobModel.JobPayload, 0)
	return nil
}

func (store *InMemoryMessageStore) ResetChat(ctx context.Context, id string) error {
	return store.InitNewChat(ctx, id)
}

func (store *InMemoryMessageStore) GetMessageHistory(ctx context.Context, chatId string) ([]string, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()

	turns := store.chatMap[chatId]
	start := 0
	if len(turns) > config.ChatHistoryWindow {
		start = len(turns) - config.ChatHistoryWindow
	}

	var history []string
	for _, t := range turns[start:] {
		if t.Question == "" && t.Answer == "" {
			continue
		}
		history = append(history, fmt.Sprintf(`{"question":%q,"answer":%q}`, t.Question, t.Answer))
	}
	return history, nil
}
