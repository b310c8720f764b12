package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/loke-social/loke-server/internal/models"
)

// MemoryStore is a process-local ConversationStore kept behind the same
// interface as the gorm-backed store.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[uuid.UUID]*memoryConversation
}

type memoryConversation struct {
	mu       sync.Mutex
	conv     models.Conversation
	messages []models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		convs: make(map[uuid.UUID]*memoryConversation),
	}
}

func (s *MemoryStore) Create(_ context.Context, conv *models.Conversation) error {
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[conv.ID] = &memoryConversation{conv: *conv}
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.Conversation, error) {
	s.mu.RLock()
	entry, ok := s.convs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	conv := entry.conv
	return &conv, nil
}

func (s *MemoryStore) FindByPair(_ context.Context, userA, userB string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.convs {
		c := entry.conv
		if (c.UserAID == userA && c.UserBID == userB) || (c.UserAID == userB && c.UserBID == userA) {
			conv := c
			return &conv, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListForUser(_ context.Context, userID string) ([]models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Conversation
	for _, entry := range s.convs {
		c := entry.conv
		if c.UserAID == userID || c.UserBID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Append adds msg to the conversation's sequence, evicting the oldest
// entry in the same critical section once the cap is exceeded.
func (s *MemoryStore) Append(_ context.Context, conversationID uuid.UUID, msg *models.Message) error {
	s.mu.RLock()
	entry, ok := s.convs[conversationID]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.messages = append(entry.messages, *msg)
	if len(entry.messages) > HistoryCap {
		// Shift in place so the backing array stays at cap size instead of
		// creeping forward with every eviction.
		n := copy(entry.messages, entry.messages[1:])
		entry.messages = entry.messages[:n]
	}
	return nil
}

func (s *MemoryStore) RecentMessages(_ context.Context, conversationID uuid.UUID, n int) ([]models.Message, error) {
	s.mu.RLock()
	entry, ok := s.convs[conversationID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	start := len(entry.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]models.Message, len(entry.messages)-start)
	copy(out, entry.messages[start:])
	return out, nil
}

// Len reports the stored message count for a conversation.
func (s *MemoryStore) Len(conversationID uuid.UUID) int {
	s.mu.RLock()
	entry, ok := s.convs[conversationID]
	s.mu.RUnlock()
	if !ok {
		return 0
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return len(entry.messages)
}
