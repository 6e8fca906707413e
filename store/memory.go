package store

import (
	"context"
	"sync"

	"github.com/jia-labs/jia/plan"
)

// MemoryConversationStore is a process-lifetime in-memory ConversationStore.
// Each conversation has its own lock, so appends to different ids proceed
// independently while appends to the same id are serialized.
type MemoryConversationStore struct {
	mu    sync.Mutex
	limit int
	convs map[string]*memoryConversation
}

type memoryConversation struct {
	mu       sync.Mutex
	messages []Message
}

// MemoryOption configures a MemoryConversationStore.
type MemoryOption func(*MemoryConversationStore)

// WithHistoryLimit overrides the per-conversation retention limit.
func WithHistoryLimit(limit int) MemoryOption {
	return func(s *MemoryConversationStore) {
		s.limit = limit
	}
}

// NewMemoryConversationStore creates an empty in-memory conversation store.
func NewMemoryConversationStore(opts ...MemoryOption) *MemoryConversationStore {
	s := &MemoryConversationStore{
		limit: DefaultHistoryLimit,
		convs: make(map[string]*memoryConversation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// conversation returns the entry for an id, creating it if needed.
func (s *MemoryConversationStore) conversation(id string) *memoryConversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.convs[id]
	if !ok {
		conv = &memoryConversation{}
		s.convs[id] = conv
	}
	return conv
}

// AppendExchange appends the user/assistant pair and returns the trimmed
// history.
func (s *MemoryConversationStore) AppendExchange(_ context.Context, conversationID string, user, assistant Message) ([]Message, error) {
	conv := s.conversation(conversationID)

	conv.mu.Lock()
	defer conv.mu.Unlock()

	conv.messages = append(conv.messages, user, assistant)
	conv.messages = trimHistory(conv.messages, s.limit)

	return copyMessages(conv.messages), nil
}

// History returns a copy of the stored history, empty for unknown ids.
func (s *MemoryConversationStore) History(_ context.Context, conversationID string) ([]Message, error) {
	s.mu.Lock()
	conv, ok := s.convs[conversationID]
	s.mu.Unlock()

	if !ok {
		return []Message{}, nil
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()
	return copyMessages(conv.messages), nil
}

// trimHistory keeps the most recent limit messages (FIFO eviction).
func trimHistory(messages []Message, limit int) []Message {
	if limit > 0 && len(messages) > limit {
		return messages[len(messages)-limit:]
	}
	return messages
}

func copyMessages(messages []Message) []Message {
	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}

// MemoryPlanStore is a process-lifetime in-memory PlanStore.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*plan.ProjectPlan
}

// NewMemoryPlanStore creates an empty in-memory plan store.
func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{
		plans: make(map[string]*plan.ProjectPlan),
	}
}

// Put stores a plan under the given id.
func (s *MemoryPlanStore) Put(_ context.Context, planID string, p *plan.ProjectPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[planID] = p
	return nil
}

// Get returns the plan for an id, or ErrNotFound.
func (s *MemoryPlanStore) Get(_ context.Context, planID string) (*plan.ProjectPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[planID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}
