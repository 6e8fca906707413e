package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/jia-labs/jia/plan"
)

// Bucket names for the assistant's KV state.
const (
	BucketConversations = "JIA_CONVERSATIONS"
	BucketPlans         = "JIA_PLANS"
)

// appendMaxAttempts bounds the optimistic-concurrency retry loop on
// conversation appends.
const appendMaxAttempts = 5

// NATSConversationStore is a ConversationStore backed by a NATS JetStream
// KV bucket. Each conversation is one key holding the JSON-encoded message
// list; appends use revision-checked updates so concurrent exchanges on the
// same id never interleave.
type NATSConversationStore struct {
	kv    jetstream.KeyValue
	limit int
}

// NewNATSConversationStore creates the conversations bucket if needed.
func NewNATSConversationStore(ctx context.Context, js jetstream.JetStream) (*NATSConversationStore, error) {
	kv, err := getOrCreateBucket(ctx, js, BucketConversations)
	if err != nil {
		return nil, fmt.Errorf("create conversations bucket: %w", err)
	}
	return &NATSConversationStore{kv: kv, limit: DefaultHistoryLimit}, nil
}

// SetHistoryLimit overrides the per-conversation retention limit.
func (s *NATSConversationStore) SetHistoryLimit(limit int) {
	s.limit = limit
}

// AppendExchange appends the user/assistant pair with optimistic
// concurrency and returns the trimmed history.
func (s *NATSConversationStore) AppendExchange(ctx context.Context, conversationID string, user, assistant Message) ([]Message, error) {
	var lastErr error

	for attempt := 0; attempt < appendMaxAttempts; attempt++ {
		entry, err := s.kv.Get(ctx, conversationID)

		switch {
		case err == nil:
			var messages []Message
			if err := json.Unmarshal(entry.Value(), &messages); err != nil {
				return nil, fmt.Errorf("unmarshal conversation %s: %w", conversationID, err)
			}

			messages = trimHistory(append(messages, user, assistant), s.limit)

			data, err := json.Marshal(messages)
			if err != nil {
				return nil, fmt.Errorf("marshal conversation: %w", err)
			}

			if _, err := s.kv.Update(ctx, conversationID, data, entry.Revision()); err != nil {
				lastErr = err
				continue // Lost the race, reload and retry
			}
			return messages, nil

		case errors.Is(err, jetstream.ErrKeyNotFound):
			messages := []Message{user, assistant}
			data, err := json.Marshal(messages)
			if err != nil {
				return nil, fmt.Errorf("marshal conversation: %w", err)
			}

			if _, err := s.kv.Create(ctx, conversationID, data); err != nil {
				lastErr = err
				continue // Someone created it first, reload and retry
			}
			return messages, nil

		default:
			return nil, fmt.Errorf("get conversation %s: %w", conversationID, err)
		}
	}

	return nil, fmt.Errorf("append to conversation %s: %w", conversationID, lastErr)
}

// History returns the stored history, empty for unknown ids.
func (s *NATSConversationStore) History(ctx context.Context, conversationID string) ([]Message, error) {
	entry, err := s.kv.Get(ctx, conversationID)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("get conversation %s: %w", conversationID, err)
	}

	var messages []Message
	if err := json.Unmarshal(entry.Value(), &messages); err != nil {
		return nil, fmt.Errorf("unmarshal conversation %s: %w", conversationID, err)
	}
	return messages, nil
}

// NATSPlanStore is a PlanStore backed by a NATS JetStream KV bucket.
type NATSPlanStore struct {
	kv jetstream.KeyValue
}

// NewNATSPlanStore creates the plans bucket if needed.
func NewNATSPlanStore(ctx context.Context, js jetstream.JetStream) (*NATSPlanStore, error) {
	kv, err := getOrCreateBucket(ctx, js, BucketPlans)
	if err != nil {
		return nil, fmt.Errorf("create plans bucket: %w", err)
	}
	return &NATSPlanStore{kv: kv}, nil
}

// Put stores a plan under the given id.
func (s *NATSPlanStore) Put(ctx context.Context, planID string, p *plan.ProjectPlan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	if _, err := s.kv.Put(ctx, planID, data); err != nil {
		return fmt.Errorf("store plan %s: %w", planID, err)
	}
	return nil
}

// Get returns the plan for an id, or ErrNotFound.
func (s *NATSPlanStore) Get(ctx context.Context, planID string) (*plan.ProjectPlan, error) {
	entry, err := s.kv.Get(ctx, planID)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get plan %s: %w", planID, err)
	}

	var p plan.ProjectPlan
	if err := json.Unmarshal(entry.Value(), &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan %s: %w", planID, err)
	}
	return &p, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Jia assistant %s", name),
	})
}
