// Package store provides conversation and plan persistence for the
// assistant. The gateway depends only on the interfaces here; an in-memory
// implementation backs tests and single-process deployments, and a NATS
// JetStream KV implementation provides durable storage.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jia-labs/jia/plan"
)

// ErrNotFound is returned when an entity is not found.
var ErrNotFound = errors.New("entity not found")

// DefaultHistoryLimit is the maximum number of messages retained per
// conversation. Older messages are evicted first.
const DefaultHistoryLimit = 20

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation. Immutable once created.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationStore keeps bounded per-conversation message history.
//
// Implementations must serialize operations on the same conversation id:
// an appended user message is always immediately followed by its paired
// assistant message in the stored sequence, even under concurrent requests.
// Operations on different ids may proceed independently.
type ConversationStore interface {
	// AppendExchange appends a user/assistant message pair and returns the
	// resulting history (most recent messages, bounded by the store's
	// history limit).
	AppendExchange(ctx context.Context, conversationID string, user, assistant Message) ([]Message, error)

	// History returns the stored history for a conversation, oldest first.
	// Unknown ids yield an empty history, not an error.
	History(ctx context.Context, conversationID string) ([]Message, error)
}

// PlanStore keeps generated project plans keyed by opaque plan id.
// Plans are write-once: the core never mutates a stored plan.
type PlanStore interface {
	Put(ctx context.Context, planID string, p *plan.ProjectPlan) error

	// Get returns the plan for an id, or ErrNotFound.
	Get(ctx context.Context, planID string) (*plan.ProjectPlan, error)
}

// NewPlanID generates a fresh opaque plan id.
func NewPlanID() string {
	return "plan_" + uuid.New().String()
}
