// Package assistant implements the conversational assistant gateway: it
// classifies incoming messages, routes them to chat generation or project
// plan synthesis, maintains bounded conversation history, and composes the
// final response with suggestions and quick actions.
package assistant

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jia-labs/jia/intent"
	"github.com/jia-labs/jia/llm"
	"github.com/jia-labs/jia/plan"
	"github.com/jia-labs/jia/store"
)

// Chat generation parameters, mirroring the tuned production values.
const (
	chatTemperature = 0.7
	chatMaxTokens   = 500
)

// promptHistoryWindow is how many trailing history entries are embedded in
// the system prompt.
const defaultPromptHistoryWindow = 5

// completer is the subset of the LLM client used by the assistant.
// Extracted as an interface to enable testing with mock responses.
type completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// synthesizer produces a project plan from a description; it never fails
// observably (see plan.Synthesizer).
type synthesizer interface {
	Synthesize(ctx context.Context, description, timeline string) *plan.ProjectPlan
}

// ChatRequest is an incoming assistant request.
type ChatRequest struct {
	Message        string `json:"message"`
	UserID         string `json:"user_id"`
	Context        string `json:"context,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// Action is a pre-canned quick action surfaced to the UI.
type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// ChatResponse is the composed assistant reply.
type ChatResponse struct {
	Response         string            `json:"response"`
	ConversationID   string            `json:"conversation_id"`
	Timestamp        string            `json:"timestamp"`
	ContextUsed      bool              `json:"context_used"`
	Suggestions      []string          `json:"suggestions"`
	Actions          []Action          `json:"actions"`
	ProjectPlan      *plan.ProjectPlan `json:"project_plan,omitempty"`
	PlanID           string            `json:"plan_id,omitempty"`
	RequiresTimeline bool              `json:"requires_timeline,omitempty"`
	NextSteps        []string          `json:"next_steps,omitempty"`
}

// ValidationError reports missing required request fields. It is the only
// error Respond surfaces to callers; everything else degrades to a
// fallback response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Stats is a snapshot of the assistant's counters.
type Stats struct {
	RequestsHandled    int64 `json:"requests_handled"`
	PlansGenerated     int64 `json:"plans_generated"`
	ClarificationsSent int64 `json:"clarifications_sent"`
	FallbacksServed    int64 `json:"fallbacks_served"`
}

// Assistant is the request-handling core. All collaborators are injected;
// the assistant itself holds no mutable state beyond its counters.
type Assistant struct {
	llm           completer
	synth         synthesizer
	conversations store.ConversationStore
	plans         store.PlanStore
	logger        *slog.Logger
	now           func() time.Time
	thresholds    intent.Thresholds
	historyWindow int

	requestsHandled    atomic.Int64
	plansGenerated     atomic.Int64
	clarificationsSent atomic.Int64
	fallbacksServed    atomic.Int64
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithClock sets the time source (tests use a fixed clock).
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		a.now = now
	}
}

// WithThresholds overrides the planning-intent thresholds.
func WithThresholds(t intent.Thresholds) Option {
	return func(a *Assistant) {
		a.thresholds = t
	}
}

// WithHistoryWindow sets how many trailing history entries the system
// prompt embeds.
func WithHistoryWindow(n int) Option {
	return func(a *Assistant) {
		a.historyWindow = n
	}
}

// New creates an Assistant with the given collaborators.
func New(client completer, synth synthesizer, conversations store.ConversationStore, plans store.PlanStore, opts ...Option) *Assistant {
	a := &Assistant{
		llm:           client,
		synth:         synth,
		conversations: conversations,
		plans:         plans,
		logger:        slog.Default(),
		now:           time.Now,
		thresholds:    intent.DefaultThresholds(),
		historyWindow: defaultPromptHistoryWindow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Stats returns a snapshot of the assistant's counters.
func (a *Assistant) Stats() Stats {
	return Stats{
		RequestsHandled:    a.requestsHandled.Load(),
		PlansGenerated:     a.plansGenerated.Load(),
		ClarificationsSent: a.clarificationsSent.Load(),
		FallbacksServed:    a.fallbacksServed.Load(),
	}
}
