package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/jia-labs/jia/intent"
	"github.com/jia-labs/jia/llm"
	"github.com/jia-labs/jia/model"
	"github.com/jia-labs/jia/plan"
	"github.com/jia-labs/jia/store"
)

// Respond handles one assistant request end to end: classify, generate or
// synthesize, persist, compose.
//
// The only error it returns is *ValidationError for malformed requests.
// Every internal failure (model chain exhausted, store unavailable) degrades
// to a non-nil fallback response so callers always have something to show.
func (a *Assistant) Respond(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Message == "" || req.UserID == "" {
		return nil, &ValidationError{Reason: "message and user_id are required"}
	}
	a.requestsHandled.Add(1)

	resp, err := a.respond(ctx, req)
	if err != nil {
		a.fallbacksServed.Add(1)
		a.logger.Error("request failed, serving fallback response",
			"user_id", req.UserID,
			"error", err)
		return a.fallbackResponse(err), nil
	}
	return resp, nil
}

func (a *Assistant) respond(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	now := a.now()

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = fmt.Sprintf("conv_%s_%d", req.UserID, now.UnixMilli())
	}

	// History is best-effort: a degraded store costs context, not the reply.
	history, err := a.conversations.History(ctx, conversationID)
	if err != nil {
		a.logger.Warn("conversation history unavailable",
			"conversation_id", conversationID,
			"error", err)
		history = nil
	}

	planning := intent.DetectPlanningIntentWith(req.Message, a.thresholds)
	timeline, _ := intent.ExtractTimeline(req.Message)

	var (
		text             string
		projectPlan      *plan.ProjectPlan
		planID           string
		requiresTimeline bool
		nextSteps        []string
	)

	switch {
	case planning && (timeline != "" || intent.MentionsDuration(req.Message)):
		p := a.synth.Synthesize(ctx, req.Message, timeline)

		id := store.NewPlanID()
		if err := a.plans.Put(ctx, id, p); err != nil {
			return nil, fmt.Errorf("store plan: %w", err)
		}

		projectPlan = p
		planID = id
		text = planSummary(p)
		nextSteps = planNextSteps()
		a.plansGenerated.Add(1)

		a.logger.Info("project plan generated",
			"plan_id", id,
			"project_name", p.ProjectName,
			"conversation_id", conversationID)

	case planning:
		// Planning intent without any duration signal: ask before guessing.
		requiresTimeline = true
		text = timelineClarification
		a.clarificationsSent.Add(1)

	default:
		temp := chatTemperature
		resp, err := a.llm.Complete(ctx, llm.Request{
			Capability: model.CapabilityChat.String(),
			Messages: []llm.Message{
				{Role: "system", Content: chatSystemPrompt(now, req.Context, history, a.historyWindow)},
				{Role: "user", Content: req.Message},
			},
			Temperature: &temp,
			MaxTokens:   chatMaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("chat generation: %w", err)
		}
		text = resp.Content
	}

	suggestions, actions := SuggestionsAndActions(req.Message, planning)

	// Persistence is best-effort too: the exchange is already composed.
	if _, err := a.conversations.AppendExchange(ctx, conversationID,
		store.Message{Role: store.RoleUser, Content: req.Message, Timestamp: now},
		store.Message{Role: store.RoleAssistant, Content: text, Timestamp: a.now()},
	); err != nil {
		a.logger.Warn("failed to persist exchange",
			"conversation_id", conversationID,
			"error", err)
	}

	return &ChatResponse{
		Response:         text,
		ConversationID:   conversationID,
		Timestamp:        a.now().UTC().Format(time.RFC3339),
		ContextUsed:      len(history) > 0 || req.Context != "",
		Suggestions:      suggestions,
		Actions:          actions,
		ProjectPlan:      projectPlan,
		PlanID:           planID,
		RequiresTimeline: requiresTimeline,
		NextSteps:        nextSteps,
	}, nil
}

// fallbackResponse is served whenever the internal pipeline fails. It never
// touches the stores or the model chain.
func (a *Assistant) fallbackResponse(cause error) *ChatResponse {
	now := a.now()
	return &ChatResponse{
		Response:       fallbackText(llm.IsModelUnavailable(cause)),
		ConversationID: fmt.Sprintf("fallback_%d", now.UnixMilli()),
		Timestamp:      now.UTC().Format(time.RFC3339),
		ContextUsed:    false,
		Suggestions: []string{
			"What can I help you with today?",
			"Tell me about your project idea",
			"How can I improve your productivity?",
			"Help me plan my schedule",
		},
		Actions: []Action{
			{Type: "help", Label: "Get Help"},
			{Type: "create_plan", Label: "Create Project Plan"},
			{Type: "productivity_tips", Label: "Get Tips"},
		},
	}
}
