package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jia-labs/jia/llm"
	"github.com/jia-labs/jia/model"
)

const scheduleSystemPrompt = `You are an AI scheduling assistant that optimizes task scheduling based on:
- Task priorities and deadlines
- User energy levels and preferences
- Existing calendar commitments
- Task dependencies and estimated durations

Provide optimal time slots and scheduling recommendations in JSON format.`

const schedulePromptTemplate = `Tasks to schedule: %s
User preferences: %s
Current calendar: %s

Please suggest optimal scheduling with time blocks, considering:
1. High-priority tasks during peak energy hours
2. Buffer time between meetings
3. Task dependencies
4. Deadline proximity`

// ScheduleRequest carries the raw task, preference, and calendar payloads to
// embed in the scheduling prompt. The assistant does not interpret their
// shape; it hands them to the model verbatim.
type ScheduleRequest struct {
	Tasks       json.RawMessage `json:"tasks"`
	Preferences json.RawMessage `json:"preferences"`
	Calendar    json.RawMessage `json:"calendar"`
}

// SuggestSchedule asks the model chain for scheduling recommendations.
// Unlike Respond, failures surface to the caller: there is no useful
// degraded schedule to fall back to.
func (a *Assistant) SuggestSchedule(ctx context.Context, req ScheduleRequest) (string, error) {
	prompt := fmt.Sprintf(schedulePromptTemplate,
		rawOrNull(req.Tasks),
		rawOrNull(req.Preferences),
		rawOrNull(req.Calendar))

	resp, err := a.llm.Complete(ctx, llm.Request{
		Capability: model.CapabilityChat.String(),
		Messages: []llm.Message{
			{Role: "system", Content: scheduleSystemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("schedule generation: %w", err)
	}
	return resp.Content, nil
}

func rawOrNull(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
