package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jia-labs/jia/plan"
)

func TestPlanSummary(t *testing.T) {
	p := &plan.ProjectPlan{
		ProjectName:        "Nimbus",
		Description:        "Weather dashboard",
		TotalDurationWeeks: 8,
		StartDate:          "2026-08-31",
		EndDate:            "2026-10-26",
		Modules:            []string{"Frontend", "Backend"},
		Phases: []plan.Phase{
			{
				ID: 1, Name: "Foundation", Description: "Core setup and architecture",
				StartWeek: 1, DurationWeeks: 3,
				Tasks:      []plan.Task{{ID: "task_1", Title: "Scaffold", EstimatedHours: 8, Priority: plan.PriorityHigh, Status: plan.StatusBacklog}},
				Milestones: []plan.Milestone{{Name: "Architecture approved", DueWeek: 3}},
			},
			{
				ID: 2, Name: "Delivery", Description: "Build and ship",
				StartWeek: 4, DurationWeeks: 5,
				Tasks: []plan.Task{
					{ID: "task_2", Title: "Build UI", EstimatedHours: 24, Priority: plan.PriorityMedium, Status: plan.StatusBacklog},
					{ID: "task_3", Title: "Deploy", EstimatedHours: 8, Priority: plan.PriorityHigh, Status: plan.StatusBacklog},
				},
			},
		},
		Risks:           []string{"Scope creep", "API rate limits"},
		SuccessCriteria: []string{"Live dashboard", "Sub-second loads"},
	}

	summary := planSummary(p)

	assert.Contains(t, summary, "comprehensive plan for **Nimbus**")
	assert.Contains(t, summary, "**Duration:** 8 weeks (2026-08-31 to 2026-10-26)")
	assert.Contains(t, summary, "**Modules:** Frontend, Backend")

	// Week ranges are inclusive of the final week.
	assert.Contains(t, summary, "**Foundation** (Week 1-3)")
	assert.Contains(t, summary, "**Delivery** (Week 4-8)")
	assert.Contains(t, summary, "• 1 tasks planned")
	assert.Contains(t, summary, "• 2 tasks planned")
	assert.Contains(t, summary, "• 1 milestone(s)")
	assert.Contains(t, summary, "• 0 milestone(s)")

	assert.Contains(t, summary, "• Scope creep")
	assert.Contains(t, summary, "• Sub-second loads")
	assert.Contains(t, summary, "**Kanban**, **Gantt**, and **List** views")
}

func TestPlanNextSteps(t *testing.T) {
	steps := planNextSteps()
	require.Len(t, steps, 5)
	assert.Equal(t, "Review the detailed task breakdown in each view", steps[0])
}

func TestFallbackText(t *testing.T) {
	assert.Contains(t, fallbackText(true), "updating my AI models")
	assert.Contains(t, fallbackText(false), "actionable plans")
	assert.NotEqual(t, fallbackText(true), fallbackText(false))
}

func TestChatSystemPromptStates(t *testing.T) {
	prompt := chatSystemPrompt(testPromptNow, "", nil, 5)
	assert.Contains(t, prompt, "General productivity assistance")
	assert.Contains(t, prompt, "New conversation")
	assert.NotContains(t, prompt, "CONVERSATION HISTORY")
}
