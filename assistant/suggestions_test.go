package assistant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jia-labs/jia/assistant"
)

func TestSuggestionsAndActions_Categories(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		planning    bool
		firstAction string
	}{
		{"planning intent wins", "build the trading platform", true, "view_kanban"},
		{"identity", "What's your name?", false, "tour"},
		{"who are you", "who are you exactly", false, "tour"},
		{"tomorrow", "what should I do tomorrow", false, "plan_tomorrow"},
		{"plan keyword", "help me plan something", false, "plan_tomorrow"},
		{"tasks", "organize my tasks please", false, "create_task"},
		{"work", "too much work today", false, "create_task"},
		{"project", "a new project idea", false, "create_plan"},
		{"build", "I want to build something", false, "create_plan"},
		{"default", "hello there", false, "daily_plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions, actions := assistant.SuggestionsAndActions(tt.message, tt.planning)

			require.NotEmpty(t, suggestions)
			require.NotEmpty(t, actions)
			assert.Equal(t, tt.firstAction, actions[0].Type)
		})
	}
}

func TestSuggestionsAndActions_Bounds(t *testing.T) {
	// Every category stays within the response affordance caps.
	messages := []string{
		"what's my name", "plan tomorrow", "my tasks", "new project", "hello",
	}
	for _, msg := range messages {
		for _, planning := range []bool{true, false} {
			suggestions, actions := assistant.SuggestionsAndActions(msg, planning)
			assert.LessOrEqual(t, len(suggestions), 4)
			assert.LessOrEqual(t, len(actions), 3)
		}
	}
}

func TestSuggestionsAndActions_FirstCategoryWins(t *testing.T) {
	// "name" is checked before "plan": identity affordances apply even when
	// both keywords are present.
	_, actions := assistant.SuggestionsAndActions("what's my name, and help me plan", false)
	require.NotEmpty(t, actions)
	assert.Equal(t, "tour", actions[0].Type)
}
