package assistant

import "strings"

// Bounds on the contextual affordances attached to every response.
const (
	maxSuggestions = 4
	maxActions     = 3
)

// SuggestionsAndActions derives follow-up suggestions and quick actions
// from the user's message. Planning intent always wins; otherwise the first
// matching keyword category applies, with a generic fallback so no response
// ships without affordances.
func SuggestionsAndActions(userMessage string, planningIntent bool) ([]string, []Action) {
	if planningIntent {
		return capSuggestions(
			[]string{"Review the project breakdown", "Adjust timeline or scope", "Assign team members"},
			[]Action{
				{Type: "view_kanban", Label: "View Kanban Board"},
				{Type: "view_gantt", Label: "View Gantt Chart"},
				{Type: "export_calendar", Label: "Export to Calendar"},
			})
	}

	lower := strings.ToLower(userMessage)

	switch {
	case strings.Contains(lower, "name") || strings.Contains(lower, "who are you"):
		return capSuggestions(
			[]string{"What can you help me with?", "Show me project planning features", "Give me productivity tips"},
			[]Action{
				{Type: "tour", Label: "Take a Tour"},
				{Type: "help", Label: "Get Help"},
			})

	case strings.Contains(lower, "tomorrow") || strings.Contains(lower, "plan"):
		return capSuggestions(
			[]string{"What are my priorities for tomorrow?", "Help me create a daily schedule", "Show me planning templates"},
			[]Action{
				{Type: "plan_tomorrow", Label: "Plan Tomorrow"},
				{Type: "daily_plan", Label: "Create Daily Plan"},
				{Type: "set_priorities", Label: "Set Priorities"},
			})

	case strings.Contains(lower, "task") || strings.Contains(lower, "todo") || strings.Contains(lower, "work"):
		return capSuggestions(
			[]string{"Help me prioritize my tasks", "Create a task management system", "Show me productivity tips"},
			[]Action{
				{Type: "create_task", Label: "Create Task"},
				{Type: "prioritize", Label: "Prioritize Tasks"},
				{Type: "productivity_tips", Label: "Get Tips"},
			})

	case strings.Contains(lower, "project") || strings.Contains(lower, "development") || strings.Contains(lower, "build"):
		return capSuggestions(
			[]string{"Help me break down this project", "Create a timeline", "Show me project templates"},
			[]Action{
				{Type: "create_plan", Label: "Create Project Plan"},
				{Type: "set_timeline", Label: "Set Timeline"},
				{Type: "view_templates", Label: "View Templates"},
			})

	default:
		return capSuggestions(
			[]string{"What should I focus on next?", "Help me plan my day", "Show me productivity features"},
			[]Action{
				{Type: "daily_plan", Label: "Plan My Day"},
				{Type: "productivity_tips", Label: "Get Tips"},
				{Type: "help", Label: "Get Help"},
			})
	}
}

func capSuggestions(suggestions []string, actions []Action) ([]string, []Action) {
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return suggestions, actions
}
