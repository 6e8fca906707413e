// Package intent classifies user messages for the assistant gateway.
// It decides whether a message is a project-planning request and extracts
// best-effort timeline and project-name hints. All functions are pure and
// deterministic.
package intent

import "strings"

// PlanningKeywords is the keyword set used to detect project-planning
// requests. A keyword matches when any whitespace token of the lower-cased
// message contains it as a substring.
var PlanningKeywords = []string{
	"project",
	"plan",
	"schedule",
	"timeline",
	"roadmap",
	"phases",
	"development",
	"build",
	"create",
	"launch",
	"mvp",
	"platform",
	"months",
	"weeks",
	"deadline",
	"deliverables",
	"milestones",
	"trading",
	"social",
	"community",
	"modules",
	"features",
}

// Thresholds are the tunable gates of the planning-intent heuristic.
//
// The word-count gate approximates "the user pasted a project description":
// short messages or casual mentions of "plan" must not trigger full plan
// synthesis. The values are deliberate behavior, not placeholders; changing
// them changes what the gateway does with borderline messages.
type Thresholds struct {
	// MinWords is the exclusive word-count gate. Messages with this many
	// words or fewer are never planning requests.
	MinWords int

	// MinKeywordMatches is the minimum number of distinct matched keywords.
	MinKeywordMatches int
}

// DefaultThresholds returns the production thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{MinWords: 50, MinKeywordMatches: 3}
}

// DetectPlanningIntent reports whether the message describes a project to be
// broken into phases and tasks, using the default thresholds.
func DetectPlanningIntent(message string) bool {
	return DetectPlanningIntentWith(message, DefaultThresholds())
}

// DetectPlanningIntentWith is DetectPlanningIntent with explicit thresholds.
func DetectPlanningIntentWith(message string, t Thresholds) bool {
	words := strings.Fields(strings.ToLower(message))
	if len(words) <= t.MinWords {
		return false
	}

	matches := 0
	for _, keyword := range PlanningKeywords {
		for _, word := range words {
			if strings.Contains(word, keyword) {
				matches++
				break
			}
		}
		if matches >= t.MinKeywordMatches {
			return true
		}
	}
	return false
}

// MentionsDuration reports whether the message loosely references a duration
// ("month"/"week" substring). The gateway uses it as a weaker timeline
// signal than ExtractTimeline.
func MentionsDuration(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "month") || strings.Contains(lower, "week")
}
