package plan

import (
	"time"
	"unicode/utf8"

	"github.com/jia-labs/jia/intent"
)

// maxFallbackDescription bounds the description carried into a fallback plan.
const maxFallbackDescription = 200

// Fallback builds the deterministic minimal plan used when structured
// generation fails or is unavailable. Given the same description and
// instant it produces byte-identical output, so tests can assert exact
// plans. The dates are derived from now: start today, end three months out.
func Fallback(description string, now time.Time) *ProjectPlan {
	projectName, ok := intent.ExtractProjectName(description)
	if !ok {
		projectName = "New Project"
	}

	if len(description) > maxFallbackDescription {
		cut := maxFallbackDescription
		// Back off to a rune boundary so the cut never leaves invalid UTF-8.
		for cut > 0 && !utf8.RuneStart(description[cut]) {
			cut--
		}
		description = description[:cut]
	}

	start := now
	end := now.AddDate(0, 3, 0)

	return &ProjectPlan{
		ProjectName:        projectName,
		Description:        description + "...",
		TotalDurationWeeks: 12,
		StartDate:          start.Format("2006-01-02"),
		EndDate:            end.Format("2006-01-02"),
		Modules:            []string{"Core Features", "User Interface", "Testing"},
		Phases: []Phase{
			{
				ID:            1,
				Name:          "Planning & Setup",
				Description:   "Initial project setup and planning",
				StartWeek:     1,
				DurationWeeks: 2,
				Tasks: []Task{
					{
						ID:             "task_1",
						Title:          "Project Requirements Analysis",
						Description:    "Define detailed project requirements",
						EstimatedHours: 20,
						Priority:       PriorityHigh,
						Dependencies:   []string{},
						Assignee:       "TBD",
						Status:         StatusBacklog,
					},
				},
				Milestones: []Milestone{
					{
						Name:        "Project Kickoff",
						Description: "Project officially started",
						DueWeek:     1,
					},
				},
			},
		},
		Risks:           []string{"Timeline constraints", "Resource availability"},
		SuccessCriteria: []string{"Project delivered on time", "All features implemented"},
	}
}
