// Package plan defines the structured project-plan schema and the
// synthesizer that produces plans from free-text descriptions.
package plan

import "fmt"

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if a priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is a task workflow status.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// IsValid checks if a status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Task is a unit of work within a phase.
type Task struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimated_hours"`
	Priority       Priority `json:"priority"`

	// Dependencies lists ids of earlier tasks. References are not validated
	// against existing ids; self-references are dropped during
	// normalization.
	Dependencies []string `json:"dependencies"`
	Assignee     string   `json:"assignee"`
	Status       Status   `json:"status"`
}

// Milestone marks a checkpoint within a phase.
type Milestone struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueWeek     int    `json:"due_week"`
}

// Phase is a contiguous block of project weeks with its tasks and milestones.
type Phase struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	StartWeek     int         `json:"start_week"`
	DurationWeeks int         `json:"duration_weeks"`
	Tasks         []Task      `json:"tasks"`
	Milestones    []Milestone `json:"milestones"`
}

// EndWeek returns the last week covered by the phase.
func (p Phase) EndWeek() int {
	return p.StartWeek + p.DurationWeeks - 1
}

// ProjectPlan is a complete structured project plan. Once stored, a plan is
// never mutated; confirmation and activation are downstream concerns.
type ProjectPlan struct {
	ProjectName        string   `json:"project_name"`
	Description        string   `json:"description"`
	TotalDurationWeeks int      `json:"total_duration_weeks"`
	StartDate          string   `json:"start_date"` // YYYY-MM-DD
	EndDate            string   `json:"end_date"`   // YYYY-MM-DD
	Modules            []string `json:"modules"`
	Phases             []Phase  `json:"phases"`
	Risks              []string `json:"risks"`
	SuccessCriteria    []string `json:"success_criteria"`
}

// Validate checks the structural invariants a synthesized plan must hold.
// Phase/week consistency with total_duration_weeks is aimed for by the
// synthesizer but deliberately not hard-enforced here.
func (p *ProjectPlan) Validate() error {
	if p.ProjectName == "" {
		return fmt.Errorf("project_name is required")
	}
	if p.TotalDurationWeeks <= 0 {
		return fmt.Errorf("total_duration_weeks must be positive, got %d", p.TotalDurationWeeks)
	}
	if len(p.Phases) == 0 {
		return fmt.Errorf("at least one phase is required")
	}

	seenTasks := make(map[string]bool)
	for i, phase := range p.Phases {
		if phase.StartWeek < 1 {
			return fmt.Errorf("phase %d: start_week must be >= 1, got %d", phase.ID, phase.StartWeek)
		}
		if phase.DurationWeeks < 1 {
			return fmt.Errorf("phase %d: duration_weeks must be >= 1, got %d", phase.ID, phase.DurationWeeks)
		}
		if i > 0 && phase.ID <= p.Phases[i-1].ID {
			return fmt.Errorf("phases must be ordered by ascending id: %d after %d", phase.ID, p.Phases[i-1].ID)
		}
		for _, task := range phase.Tasks {
			if task.ID == "" {
				return fmt.Errorf("phase %d: task with empty id", phase.ID)
			}
			if seenTasks[task.ID] {
				return fmt.Errorf("duplicate task id %q", task.ID)
			}
			seenTasks[task.ID] = true
			if task.EstimatedHours <= 0 {
				return fmt.Errorf("task %s: estimated_hours must be positive", task.ID)
			}
			if !task.Priority.IsValid() {
				return fmt.Errorf("task %s: invalid priority %q", task.ID, task.Priority)
			}
			if !task.Status.IsValid() {
				return fmt.Errorf("task %s: invalid status %q", task.ID, task.Status)
			}
		}
		for _, m := range phase.Milestones {
			if m.DueWeek < 1 {
				return fmt.Errorf("phase %d: milestone %q due_week must be >= 1", phase.ID, m.Name)
			}
		}
	}
	return nil
}
