package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jia-labs/jia/llm"
	"github.com/jia-labs/jia/model"
)

// synthesisPrompt is the structured-generation prompt. The JSON block must
// mirror the ProjectPlan schema exactly; the model is asked for nothing but
// that document.
const synthesisPrompt = `You are an expert project manager. Analyze this project description and create a comprehensive project plan.

PROJECT DESCRIPTION: "%s"
%s
Create a detailed project plan with the following structure:
1. Extract project name, description, and key objectives
2. Identify main modules/features mentioned
3. Break down into phases with specific tasks
4. Estimate durations and dependencies
5. Create timeline with milestones

Return ONLY valid JSON in this exact format:
{
  "project_name": "string",
  "description": "string",
  "total_duration_weeks": number,
  "start_date": "YYYY-MM-DD",
  "end_date": "YYYY-MM-DD",
  "modules": ["module1", "module2"],
  "phases": [
    {
      "id": 1,
      "name": "Phase Name",
      "description": "Phase description",
      "start_week": 1,
      "duration_weeks": 4,
      "tasks": [
        {
          "id": "task_1",
          "title": "Task Title",
          "description": "Task description",
          "estimated_hours": 40,
          "priority": "high|medium|low",
          "dependencies": ["task_id"],
          "assignee": "TBD",
          "status": "backlog"
        }
      ],
      "milestones": [
        {
          "name": "Milestone Name",
          "description": "Milestone description",
          "due_week": 4
        }
      ]
    }
  ],
  "risks": ["risk1", "risk2"],
  "success_criteria": ["criteria1", "criteria2"]
}`

const synthesisSystemPrompt = "You are an expert project manager who creates detailed, realistic project plans."

// Generation parameters: low temperature favors schema-conforming output.
const (
	synthesisTemperature = 0.3
	synthesisMaxTokens   = 2000
)

// completer is the subset of the LLM client used by the synthesizer.
// Extracted as an interface to enable testing with mock responses.
type completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Synthesizer turns free-text project descriptions into ProjectPlans via
// JSON-constrained generation, falling back to the deterministic minimal
// plan when generation or parsing fails.
type Synthesizer struct {
	llm    completer
	logger *slog.Logger
	now    func() time.Time
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) SynthesizerOption {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// WithClock sets the time source used for fallback plan dates.
func WithClock(now func() time.Time) SynthesizerOption {
	return func(s *Synthesizer) {
		s.now = now
	}
}

// NewSynthesizer creates a Synthesizer backed by the given LLM completer.
func NewSynthesizer(client completer, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		llm:    client,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize produces a plan for the description, using the optional
// timeline hint. It never fails observably: any generation or parse error
// yields the deterministic fallback plan instead.
func (s *Synthesizer) Synthesize(ctx context.Context, description, timeline string) *ProjectPlan {
	generated, err := s.generate(ctx, description, timeline)
	if err != nil {
		s.logger.Warn("Plan generation failed, using fallback plan",
			"error", err,
			"description_len", len(description))
		return Fallback(description, s.now())
	}
	return generated
}

// generate runs the constrained generation call and parses the result.
func (s *Synthesizer) generate(ctx context.Context, description, timeline string) (*ProjectPlan, error) {
	timelineLine := ""
	if timeline != "" {
		timelineLine = fmt.Sprintf("TIMELINE: %s\n", timeline)
	}

	temp := synthesisTemperature
	resp, err := s.llm.Complete(ctx, llm.Request{
		Capability: model.CapabilityPlanning.String(),
		Messages: []llm.Message{
			{Role: "system", Content: synthesisSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(synthesisPrompt, description, timelineLine)},
		},
		Temperature: &temp,
		MaxTokens:   synthesisMaxTokens,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation call: %w", err)
	}

	raw := llm.ExtractJSON(resp.Content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in plan response (model %s)", resp.Model)
	}

	var p ProjectPlan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("parse plan JSON: %w", err)
	}

	normalize(&p)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("generated plan invalid: %w", err)
	}

	return &p, nil
}

// normalize repairs the loose edges models commonly produce: unordered
// phases, missing defaults, self-referencing dependencies.
func normalize(p *ProjectPlan) {
	if p.TotalDurationWeeks < 1 {
		p.TotalDurationWeeks = 1
	}

	sort.SliceStable(p.Phases, func(i, j int) bool {
		return p.Phases[i].ID < p.Phases[j].ID
	})

	for pi := range p.Phases {
		phase := &p.Phases[pi]
		for ti := range phase.Tasks {
			task := &phase.Tasks[ti]

			if task.Assignee == "" {
				task.Assignee = "TBD"
			}
			if task.Status == "" {
				task.Status = StatusBacklog
			}
			if task.Priority == "" {
				task.Priority = PriorityMedium
			}
			task.Priority = Priority(strings.ToLower(string(task.Priority)))
			task.Status = Status(strings.ToLower(string(task.Status)))

			if task.Dependencies == nil {
				task.Dependencies = []string{}
				continue
			}
			deps := task.Dependencies[:0]
			for _, dep := range task.Dependencies {
				if dep != task.ID {
					deps = append(deps, dep)
				}
			}
			task.Dependencies = deps
		}
	}
}
