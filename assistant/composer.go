package assistant

import (
	"fmt"
	"strings"

	"github.com/jia-labs/jia/plan"
)

// timelineClarification is sent when a message reads as a planning request
// but carries no duration signal to anchor a schedule on.
const timelineClarification = `I can help you create a comprehensive project plan for this exciting project!

To create the most accurate timeline and task breakdown, I need to know:

**📅 Timeline Information:**
- How long do you want this project to take? (e.g., "3 months", "6 weeks")
- Do you have a specific start date? (e.g., "June 25th", "next month")
- Any hard deadlines I should know about?

**🎯 Additional Context:**
- Team size (solo, small team, large team)?
- Budget constraints?
- Any specific technologies you prefer?

Once you provide the timeline, I'll create a detailed project plan with:
- ✅ Phase-by-phase breakdown
- ✅ Task prioritization and dependencies
- ✅ Milestone tracking
- ✅ Resource allocation
- ✅ Risk assessment

Please share your preferred timeline and I'll get started!`

// planSummary renders a generated plan as the markdown reply shown to the
// user alongside the structured plan itself.
func planSummary(p *plan.ProjectPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "I've analyzed your project description and created a comprehensive plan for **%s**!\n\n", p.ProjectName)

	fmt.Fprintf(&b, "## 📋 Project Overview\n")
	fmt.Fprintf(&b, "**Duration:** %d weeks (%s to %s)\n", p.TotalDurationWeeks, p.StartDate, p.EndDate)
	fmt.Fprintf(&b, "**Modules:** %s\n\n", strings.Join(p.Modules, ", "))

	fmt.Fprintf(&b, "## 🎯 Key Phases\n")
	for i, phase := range p.Phases {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "**%s** (Week %d-%d)\n", phase.Name, phase.StartWeek, phase.EndWeek())
		fmt.Fprintf(&b, "%s\n", phase.Description)
		fmt.Fprintf(&b, "• %d tasks planned\n", len(phase.Tasks))
		fmt.Fprintf(&b, "• %d milestone(s)", len(phase.Milestones))
	}

	fmt.Fprintf(&b, "\n\n## ⚠️ Identified Risks\n")
	for i, risk := range p.Risks {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s", risk)
	}

	fmt.Fprintf(&b, "\n\n## ✅ Success Criteria\n")
	for i, criteria := range p.SuccessCriteria {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s", criteria)
	}

	b.WriteString("\n\nYour project plan is now available in **Kanban**, **Gantt**, and **List** views. Would you like to review the detailed breakdown and confirm the schedule?")

	return b.String()
}

// planNextSteps is the fixed follow-up checklist attached to every
// successfully generated plan.
func planNextSteps() []string {
	return []string{
		"Review the detailed task breakdown in each view",
		"Confirm timeline and resource allocation",
		"Assign team members to specific tasks",
		"Set up calendar integration for milestones",
		"Begin with Phase 1 planning and kickoff",
	}
}

const modelUnavailableFallback = `Hi! I'm Jia, your AI productivity assistant. I'm currently updating my AI models to serve you better.

While I work on that, here's how I can help you:

🎯 **Project Planning**
• Transform ideas into structured project plans
• Break down complex projects into manageable phases
• Create timelines with dependencies and milestones

📅 **Schedule Optimization**
• Find optimal times for different types of work
• Block focus time for deep work sessions
• Balance meetings with productive work time

📊 **Task Management**
• Create and organize tasks with priorities
• Track progress across Kanban, Gantt, and List views
• Set smart reminders and deadlines

I'll be back to full AI-powered responses shortly. In the meantime, feel free to describe your project ideas!`

const genericFallback = `Hi! I'm Jia, your AI productivity assistant. I specialize in turning your project ideas into actionable plans!

I can help you with:

• **Project Planning** - Turn complex ideas into structured plans
• **Task Management** - Organize and prioritize your work
• **Schedule Optimization** - Find the best times for different activities
• **Productivity Insights** - Get personalized tips and recommendations

Try describing a project you'd like to work on, and I'll help you create a comprehensive plan with timelines, tasks, and milestones!`

// fallbackText picks the degraded-mode reply. The model-unavailable variant
// tells the user the models themselves are the problem.
func fallbackText(modelUnavailable bool) string {
	if modelUnavailable {
		return modelUnavailableFallback
	}
	return genericFallback
}
