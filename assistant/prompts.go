package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/jia-labs/jia/store"
)

const chatSystemPromptTemplate = `You are Jia, an advanced AI productivity assistant. You are helpful, intelligent, and personable.

CORE CAPABILITIES:
- Task management and prioritization
- Schedule optimization and time blocking
- Productivity insights and recommendations
- Goal tracking and progress analysis
- Meeting and deadline management
- Work-life balance guidance

PERSONALITY TRAITS:
- Friendly and approachable
- Proactive in offering help
- Detail-oriented but not overwhelming
- Encouraging and motivational
- Adaptable to user preferences

CURRENT CONTEXT:
- Current time: %s
- User context: %s
- Conversation: %s%s

RESPONSE GUIDELINES:
1. Always acknowledge the user's specific question or request
2. Provide actionable, specific advice
3. Ask clarifying questions when needed
4. Reference previous conversations when relevant
5. Offer concrete next steps
6. Be concise but thorough

Remember: You have access to conversation history. Use this information to provide personalized, contextual responses.`

// chatSystemPrompt builds the system prompt for general chat, embedding the
// current time, the caller-supplied context, and the trailing window of
// conversation history.
func chatSystemPrompt(now time.Time, userContext string, history []store.Message, window int) string {
	if userContext == "" {
		userContext = "General productivity assistance"
	}

	state := "New conversation"
	if len(history) > 0 {
		state = "Continuing conversation"
	}

	return fmt.Sprintf(chatSystemPromptTemplate,
		now.UTC().Format(time.RFC3339),
		userContext,
		state,
		conversationContext(history, window))
}

// conversationContext renders the trailing window of history as plain
// "role: content" lines, or nothing for a fresh conversation.
func conversationContext(history []store.Message, window int) string {
	if len(history) == 0 {
		return ""
	}
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return "\n\nCONVERSATION HISTORY:\n" + strings.Join(lines, "\n")
}
