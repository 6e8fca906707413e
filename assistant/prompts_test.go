package assistant

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jia-labs/jia/store"
)

var testPromptNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestChatSystemPromptEmbedsHistoryWindow(t *testing.T) {
	var history []store.Message
	for i := 0; i < 8; i++ {
		history = append(history,
			store.Message{Role: store.RoleUser, Content: fmt.Sprintf("question %d", i)},
			store.Message{Role: store.RoleAssistant, Content: fmt.Sprintf("answer %d", i)})
	}

	prompt := chatSystemPrompt(testPromptNow, "ctx", history, 5)

	assert.Contains(t, prompt, "Continuing conversation")
	assert.Contains(t, prompt, "- User context: ctx")

	// Only the trailing five entries appear.
	assert.Contains(t, prompt, "assistant: answer 7")
	assert.Contains(t, prompt, "user: question 6")
	assert.NotContains(t, prompt, "question 5")
	assert.NotContains(t, prompt, "question 0")
}

func TestConversationContextEmptyHistory(t *testing.T) {
	assert.Empty(t, conversationContext(nil, 5))
	assert.Empty(t, conversationContext([]store.Message{}, 5))
}
