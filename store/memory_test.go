package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jia-labs/jia/plan"
	"github.com/jia-labs/jia/store"
)

func msg(role store.Role, content string) store.Message {
	return store.Message{Role: role, Content: content, Timestamp: time.Now().UTC()}
}

func TestMemoryConversationStore_AppendAndHistory(t *testing.T) {
	s := store.NewMemoryConversationStore()
	ctx := context.Background()

	history, err := s.AppendExchange(ctx, "conv_1", msg(store.RoleUser, "hi"), msg(store.RoleAssistant, "hello"))
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, store.RoleUser, history[0].Role)
	assert.Equal(t, store.RoleAssistant, history[1].Role)

	got, err := s.History(ctx, "conv_1")
	require.NoError(t, err)
	assert.Equal(t, history, got)
}

func TestMemoryConversationStore_UnknownIDIsEmpty(t *testing.T) {
	s := store.NewMemoryConversationStore()

	history, err := s.History(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMemoryConversationStore_FIFOEviction(t *testing.T) {
	s := store.NewMemoryConversationStore()
	ctx := context.Background()

	// 15 exchanges = 30 messages, well past the 20-message cap.
	for i := 0; i < 15; i++ {
		_, err := s.AppendExchange(ctx, "conv_1",
			msg(store.RoleUser, fmt.Sprintf("u%d", i)),
			msg(store.RoleAssistant, fmt.Sprintf("a%d", i)))
		require.NoError(t, err)
	}

	history, err := s.History(ctx, "conv_1")
	require.NoError(t, err)
	require.Len(t, history, store.DefaultHistoryLimit)

	// The oldest messages were evicted first: the window starts at u5.
	assert.Equal(t, "u5", history[0].Content)
	assert.Equal(t, "a14", history[len(history)-1].Content)
}

func TestMemoryConversationStore_CustomLimit(t *testing.T) {
	s := store.NewMemoryConversationStore(store.WithHistoryLimit(4))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.AppendExchange(ctx, "c",
			msg(store.RoleUser, fmt.Sprintf("u%d", i)),
			msg(store.RoleAssistant, fmt.Sprintf("a%d", i)))
		require.NoError(t, err)
	}

	history, err := s.History(ctx, "c")
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "u3", history[0].Content)
}

func TestMemoryConversationStore_ConcurrentSameID(t *testing.T) {
	s := store.NewMemoryConversationStore(store.WithHistoryLimit(1000))
	ctx := context.Background()

	const goroutines = 16
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_, err := s.AppendExchange(ctx, "shared",
					msg(store.RoleUser, fmt.Sprintf("u-%d-%d", g, i)),
					msg(store.RoleAssistant, fmt.Sprintf("a-%d-%d", g, i)))
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	history, err := s.History(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, history, goroutines*10*2)

	// Exchanges must never interleave: every user message is immediately
	// followed by its paired assistant message.
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, store.RoleUser, history[i].Role)
		assert.Equal(t, store.RoleAssistant, history[i+1].Role)
		assert.Equal(t, history[i].Content[1:], history[i+1].Content[1:],
			"assistant message must be the pair of the preceding user message")
	}
}

func TestMemoryConversationStore_IndependentIDs(t *testing.T) {
	s := store.NewMemoryConversationStore()
	ctx := context.Background()

	_, err := s.AppendExchange(ctx, "a", msg(store.RoleUser, "ua"), msg(store.RoleAssistant, "aa"))
	require.NoError(t, err)
	_, err = s.AppendExchange(ctx, "b", msg(store.RoleUser, "ub"), msg(store.RoleAssistant, "ab"))
	require.NoError(t, err)

	ha, err := s.History(ctx, "a")
	require.NoError(t, err)
	hb, err := s.History(ctx, "b")
	require.NoError(t, err)

	require.Len(t, ha, 2)
	require.Len(t, hb, 2)
	assert.Equal(t, "ua", ha[0].Content)
	assert.Equal(t, "ub", hb[0].Content)
}

func TestMemoryPlanStore(t *testing.T) {
	s := store.NewMemoryPlanStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "plan_missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	p := plan.Fallback("AxuMint: trading platform", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	id := store.NewPlanID()
	require.NoError(t, s.Put(ctx, id, p))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestNewPlanID(t *testing.T) {
	a := store.NewPlanID()
	b := store.NewPlanID()

	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "plan_")
}
