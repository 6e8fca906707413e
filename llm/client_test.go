package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jia-labs/jia/llm"
	_ "github.com/jia-labs/jia/llm/providers" // Register providers
	"github.com/jia-labs/jia/model"
)

// chatCompletion writes an OpenAI-format success response.
func chatCompletion(w http.ResponseWriter, content string) {
	resp := map[string]any{
		"id":      "chatcmpl-123",
		"object":  "chat.completion",
		"created": 1677652288,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]string{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{
			"prompt_tokens":     10,
			"completion_tokens": 8,
			"total_tokens":      18,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// testRegistry builds a chat capability whose chain is the given model
// names, each served by an ollama-format endpoint URL.
func testRegistry(chain map[string]string, order ...string) *model.Registry {
	endpoints := make(map[string]*model.EndpointConfig, len(chain))
	for name, url := range chain {
		endpoints[name] = &model.EndpointConfig{
			Provider: "ollama",
			URL:      url,
			Model:    name,
		}
	}
	return model.NewRegistry(
		map[model.Capability]*model.CapabilityConfig{
			model.CapabilityChat: {Preferred: order},
		},
		endpoints,
	)
}

func TestClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		chatCompletion(w, "Hello! How can I help you?")
	}))
	defer server.Close()

	registry := testRegistry(map[string]string{"test-model": server.URL}, "test-model")
	client := llm.NewClient(registry)

	resp, err := client.Complete(context.Background(), llm.Request{
		Capability: "chat",
		Messages: []llm.Message{
			{Role: "user", Content: "Hello"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you?", resp.Content)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, 18, resp.Usage.TotalTokens)
}

func TestClient_Complete_FallbackOrder(t *testing.T) {
	var firstCalls, secondCalls atomic.Int64

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstCalls.Add(1)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer failing.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondCalls.Add(1)
		chatCompletion(w, "from model B")
	}))
	defer working.Close()

	registry := testRegistry(map[string]string{
		"model-a": failing.URL,
		"model-b": working.URL,
	}, "model-a", "model-b")

	client := llm.NewClient(registry)

	resp, err := client.Complete(context.Background(), llm.Request{
		Capability: "chat",
		Messages:   []llm.Message{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "from model B", resp.Content)
	assert.Equal(t, int64(1), firstCalls.Load(), "failed model is attempted exactly once")
	assert.Equal(t, int64(1), secondCalls.Load())
}

func TestClient_Complete_StopsAtFirstSuccess(t *testing.T) {
	var firstCalls, secondCalls atomic.Int64

	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstCalls.Add(1)
		chatCompletion(w, "from model A")
	}))
	defer first.Close()

	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondCalls.Add(1)
		chatCompletion(w, "from model B")
	}))
	defer second.Close()

	registry := testRegistry(map[string]string{
		"model-a": first.URL,
		"model-b": second.URL,
	}, "model-a", "model-b")

	client := llm.NewClient(registry)

	resp, err := client.Complete(context.Background(), llm.Request{
		Capability: "chat",
		Messages:   []llm.Message{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "from model A", resp.Content)
	assert.Equal(t, int64(1), firstCalls.Load())
	assert.Equal(t, int64(0), secondCalls.Load(), "later models must not be tried after a success")
}

func TestClient_Complete_AllModelsFailed(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	registry := testRegistry(map[string]string{
		"model-a": failing.URL,
		"model-b": failing.URL,
	}, "model-a", "model-b")

	client := llm.NewClient(registry)

	resp, err := client.Complete(context.Background(), llm.Request{
		Capability: "chat",
		Messages:   []llm.Message{{Role: "user", Content: "hi"}},
	})

	require.Error(t, err)
	assert.Nil(t, resp, "no partial text on terminal failure")

	var all *llm.AllModelsFailedError
	require.True(t, errors.As(err, &all))
	assert.Equal(t, "chat", all.Capability)
	assert.Error(t, all.Last)
	assert.True(t, llm.IsAllModelsFailed(err))
	assert.True(t, llm.IsModelUnavailable(err))
}

func TestClient_Complete_DecommissionedModelFallsThrough(t *testing.T) {
	var retiredCalls, workingCalls atomic.Int64

	// Groq answers 400 for models it has retired. The chain must move on.
	retired := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		retiredCalls.Add(1)
		http.Error(w, `{"error":{"message":"The model has been decommissioned"}}`, http.StatusBadRequest)
	}))
	defer retired.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workingCalls.Add(1)
		chatCompletion(w, "from model B")
	}))
	defer working.Close()

	registry := testRegistry(map[string]string{
		"model-a": retired.URL,
		"model-b": working.URL,
	}, "model-a", "model-b")

	client := llm.NewClient(registry)

	resp, err := client.Complete(context.Background(), llm.Request{
		Capability: "chat",
		Messages:   []llm.Message{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "from model B", resp.Content)
	assert.Equal(t, int64(1), retiredCalls.Load())
	assert.Equal(t, int64(1), workingCalls.Load())
}

func TestClient_Complete_AuthErrorFallsThrough(t *testing.T) {
	var workingCalls atomic.Int64

	unauthorized := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusUnauthorized)
	}))
	defer unauthorized.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workingCalls.Add(1)
		chatCompletion(w, "from model B")
	}))
	defer working.Close()

	registry := testRegistry(map[string]string{
		"model-a": unauthorized.URL,
		"model-b": working.URL,
	}, "model-a", "model-b")

	client := llm.NewClient(registry)

	resp, err := client.Complete(context.Background(), llm.Request{
		Capability: "chat",
		Messages:   []llm.Message{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "from model B", resp.Content)
	assert.Equal(t, int64(1), workingCalls.Load())
}

func TestClient_Complete_JSONOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ResponseFormat *struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotNil(t, body.ResponseFormat)
		assert.Equal(t, "json_object", body.ResponseFormat.Type)
		chatCompletion(w, `{"ok": true}`)
	}))
	defer server.Close()

	registry := testRegistry(map[string]string{"test-model": server.URL}, "test-model")
	client := llm.NewClient(registry)

	resp, err := client.Complete(context.Background(), llm.Request{
		Capability: "chat",
		Messages:   []llm.Message{{Role: "user", Content: "emit json"}},
		JSONOnly:   true,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, resp.Content)
}

func TestClient_Complete_Validation(t *testing.T) {
	client := llm.NewClient(model.NewDefaultRegistry())

	_, err := client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	assert.ErrorContains(t, err, "capability is required")

	_, err = client.Complete(context.Background(), llm.Request{Capability: "chat"})
	assert.ErrorContains(t, err, "at least one message is required")
}
