package providers

import (
	"net/http"
	"os"

	"github.com/jia-labs/jia/llm"
)

// GroqProvider implements the Groq API, which speaks the OpenAI wire format
// on its own endpoint with its own API key.
type GroqProvider struct {
	OllamaProvider // Embed for shared request/response format
}

func init() {
	llm.RegisterProvider(&GroqProvider{})
}

// Name returns the provider identifier.
func (g *GroqProvider) Name() string {
	return "groq"
}

// BuildURL constructs the Groq chat completions endpoint.
func (g *GroqProvider) BuildURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	return chatCompletionsURL(baseURL)
}

// SetHeaders adds Groq authentication headers.
func (g *GroqProvider) SetHeaders(req *http.Request) {
	if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}
