package llm_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jia-labs/jia/llm"
)

func TestExtractJSON_Fenced(t *testing.T) {
	content := "Here is your plan:\n```json\n{\"project_name\": \"AxuMint\"}\n```\nLet me know!"

	got := llm.ExtractJSON(content)
	assert.JSONEq(t, `{"project_name": "AxuMint"}`, got)
}

func TestExtractJSON_Bare(t *testing.T) {
	content := `Sure! {"a": 1, "b": {"c": 2}}`

	got := llm.ExtractJSON(content)
	assert.JSONEq(t, `{"a": 1, "b": {"c": 2}}`, got)
}

func TestExtractJSON_TrailingCommasAndComments(t *testing.T) {
	content := `{
		"modules": ["Core", "UI",], // main modules
		"weeks": 12,
	}`

	got := llm.ExtractJSON(content)

	var parsed struct {
		Modules []string `json:"modules"`
		Weeks   int      `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Equal(t, []string{"Core", "UI"}, parsed.Modules)
	assert.Equal(t, 12, parsed.Weeks)
}

func TestExtractJSON_CommentInsideString(t *testing.T) {
	content := `{"url": "http://example.com/path"} // endpoint`

	got := llm.ExtractJSON(content)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Equal(t, "http://example.com/path", parsed["url"])
}

func TestExtractJSON_NoObject(t *testing.T) {
	assert.Empty(t, llm.ExtractJSON("no json here"))
}

func TestExtractJSONArray(t *testing.T) {
	content := "```json\n[1, 2, 3,]\n```"

	got := llm.ExtractJSONArray(content)

	var parsed []int
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Equal(t, []int{1, 2, 3}, parsed)
}
