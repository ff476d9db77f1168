package consultant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObjectPlain(t *testing.T) {
	var out struct {
		NeedsAPICall bool `json:"needs_api_call"`
	}
	err := ExtractJSONObject(`{"needs_api_call": true}`, &out)
	require.NoError(t, err)
	assert.True(t, out.NeedsAPICall)
}

func TestExtractJSONObjectSurroundedByProse(t *testing.T) {
	var out struct {
		Action string `json:"action"`
	}
	text := "好的，以下是解析结果：\n```json\n{\"action\": \"query_table\"}\n```\n希望对你有帮助。"
	err := ExtractJSONObject(text, &out)
	require.NoError(t, err)
	assert.Equal(t, "query_table", out.Action)
}

func TestExtractJSONObjectNoBraces(t *testing.T) {
	var out map[string]any
	err := ExtractJSONObject("这里没有任何结构化内容", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no json object found")
}

func TestExtractJSONObjectReversedBraces(t *testing.T) {
	var out map[string]any
	err := ExtractJSONObject("} 这不是JSON {", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no json object found")
}

func TestExtractJSONObjectMalformedSpan(t *testing.T) {
	var out map[string]any
	err := ExtractJSONObject(`解析结果：{"a": }`, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse json")
}
