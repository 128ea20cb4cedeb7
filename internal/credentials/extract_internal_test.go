package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractAPIKeyRuleOrder pins the fixed extraction order: top-level
// apiKey beats anthropic.apiKey, and mcpOAuth never wins.
func TestExtractAPIKeyRuleOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     map[string]any
		want    string
		wantOK  bool
	}{
		{
			name:   "top_level_wins_over_nested",
			doc:    map[string]any{"apiKey": "sk-ant-top", "anthropic": map[string]any{"apiKey": "sk-ant-nested"}},
			want:   "sk-ant-top",
			wantOK: true,
		},
		{
			name:   "nested_used_when_top_level_absent",
			doc:    map[string]any{"anthropic": map[string]any{"apiKey": "sk-ant-nested"}},
			want:   "sk-ant-nested",
			wantOK: true,
		},
		{
			name:   "empty_top_level_falls_through",
			doc:    map[string]any{"apiKey": "", "anthropic": map[string]any{"apiKey": "sk-ant-nested"}},
			want:   "sk-ant-nested",
			wantOK: true,
		},
		{
			name:   "non_string_top_level_falls_through",
			doc:    map[string]any{"apiKey": 42, "anthropic": map[string]any{"apiKey": "sk-ant-nested"}},
			want:   "sk-ant-nested",
			wantOK: true,
		},
		{
			name:   "mcp_oauth_is_never_a_credential",
			doc:    map[string]any{"mcpOAuth": map[string]any{"svc": map[string]any{"accessToken": "tok"}}},
			want:   "",
			wantOK: false,
		},
		{
			name:   "anthropic_not_object",
			doc:    map[string]any{"anthropic": "sk-ant-string"},
			want:   "",
			wantOK: false,
		},
		{
			name:   "empty_document",
			doc:    map[string]any{},
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := extractAPIKey(tt.doc)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		wantOK bool
	}{
		{name: "object", raw: `{"apiKey": "x"}`, wantOK: true},
		{name: "empty_object", raw: `{}`, wantOK: true},
		{name: "array", raw: `[1, 2]`, wantOK: false},
		{name: "bare_string", raw: `"hello"`, wantOK: false},
		{name: "garbage", raw: `{nope`, wantOK: false},
		{name: "empty", raw: ``, wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, ok := parseDocument(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				require.NotNil(t, doc)
			}
		})
	}
}

func TestOAuthTokens(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"mcpOAuth": map[string]any{"svc1": "a", "svc2": "b"}}
	tokens := oauthTokens(doc)
	require.Len(t, tokens, 2)

	assert.Nil(t, oauthTokens(map[string]any{}))
	assert.Nil(t, oauthTokens(map[string]any{"mcpOAuth": "not-an-object"}))
}
