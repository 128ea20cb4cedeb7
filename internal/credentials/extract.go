package credentials

import "encoding/json"

// Field names inside the structured credentials payload. No schema is
// enforced; lookups are tolerant and missing fields are simply skipped.
const (
	fieldAPIKey    = "apiKey"
	fieldAnthropic = "anthropic"
	fieldMCPOAuth  = "mcpOAuth"
)

// parseDocument parses a store payload as a JSON object. A payload that
// is valid JSON but not an object is treated the same as a parse error.
func parseDocument(raw string) (map[string]any, bool) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false
	}
	return doc, true
}

// extractAPIKey applies the credential extraction rules to a parsed
// document. The rule order is significant and fixed:
//
//  1. top-level "apiKey"
//  2. "anthropic" sub-object's "apiKey"
//  3. "mcpOAuth" is never a usable credential; its presence is the
//     caller's to record, not this function's to return
//
// The first rule yielding a non-empty string wins.
func extractAPIKey(doc map[string]any) (string, bool) {
	if key, ok := doc[fieldAPIKey].(string); ok && key != "" {
		return key, true
	}

	if sub, ok := doc[fieldAnthropic].(map[string]any); ok {
		if key, ok := sub[fieldAPIKey].(string); ok && key != "" {
			return key, true
		}
	}

	return "", false
}

// ExtractKey parses a structured payload and applies the extraction
// rules in one step. Diagnostics use it to check whether a payload
// would yield a credential without walking the store list.
func ExtractKey(raw string) (string, bool) {
	doc, ok := parseDocument(raw)
	if !ok {
		return "", false
	}
	return extractAPIKey(doc)
}

// oauthTokens returns the MCP OAuth token collection from a parsed
// document, or nil when absent or not an object.
func oauthTokens(doc map[string]any) map[string]any {
	tokens, ok := doc[fieldMCPOAuth].(map[string]any)
	if !ok {
		return nil
	}
	return tokens
}
