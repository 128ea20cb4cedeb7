package credentials

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema is an advisory description of the structured credentials
// document. Extraction never enforces it; doctor uses it to explain why
// a payload that parsed fine still produced no credential.
const payloadSchema = `{
	"type": "object",
	"properties": {
		"apiKey": {"type": "string", "minLength": 1},
		"anthropic": {
			"type": "object",
			"properties": {
				"apiKey": {"type": "string", "minLength": 1}
			}
		},
		"mcpOAuth": {"type": "object"}
	}
}`

// InspectPayload checks a structured payload against the advisory schema
// and returns human-readable warnings. A payload that is not JSON at all
// yields a single parse warning rather than an error: inspection, like
// extraction, is best-effort.
func InspectPayload(raw string) []string {
	doc, parsed := parseDocument(raw)
	if !parsed {
		return []string{"payload is not a JSON object"}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(payloadSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return []string{fmt.Sprintf("schema check failed: %v", err)}
	}

	var warnings []string
	for _, issue := range result.Errors() {
		warnings = append(warnings, issue.String())
	}

	if _, found := extractAPIKey(doc); !found {
		warnings = append(warnings, "no credential field present (checked apiKey, anthropic.apiKey)")
	}

	return warnings
}
