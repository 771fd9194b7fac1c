// Package llm - sanitize.go extracts JSON from unstructured model
// responses. Backends wrap JSON in explanatory prose or markdown fences
// unpredictably, so every structured consumer goes through ExtractJSON.
package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON locates and validates a JSON object (or array) inside raw
// model output. It strips markdown code fences, then takes the substring
// between the first '{' and the last '}'; if no valid object is found it
// retries with '[' and ']'. Returns a ParseError when neither shape
// yields valid JSON.
func ExtractJSON(raw string) (json.RawMessage, error) {
	text := CleanJSONBlock(raw)

	if obj, ok := sliceBetween(text, '{', '}'); ok && json.Valid([]byte(obj)) {
		return json.RawMessage(obj), nil
	}
	if arr, ok := sliceBetween(text, '[', ']'); ok && json.Valid([]byte(arr)) {
		return json.RawMessage(arr), nil
	}

	return nil, NewParseError("no valid JSON found in response", raw)
}

// sliceBetween returns the substring from the first open delimiter to the
// last close delimiter, inclusive. Reports false when either delimiter is
// missing or the close comes before the open.
func sliceBetween(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
