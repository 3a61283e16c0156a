package coach

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no parsable object in response")

// decodeObject parses a structured object out of a free-text model response.
// Stage one takes the outermost {...} substring; stage two falls back to the
// whole (fence-stripped) response. Callers substitute their own defaults when
// both stages fail.
func decodeObject(raw string, target any) error {
	cleaned := stripFences(raw)

	if sub, ok := outerJSONObject(cleaned); ok {
		if err := json.Unmarshal([]byte(sub), target); err == nil {
			return nil
		}
	}

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return errNoJSONObject
	}
	return nil
}

// outerJSONObject returns the span from the first '{' to the last '}'.
func outerJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// stripFences removes a surrounding markdown code fence from a model response.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
