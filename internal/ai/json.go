package ai

import "strings"

// CleanJSONReply strips markdown fences and any text surrounding the first
// balanced JSON object in an LLM reply. Models occasionally add prose around
// the JSON even in JSON mode.
func CleanJSONReply(reply string) string {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	if jsonStr, ok := extractFirstJSONObject(cleaned); ok {
		return jsonStr
	}
	return cleaned
}

// extractFirstJSONObject finds the first outermost balanced {...}
func extractFirstJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if !inString {
			if char == '{' {
				depth++
			} else if char == '}' {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}

	return "", false
}
