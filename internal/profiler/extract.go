package profiler

import (
	"encoding/json"
	"strings"

	"github.com/BerylCAtieno/brand-intel-agent/internal/apperrors"
)

// ExtractJSONObject returns the first balanced JSON object found in text.
// Braces inside string literals are ignored. Candidates that balance but are
// not valid JSON are skipped and the search resumes at the next '{'.
func ExtractJSONObject(text string) (string, error) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end := matchingBrace(text, start); end > 0 {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}

		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	return "", apperrors.Parse(nil, "no JSON object found in model response")
}

// matchingBrace returns the index of the '}' closing the '{' at start, or -1.
func matchingBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
