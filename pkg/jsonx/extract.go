// Package jsonx extracts JSON objects embedded in free-form LLM output.
package jsonx

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrNoObject is returned when no complete JSON object is found in the text.
var ErrNoObject = eris.New("jsonx: no JSON object found")

// ExtractObject returns the first balanced-brace JSON object embedded in
// text. Markdown code fences are stripped first. String literals and
// escapes are respected, so braces inside string values do not confuse
// the scan.
func ExtractObject(text string) (string, error) {
	text = stripFences(text)

	start := strings.Index(text, "{")
	if start < 0 {
		return "", ErrNoObject
	}

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
				return text[start : i+1], nil
			}
		}
	}

	return "", ErrNoObject
}

// DecodeObject extracts the first JSON object from text and unmarshals it
// into v.
func DecodeObject(text string, v any) error {
	obj, err := ExtractObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return eris.Wrap(err, "jsonx: unmarshal object")
	}
	return nil
}

// stripFences removes a leading markdown code fence and its closing fence.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	} else {
		return text
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
