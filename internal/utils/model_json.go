package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONRe    = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_]\w*)(\s*:)`)
	controlCharsRe  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ErrEmptyModelOutput is returned for blank model replies
var ErrEmptyModelOutput = errors.New("empty model output")

// ParseModelJSON decodes JSON from a vision or chat model reply. Replies may
// be wrapped in a markdown fence, surrounded by prose, or carry trailing
// commas, bare keys and single quotes; each form is tried in turn.
func ParseModelJSON(input string, target any) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return ErrEmptyModelOutput
	}

	candidates := []string{input}
	if fenced := fencedJSON(input); fenced != "" {
		candidates = append(candidates, fenced)
	}
	if embedded := embeddedJSON(input); embedded != "" {
		candidates = append(candidates, embedded, repairJSON(embedded))
	}
	candidates = append(candidates, repairJSON(input))

	for _, c := range candidates {
		if c != "" && json.Unmarshal([]byte(c), target) == nil {
			return nil
		}
	}
	return fmt.Errorf("no JSON found in model output: %s", truncate(input, 100))
}

// fencedJSON returns the body of the first markdown code fence that looks like JSON
func fencedJSON(input string) string {
	m := fencedJSONRe.FindStringSubmatch(input)
	if len(m) < 2 {
		return ""
	}
	body := strings.TrimSpace(m[1])
	if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
		return body
	}
	return ""
}

// embeddedJSON returns the first balanced object, or failing that array, in input
func embeddedJSON(input string) string {
	for _, pair := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		if start := strings.IndexByte(input, pair[0]); start >= 0 {
			if s := balanced(input[start:], pair[0], pair[1]); s != "" {
				return s
			}
		}
	}
	return ""
}

// balanced returns the prefix of input up to the bracket closing input[0].
// Brackets inside JSON strings are ignored.
func balanced(input string, open, close byte) string {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return input[:i+1]
			}
		}
	}
	return ""
}

// repairJSON fixes the mistakes models make most often
func repairJSON(input string) string {
	s := trailingCommaRe.ReplaceAllString(input, "$1")
	s = bareKeyRe.ReplaceAllString(s, `$1"$2"$3`)
	s = singleToDoubleQuotes(s)
	return controlCharsRe.ReplaceAllString(s, "")
}

// singleToDoubleQuotes turns single-quoted JSON strings into double-quoted ones,
// leaving apostrophes inside double-quoted strings alone
func singleToDoubleQuotes(input string) string {
	var sb strings.Builder
	sb.Grow(len(input))
	inDouble, inSingle, escaped := false, false, false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"' && !inSingle:
			inDouble = !inDouble
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			ch = '"'
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
