package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"github.com/reteki/outreach/internal/llm"
)

// maxLoggedPayload bounds how much of a bad payload goes to the log.
const maxLoggedPayload = 2000

// payload is a decoded JSON object whose fields are checked one by one.
type payload map[string]json.RawMessage

// decodePayload parses raw as a single JSON object.
func decodePayload(raw string) (payload, error) {
	text := llm.StripFences(raw)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var p payload
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("not a JSON object: %v", err)
	}
	if p == nil {
		return nil, fmt.Errorf("not a JSON object: null")
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON object")
	}
	return p, nil
}

// present reports whether key exists with a non-null value.
func (p payload) present(key string) bool {
	v, ok := p[key]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// requireBool returns p[key] as a bool, failing if it is absent or not a boolean.
func (p payload) requireBool(key string) (bool, error) {
	if !p.present(key) {
		return false, fmt.Errorf("missing %q", key)
	}
	var b bool
	if err := json.Unmarshal(p[key], &b); err != nil {
		return false, fmt.Errorf("%q is not a boolean", key)
	}
	return b, nil
}

// requireString returns p[key] as a string, failing if it is absent or not a string.
func (p payload) requireString(key string) (string, error) {
	if !p.present(key) {
		return "", fmt.Errorf("missing %q", key)
	}
	return p.optionalString(key)
}

// optionalString returns p[key] as a string, or "" when absent.
// A present value of another type is an error.
func (p payload) optionalString(key string) (string, error) {
	if !p.present(key) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(p[key], &s); err != nil {
		return "", fmt.Errorf("%q is not a string", key)
	}
	return s, nil
}

// optionalStrings returns p[key] as a string slice, or an empty slice when absent.
func (p payload) optionalStrings(key string) ([]string, error) {
	if !p.present(key) {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(p[key], &out); err != nil {
		return nil, fmt.Errorf("%q is not an array of strings", key)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// malformed logs the raw payload and builds the typed error.
func malformed(op, raw string, reason error) error {
	log.Printf("%s: malformed response (%v): %s", op, reason, truncateForLog(raw, maxLoggedPayload))
	return &MalformedResponseError{Op: op, Raw: raw, Reason: reason.Error()}
}

// truncateForLog cuts s to at most maxLen runes.
func truncateForLog(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "…"
}
