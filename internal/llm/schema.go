package llm

import (
	"encoding/json"
	"strings"
)

// Schema types, named after the JSON Schema primitives.
const (
	TypeObject  = "object"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeInteger = "integer"
)

// Schema is a provider-neutral description of a structured response. Each
// provider translates it into its own form.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	// Order is the property order presented to providers that honour it.
	Order []string `json:"-"`
}

// JSON returns s as a JSON Schema document.
func (s *Schema) JSON() json.RawMessage {
	data, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return data
}

// Instructions renders s as plain text for providers without native
// structured output.
func (s *Schema) Instructions() string {
	var b strings.Builder
	b.WriteString("Responde ÚNICAMENTE con un objeto JSON válido, sin texto adicional ni bloques de código, que cumpla este JSON Schema:\n")
	b.Write(s.JSON())
	return b.String()
}

func (s *Schema) propertyNames() []string {
	if len(s.Order) > 0 {
		return s.Order
	}
	names := make([]string, 0, len(s.Properties))
	for _, r := range s.Required {
		if _, ok := s.Properties[r]; ok {
			names = append(names, r)
		}
	}
	for name := range s.Properties {
		if !contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// StripFences removes a surrounding markdown code fence, which some models
// emit even when asked for bare JSON.
func StripFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
