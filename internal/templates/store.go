package templates

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/reteki/outreach/internal/outreach"
)

// OverridesKey is the durable-store key holding the role -> template table.
const OverridesKey = "rolePrompts"

// KV is the durable key-value text store the template table persists to.
type KV interface {
	GetValue(key string) (value string, ok bool, err error)
	PutValue(key, value string) error
}

// Store owns the role -> template table. Built-in defaults are seeded at
// construction; Save and Reset persist the whole table.
type Store struct {
	mu       sync.RWMutex
	kv       KV
	defaults map[outreach.Role]outreach.Template
	current  map[outreach.Role]outreach.Template
}

// NewStore creates a Store seeded with the built-in defaults. kv may be nil,
// in which case changes live only in memory.
func NewStore(kv KV) *Store {
	return &Store{
		kv:       kv,
		defaults: Defaults(),
		current:  Defaults(),
	}
}

// Get returns the template for role. Unknown roles resolve to RoleOther.
func (s *Store) Get(role outreach.Role) outreach.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.current[role]; ok {
		return t
	}
	return s.current[outreach.RoleOther]
}

// All returns every template in role display order.
func (s *Store) All() []outreach.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]outreach.Template, 0, len(outreach.Roles))
	for _, r := range outreach.Roles {
		out = append(out, s.current[r])
	}
	return out
}

// Default returns the built-in template for role, ignoring overrides.
func (s *Store) Default(role outreach.Role) outreach.Template {
	if t, ok := s.defaults[role]; ok {
		return t
	}
	return s.defaults[outreach.RoleOther]
}

// Save merges patch into the stored template for role and persists the table.
// The merged template must pass Validate for both channels.
func (s *Store) Save(role outreach.Role, patch outreach.TemplatePatch) (outreach.Template, error) {
	if !role.Valid() {
		return outreach.Template{}, fmt.Errorf("%w: %q", outreach.ErrUnknownRole, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := patch.Apply(s.current[role])
	merged.Role = role
	if err := validateTemplate(merged); err != nil {
		return outreach.Template{}, err
	}

	next := s.copyCurrent()
	next[role] = merged
	if err := s.persist(next); err != nil {
		return outreach.Template{}, err
	}
	s.current = next
	return merged, nil
}

// Reset discards the override for role.
func (s *Store) Reset(role outreach.Role) (outreach.Template, error) {
	if !role.Valid() {
		return outreach.Template{}, fmt.Errorf("%w: %q", outreach.ErrUnknownRole, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyCurrent()
	next[role] = s.defaults[role]
	if err := s.persist(next); err != nil {
		return outreach.Template{}, err
	}
	s.current = next
	return next[role], nil
}

// ResetAll discards every override.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Defaults()
	if err := s.persist(next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// persistedTemplate accepts both the current field names and the legacy
// linkedinPrompt/emailPrompt/name layout.
type persistedTemplate struct {
	Role                   string `json:"role"`
	DisplayName            string `json:"displayName"`
	Description            string `json:"description"`
	NetworkMessageTemplate string `json:"networkMessageTemplate"`
	EmailTemplate          string `json:"emailTemplate"`

	LegacyName           string `json:"name,omitempty"`
	LegacyLinkedInPrompt string `json:"linkedinPrompt,omitempty"`
	LegacyEmailPrompt    string `json:"emailPrompt,omitempty"`
}

// LoadPersisted merges the durable override table into the defaults.
// A missing, unreadable or corrupt table leaves the defaults in place.
// Individual entries that fail validation are skipped.
func (s *Store) LoadPersisted() {
	if s.kv == nil {
		return
	}
	raw, ok, err := s.kv.GetValue(OverridesKey)
	if err != nil {
		log.Printf("templates: read overrides: %v", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var table map[string]persistedTemplate
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		log.Printf("templates: discarding corrupt overrides: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyCurrent()
	for key, pt := range table {
		role, err := outreach.ParseRole(key)
		if err != nil {
			log.Printf("templates: skipping override for %q: %v", key, err)
			continue
		}
		merged := pt.patch().Apply(next[role])
		merged.Role = role
		if err := validateTemplate(merged); err != nil {
			log.Printf("templates: skipping override for %s: %v", role, err)
			continue
		}
		next[role] = merged
	}
	s.current = next
}

func (pt persistedTemplate) patch() outreach.TemplatePatch {
	var p outreach.TemplatePatch
	set := func(dst **string, vals ...string) {
		for _, v := range vals {
			if v != "" {
				*dst = &v
				return
			}
		}
	}
	set(&p.DisplayName, pt.DisplayName, pt.LegacyName)
	set(&p.Description, pt.Description)
	set(&p.NetworkMessageTemplate, pt.NetworkMessageTemplate, pt.LegacyLinkedInPrompt)
	set(&p.EmailTemplate, pt.EmailTemplate, pt.LegacyEmailPrompt)
	return p
}

func (s *Store) persist(table map[outreach.Role]outreach.Template) error {
	if s.kv == nil {
		return nil
	}
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("marshal templates: %w", err)
	}
	if err := s.kv.PutValue(OverridesKey, string(data)); err != nil {
		return fmt.Errorf("persist templates: %w", err)
	}
	return nil
}

func (s *Store) copyCurrent() map[outreach.Role]outreach.Template {
	out := make(map[outreach.Role]outreach.Template, len(s.current))
	for k, v := range s.current {
		out[k] = v
	}
	return out
}

func validateTemplate(t outreach.Template) error {
	if err := Validate(t.NetworkMessageTemplate); err != nil {
		return fmt.Errorf("network message template: %w", err)
	}
	if err := Validate(t.EmailTemplate); err != nil {
		return fmt.Errorf("email template: %w", err)
	}
	return nil
}
