package outreach

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownRole    = errors.New("unknown role")
	ErrUnknownChannel = errors.New("unknown channel")
)

// NotAvailable is substituted for any value the prompt cannot be given.
const NotAvailable = "N/A"

// Profile holds what is known about a prospect. Empty strings mean "unknown".
type Profile struct {
	Name                  string   `json:"name"`
	JobTitle              string   `json:"jobTitle"`
	CompanyName           string   `json:"companyName"`
	Industry              string   `json:"industry"`
	ActivityOrAchievement string   `json:"activityOrAchievement"`
	MutualConnection      string   `json:"mutualConnection"`
	AdditionalContext     string   `json:"additionalContext,omitempty"`
	URLs                  []string `json:"urls,omitempty"`
	// WordCount <= 0 means no length preference.
	WordCount int `json:"wordCount,omitempty"`
}

// Role is the job function of the outreach target.
type Role string

const (
	RoleITDirector         Role = "it-director"
	RoleFinanceDirector    Role = "finance-director"
	RoleProcurementManager Role = "procurement-manager"
	RoleGeneralManager     Role = "general-manager"
	RoleOther              Role = "other"
)

// Roles lists every role in display order.
var Roles = []Role{
	RoleITDirector,
	RoleFinanceDirector,
	RoleProcurementManager,
	RoleGeneralManager,
	RoleOther,
}

// legacy identifiers used by older saved template tables
var roleAliases = map[string]Role{
	"director_ti":         RoleITDirector,
	"director_financiero": RoleFinanceDirector,
	"gerente_compras":     RoleProcurementManager,
	"ceo_gerente_general": RoleGeneralManager,
	"otro":                RoleOther,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole accepts a role identifier or one of its legacy aliases.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if r := Role(s); r.Valid() {
		return r, nil
	}
	if r, ok := roleAliases[s]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Channel is the medium the message is written for.
type Channel string

const (
	ChannelNetworkMessage Channel = "network-message"
	ChannelEmail          Channel = "email"
)

// ParseChannel accepts a channel identifier. "linkedin" is an alias for network-message.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ChannelNetworkMessage), "linkedin":
		return ChannelNetworkMessage, nil
	case string(ChannelEmail):
		return ChannelEmail, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// Budget returns the soft character budget for the channel.
func (c Channel) Budget() int {
	if c == ChannelEmail {
		return 1500
	}
	return 300
}

// Template is the prompt pair used for one role.
type Template struct {
	Role                   Role   `json:"role"`
	DisplayName            string `json:"displayName"`
	Description            string `json:"description"`
	NetworkMessageTemplate string `json:"networkMessageTemplate"`
	EmailTemplate          string `json:"emailTemplate"`
}

// For returns the template text for the given channel.
func (t Template) For(c Channel) string {
	if c == ChannelEmail {
		return t.EmailTemplate
	}
	return t.NetworkMessageTemplate
}

// TemplatePatch carries the fields of a template override. Nil fields are left untouched.
type TemplatePatch struct {
	DisplayName            *string `json:"displayName,omitempty"`
	Description            *string `json:"description,omitempty"`
	NetworkMessageTemplate *string `json:"networkMessageTemplate,omitempty"`
	EmailTemplate          *string `json:"emailTemplate,omitempty"`
}

// Apply returns t with the non-nil patch fields merged in.
func (p TemplatePatch) Apply(t Template) Template {
	if p.DisplayName != nil {
		t.DisplayName = *p.DisplayName
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.NetworkMessageTemplate != nil {
		t.NetworkMessageTemplate = *p.NetworkMessageTemplate
	}
	if p.EmailTemplate != nil {
		t.EmailTemplate = *p.EmailTemplate
	}
	return t
}

// Result is the provider's answer to a generation request.
// When ShouldGenerate is false the Message must be ignored.
type Result struct {
	ShouldGenerate bool   `json:"shouldGenerate"`
	Message        string `json:"message"`
}

// Drafted reports whether the result carries a usable draft.
func (r Result) Drafted() bool {
	return r.ShouldGenerate && strings.TrimSpace(r.Message) != ""
}

// SentMessage is one entry of the sent-message log.
type SentMessage struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}
