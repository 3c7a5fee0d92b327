package outreach

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"it-director", RoleITDirector, false},
		{" Finance-Director ", RoleFinanceDirector, false},
		{"director_ti", RoleITDirector, false},
		{"gerente_compras", RoleProcurementManager, false},
		{"otro", RoleOther, false},
		{"janitor", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRole) {
				t.Errorf("ParseRole(%q) err = %v, want ErrUnknownRole", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseChannel(t *testing.T) {
	if c, err := ParseChannel("linkedin"); err != nil || c != ChannelNetworkMessage {
		t.Errorf("ParseChannel(linkedin) = %q, %v", c, err)
	}
	if c, err := ParseChannel("EMAIL"); err != nil || c != ChannelEmail {
		t.Errorf("ParseChannel(EMAIL) = %q, %v", c, err)
	}
	if _, err := ParseChannel("fax"); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("ParseChannel(fax) err = %v, want ErrUnknownChannel", err)
	}
}

func TestChannelBudget(t *testing.T) {
	if got := ChannelNetworkMessage.Budget(); got != 300 {
		t.Errorf("network budget = %d, want 300", got)
	}
	if got := ChannelEmail.Budget(); got != 1500 {
		t.Errorf("email budget = %d, want 1500", got)
	}
}

func TestTemplatePatchApply(t *testing.T) {
	base := Template{
		Role:                   RoleOther,
		DisplayName:            "Otro",
		Description:            "generic",
		NetworkMessageTemplate: "net {{name}}",
		EmailTemplate:          "mail {{name}}",
	}
	email := "new mail {{name}}"
	got := TemplatePatch{EmailTemplate: &email}.Apply(base)

	if got.EmailTemplate != email {
		t.Errorf("EmailTemplate = %q, want %q", got.EmailTemplate, email)
	}
	if got.NetworkMessageTemplate != base.NetworkMessageTemplate {
		t.Errorf("NetworkMessageTemplate changed: %q", got.NetworkMessageTemplate)
	}
	if got.DisplayName != "Otro" {
		t.Errorf("DisplayName changed: %q", got.DisplayName)
	}
}

func TestResultDrafted(t *testing.T) {
	tests := []struct {
		r    Result
		want bool
	}{
		{Result{ShouldGenerate: true, Message: "hola"}, true},
		{Result{ShouldGenerate: true, Message: "  "}, false},
		{Result{ShouldGenerate: false, Message: "hola"}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Drafted(); got != tt.want {
			t.Errorf("%+v.Drafted() = %v, want %v", tt.r, got, tt.want)
		}
	}
}
