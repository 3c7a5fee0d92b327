package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantShould bool
		wantMsg    string
		wantErr    bool
	}{
		{name: "valid", raw: `{"shouldGenerate": true, "message": "hola"}`, wantShould: true, wantMsg: "hola"},
		{name: "declined", raw: `{"shouldGenerate": false, "message": ""}`},
		{name: "fenced", raw: "```json\n{\"shouldGenerate\": true, \"message\": \"hola\"}\n```", wantShould: true, wantMsg: "hola"},
		{name: "extra fields ignored", raw: `{"shouldGenerate": true, "message": "hola", "tone": "formal"}`, wantShould: true, wantMsg: "hola"},
		{name: "missing shouldGenerate", raw: `{"message": "hola"}`, wantErr: true},
		{name: "missing message", raw: `{"shouldGenerate": true}`, wantErr: true},
		{name: "string flag", raw: `{"shouldGenerate": "true", "message": "hola"}`, wantErr: true},
		{name: "numeric message", raw: `{"shouldGenerate": true, "message": 42}`, wantErr: true},
		{name: "null message", raw: `{"shouldGenerate": true, "message": null}`, wantErr: true},
		{name: "array", raw: `[{"shouldGenerate": true, "message": "hola"}]`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "prose", raw: `Claro, aquí está tu mensaje`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
		{name: "trailing", raw: `{"shouldGenerate": true, "message": "a"} {"x": 1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResult(tt.raw)
			if tt.wantErr {
				var me *MalformedResponseError
				if !errors.As(err, &me) {
					t.Fatalf("err = %v, want *MalformedResponseError", err)
				}
				if me.Raw != tt.raw {
					t.Errorf("Raw = %q, want original payload", me.Raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ShouldGenerate != tt.wantShould || got.Message != tt.wantMsg {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestParseProfile(t *testing.T) {
	raw := `{"name": "Ana Gómez", "jobTitle": "CFO", "companyName": "Acme",
		"industry": "Retail", "activityOrAchievement": "", "urls": ["https://acme.example.com"]}`

	p, err := parseProfile(raw)
	if err != nil {
		t.Fatalf("parseProfile: %v", err)
	}
	if p.Name != "Ana Gómez" || p.JobTitle != "CFO" || p.CompanyName != "Acme" {
		t.Errorf("profile = %+v", p)
	}
	if p.MutualConnection != "" {
		t.Errorf("mutualConnection = %q, want empty", p.MutualConnection)
	}
	if len(p.URLs) != 1 || p.URLs[0] != "https://acme.example.com" {
		t.Errorf("urls = %v", p.URLs)
	}
}

func TestParseProfileDefaults(t *testing.T) {
	p, err := parseProfile(`{"name": "", "jobTitle": ""}`)
	if err != nil {
		t.Fatalf("parseProfile: %v", err)
	}
	if p.URLs == nil || len(p.URLs) != 0 {
		t.Errorf("urls = %#v, want empty slice", p.URLs)
	}
	if p.Industry != "" || p.AdditionalContext != "" {
		t.Errorf("profile = %+v", p)
	}
}

func TestParseProfileRejects(t *testing.T) {
	tests := map[string]string{
		"missing name":     `{"jobTitle": "CFO"}`,
		"missing jobTitle": `{"name": "Ana"}`,
		"numeric name":     `{"name": 7, "jobTitle": "CFO"}`,
		"bad company":      `{"name": "Ana", "jobTitle": "CFO", "companyName": ["Acme"]}`,
		"bad urls":         `{"name": "Ana", "jobTitle": "CFO", "urls": "https://acme.example.com"}`,
		"not json":         `name: Ana`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseProfile(raw)
			var me *MalformedResponseError
			if !errors.As(err, &me) {
				t.Fatalf("err = %v, want *MalformedResponseError", err)
			}
			if me.Op != opExtract {
				t.Errorf("op = %q", me.Op)
			}
		})
	}
}

func TestTruncateForLog(t *testing.T) {
	if got := truncateForLog("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("é", 30)
	got := truncateForLog(long, 10)
	if !strings.HasPrefix(got, strings.Repeat("é", 10)) || len([]rune(got)) != 11 {
		t.Errorf("got %q", got)
	}
}
