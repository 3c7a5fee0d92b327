package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/reteki/outreach/internal/llm"
	"github.com/reteki/outreach/internal/outreach"
)

const generateBody = `{"profile":{"name":"Ana","jobTitle":"CFO","companyName":"Acme","wordCount":50},"role":"finance-director","channel":"network-message"}`

func TestGenerate(t *testing.T) {
	mock := &llm.MockClient{Response: &llm.Response{Content: `{"shouldGenerate": true, "message": "Hola Ana"}`}}
	srv := testServer(t, mock)

	w := do(t, srv, "POST", "/api/generate", generateBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["shouldGenerate"] != true || resp["message"] != "Hola Ana" {
		t.Errorf("resp = %v", resp)
	}
	if resp["budget"] != float64(300) || resp["length"] != float64(8) {
		t.Errorf("budget/length = %v/%v", resp["budget"], resp["length"])
	}
	if _, ok := resp["notice"]; ok {
		t.Error("notice should be omitted for a real draft")
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(mock.Calls))
	}
	sent := mock.Calls[0].Prompt
	if strings.Contains(sent, "{{") || !strings.Contains(sent, "Acme") || !strings.Contains(sent, "50") {
		t.Error("provider prompt not fully rendered")
	}
}

func TestGenerateLegacyIdentifiers(t *testing.T) {
	mock := &llm.MockClient{Response: &llm.Response{Content: `{"shouldGenerate": true, "message": "x"}`}}
	srv := testServer(t, mock)

	body := `{"profile":{},"role":"director_financiero","channel":"linkedin"}`
	w := do(t, srv, "POST", "/api/generate", body)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d; body: %s", w.Code, w.Body.String())
	}
}

func TestGenerateDeclined(t *testing.T) {
	mock := &llm.MockClient{Response: &llm.Response{Content: `{"shouldGenerate": false, "message": ""}`}}
	srv := testServer(t, mock)

	w := do(t, srv, "POST", "/api/generate", generateBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["shouldGenerate"] != false || resp["notice"] == nil || resp["notice"] == "" {
		t.Errorf("declined draft must carry a notice: %v", resp)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		mock     *llm.MockClient
		body     string
		wantCode int
		wantKind string
	}{
		{
			name:     "provider failure",
			mock:     &llm.MockClient{Err: errors.New("quota")},
			body:     generateBody,
			wantCode: http.StatusBadGateway,
			wantKind: "provider",
		},
		{
			name:     "malformed payload",
			mock:     &llm.MockClient{Response: &llm.Response{Content: `{"message": "hola"}`}},
			body:     generateBody,
			wantCode: http.StatusBadGateway,
			wantKind: "malformed_response",
		},
		{
			name:     "unknown role",
			mock:     &llm.MockClient{},
			body:     `{"profile":{},"role":"astronaut","channel":"email"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown channel",
			mock:     &llm.MockClient{},
			body:     `{"profile":{},"role":"other","channel":"fax"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(t, tt.mock)
			w := do(t, srv, "POST", "/api/generate", tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body: %s", w.Code, tt.wantCode, w.Body.String())
			}
			var resp map[string]string
			json.Unmarshal(w.Body.Bytes(), &resp)
			if resp["kind"] != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp["kind"], tt.wantKind)
			}
			if strings.Contains(w.Body.String(), "hola") {
				t.Error("raw provider payload leaked into the response")
			}
		})
	}
}

func TestCompose(t *testing.T) {
	mock := &llm.MockClient{}
	srv := testServer(t, mock)

	w := do(t, srv, "POST", "/api/compose", generateBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Prompt string `json:"prompt"`
		Links  []any  `json:"links"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Prompt == "" || strings.Contains(resp.Prompt, "{{") {
		t.Errorf("prompt = %q", resp.Prompt)
	}
	if resp.Links == nil {
		t.Error("links should be an empty array, not null")
	}
	if len(mock.Calls) != 0 {
		t.Error("compose must not call the provider")
	}
}

func TestExtract(t *testing.T) {
	mock := &llm.MockClient{Response: &llm.Response{Content: `{"name":"Ana","jobTitle":"CFO","companyName":"Acme","industry":"Retail","activityOrAchievement":""}`}}
	srv := testServer(t, mock)

	w := do(t, srv, "POST", "/api/extract", `{"text":"Ana, CFO en Acme"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if v, ok := resp["mutualConnection"]; !ok || v != "" {
		t.Errorf("mutualConnection = %v (present=%v), want empty string", v, ok)
	}

	w = do(t, srv, "POST", "/api/extract", `{"text":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty text status = %d, want 400", w.Code)
	}
}

func TestTemplatesAPI(t *testing.T) {
	srv := testServer(t, nil)

	w := do(t, srv, "GET", "/api/templates", "")
	var all []outreach.Template
	json.Unmarshal(w.Body.Bytes(), &all)
	if len(all) != len(outreach.Roles) {
		t.Fatalf("got %d templates, want %d", len(all), len(outreach.Roles))
	}

	w = do(t, srv, "PUT", "/api/templates/it-director", `{"networkMessageTemplate":"Hola {{name}} ({{wordCount}})"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d; body: %s", w.Code, w.Body.String())
	}

	w = do(t, srv, "GET", "/api/templates/it-director", "")
	var got outreach.Template
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.NetworkMessageTemplate != "Hola {{name}} ({{wordCount}})" {
		t.Errorf("saved template = %q", got.NetworkMessageTemplate)
	}
	if got.EmailTemplate == "" {
		t.Error("partial save should keep the email template")
	}

	w = do(t, srv, "PUT", "/api/templates/it-director", `{"emailTemplate":"Hola {{nombre}}"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid template status = %d, want 400", w.Code)
	}

	w = do(t, srv, "DELETE", "/api/templates/it-director", "")
	json.Unmarshal(w.Body.Bytes(), &got)
	if w.Code != http.StatusOK || got.NetworkMessageTemplate == "Hola {{name}} ({{wordCount}})" {
		t.Errorf("reset failed: %d %q", w.Code, got.NetworkMessageTemplate)
	}

	w = do(t, srv, "GET", "/api/templates/astronaut", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown role status = %d, want 400", w.Code)
	}
}

func TestSentAPI(t *testing.T) {
	srv := testServer(t, nil)

	w := do(t, srv, "POST", "/api/sent", `{"name":"Ana","message":"Hola Ana"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d; body: %s", w.Code, w.Body.String())
	}
	var first outreach.SentMessage
	json.Unmarshal(w.Body.Bytes(), &first)
	if !strings.HasPrefix(first.ID, "msg_") {
		t.Errorf("id = %q", first.ID)
	}

	w = do(t, srv, "POST", "/api/sent", `{"name":"Ana","message":"Hola Ana"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "duplicate") {
		t.Errorf("duplicate add: %d %s", w.Code, w.Body.String())
	}

	do(t, srv, "POST", "/api/sent", `{"name":"Luis","message":"Buenas Luis"}`)

	w = do(t, srv, "GET", "/api/sent?q=luis", "")
	var list []outreach.SentMessage
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 || list[0].Name != "Luis" {
		t.Errorf("search = %+v", list)
	}

	w = do(t, srv, "GET", "/api/sent?sort=name&order=asc", "")
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 2 || list[0].Name != "Ana" {
		t.Errorf("sorted = %+v", list)
	}

	if w := do(t, srv, "GET", "/api/sent?sort=size", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad sort status = %d", w.Code)
	}

	w = do(t, srv, "GET", "/api/sent/stats", "")
	var stats map[string]int
	json.Unmarshal(w.Body.Bytes(), &stats)
	if stats["total"] != 2 || stats["thisWeek"] != 2 {
		t.Errorf("stats = %v", stats)
	}

	w = do(t, srv, "GET", "/api/sent/export.csv", "")
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Errorf("content type = %q", w.Header().Get("Content-Type"))
	}
	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil || len(rows) != 3 || rows[0][2] != "Fecha de Envío" {
		t.Errorf("csv rows = %v, err = %v", rows, err)
	}

	w = do(t, srv, "DELETE", "/api/sent/"+first.ID, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete status = %d", w.Code)
	}
	w = do(t, srv, "DELETE", "/api/sent/"+first.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}

	w = do(t, srv, "DELETE", "/api/sent", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"deleted":1`) {
		t.Errorf("clear: %d %s", w.Code, w.Body.String())
	}
	w = do(t, srv, "GET", "/api/sent", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty list = %s", w.Body.String())
	}
}
