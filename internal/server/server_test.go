package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reteki/outreach/internal/engine"
	"github.com/reteki/outreach/internal/llm"
	"github.com/reteki/outreach/internal/prompt"
	"github.com/reteki/outreach/internal/store"
	"github.com/reteki/outreach/internal/templates"
)

func testServer(t *testing.T, mock *llm.MockClient) *Server {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if mock == nil {
		mock = &llm.MockClient{}
	}
	tmpl := templates.NewStore(db)
	tmpl.LoadPersisted()
	eng := engine.New(prompt.NewComposer(tmpl, nil), mock, 0.3, 0.2)
	return New(db, eng, tmpl, "test-version")
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t, nil)

	w := do(t, srv, "GET", "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("version = %v, want test-version", body["version"])
	}
	if body["db"] != true {
		t.Errorf("db = %v, want true", body["db"])
	}
}

func TestInvalidJSON(t *testing.T) {
	srv := testServer(t, nil)

	for _, path := range []string{"/api/extract", "/api/generate", "/api/compose", "/api/sent"} {
		w := do(t, srv, "POST", path, "{not json")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer(t, nil)
	w := do(t, srv, "GET", "/api/memories", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
