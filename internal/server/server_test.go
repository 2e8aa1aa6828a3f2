package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachdehooge/loop-map/internal/app"
	"github.com/Zachdehooge/loop-map/internal/config"
	"github.com/Zachdehooge/loop-map/internal/layers"
	"github.com/Zachdehooge/loop-map/internal/popup"
	"github.com/Zachdehooge/loop-map/internal/server"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	page := filepath.Join(t.TempDir(), "loopmap.html")
	if err := os.WriteFile(page, []byte("<html>loop map</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{OutputFile: page, Coloring: layers.ColorUniform, HTTPTimeout: time.Second}
	return server.New(app.NewSession(cfg, nil), page).Router()
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestServesPage(t *testing.T) {
	r := setupRouter(t)
	w := do(t, r, http.MethodGet, "/", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "loop map") {
		t.Errorf("GET / = %d %q", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	w := do(t, setupRouter(t), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	decode(t, w, &resp)
	if resp.Status != "OK" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestToggleLayer(t *testing.T) {
	r := setupRouter(t)

	for _, l := range layers.All {
		if w := do(t, r, http.MethodPut, "/api/layers/"+string(l), `{"visible":false}`); w.Code != http.StatusOK {
			t.Fatalf("hide %s: %d %s", l, w.Code, w.Body.String())
		}
	}

	w := do(t, r, http.MethodGet, "/api/legend", "")
	var resp struct {
		Legend []layers.Entry `json:"legend"`
	}
	decode(t, w, &resp)
	if len(resp.Legend) != 1 || resp.Legend[0] != layers.Placeholder {
		t.Errorf("legend = %v, want the placeholder", resp.Legend)
	}

	w = do(t, r, http.MethodPut, "/api/layers/freeways", `{"visible":true}`)
	decode(t, w, &resp)
	if len(resp.Legend) != 3 {
		t.Errorf("expected 3 freeway rows, got %v", resp.Legend)
	}
}

func TestToggleLayerErrors(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown layer", "/api/layers/radar", `{"visible":true}`, http.StatusNotFound},
		{"missing field", "/api/layers/exits", `{}`, http.StatusBadRequest},
		{"bad json", "/api/layers/exits", `{visible`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, http.MethodPut, tt.path, tt.body); w.Code != tt.want {
				t.Errorf("expected status %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestClassifyEndpoint(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		query string
		code  int
		want  string
	}{
		{"?ref=24A&lon=-118.2518519&lat=34.0598866", http.StatusOK, "I-110"},
		{"?ref=No+Ref&lon=-118.22&lat=34.03", http.StatusOK, "I-10"},
		{"?ref=135B", http.StatusOK, "I-10"},
		{"", http.StatusOK, "Unknown"},
		{"?lon=abc&lat=34", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(t, r, http.MethodGet, "/api/classify"+tt.query, "")
			if w.Code != tt.code {
				t.Fatalf("expected status %d, got %d", tt.code, w.Code)
			}
			if tt.code != http.StatusOK {
				return
			}
			var resp struct {
				Highway string `json:"highway"`
			}
			decode(t, w, &resp)
			if resp.Highway != tt.want {
				t.Errorf("highway = %q, want %q", resp.Highway, tt.want)
			}
		})
	}
}

func TestPopups(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/api/popup/exit/7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var d popup.Descriptor
	decode(t, w, &d)
	if d.Title != "Exit 7" || d.Kind != popup.KindExit {
		t.Errorf("unexpected exit popup: %+v", d)
	}

	if w := do(t, r, http.MethodGet, "/api/popup/exit/40", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a missing exit, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/popup/exit/seven", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad exit number, got %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/popup/incident", "")
	decode(t, w, &d)
	if d.Kind != popup.KindIncident {
		t.Errorf("unexpected incident popup: %+v", d)
	}
}

func TestExitsEndpoint(t *testing.T) {
	w := do(t, setupRouter(t), http.MethodGet, "/api/exits", "")
	var resp struct {
		Exits []struct {
			Num int `json:"num"`
		} `json:"exits"`
	}
	decode(t, w, &resp)
	if len(resp.Exits) != 18 {
		t.Errorf("expected 18 exits, got %d", len(resp.Exits))
	}
}
