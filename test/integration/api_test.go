package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/field-console/internal/application"
	"github.com/eugenenazirov/field-console/internal/config"
)

var recordVars = []string{
	"CLASSIFICATIONENDPOINT",
	"PATHSERVICEENDPOINT",
	"DRONESPEED",
	"TRACTORSPEED",
	"COMMSPEED",
	"WEALTHYCROPINITIALPERCENTAGE",
}

func clearRecordEnv(t *testing.T) {
	t.Helper()
	for _, key := range append(recordVars, "PORT", "STATIC_DIR", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST") {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func newApp(t *testing.T) http.Handler {
	t.Helper()

	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	app, err := application.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	return app.Handler()
}

func performRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationDefaults(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	clearRecordEnv(t)
	if err := os.Mkdir(filepath.Join(dir, "public"), 0o755); err != nil {
		t.Fatalf("mkdir public: %v", err)
	}

	handler := newApp(t)

	rec := performRequest(t, handler, http.MethodGet, "/config.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from config, got %d", rec.Code)
	}
	want := `{"classificationEndpoint":"http://localhost:5002","pathserviceEndpoint":"http://localhost:5003","droneSpeed":0.5,"tractorSpeed":0.1,"commSpeed":1,"wealthyCropInitialPercentage":50}`
	if got := rec.Body.String(); got != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", got, want)
	}

	rec = performRequest(t, handler, http.MethodGet, "/missing.html")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestIntegrationConfigAlwaysOK(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	clearRecordEnv(t)

	handler := newApp(t)

	for i := 0; i < 100; i++ {
		rec := performRequest(t, handler, http.MethodGet, "/config.json")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 from config, got %d", i, rec.Code)
		}
	}
}

func TestIntegrationDotenvAndStatic(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	clearRecordEnv(t)
	t.Setenv("COMMSPEED", "4")

	dotenv := "DRONESPEED=0.9\nCOMMSPEED=2\nSTATIC_DIR=dist\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "dist", "js"), 0o755); err != nil {
		t.Fatalf("mkdir dist: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "dist", "js", "sim.js"), []byte("run()"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}

	handler := newApp(t)

	rec := performRequest(t, handler, http.MethodGet, "/config.json")
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["droneSpeed"] != "0.9" {
		t.Fatalf("expected droneSpeed from .env, got %#v", body["droneSpeed"])
	}
	if body["commSpeed"] != "4" {
		t.Fatalf("expected process environment to win over .env, got %#v", body["commSpeed"])
	}

	rec = performRequest(t, handler, http.MethodGet, "/js/sim.js")
	if rec.Code != http.StatusOK || rec.Body.String() != "run()" {
		t.Fatalf("expected static asset, got %d %q", rec.Code, rec.Body.String())
	}
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
