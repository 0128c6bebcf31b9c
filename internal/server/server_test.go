package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/formdef"
)

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func newTestServer(t *testing.T) (*Server, *engine.Engine) {
	t.Helper()
	store, err := formdef.LoadFS(formdef.EmbeddedFS())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def, _ := store.Definition(formdef.DefaultFormID)
	e, err := def.NewEngine(engine.WithTimerFunc(func(time.Duration, func()) engine.Timer {
		return noopTimer{}
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)

	srv, err := New(Config{
		FormID:   def.ID,
		Chrome:   def.Chrome(),
		Engine:   e,
		Logger:   zerolog.Nop(),
		Registry: prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, e
}

func do(t *testing.T, srv *Server, method, target string, form url.Values, jsonAccept bool) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if jsonAccept {
		req.Header.Set("Accept", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) engine.Snapshot {
	t.Helper()
	var snap engine.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v (%s)", err, rec.Body.String())
	}
	return snap
}

func TestServer_Page(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "User Information") {
		t.Fatalf("page missing title")
	}
}

func TestServer_ChangeAndBlur(t *testing.T) {
	srv, e := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/fields/email", url.Values{"value": {"foo"}}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	snap := decodeSnapshot(t, rec)
	if snap.Values["email"] != "foo" || snap.Errors["email"] != "Invalid email format" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	rec = do(t, srv, http.MethodPost, "/fields/email/blur", url.Values{"value": {"a@b.co"}}, true)
	snap = decodeSnapshot(t, rec)
	if _, ok := snap.Errors["email"]; ok {
		t.Fatalf("blur should clear the error: %+v", snap.Errors)
	}
	if e.Value("email") != "foo" {
		t.Fatalf("blur must not mutate values")
	}

	rec = do(t, srv, http.MethodPost, "/fields/ghost", url.Values{"value": {"x"}}, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown field status %d", rec.Code)
	}

	if got := testutil.ToFloat64(srv.metrics.FieldChangesTotal); got != 1 {
		t.Fatalf("field changes = %v", got)
	}
}

func TestServer_SubmitFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/submit", url.Values{}, true)
	snap := decodeSnapshot(t, rec)
	if len(snap.Errors) != 4 || snap.Submissions != 0 {
		t.Fatalf("empty submit should be rejected: %+v", snap)
	}

	form := url.Values{
		"name":   {"Ada"},
		"email":  {"ada@example.com"},
		"gender": {"female"},
		"about":  {"Writes programs for engines"},
	}
	rec = do(t, srv, http.MethodPost, "/submit", form, false)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("browser submit should redirect, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	snap = decodeSnapshot(t, do(t, srv, http.MethodGet, "/state", nil, false))
	if snap.Submissions != 1 || !snap.BannerVisible || snap.PhaseName != "idle" {
		t.Fatalf("unexpected state after submit %+v", snap)
	}

	if got := testutil.ToFloat64(srv.metrics.SubmissionsTotal.WithLabelValues("accepted")); got != 1 {
		t.Fatalf("accepted = %v", got)
	}
	if got := testutil.ToFloat64(srv.metrics.SubmissionsTotal.WithLabelValues("rejected")); got != 1 {
		t.Fatalf("rejected = %v", got)
	}

	page := do(t, srv, http.MethodGet, "/", nil, false).Body.String()
	if !strings.Contains(page, "Form submitted successfully!") {
		t.Fatalf("banner missing from page")
	}
}

func TestServer_ResetAndTheme(t *testing.T) {
	srv, e := newTestServer(t)
	if err := e.Change("name", "Ada"); err != nil {
		t.Fatalf("change: %v", err)
	}

	snap := decodeSnapshot(t, do(t, srv, http.MethodPost, "/reset?format=json", nil, false))
	if snap.Values["name"] != "" {
		t.Fatalf("reset did not clear values: %+v", snap.Values)
	}
	snap = decodeSnapshot(t, do(t, srv, http.MethodPost, "/theme", nil, true))
	if !snap.DarkMode {
		t.Fatalf("theme not toggled")
	}

	if got := testutil.ToFloat64(srv.metrics.ResetsTotal); got != 1 {
		t.Fatalf("resets = %v", got)
	}
}

func TestServer_Metrics(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, srv, http.MethodPost, "/reset", nil, true)

	rec := do(t, srv, http.MethodGet, "/metrics", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "formstate_resets_total 1") {
		t.Fatalf("metrics output missing counter:\n%s", rec.Body.String())
	}
}

func TestServer_ClosedEngine(t *testing.T) {
	srv, e := newTestServer(t)
	e.Close()
	rec := do(t, srv, http.MethodPost, "/fields/name", url.Values{"value": {"x"}}, true)
	if rec.Code != http.StatusConflict {
		t.Fatalf("closed engine status %d", rec.Code)
	}
}

func TestServer_SubmitOnClosedEngineAppliesNothing(t *testing.T) {
	srv, e := newTestServer(t)
	e.Close()

	rec := do(t, srv, http.MethodPost, "/submit", url.Values{
		"name":  {"Ada"},
		"email": {"ada@example.com"},
	}, true)
	if rec.Code != http.StatusConflict {
		t.Fatalf("closed engine submit status %d", rec.Code)
	}
	if got := e.Value("name"); got != "" {
		t.Fatalf("closed engine must not record values, got %q", got)
	}
	if got := testutil.ToFloat64(srv.metrics.FieldChangesTotal); got != 0 {
		t.Fatalf("expected no field changes counted, got %v", got)
	}
	if got := testutil.ToFloat64(srv.metrics.SubmissionsTotal.WithLabelValues("rejected")); got != 0 {
		t.Fatalf("expected no submission counted, got %v", got)
	}
}

func TestServer_Assets(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/assets/formstate.css", nil, false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".fvw-container") {
		t.Fatalf("stylesheet not served: %d", rec.Code)
	}
}
