package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/formdef"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Registration builds an engine over the bundled registration form. Extra
// options are appended after the definition's own settings.
func Registration(t *testing.T, opts ...engine.Option) (formdef.Definition, *engine.Engine) {
	t.Helper()

	store, err := formdef.LoadFS(formdef.EmbeddedFS())
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	def, ok := store.Definition(formdef.DefaultFormID)
	if !ok {
		t.Fatalf("definition %q missing", formdef.DefaultFormID)
	}
	e, err := def.NewEngine(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return def, e
}

// ManualTimers replaces time.AfterFunc in engine tests. Scheduled callbacks
// only run when Fire is called.
type ManualTimers struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	owner   *ManualTimers
	fn      func()
	d       time.Duration
	stopped bool
}

func (m *manualTimer) Stop() bool {
	m.owner.mu.Lock()
	defer m.owner.mu.Unlock()
	was := !m.stopped
	m.stopped = true
	return was
}

// AfterFunc satisfies engine.TimerFunc.
func (m *ManualTimers) AfterFunc(d time.Duration, fn func()) engine.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{owner: m, fn: fn, d: d}
	m.pending = append(m.pending, t)
	return t
}

// Scheduled reports how many timers were created.
func (m *ManualTimers) Scheduled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Fire runs every timer that has not been stopped and returns how many ran.
func (m *ManualTimers) Fire() int {
	m.mu.Lock()
	var due []func()
	for _, t := range m.pending {
		if t.stopped {
			continue
		}
		t.stopped = true
		due = append(due, t.fn)
	}
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range due {
		fn()
	}
	return len(due)
}

// CompareGolden returns a diff string if the values differ. Nil and empty
// maps compare equal, since JSON goldens cannot tell them apart.
func CompareGolden(want, got any, opts ...cmp.Option) string {
	opts = append(opts, cmpopts.EquateEmpty())
	return cmp.Diff(want, got, opts...)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustLoadJSON decodes a golden JSON file into out.
func MustLoadJSON(t *testing.T, path string, out any) {
	t.Helper()
	if err := json.Unmarshal(MustReadGolden(t, path), out); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
	return true
}

// WriteMaybeGolden updates a raw golden file when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}
