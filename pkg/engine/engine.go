package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// Engine tracks the values and errors of one form session and gates
// submission on every field passing validation.
type Engine struct {
	schema *schema.Schema
	state  *State

	initial         map[string]string
	successDuration time.Duration
	darkMode        bool
	submissions     int
	closed          bool

	onSubmit       SubmitHook
	onReset        func()
	onFieldChange  FieldChangeHook
	onThemeToggle  ThemeToggleHook
	onPhaseChange  PhaseHook
	onBannerExpire func()

	logger    zerolog.Logger
	afterFunc TimerFunc

	// bannerMu guards the banner handle, which the timer goroutine releases.
	bannerMu  sync.Mutex
	banner    Timer
	bannerGen uint64
}

// Snapshot is a read-only copy of the engine state handed to renderers.
type Snapshot struct {
	Values        map[string]string `json:"values"`
	Errors        map[string]string `json:"errors"`
	Phase         Phase             `json:"-"`
	PhaseName     string            `json:"phase"`
	DarkMode      bool              `json:"darkMode"`
	BannerVisible bool              `json:"bannerVisible"`
	Submissions   int               `json:"submissions"`
}

// New constructs an Engine over s. Initial values must only reference fields
// declared in s.
func New(s *schema.Schema, options ...Option) (*Engine, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	e := &Engine{
		schema:    s,
		logger:    zerolog.Nop(),
		afterFunc: afterFunc,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	if e.successDuration < 0 {
		return nil, ErrNegativeDuration
	}

	seed := make(map[string]string, s.Len())
	for _, name := range s.Names() {
		seed[name] = ""
	}
	for name, value := range e.initial {
		if !s.Has(name) {
			return nil, fmt.Errorf("%w: initial value for %q", ErrUnknownField, name)
		}
		seed[name] = value
	}
	e.state = newState(seed)

	return e, nil
}

// Schema returns the schema the engine was built with.
func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

// Change records a new raw value for name and revalidates that field against
// the updated value set. No other field's error is recomputed.
func (e *Engine) Change(name, raw string) error {
	if e.closed {
		return ErrClosed
	}
	field, ok := e.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	e.state.values[name] = raw
	if field.Validate != nil {
		msg := field.Validate(raw, e.state.cloneValues())
		e.state.setError(name, msg)
	}

	e.logger.Debug().
		Str("field", name).
		Bool("valid", e.state.errors[name] == "").
		Msg("field changed")

	if e.onFieldChange != nil {
		e.onFieldChange(name, raw, e.state.cloneValues())
	}
	return nil
}

// Blur revalidates name using raw against the committed values with raw
// substituted for that field. Values are never mutated.
func (e *Engine) Blur(name, raw string) error {
	if e.closed {
		return ErrClosed
	}
	field, ok := e.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if field.Validate == nil {
		return nil
	}

	scope := e.state.cloneValues()
	scope[name] = raw
	e.state.setError(name, field.Validate(raw, scope))

	e.logger.Debug().
		Str("field", name).
		Bool("valid", e.state.errors[name] == "").
		Msg("field blurred")
	return nil
}

// Submit validates every field, replacing the errors map in full. When no
// field reports an error the confirmation sequence runs and the submit hook
// fires exactly once; Submit then reports true.
func (e *Engine) Submit() bool {
	if e.closed {
		return false
	}

	errs := e.validateAll()
	e.state.replaceErrors(errs)
	if len(errs) > 0 {
		e.logger.Debug().Int("errors", len(errs)).Msg("submission rejected")
		return false
	}

	e.setPending(true)
	return e.confirm()
}

// confirm completes the PendingConfirmation -> Idle transition.
func (e *Engine) confirm() bool {
	if !e.state.pending {
		return false
	}
	if len(e.state.errors) > 0 {
		e.setPending(false)
		return false
	}

	e.setPending(false)
	e.submissions++
	values := e.state.cloneValues()

	e.logger.Debug().Int("submissions", e.submissions).Msg("submission accepted")

	if e.onSubmit != nil {
		e.onSubmit(values)
	}
	if e.successDuration > 0 {
		e.scheduleBanner()
	}
	return true
}

// Reset restores every field to its default value, clears all errors and the
// pending flag, then fires the reset hook. Validators are not run.
func (e *Engine) Reset() {
	if e.closed {
		return
	}
	e.state.replaceValues(e.schema.Defaults())
	e.state.replaceErrors(nil)
	if e.state.pending {
		e.setPending(false)
	}

	e.logger.Debug().Msg("form reset")

	if e.onReset != nil {
		e.onReset()
	}
}

// ToggleTheme flips the dark-mode flag, fires the theme hook and returns the
// new flag.
func (e *Engine) ToggleTheme() bool {
	if e.closed {
		return e.darkMode
	}
	e.darkMode = !e.darkMode
	if e.onThemeToggle != nil {
		e.onThemeToggle(e.darkMode)
	}
	return e.darkMode
}

// Close cancels the success banner timer. Later mutating calls are rejected.
func (e *Engine) Close() {
	e.closed = true

	e.bannerMu.Lock()
	defer e.bannerMu.Unlock()
	if e.banner != nil {
		e.banner.Stop()
		e.banner = nil
	}
	e.bannerGen++
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	return e.closed
}

// Values returns a copy of the current values.
func (e *Engine) Values() map[string]string {
	return e.state.cloneValues()
}

// Value returns the current value of name; unknown names read as empty.
func (e *Engine) Value(name string) string {
	return e.state.value(name)
}

// Errors returns a copy of the current errors.
func (e *Engine) Errors() map[string]string {
	return cloneStrings(e.state.errors)
}

// Error returns the current message for name.
func (e *Engine) Error(name string) (string, bool) {
	msg, ok := e.state.errors[name]
	return msg, ok
}

// Valid reports whether no field currently carries an error. Fields that were
// never validated count as valid.
func (e *Engine) Valid() bool {
	return len(e.state.errors) == 0
}

// Pending reports whether a submission is awaiting confirmation.
func (e *Engine) Pending() bool {
	return e.state.pending
}

// Phase reports the confirmation sequence state.
func (e *Engine) Phase() Phase {
	if e.state.pending {
		return PhasePendingConfirmation
	}
	return PhaseIdle
}

// DarkMode reports the theme flag.
func (e *Engine) DarkMode() bool {
	return e.darkMode
}

// BannerVisible reports whether the success banner timer is running.
func (e *Engine) BannerVisible() bool {
	e.bannerMu.Lock()
	defer e.bannerMu.Unlock()
	return e.banner != nil
}

// Submissions counts accepted submissions over the engine lifetime.
func (e *Engine) Submissions() int {
	return e.submissions
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot() Snapshot {
	phase := e.Phase()
	return Snapshot{
		Values:        e.Values(),
		Errors:        e.Errors(),
		Phase:         phase,
		PhaseName:     phase.String(),
		DarkMode:      e.darkMode,
		BannerVisible: e.BannerVisible(),
		Submissions:   e.submissions,
	}
}

func (e *Engine) validateAll() map[string]string {
	values := e.state.cloneValues()
	errs := make(map[string]string)
	for _, field := range e.schema.Fields() {
		if msg := field.Check(values[field.Name], values); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}

func (e *Engine) setPending(pending bool) {
	from := e.Phase()
	e.state.pending = pending
	to := e.Phase()
	if from == to {
		return
	}
	e.logger.Debug().Str("from", from.String()).Str("to", to.String()).Msg("phase changed")
	if e.onPhaseChange != nil {
		e.onPhaseChange(from, to)
	}
}

func (e *Engine) scheduleBanner() {
	e.bannerMu.Lock()
	defer e.bannerMu.Unlock()

	if e.banner != nil {
		e.banner.Stop()
	}
	e.bannerGen++
	gen := e.bannerGen
	e.banner = e.afterFunc(e.successDuration, func() {
		e.expireBanner(gen)
	})
}

func (e *Engine) expireBanner(gen uint64) {
	e.bannerMu.Lock()
	if e.bannerGen != gen || e.banner == nil {
		e.bannerMu.Unlock()
		return
	}
	e.banner = nil
	hook := e.onBannerExpire
	e.bannerMu.Unlock()

	if hook != nil {
		hook()
	}
}
