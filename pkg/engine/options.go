package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Timer is the handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

// TimerFunc schedules fn to run once after d.
type TimerFunc func(d time.Duration, fn func()) Timer

func afterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SubmitHook receives the full value snapshot of an accepted submission.
type SubmitHook func(values map[string]string)

// FieldChangeHook receives the changed field and the updated value set.
type FieldChangeHook func(name, value string, values map[string]string)

// ThemeToggleHook receives the new dark-mode flag.
type ThemeToggleHook func(dark bool)

// PhaseHook observes confirmation sequence transitions.
type PhaseHook func(from, to Phase)

// Option configures an Engine.
type Option func(*Engine)

// WithInitialValues seeds the starting values. Fields missing from the map
// start empty.
func WithInitialValues(values map[string]string) Option {
	return func(e *Engine) {
		e.initial = cloneStrings(values)
	}
}

// WithSuccessDuration configures the success banner display time. Zero
// disables the banner.
func WithSuccessDuration(d time.Duration) Option {
	return func(e *Engine) {
		e.successDuration = d
	}
}

// WithDarkMode sets the starting theme flag.
func WithDarkMode(dark bool) Option {
	return func(e *Engine) {
		e.darkMode = dark
	}
}

// WithOnSubmit registers the hook fired once per accepted submission.
func WithOnSubmit(fn SubmitHook) Option {
	return func(e *Engine) {
		e.onSubmit = fn
	}
}

// WithOnReset registers the hook fired after Reset.
func WithOnReset(fn func()) Option {
	return func(e *Engine) {
		e.onReset = fn
	}
}

// WithOnFieldChange registers the hook fired after every Change.
func WithOnFieldChange(fn FieldChangeHook) Option {
	return func(e *Engine) {
		e.onFieldChange = fn
	}
}

// WithOnThemeToggle registers the hook fired by ToggleTheme.
func WithOnThemeToggle(fn ThemeToggleHook) Option {
	return func(e *Engine) {
		e.onThemeToggle = fn
	}
}

// WithOnPhaseChange registers an observer for confirmation transitions.
func WithOnPhaseChange(fn PhaseHook) Option {
	return func(e *Engine) {
		e.onPhaseChange = fn
	}
}

// WithOnBannerExpire registers the hook fired when the success banner timer
// elapses. It runs on the timer goroutine.
func WithOnBannerExpire(fn func()) Option {
	return func(e *Engine) {
		e.onBannerExpire = fn
	}
}

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTimerFunc overrides how the success banner is scheduled.
func WithTimerFunc(fn TimerFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.afterFunc = fn
		}
	}
}
