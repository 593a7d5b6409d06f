// Package diag implements per-module diagnostic output with a verbosity
// threshold. Every Module is independent; there is no global registry.
package diag

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"dbgdoc/internal/docmeta"
	"dbgdoc/internal/severity"
)

// TitleFunc produces the title line of a message. It is only called when
// the message passes the threshold.
type TitleFunc func() (string, error)

// Emitter writes a message about a documented function at a fixed level.
type Emitter func(fn docmeta.Documented, message string) error

// Module holds one module's diagnostic settings.
type Module struct {
	mu                sync.Mutex
	name              string
	threshold         severity.Level
	exceptionSeverity severity.Level
	out               io.Writer
	logger            *slog.Logger
}

// Option configures a Module.
type Option func(*Module)

// WithWriter sets the diagnostic sink. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(m *Module) {
		m.out = w
	}
}

// WithLogger sets the logger used for operational problems such as sink
// write failures. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		m.logger = l
	}
}

// New creates a Module. Levels outside the five named ones are treated as
// Critical for either setting.
func New(name string, threshold, exceptionSeverity severity.Level, opts ...Option) *Module {
	m := &Module{
		name:              name,
		threshold:         threshold.Normalize(),
		exceptionSeverity: exceptionSeverity.Normalize(),
		out:               os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("module", name)
	return m
}

func (m *Module) Name() string {
	return m.name
}

// Logger returns the module's operational logger.
func (m *Module) Logger() *slog.Logger {
	return m.logger
}

// SetVerbosityThreshold replaces the threshold for subsequent emits. An
// unnamed level becomes Critical.
func (m *Module) SetVerbosityThreshold(level severity.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threshold = level.Normalize()
}

func (m *Module) VerbosityThreshold() severity.Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threshold
}

// SetExceptionSeverity changes the level used when a guarded call fails.
func (m *Module) SetExceptionSeverity(level severity.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exceptionSeverity = level.Normalize()
}

func (m *Module) ExceptionSeverity() severity.Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exceptionSeverity
}

// Enabled reports whether a message at level would be written.
func (m *Module) Enabled(level severity.Level) bool {
	return level.AtLeastAsLoud(m.VerbosityThreshold())
}

// Emit writes message if level passes the threshold. Suppressed messages
// have no side effects at all; title is not called. Sink errors are
// returned, not logged.
//
// Output shape:
//
//	Module: <name>
//	<title>
//		<message, each embedded newline followed by a tab>
func (m *Module) Emit(level severity.Level, title TitleFunc, message string) error {
	if !m.Enabled(level) {
		return nil
	}

	t, err := title()
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Module: %s\n%s\n\t%s\n", m.name, t, strings.ReplaceAll(message, "\n", "\n\t"))

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := io.WriteString(m.out, body); err != nil {
		return fmt.Errorf("writing diagnostic: %w", err)
	}
	return nil
}
