package diag

import (
	"dbgdoc/internal/docmeta"
	"dbgdoc/internal/severity"
)

var emitters = map[severity.Level]func(*Module, docmeta.Documented, string) error{
	severity.Critical: (*Module).Critical,
	severity.High:     (*Module).High,
	severity.Medium:   (*Module).Medium,
	severity.Low:      (*Module).Low,
	severity.VeryLow:  (*Module).VeryLow,
}

func (m *Module) Critical(fn docmeta.Documented, message string) error {
	return m.Emit(severity.Critical, docmeta.TitleOf(fn), message)
}

func (m *Module) High(fn docmeta.Documented, message string) error {
	return m.Emit(severity.High, docmeta.TitleOf(fn), message)
}

func (m *Module) Medium(fn docmeta.Documented, message string) error {
	return m.Emit(severity.Medium, docmeta.TitleOf(fn), message)
}

func (m *Module) Low(fn docmeta.Documented, message string) error {
	return m.Emit(severity.Low, docmeta.TitleOf(fn), message)
}

func (m *Module) VeryLow(fn docmeta.Documented, message string) error {
	return m.Emit(severity.VeryLow, docmeta.TitleOf(fn), message)
}

// EmitterFor returns the emitter for level. Levels outside the known five
// get the Critical emitter.
func (m *Module) EmitterFor(level severity.Level) Emitter {
	emit, ok := emitters[level]
	if !ok {
		emit = (*Module).Critical
	}
	return func(fn docmeta.Documented, message string) error {
		return emit(m, fn, message)
	}
}
