// Package audit checks documentation comments against the functions they
// describe, without running anything: every Title/Input comment must carry
// a title and declare one input per parameter.
package audit

import (
	"context"
	"errors"
	"fmt"

	"dbgdoc/internal/diag"
	"dbgdoc/internal/docmeta"
	"dbgdoc/internal/extractor"
	"dbgdoc/internal/severity"
)

// Kind names a class of finding.
type Kind string

const (
	MissingTitle  Kind = "missing_title"
	ArityMismatch Kind = "arity_mismatch"
	Variadic      Kind = "variadic"
)

// Severity is the level each kind is reported at.
func (k Kind) Severity() severity.Level {
	switch k {
	case MissingTitle:
		return severity.High
	case ArityMismatch:
		return severity.Medium
	default:
		return severity.Low
	}
}

// Finding is a single problem with one function's comment.
type Finding struct {
	UnitID   string         `json:"unit_id"`
	Function string         `json:"function"`
	Filepath string         `json:"filepath"`
	Line     int            `json:"line"`
	Kind     Kind           `json:"kind"`
	Severity severity.Level `json:"severity"`
	Message  string         `json:"message"`
}

// Record is the catalog entry for a scanned function.
type Record struct {
	ID             string `json:"id"`
	Function       string `json:"function"`
	Package        string `json:"package"`
	Filepath       string `json:"filepath"`
	Line           int    `json:"line"`
	Title          string `json:"title,omitempty"`
	DeclaredInputs int    `json:"declared_inputs"`
	Params         int    `json:"params"`
	Variadic       bool   `json:"variadic,omitempty"`
}

// Marked reports whether a comment uses the Title/Input format at all.
func Marked(doc string) bool {
	if docmeta.CountDeclaredInputs(doc) > 0 {
		return true
	}
	_, err := docmeta.ExtractTitle(doc)
	return err == nil
}

// NewRecord builds the catalog entry for unit. Title is empty when the
// comment has none.
func NewRecord(unit *extractor.FunctionUnit) Record {
	r := Record{
		ID:             unit.ID,
		Function:       unit.QualifiedName(),
		Package:        unit.Package,
		Filepath:       unit.Filepath,
		Line:           unit.StartLine,
		DeclaredInputs: docmeta.CountDeclaredInputs(unit.Doc),
		Params:         len(unit.Params),
		Variadic:       unit.Variadic,
	}
	if title, err := docmeta.ExtractTitle(unit.Doc); err == nil {
		r.Title = title
	}
	return r
}

// Check returns the findings for one function. It does not consider
// whether unmarked comments should be reported; see Auditor.
func Check(unit *extractor.FunctionUnit) []Finding {
	var findings []Finding
	add := func(kind Kind, format string, args ...any) {
		findings = append(findings, Finding{
			UnitID:   unit.ID,
			Function: unit.QualifiedName(),
			Filepath: unit.Filepath,
			Line:     unit.StartLine,
			Kind:     kind,
			Severity: kind.Severity(),
			Message:  fmt.Sprintf(format, args...),
		})
	}

	meta, err := docmeta.Parse(unit.Doc)
	if errors.Is(err, docmeta.ErrMissingTitle) {
		add(MissingTitle, "comment has no Title line")
		meta.DeclaredInputs = docmeta.CountDeclaredInputs(unit.Doc)
	}

	if unit.Variadic {
		add(Variadic, "declares %d inputs but takes a variadic parameter; guarded calls count arguments positionally", meta.DeclaredInputs)
		return findings
	}
	if meta.DeclaredInputs != len(unit.Params) {
		add(ArityMismatch, "declares %d inputs but takes %d parameters", meta.DeclaredInputs, len(unit.Params))
	}
	return findings
}

// Auditor checks units and reports findings through a diag.Module.
type Auditor struct {
	module       *diag.Module
	requireTitle bool
}

// NewAuditor creates an Auditor. With requireTitle, functions whose comment
// does not use the Title/Input format at all are reported as missing a
// title; otherwise they are skipped.
func NewAuditor(m *diag.Module, requireTitle bool) *Auditor {
	return &Auditor{module: m, requireTitle: requireTitle}
}

// Run audits units in order and returns the report. Each finding is
// emitted at its kind's severity, so the module threshold decides what is
// printed; the report always holds every finding.
func (a *Auditor) Run(ctx context.Context, units []*extractor.FunctionUnit) (*Report, error) {
	report := &Report{Module: a.module.Name(), Records: []Record{}, Findings: []Finding{}}
	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !a.requireTitle && !Marked(unit.Doc) {
			continue
		}

		report.Records = append(report.Records, NewRecord(unit))
		for _, f := range Check(unit) {
			report.Findings = append(report.Findings, f)
			if err := a.module.Emit(f.Severity, titleOrName(unit), fmt.Sprintf("%s:%d %s: %s", f.Filepath, f.Line, f.Kind, f.Message)); err != nil {
				return nil, fmt.Errorf("reporting %s: %w", unit, err)
			}
		}
	}
	report.Scanned = len(units)
	return report, nil
}

func titleOrName(unit *extractor.FunctionUnit) diag.TitleFunc {
	return func() (string, error) {
		if title, err := docmeta.ExtractTitle(unit.Doc); err == nil {
			return title, nil
		}
		return docmeta.TitlePrefix + unit.QualifiedName(), nil
	}
}
