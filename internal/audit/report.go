package audit

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const reportSchemaURL = "https://dbgdoc.dev/schema/audit-report.json"

//go:embed report.schema.json
var reportSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Report is the result of one audit run.
type Report struct {
	Module   string    `json:"module"`
	Scanned  int       `json:"scanned"`
	Records  []Record  `json:"records"`
	Findings []Finding `json:"findings"`
}

// CountBySeverity tallies findings per severity name.
func (r *Report) CountBySeverity() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Findings {
		counts[f.Severity.String()]++
	}
	return counts
}

// WriteJSON validates the report against the embedded schema and writes it
// indented to w. Nothing is written if validation fails.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := ValidateJSON(data); err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ValidateJSON checks data against the report schema.
func ValidateJSON(data []byte) error {
	schema, err := loadReportSchema()
	if err != nil {
		return fmt.Errorf("loading report schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding report: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("report does not match schema: %w", err)
	}
	return nil
}

func loadReportSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(reportSchemaURL, bytes.NewReader(reportSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(reportSchemaURL)
	})
	return compiledSchema, schemaErr
}
