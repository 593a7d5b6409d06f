package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dbgdoc/internal/audit"
	"dbgdoc/internal/config"
	"dbgdoc/internal/crawler"
	"dbgdoc/internal/diag"
	"dbgdoc/internal/docmeta"
	"dbgdoc/internal/extractor"
	"dbgdoc/internal/git"
	"dbgdoc/internal/guard"
	"dbgdoc/internal/index"
	"dbgdoc/internal/severity"
	"dbgdoc/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "dbgdoc",
		Short:         "Doc-comment driven diagnostics for Go functions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}
	configPath string
	logLevel   string
	dbPath     string
	verbosity  severity.Level
)

var errFindings = errors.New("audit reported findings")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Operational log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the function catalog database (SQLite); overrides config")
	rootCmd.PersistentFlags().Var(&verbosity, "verbosity", `Diagnostic threshold: "Critical", "High", "Medium", "Low" or "Very Low"`)

	auditCmd.Flags().String("json", "", "Write the validated JSON report to this file")
	auditCmd.Flags().String("since", "", "Only audit functions changed since this git ref")
	auditCmd.Flags().Bool("strict", false, "Exit non-zero when findings exist")
	auditCmd.Flags().Bool("require-title", false, "Report functions whose comment does not use the Title/Input format")
	auditCmd.Flags().Bool("no-db", false, "Do not save the catalog")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(callCmd)
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("verbosity") {
		cfg.Module.Verbosity = verbosity
	}
	if dbPath != "" {
		cfg.Audit.DB = dbPath
	}
	return cfg, nil
}

func newModule(cfg *config.Config, out io.Writer) *diag.Module {
	return diag.New(cfg.Module.Name, cfg.Module.Verbosity, cfg.Module.ExceptionSeverity,
		diag.WithWriter(out),
		diag.WithLogger(slog.Default()))
}

type auditOptions struct {
	root         string
	since        string
	requireTitle bool
	saveDB       bool
	jsonPath     string
}

var auditCmd = &cobra.Command{
	Use:   "audit [path]",
	Short: "Check Title/Input doc comments against function signatures",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := auditOptions{root: cfg.Audit.Root}
		if len(args) > 0 {
			opts.root = args[0]
		}
		opts.since, _ = cmd.Flags().GetString("since")
		opts.jsonPath, _ = cmd.Flags().GetString("json")
		opts.requireTitle, _ = cmd.Flags().GetBool("require-title")
		noDB, _ := cmd.Flags().GetBool("no-db")
		opts.saveDB = !noDB
		strict, _ := cmd.Flags().GetBool("strict")

		report, err := runAudit(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if strict && len(report.Findings) > 0 {
			return fmt.Errorf("%w: %d", errFindings, len(report.Findings))
		}
		return nil
	},
}

func runAudit(ctx context.Context, cfg *config.Config, opts auditOptions, out io.Writer) (*audit.Report, error) {
	ext, err := extractor.NewExtractor("go")
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	cr := crawler.NewCrawler(ext,
		crawler.WithIgnored(cfg.Audit.Ignore...),
		crawler.WithWorkers(cfg.Audit.Workers),
		crawler.WithLogger(slog.Default()))
	idx := index.NewIndexer(cr)

	fmt.Fprintf(out, "📂 Scanning directory: %s\n", opts.root)
	start := time.Now()

	var units []*extractor.FunctionUnit
	if opts.since != "" {
		changes, err := git.GetChangedFiles(ctx, opts.root, opts.since)
		if err != nil {
			return nil, err
		}
		units, err = idx.CollectChanged(ctx, opts.root, changes)
		if err != nil {
			return nil, err
		}
	} else {
		units, err = idx.Collect(ctx, opts.root)
		if err != nil {
			return nil, err
		}
	}
	slog.Debug("collected functions", "count", len(units), "elapsed", time.Since(start))

	m := newModule(cfg, out)
	report, err := audit.NewAuditor(m, opts.requireTitle).Run(ctx, units)
	if err != nil {
		return nil, err
	}

	if opts.saveDB {
		store, err := storage.NewSQLiteStore(cfg.Audit.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		defer store.Close()
		if err := store.SaveSnapshot(ctx, report.Records, report.Findings); err != nil {
			return nil, fmt.Errorf("failed to save catalog: %w", err)
		}
		slog.Info("catalog saved", "db", cfg.Audit.DB, "functions", len(report.Records))
	}

	if opts.jsonPath != "" {
		f, err := os.Create(opts.jsonPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		if err := report.WriteJSON(f); err != nil {
			return nil, err
		}
	}

	printSummary(out, report)
	return report, nil
}

func printSummary(out io.Writer, report *audit.Report) {
	fmt.Fprintf(out, "✅ Audited %d documented functions (%d scanned).\n", len(report.Records), report.Scanned)
	counts := report.CountBySeverity()
	for _, level := range severity.Levels() {
		if n := counts[level.String()]; n > 0 {
			levelColor(level).Fprintf(out, "  %-9s %d\n", level.String()+":", n)
		}
	}
}

func levelColor(l severity.Level) *color.Color {
	switch l {
	case severity.Critical, severity.High:
		return color.New(color.FgRed, color.Bold)
	case severity.Medium:
		return color.New(color.FgYellow)
	case severity.Low:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}

var showCmd = &cobra.Command{
	Use:   "show <file> <function>",
	Short: "Print the metadata parsed from one function's doc comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return describeFunction(args[0], args[1], cmd.OutOrStdout())
	},
}

func lookupFunction(path, name string) (*extractor.FunctionUnit, error) {
	ext, err := extractor.NewExtractor("go")
	if err != nil {
		return nil, err
	}
	units, err := ext.ExtractFromFile(path)
	if err != nil {
		return nil, err
	}
	unit, ok := extractor.Index(units)[name]
	if !ok {
		return nil, fmt.Errorf("function %s not found in %s", name, filepath.Base(path))
	}
	return unit, nil
}

func describeFunction(path, name string, out io.Writer) error {
	unit, err := lookupFunction(path, name)
	if err != nil {
		return err
	}
	meta, err := docmeta.Parse(unit.Doc)
	if err != nil {
		return fmt.Errorf("%s: %w", unit, err)
	}
	fmt.Fprintf(out, "%s\n", meta.Title)
	fmt.Fprintf(out, "  declared inputs: %d\n", meta.DeclaredInputs)
	fmt.Fprintf(out, "  parameters:      %d", len(unit.Params))
	if unit.Variadic {
		fmt.Fprint(out, " (variadic)")
	}
	fmt.Fprintf(out, "\n  signature:       %s\n", unit.Signature)
	return nil
}

var callCmd = &cobra.Command{
	Use:   "call <file> <function> [args...]",
	Short: "Invoke a guarded stand-in for a function to preview its failure diagnostic",
	Long: `call wraps a stand-in body with the function's doc comment and invokes it
with the given arguments. A wrong argument count produces the diagnostic a
guarded call would emit, followed by the arity error.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return callFunction(newModule(cfg, cmd.OutOrStdout()), args[0], args[1], args[2:], cmd.OutOrStdout())
	},
}

func callFunction(m *diag.Module, path, name string, rawArgs []string, out io.Writer) error {
	unit, err := lookupFunction(path, name)
	if err != nil {
		return err
	}

	standIn := guard.Func{
		Doc: unit.Doc,
		Fn: func(args ...any) (any, error) {
			return fmt.Sprintf("%s%s", unit.QualifiedName(), guard.FormatArgs(args)), nil
		},
	}

	args := make([]any, len(rawArgs))
	for i, a := range rawArgs {
		args[i] = a
	}

	result, err := guard.Wrap(standIn, m).Invoke(args...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v\n", result)
	return nil
}

