package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"phpmin.dev/pkg/phpmin/internal/adapter"
	"phpmin.dev/pkg/phpmin/internal/controller"
	m "phpmin.dev/pkg/phpmin/internal/model"
)

// DefaultOutputDir is the output directory name used when none is given. A
// relative name is resolved next to the source root.
const DefaultOutputDir = "appsminify"

// runScopeLabel labels the shared table in symbol exports.
const runScopeLabel = "run"

// MinifyArgs contains the arguments for minifying a source tree.
type MinifyArgs struct {
	Source m.Path
	Output m.Path
	Scope  m.SymbolScope
	// Parallel bounds concurrent files for file-scoped symbols. Run-scoped
	// symbols are always processed one file at a time.
	Parallel      int
	Exclude       []string
	SymbolsExport m.Path
}

// PreviewArgs contains the arguments for previewing one file.
type PreviewArgs struct {
	File    m.Path
	Context int
}

// Workflow walks source trees and drives the Engine over every eligible file.
type Workflow interface {
	Minify(ctx context.Context, args MinifyArgs) (m.RunReport, error)
	Preview(ctx context.Context, args PreviewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.SymbolStore
	controller.UI
	Engine

	cfg Config
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	cfg Config,
	fsAdapter adapter.SourceFSAdapter,
	symbolStore adapter.SymbolStore,
	ui controller.UI,
	engine Engine,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		SymbolStore:     symbolStore,
		UI:              ui,
		Engine:          engine,
		cfg:             cfg,
	}
}

func (w *workflow) Minify(ctx context.Context, args MinifyArgs) (m.RunReport, error) {
	root, err := w.resolveRoot(ctx, args.Source)
	if err != nil {
		return m.RunReport{}, err
	}

	outputRoot, err := w.resolveOutput(ctx, root, args.Output)
	if err != nil {
		return m.RunReport{}, err
	}

	exclude, err := compileExcludes(args.Exclude)
	if err != nil {
		return m.RunReport{}, err
	}

	if err := w.MkdirAll(ctx, outputRoot); err != nil {
		slog.Error("Failed to create output directory", "path", outputRoot, "error", err)
		return m.RunReport{}, fmt.Errorf("create output directory %s: %w", outputRoot, err)
	}

	w.DisplayStart(ctx, root, outputRoot, w.cfg.Scheme, args.Scope)

	report := m.RunReport{Source: root, Output: outputRoot, Scheme: w.cfg.Scheme}

	if err := w.collectUnits(ctx, &report, exclude); err != nil {
		return report, fmt.Errorf("walk %s: %w", root, err)
	}

	dumps, err := w.processUnits(ctx, report.Units, args)
	if err != nil {
		return report, err
	}

	if args.SymbolsExport != "" && w.cfg.Scheme.Aggressive() {
		if err := w.SaveSymbols(ctx, args.SymbolsExport, dumps); err != nil {
			slog.Error("Failed to export symbols", "path", args.SymbolsExport, "error", err)
			return report, fmt.Errorf("export symbols: %w", err)
		}
	}

	if err := w.DisplayStatistics(ctx, report); err != nil {
		return report, fmt.Errorf("display: %w", err)
	}

	return report, nil
}

func (w *workflow) resolveRoot(ctx context.Context, source m.Path) (m.Path, error) {
	if source == "" {
		source = "."
	}

	root, err := w.Abs(ctx, source)
	if err != nil {
		return "", fmt.Errorf("resolve source %s: %w", source, err)
	}

	info, err := w.FileInfo(ctx, root)
	if err != nil {
		return "", fmt.Errorf("source path error: %w", err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("source path %s is not a directory", root)
	}

	return root, nil
}

// resolveOutput places a relative output directory beside the source root.
func (w *workflow) resolveOutput(ctx context.Context, root, output m.Path) (m.Path, error) {
	if output == "" {
		output = DefaultOutputDir
	}

	if filepath.IsAbs(string(output)) {
		return w.Abs(ctx, output)
	}

	return w.JoinPath(ctx, filepath.Dir(string(root)), string(output)), nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

// collectUnits walks the source tree, mirrors every directory into the output
// tree and creates a unit for every eligible file.
func (w *workflow) collectUnits(ctx context.Context, report *m.RunReport, exclude []*regexp.Regexp) error {
	return w.Walk(ctx, report.Source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Warn("Failed to visit path", "path", path, "error", err)

			if info != nil && info.IsDir() {
				return adapter.SkipDir
			}

			return nil
		}

		if info.IsDir() {
			if m.Path(path) == report.Output {
				return adapter.SkipDir
			}

			report.FolderCount++

			target, mirrorErr := w.mirror(ctx, report.Source, report.Output, m.Path(path))
			if mirrorErr == nil {
				mirrorErr = w.MkdirAll(ctx, target)
			}

			if mirrorErr != nil {
				slog.Warn("Failed to create output directory", "path", target, "error", mirrorErr)
			}

			return nil
		}

		report.FileCount++

		if !w.cfg.Eligible(m.Path(path)) {
			return nil
		}

		target, mirrorErr := w.mirror(ctx, report.Source, report.Output, m.Path(path))
		if mirrorErr != nil {
			slog.Warn("Failed to compute output path", "path", path, "error", mirrorErr)
			return nil
		}

		unit := m.NewUnit(m.Path(path), target)

		if excluded(exclude, path) {
			unit.Outcome = m.Outcome{Status: m.StatusSkipped, Reason: "excluded by pattern"}
		}

		report.Units = append(report.Units, unit)

		return nil
	})
}

func (w *workflow) mirror(ctx context.Context, root, outputRoot, path m.Path) (m.Path, error) {
	rel, err := w.RelPath(ctx, root, path)
	if err != nil {
		return "", err
	}

	return w.JoinPath(ctx, string(outputRoot), string(rel)), nil
}

func excluded(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// processUnits runs the engine over every pending unit and returns the symbol
// tables that were used.
func (w *workflow) processUnits(ctx context.Context, units []*m.Unit, args MinifyArgs) ([]m.SymbolDump, error) {
	pending := make([]*m.Unit, 0, len(units))

	for _, unit := range units {
		if unit.Outcome.Status == m.StatusPending {
			pending = append(pending, unit)
		}
	}

	if args.Scope == m.ScopeFile {
		return w.processFileScoped(ctx, pending, args.Parallel)
	}

	return w.processRunScoped(ctx, pending)
}

// processRunScoped allocates names for every file before any file is
// written, so a call site renames the same way as a declaration in a file the
// walk reaches later.
func (w *workflow) processRunScoped(ctx context.Context, units []*m.Unit) ([]m.SymbolDump, error) {
	symbols := NewSymbols()

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		w.Analyze(ctx, unit, symbols)
	}

	slog.Debug("Allocated run symbols", "variables", symbols.Variables.Len(), "functions", symbols.Functions.Len())

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		w.Emit(ctx, unit, symbols)
	}

	return []m.SymbolDump{symbols.Dump(runScopeLabel)}, nil
}

func (w *workflow) processFileScoped(ctx context.Context, units []*m.Unit, parallel int) ([]m.SymbolDump, error) {
	dumps := make([]m.SymbolDump, len(units))

	group, groupCtx := errgroup.WithContext(ctx)
	if parallel > 0 {
		group.SetLimit(parallel)
	}

	for i, unit := range units {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			symbols := NewSymbols()
			w.Process(groupCtx, unit, symbols)
			dumps[i] = symbols.Dump(string(unit.Input))

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return dumps, nil
}

func (w *workflow) Preview(ctx context.Context, args PreviewArgs) error {
	raw, err := w.ReadFile(ctx, args.File)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrRead, args.File, err)
	}

	unit := m.NewUnit(args.File, args.File)
	symbols := NewSymbols()
	w.Transform(unit, raw, symbols)
	unit.CompressedSize = int64(len(unit.Result))

	rendered := make([]string, 0, len(unit.Lines))
	for _, line := range unit.Lines {
		line = strings.TrimSuffix(line, lineSeparator)
		if w.cfg.Scheme.Aggressive() {
			line = w.Rename(line, symbols)
		}

		rendered = append(rendered, line)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(unit.RawLines, "\n")),
		B:        difflib.SplitLines(strings.Join(rendered, "\n")),
		FromFile: string(args.File),
		ToFile:   string(args.File) + " (minified)",
		Context:  args.Context,
	})
	if err != nil {
		return fmt.Errorf("diff %s: %w", args.File, err)
	}

	return w.DisplayPreview(ctx, unit, diff, symbols.Dump(string(args.File)))
}
