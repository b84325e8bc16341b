package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"phpmin.dev/pkg/phpmin/internal/adapter"
	m "phpmin.dev/pkg/phpmin/internal/model"
)

var (
	// ErrRead wraps failures reading a source file.
	ErrRead = errors.New("read source")
	// ErrWrite wraps failures persisting a minified file.
	ErrWrite = errors.New("write output")
)

const outputFileMode = 0o644

// Engine minifies single files.
type Engine interface {
	// Process reads unit.Input, minifies it against symbols and writes
	// unit.Output. Failures are recorded in unit.Outcome, never returned.
	Process(ctx context.Context, unit *m.Unit, symbols *Symbols)
	// Analyze reads and strips unit.Input and extends symbols with the
	// identifiers it declares, without renaming or writing anything.
	Analyze(ctx context.Context, unit *m.Unit, symbols *Symbols)
	// Emit renames an analyzed unit against symbols and writes unit.Output.
	Emit(ctx context.Context, unit *m.Unit, symbols *Symbols)
	// Transform minifies raw content in memory without touching the filesystem.
	Transform(unit *m.Unit, raw []byte, symbols *Symbols)
	// Rename substitutes the mapped identifiers of symbols into text.
	Rename(text string, symbols *Symbols) string
}

type engine struct {
	cfg         Config
	fsAdapter   adapter.SourceFSAdapter
	scanner     Scanner
	allocator   Allocator
	substitutor Substitutor
}

// NewEngine wires an Engine from its collaborators.
func NewEngine(cfg Config, fsAdapter adapter.SourceFSAdapter, scanner Scanner, allocator Allocator, substitutor Substitutor) Engine {
	return &engine{
		cfg:         cfg,
		fsAdapter:   fsAdapter,
		scanner:     scanner,
		allocator:   allocator,
		substitutor: substitutor,
	}
}

// NewDefaultEngine builds an Engine and its collaborators from cfg.
func NewDefaultEngine(cfg Config, fsAdapter adapter.SourceFSAdapter) (Engine, error) {
	substitutor, err := NewSubstitutor(cfg.LegacyFunctionSubstitution, DefaultPatternCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create substitutor: %w", err)
	}

	return NewEngine(cfg, fsAdapter, NewScanner(cfg.ExcludedVariables), NewAllocator(cfg), substitutor), nil
}

func (e *engine) Process(ctx context.Context, unit *m.Unit, symbols *Symbols) {
	e.Analyze(ctx, unit, symbols)
	e.Emit(ctx, unit, symbols)
}

func (e *engine) Analyze(ctx context.Context, unit *m.Unit, symbols *Symbols) {
	raw, err := e.fsAdapter.ReadFile(ctx, unit.Input)
	if err != nil {
		slog.Warn("Failed to read source file", "path", unit.Input, "error", err)
		unit.Outcome = m.Outcome{Status: m.StatusFailed, Reason: "unreadable source", Err: fmt.Errorf("%w %s: %w", ErrRead, unit.Input, err)}

		return
	}

	e.analyze(unit, raw, symbols)
}

func (e *engine) Emit(ctx context.Context, unit *m.Unit, symbols *Symbols) {
	if unit.Outcome.Status != m.StatusPending {
		return
	}

	e.substitute(unit, symbols)
	e.persist(ctx, unit)
}

func (e *engine) Transform(unit *m.Unit, raw []byte, symbols *Symbols) {
	e.analyze(unit, raw, symbols)
	e.substitute(unit, symbols)
}

// analyze strips the raw content and, when renaming, scans the stream and
// allocates names for it. unit.Result holds the stripped text afterwards.
func (e *engine) analyze(unit *m.Unit, raw []byte, symbols *Symbols) {
	unit.OriginalSize = int64(len(raw))
	unit.RawLines = SplitLines(string(raw))
	unit.Lines = StripLines(unit.RawLines)
	unit.Result = strings.Join(unit.Lines, "")

	if !e.renames(unit, symbols) {
		return
	}

	unit.Stream = JoinStream(unit.Lines)
	unit.Variables = e.scanner.Variables(unit.Stream)
	unit.Functions = e.scanner.Functions(unit.Stream)

	// Identifiers of either class that stay in the text, excluded ones
	// included, must not be reused as synthetic names.
	reserved := append(collect(variablePattern, unit.Stream, nil), unit.Functions...)

	variables := e.allocator.Allocate(symbols.Variables, unit.Variables, reserved)
	functions := e.allocator.Allocate(symbols.Functions, unit.Functions, reserved)

	unit.Outcome.Unrenamed = append(append(unit.Outcome.Unrenamed, variables.Unrenamed...), functions.Unrenamed...)
}

func (e *engine) substitute(unit *m.Unit, symbols *Symbols) {
	if !e.renames(unit, symbols) {
		return
	}

	unit.Result = e.substitutor.Substitute(unit.Stream, symbols)
}

func (e *engine) renames(unit *m.Unit, symbols *Symbols) bool {
	return e.cfg.Scheme.Aggressive() && len(unit.Lines) > 0 && symbols != nil
}

func (e *engine) Rename(text string, symbols *Symbols) string {
	return e.substitutor.Substitute(text, symbols)
}

func (e *engine) persist(ctx context.Context, unit *m.Unit) {
	if err := ctx.Err(); err != nil {
		unit.Outcome.Status = m.StatusFailed
		unit.Outcome.Reason = "cancelled"
		unit.Outcome.Err = err

		return
	}

	if err := e.fsAdapter.WriteFile(ctx, unit.Output, []byte(unit.Result), outputFileMode); err != nil {
		slog.Warn("Failed to write minified file", "path", unit.Output, "error", err)
		unit.Outcome.Status = m.StatusFailed
		unit.Outcome.Reason = "unwritable destination"
		unit.Outcome.Err = fmt.Errorf("%w %s: %w", ErrWrite, unit.Output, err)

		return
	}

	info, err := e.fsAdapter.FileInfo(ctx, unit.Output)
	if err != nil {
		slog.Warn("Failed to stat minified file", "path", unit.Output, "error", err)
		unit.Outcome.Status = m.StatusFailed
		unit.Outcome.Reason = "output vanished"
		unit.Outcome.Err = fmt.Errorf("%w %s: %w", ErrWrite, unit.Output, err)

		return
	}

	unit.CompressedSize = info.Size()
	unit.Outcome.Status = m.StatusMinified

	slog.Debug("Minified file", "path", unit.Input, "output", unit.Output, "original", unit.OriginalSize, "compressed", unit.CompressedSize)
}
