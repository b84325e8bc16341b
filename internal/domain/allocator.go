package domain

import (
	"log/slog"
	"strconv"
	"strings"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// Allocation reports what one Allocate call did.
type Allocation struct {
	Assigned  []m.Symbol
	Unrenamed []string
}

// Allocator extends a SymbolTable with synthetic names for newly observed identifiers.
type Allocator interface {
	Allocate(table *SymbolTable, candidates []string, reserved []string) Allocation
}

// namer produces the ordered synthetic name sequence of an identifier class.
// The first len(base) names come from base, the rest from extend(0), extend(1)...
type namer struct {
	base   []string
	extend func(k int) string
}

func (n namer) names(size int) []string {
	names := make([]string, 0, size)
	for i := 0; i < size && i < len(n.base); i++ {
		names = append(names, n.base[i])
	}

	for k := 0; len(names) < size; k++ {
		names = append(names, n.extend(k))
	}

	return names
}

var variableNamer = namer{
	base: strings.Split(letters, ""),
	extend: func(k int) string {
		return string(letters[k%len(letters)]) + strconv.Itoa(k)
	},
}

var functionNamer = namer{
	base: []string{"fn0", "fn1", "fn2", "fn3", "fn4", "fn5", "fn6", "fn7", "fn8", "fn9"},
	extend: func(k int) string {
		return "fn" + strconv.Itoa(k+10)
	},
}

type allocator struct {
	excludedVariables ExclusionSet
	excludedFunctions ExclusionSet
}

// NewAllocator creates an Allocator honoring the configured exclusions.
func NewAllocator(cfg Config) Allocator {
	return &allocator{
		excludedVariables: cfg.ExcludedVariables,
		excludedFunctions: cfg.ExcludedFunctions,
	}
}

// Allocate assigns a synthetic name to every eligible candidate that the table
// does not know yet. Candidates are reduced to their leading identifier first. The name budget is the class's base alphabet, extended by
// exactly the shortfall between it and the candidates plus existing mappings.
// A synthetic name is never an existing original, an existing synthetic name,
// or one of the candidates and reserved identifiers of the current text.
// Candidates left without a name are reported in Allocation.Unrenamed.
func (a *allocator) Allocate(table *SymbolTable, candidates []string, reserved []string) Allocation {
	var result Allocation

	if len(candidates) == 0 {
		return result
	}

	naming := variableNamer
	if table.Class() == m.ClassFunction {
		naming = functionNamer
	}

	size := len(naming.base)
	if shortfall := len(candidates) + table.Len() - len(naming.base); shortfall > 0 {
		size += shortfall
	}

	pool := naming.names(size)

	taken := make(map[string]struct{}, len(candidates)+len(reserved))
	for _, name := range append(append([]string{}, candidates...), reserved...) {
		taken[name] = struct{}{}
		taken[identifierStem(name)] = struct{}{}
	}

	usable := func(name string) bool {
		if _, ok := taken[name]; ok {
			return false
		}

		if _, ok := table.Lookup(name); ok {
			return false
		}

		return !table.HasSynthetic(name)
	}

	cursor := 0

	seen := make(map[string]struct{}, len(candidates))

	for _, candidate := range candidates {
		original := identifierStem(candidate)
		if _, ok := seen[original]; ok {
			continue
		}

		seen[original] = struct{}{}

		if !a.eligible(table.Class(), original) {
			continue
		}

		if _, ok := table.Lookup(original); ok {
			continue
		}

		assigned := false

		for cursor < len(pool) {
			name := pool[cursor]
			cursor++

			if !usable(name) {
				continue
			}

			if table.add(original, name) {
				slog.Debug("allocated synthetic name", "class", table.Class(), "identifier", original, "synthetic", name)
				result.Assigned = append(result.Assigned, m.Symbol{Original: original, Synthetic: name})
				assigned = true

				break
			}
		}

		if !assigned {
			slog.Warn("naming budget exhausted, identifier left as is", "class", table.Class(), "identifier", original)
			result.Unrenamed = append(result.Unrenamed, original)
		}
	}

	return result
}

func (a *allocator) eligible(class m.IdentifierClass, name string) bool {
	if class == m.ClassFunction {
		return name != "" && !a.excludedFunctions.Contains(name)
	}

	return len(name) > 1 && !a.excludedVariables.Contains(name)
}

// identifierStem cuts a scanned token at its first non-identifier byte, so
// `count-1`, `item-` (from `$item->x`) and `yes:` (from `$ok?$yes:$no`) all
// stand for the variable the sigil introduced.
func identifierStem(token string) string {
	for i := 0; i < len(token); i++ {
		if !isWordByte(token[i]) {
			return token[:i]
		}
	}

	return token
}
