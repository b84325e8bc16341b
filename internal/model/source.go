// Package model defines the data structures shared by the minifier layers.
package model

import "strings"

// Path represents a file system path.
type Path string

// Scheme is the minification aggressiveness level.
type Scheme int

const (
	// SchemeStrip only removes comment, divider and blank lines.
	SchemeStrip Scheme = 1
	// SchemeRename additionally renames user-defined variables and functions.
	SchemeRename Scheme = 2
)

// Aggressive reports whether identifiers are renamed under this scheme.
func (s Scheme) Aggressive() bool {
	return s > SchemeStrip
}

// IdentifierClass tells variables and functions apart.
type IdentifierClass string

const (
	// ClassVariable is a sigil-introduced name such as $total.
	ClassVariable IdentifierClass = "variable"
	// ClassFunction is a name declared with the function keyword.
	ClassFunction IdentifierClass = "function"
)

// SymbolScope selects how long a symbol table lives.
type SymbolScope string

const (
	// ScopeRun shares one table across every file of a run.
	ScopeRun SymbolScope = "run"
	// ScopeFile gives every file a fresh table.
	ScopeFile SymbolScope = "file"
)

// ParseSymbolScope maps a config value onto a SymbolScope, defaulting to ScopeRun.
func ParseSymbolScope(value string) SymbolScope {
	switch SymbolScope(strings.ToLower(strings.TrimSpace(value))) {
	case ScopeFile:
		return ScopeFile
	default:
		return ScopeRun
	}
}
