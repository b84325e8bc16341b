package domain

import (
	"sync"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

// SymbolTable maps original identifiers to synthetic names. It only grows:
// entries are never overwritten or removed, and no two originals share a
// synthetic name.
type SymbolTable struct {
	class m.IdentifierClass

	mu        sync.RWMutex
	order     []string
	forward   map[string]string
	synthetic map[string]string
}

// NewSymbolTable creates an empty table for one identifier class.
func NewSymbolTable(class m.IdentifierClass) *SymbolTable {
	return &SymbolTable{
		class:     class,
		forward:   make(map[string]string),
		synthetic: make(map[string]string),
	}
}

// Class returns the identifier class the table holds.
func (t *SymbolTable) Class() m.IdentifierClass {
	return t.class
}

// Len returns the number of mappings.
func (t *SymbolTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.order)
}

// Lookup returns the synthetic name for original.
func (t *SymbolTable) Lookup(original string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	name, ok := t.forward[original]

	return name, ok
}

// HasSynthetic reports whether name is already used as a synthetic name.
func (t *SymbolTable) HasSynthetic(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.synthetic[name]

	return ok
}

// Symbols returns the mappings in insertion order.
func (t *SymbolTable) Symbols() []m.Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()

	symbols := make([]m.Symbol, 0, len(t.order))
	for _, original := range t.order {
		symbols = append(symbols, m.Symbol{Original: original, Synthetic: t.forward[original]})
	}

	return symbols
}

// add records a mapping unless original is already mapped or synthetic is
// already taken. It reports whether the mapping was stored.
func (t *SymbolTable) add(original, synthetic string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.forward[original]; ok {
		return false
	}

	if _, ok := t.synthetic[synthetic]; ok {
		return false
	}

	t.forward[original] = synthetic
	t.synthetic[synthetic] = original
	t.order = append(t.order, original)

	return true
}

// Symbols groups the variable and function tables of one scope.
type Symbols struct {
	Variables *SymbolTable
	Functions *SymbolTable
}

// NewSymbols creates an empty pair of tables.
func NewSymbols() *Symbols {
	return &Symbols{
		Variables: NewSymbolTable(m.ClassVariable),
		Functions: NewSymbolTable(m.ClassFunction),
	}
}

// Table returns the table for class.
func (s *Symbols) Table(class m.IdentifierClass) *SymbolTable {
	if class == m.ClassFunction {
		return s.Functions
	}

	return s.Variables
}

// Dump snapshots both tables under the given scope label.
func (s *Symbols) Dump(scope string) m.SymbolDump {
	return m.SymbolDump{
		Scope:     scope,
		Variables: s.Variables.Symbols(),
		Functions: s.Functions.Symbols(),
	}
}
