package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

type symbolFile struct {
	Version int            `yaml:"version"`
	Scopes  []m.SymbolDump `yaml:"scopes"`
}

const symbolFileVersion = 1

// SymbolStore persists symbol tables so renamed output can be traced back.
type SymbolStore interface {
	SaveSymbols(ctx context.Context, path m.Path, dumps []m.SymbolDump) error
	LoadSymbols(ctx context.Context, path m.Path) ([]m.SymbolDump, error)
}

// YAMLSymbolStore stores symbol dumps as YAML documents.
type YAMLSymbolStore struct{}

// NewSymbolStore creates a YAML backed SymbolStore.
func NewSymbolStore() *YAMLSymbolStore {
	return &YAMLSymbolStore{}
}

// SaveSymbols writes dumps to path, replacing any existing file.
func (s *YAMLSymbolStore) SaveSymbols(_ context.Context, path m.Path, dumps []m.SymbolDump) error {
	data, err := yaml.Marshal(symbolFile{Version: symbolFileVersion, Scopes: dumps})
	if err != nil {
		return fmt.Errorf("marshal symbols: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create symbols directory: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write symbols: %w", err)
	}

	return nil
}

// LoadSymbols reads dumps previously written by SaveSymbols.
func (s *YAMLSymbolStore) LoadSymbols(_ context.Context, path m.Path) ([]m.SymbolDump, error) {
	// #nosec G304 - path is supplied by the operator
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read symbols: %w", err)
	}

	var file symbolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal symbols: %w", err)
	}

	if file.Version != symbolFileVersion {
		return nil, fmt.Errorf("unsupported symbols file version %d", file.Version)
	}

	return file.Scopes, nil
}
