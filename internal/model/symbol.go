package model

// Symbol is one original identifier and the synthetic name it was given.
type Symbol struct {
	Original  string `yaml:"original"`
	Synthetic string `yaml:"synthetic"`
}

// SymbolDump is a snapshot of one symbol scope.
type SymbolDump struct {
	// Scope is "run" for a shared table or the source path for a per-file table.
	Scope     string   `yaml:"scope"`
	Variables []Symbol `yaml:"variables"`
	Functions []Symbol `yaml:"functions"`
}
