package domain

import (
	"strings"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

// DefaultExtensions lists the file extensions minified by default.
var DefaultExtensions = []string{"php", "inc"}

// DefaultExcludedVariables lists variables that are never renamed by default.
var DefaultExcludedVariables = []string{
	"_SERVER", "_POST", "_GET", "_COOKIE", "_FILES", "_ENV", "GLOBALS", "this-", "this",
}

// DefaultExcludedFunctions lists functions that are never renamed by default.
var DefaultExcludedFunctions = []string{
	"__construct", "__destruct", "__call", "__toString", "count", "extract", "curl_init", "curl_setopt",
}

// ExclusionSet holds identifiers that must never be renamed. Entries ending in
// '*' match by prefix, every other entry matches exactly.
type ExclusionSet struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewExclusionSet builds an ExclusionSet from config entries.
func NewExclusionSet(entries ...string) ExclusionSet {
	set := ExclusionSet{exact: make(map[string]struct{}, len(entries))}

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if prefix, ok := strings.CutSuffix(entry, "*"); ok {
			set.prefixes = append(set.prefixes, prefix)
			continue
		}

		set.exact[entry] = struct{}{}
	}

	return set
}

// Contains reports whether name is excluded.
func (s ExclusionSet) Contains(name string) bool {
	if _, ok := s.exact[name]; ok {
		return true
	}

	for _, prefix := range s.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// Config carries everything the core needs from the caller.
type Config struct {
	Scheme            m.Scheme
	Extensions        []string
	ExcludedVariables ExclusionSet
	ExcludedFunctions ExclusionSet
	// LegacyFunctionSubstitution replaces function names anywhere in the text
	// instead of only on identifier boundaries.
	LegacyFunctionSubstitution bool
}

// DefaultConfig returns the stock configuration for the given scheme.
func DefaultConfig(scheme m.Scheme) Config {
	return Config{
		Scheme:            scheme,
		Extensions:        DefaultExtensions,
		ExcludedVariables: NewExclusionSet(DefaultExcludedVariables...),
		ExcludedFunctions: NewExclusionSet(DefaultExcludedFunctions...),
	}
}

// Eligible reports whether a file path has a whitelisted extension.
func (c Config) Eligible(path m.Path) bool {
	name := string(path)

	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot < strings.LastIndexAny(name, `/\`) {
		return false
	}

	ext := name[dot+1:]
	for _, allowed := range c.Extensions {
		if ext == strings.TrimPrefix(allowed, ".") {
			return true
		}
	}

	return false
}
