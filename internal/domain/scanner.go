// Package domain implements the identifier renaming core of the minifier.
package domain

import (
	"regexp"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

var (
	variablePattern = regexp.MustCompile(`\$([A-Za-z0-9_:\-]+)`)
	functionPattern = regexp.MustCompile(`\bfunction\s+([A-Za-z0-9_:\-]+)`)
)

// Scanner extracts candidate identifiers from a block of text.
type Scanner interface {
	Variables(text string) []string
	Functions(text string) []string
}

type scanner struct {
	excluded ExclusionSet
}

// NewScanner creates a Scanner that drops the given variables from its results.
func NewScanner(excludedVariables ExclusionSet) Scanner {
	return &scanner{excluded: excludedVariables}
}

// Variables returns the distinct sigil-introduced names in text, in order of
// first appearance, minus excluded ones.
func (s *scanner) Variables(text string) []string {
	return collect(variablePattern, text, s.excluded.Contains)
}

// Functions returns the distinct declared function names in text. Exclusions
// are applied by the allocator.
func (s *scanner) Functions(text string) []string {
	return collect(functionPattern, text, nil)
}

// Scan runs the scanner method matching class.
func Scan(s Scanner, class m.IdentifierClass, text string) []string {
	if class == m.ClassFunction {
		return s.Functions(text)
	}

	return s.Variables(text)
}

func collect(pattern *regexp.Regexp, text string, skip func(string) bool) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))

	for _, match := range matches {
		if len(match) < 2 || match[1] == "" {
			continue
		}

		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}

		if skip != nil && skip(name) {
			continue
		}

		names = append(names, name)
	}

	return names
}
