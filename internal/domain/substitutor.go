package domain

import (
	"log/slog"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

// DefaultPatternCacheSize bounds the number of compiled substitution patterns kept in memory.
const DefaultPatternCacheSize = 4096

// Substitutor rewrites mapped identifiers inside a text stream.
type Substitutor interface {
	Substitute(stream string, symbols *Symbols) string
}

type substitutor struct {
	legacyFunctions bool
	patterns        *lru.Cache[string, *regexp.Regexp]
}

// NewSubstitutor creates a Substitutor. With legacyFunctions set, function
// names are replaced wherever their text occurs, including inside longer words.
func NewSubstitutor(legacyFunctions bool, cacheSize int) (Substitutor, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultPatternCacheSize
	}

	cache, err := lru.New[string, *regexp.Regexp](cacheSize)
	if err != nil {
		return nil, err
	}

	return &substitutor{legacyFunctions: legacyFunctions, patterns: cache}, nil
}

// Substitute applies the function table, then the variable table, each in
// insertion order. Variables are matched after a `$` sigil or a `->` property
// arrow, except where the arrow is a method call. Functions are matched on
// identifier boundaries and never directly after a `$` sigil.
func (s *substitutor) Substitute(stream string, symbols *Symbols) string {
	if symbols == nil {
		return stream
	}

	for _, symbol := range symbols.Functions.Symbols() {
		if !strings.Contains(stream, symbol.Original) {
			continue
		}

		if s.legacyFunctions {
			stream = strings.ReplaceAll(stream, symbol.Original, symbol.Synthetic)
			continue
		}

		stream = s.replace(stream, m.ClassFunction, symbol)
	}

	for _, symbol := range symbols.Variables.Symbols() {
		if !strings.Contains(stream, symbol.Original) {
			continue
		}

		stream = s.replace(stream, m.ClassVariable, symbol)
	}

	return stream
}

// replace rewrites every match of the symbol's pattern. The first capture
// group holds the text preceding the identifier and is kept as is.
func (s *substitutor) replace(stream string, class m.IdentifierClass, symbol m.Symbol) string {
	matches := s.pattern(class, symbol.Original).FindAllStringSubmatchIndex(stream, -1)
	if len(matches) == 0 {
		return stream
	}

	var out strings.Builder

	out.Grow(len(stream))

	last := 0

	for _, loc := range matches {
		prefix := stream[loc[2]:loc[3]]
		if class == m.ClassVariable && prefix == "->" && callFollows(stream, loc[1]) {
			continue
		}

		out.WriteString(stream[last:loc[3]])
		out.WriteString(symbol.Synthetic)

		last = loc[1]
	}

	out.WriteString(stream[last:])

	return out.String()
}

// callFollows reports whether the next non-blank byte at or after i opens an argument list.
func callFollows(stream string, i int) bool {
	for ; i < len(stream); i++ {
		switch stream[i] {
		case ' ', '\t':
			continue
		case '(':
			return true
		default:
			return false
		}
	}

	return false
}

func (s *substitutor) pattern(class m.IdentifierClass, original string) *regexp.Regexp {
	key := string(class) + ":" + original
	if re, ok := s.patterns.Get(key); ok {
		return re
	}

	var expr strings.Builder

	if class == m.ClassVariable {
		expr.WriteString(`(\$|->)`)
	} else {
		expr.WriteString(`(^|[^$\w])`)
	}

	expr.WriteString(regexp.QuoteMeta(original))
	expr.WriteString(`\b`)

	re := regexp.MustCompile(expr.String())
	if s.patterns.Add(key, re) {
		slog.Debug("substitution pattern cache evicted an entry", "size", s.patterns.Len())
	}

	return re
}

// isWordByte reports whether b can be part of an identifier.
func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
