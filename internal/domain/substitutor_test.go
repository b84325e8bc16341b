package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symbolsWith(t *testing.T, variables, functions map[string]string, order ...string) *Symbols {
	t.Helper()

	symbols := NewSymbols()

	for _, original := range order {
		if synthetic, ok := functions[original]; ok {
			require.True(t, symbols.Functions.add(original, synthetic))
		}

		if synthetic, ok := variables[original]; ok {
			require.True(t, symbols.Variables.add(original, synthetic))
		}
	}

	return symbols
}

func TestSubstitutor_Variables(t *testing.T) {
	sub, err := NewSubstitutor(false, 0)
	require.NoError(t, err)

	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{"whole identifier only", "$id = $identifier . $id;", "$a = $identifier . $a;"},
		{"adjacent sigils", "$id$id", "$a$a"},
		{"property access keeps working", "$id->name", "$a->name"},
		{"ternary branches keep their colon", "$r = $ok?$id:$no;", "$r = $ok?$a:$no;"},
		{"case label", "case $id: break;", "case $a: break;"},
		{"property access renamed", "$this->id = $id;", "$this->a = $a;"},
		{"nullsafe property access", "$row?->id", "$row?->a"},
		{"static property", "self::$id", "self::$a"},
		{"method call left alone", "$db->id ($id)", "$db->id ($a)"},
		{"bare words untouched", "'id' => id($id)", "'id' => id($a)"},
		{"interpolation", `"{$id}"`, `"{$a}"`},
	}

	symbols := symbolsWith(t, map[string]string{"id": "a"}, nil, "id")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sub.Substitute(tt.stream, symbols))
		})
	}
}

func TestSubstitutor_Functions(t *testing.T) {
	stream := "function fetch() {} fetch(); prefetch(); fetch_all(); $fetch = 1;"
	symbols := symbolsWith(t, nil, map[string]string{"fetch": "fn0"}, "fetch")

	t.Run("identifier boundaries", func(t *testing.T) {
		sub, err := NewSubstitutor(false, 8)
		require.NoError(t, err)

		assert.Equal(t, "function fn0() {} fn0(); prefetch(); fetch_all(); $fetch = 1;", sub.Substitute(stream, symbols))
	})

	t.Run("legacy substring replacement", func(t *testing.T) {
		sub, err := NewSubstitutor(true, 8)
		require.NoError(t, err)

		assert.Equal(t, "function fn0() {} fn0(); prefn0(); fn0_all(); $fn0 = 1;", sub.Substitute(stream, symbols))
	})
}

func TestSubstitutor_FunctionsBeforeVariables(t *testing.T) {
	sub, err := NewSubstitutor(false, 0)
	require.NoError(t, err)

	symbols := symbolsWith(t,
		map[string]string{"user": "a", "name": "b"},
		map[string]string{"load_user": "fn0"},
		"user", "load_user", "name",
	)

	got := sub.Substitute("function load_user($name) { $user = load_user($name); return $user; }", symbols)

	assert.Equal(t, "function fn0($b) { $a = fn0($b); return $a; }", got)
}

func TestSubstitutor_NoSymbols(t *testing.T) {
	sub, err := NewSubstitutor(false, 0)
	require.NoError(t, err)

	assert.Equal(t, "$x = 1;", sub.Substitute("$x = 1;", NewSymbols()))
	assert.Equal(t, "$x = 1;", sub.Substitute("$x = 1;", nil))
}

func TestSubstitutor_SmallCacheStillCorrect(t *testing.T) {
	sub, err := NewSubstitutor(false, 1)
	require.NoError(t, err)

	symbols := symbolsWith(t, map[string]string{"one": "a", "two": "b", "three": "c"}, nil, "one", "two", "three")

	for range 3 {
		assert.Equal(t, "$a $b $c", sub.Substitute("$one $two $three", symbols))
	}
}

func TestSubstitutor_FunctionAndVariableShareName(t *testing.T) {
	sub, err := NewSubstitutor(false, 0)
	require.NoError(t, err)

	symbols := symbolsWith(t,
		map[string]string{"add": "a"},
		map[string]string{"add": "fn0"},
		"add",
	)

	got := sub.Substitute("function add($add) { return $this->add(add($add)); }", symbols)

	assert.Equal(t, "function fn0($a) { return $this->fn0(fn0($a)); }", got)
}

func TestSubstitutor_ClassProperties(t *testing.T) {
	sub, err := NewSubstitutor(false, 0)
	require.NoError(t, err)

	symbols := symbolsWith(t,
		map[string]string{"items": "a", "price": "b"},
		map[string]string{"add": "fn0"},
		"items", "add", "price",
	)

	got := sub.Substitute("class Cart { private $items = []; function add($price) { $this->items[] = $price; } }", symbols)

	assert.Equal(t, "class Cart { private $a = []; function fn0($b) { $this->a[] = $b; } }", got)
}
