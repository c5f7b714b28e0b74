package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return New(
		Scalar("mode").Default("fast"),
		Scalar("label"),
		Group("labels",
			Scalar("ok").Default("OK"),
			Scalar("cancel").Default("Cancel"),
		).DefaultsIfNotSet(),
		Group("auth",
			Scalar("user"),
			Scalar("pass"),
		),
		Group("marker"),
		Prototype("routes"),
		Group("paths",
			List("items"),
			Scalar("enabled").Default(true),
		).DefaultsIfNotSet(),
	)
}

func ordered(kv ...any) *Map {
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}
	return m
}

func TestNormalize_EmptyDocumentGetsDefaults(t *testing.T) {
	out, err := testSchema().Normalize(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"mode", "labels", "routes", "paths"}, out.Keys())

	mode, _ := out.Get("mode")
	assert.Equal(t, "fast", mode)

	labels, _ := out.Get("labels")
	lm := labels.(*Map)
	ok, _ := lm.Get("ok")
	cancel, _ := lm.Get("cancel")
	assert.Equal(t, "OK", ok)
	assert.Equal(t, "Cancel", cancel)

	assert.False(t, out.Has("auth"), "optional group without defaults stays absent")
	assert.False(t, out.Has("marker"))
}

func TestNormalize_PerLeafDefaultsInPartialGroup(t *testing.T) {
	out, err := testSchema().Normalize(map[string]any{
		"labels": map[string]any{"ok": "Fine"},
	})
	require.NoError(t, err)

	labels, _ := out.Get("labels")
	lm := labels.(*Map)
	ok, _ := lm.Get("ok")
	cancel, _ := lm.Get("cancel")
	assert.Equal(t, "Fine", ok)
	assert.Equal(t, "Cancel", cancel)
}

func TestNormalize_NullGroupIsPresent(t *testing.T) {
	out, err := testSchema().Normalize(ordered("marker", nil))
	require.NoError(t, err)

	v, ok := out.Get("marker")
	require.True(t, ok)
	assert.Equal(t, 0, v.(*Map).Len())
}

func TestNormalize_NullScalarFallsBackToDefault(t *testing.T) {
	out, err := testSchema().Normalize(ordered("mode", nil, "label", nil))
	require.NoError(t, err)

	mode, _ := out.Get("mode")
	assert.Equal(t, "fast", mode)
	assert.False(t, out.Has("label"))
}

func TestNormalize_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		doc      *Map
		path     string
		expected Kind
		got      string
	}{
		{"scalar given mapping", ordered("mode", ordered("a", 1)), "mode", KindScalar, "mapping"},
		{"group given scalar", ordered("auth", "root"), "auth", KindMapping, "scalar"},
		{"group given sequence", ordered("labels", []any{"x"}), "labels", KindMapping, "sequence"},
		{"prototype given sequence", ordered("routes", []any{"a"}), "routes", KindMapping, "sequence"},
		{"prototype value mapping", ordered("routes", ordered("home", ordered("x", 1))), "routes.home", KindScalar, "mapping"},
		{"list given mapping", ordered("paths", ordered("items", ordered("a", "b"))), "paths.items", KindSequence, "mapping"},
		{"list item sequence", ordered("paths", ordered("items", []any{"a", []any{"b"}})), "paths.items[1]", KindScalar, "sequence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSchema().Normalize(tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchema))

			var serr *Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.path, serr.Path)
			assert.Equal(t, tt.expected, serr.Expected)
			assert.Equal(t, tt.got, serr.Got)
		})
	}
}

func TestNormalize_RootMustBeMapping(t *testing.T) {
	_, err := testSchema().Normalize([]any{"a"})
	require.ErrorIs(t, err, ErrSchema)
}

func TestNormalize_UnknownNestedKeyRejected(t *testing.T) {
	_, err := testSchema().Normalize(ordered("labels", ordered("help", "?")))

	var serr *Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "labels.help", serr.Path)
	assert.Contains(t, err.Error(), "unrecognized option")
}

func TestNormalize_UnknownTopLevelKeyPassesThrough(t *testing.T) {
	out, err := testSchema().Normalize(ordered(
		"future", map[string]any{"b": 2, "a": []string{"x"}},
		"flag", true,
	))
	require.NoError(t, err)

	future, ok := out.Get("future")
	require.True(t, ok)
	fm := future.(*Map)
	assert.Equal(t, []string{"a", "b"}, fm.Keys())
	a, _ := fm.Get("a")
	assert.Equal(t, []any{"x"}, a)

	flag, _ := out.Get("flag")
	assert.Equal(t, true, flag)

	keys := out.Keys()
	assert.Equal(t, []string{"future", "flag"}, keys[len(keys)-2:])
}

func TestNormalize_PrototypeKeepsInputOrder(t *testing.T) {
	out, err := testSchema().Normalize(ordered("routes", ordered(
		"zeta", "#z",
		"alpha", "#a",
		"mid", "#m",
	)))
	require.NoError(t, err)

	routes, _ := out.Get("routes")
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, routes.(*Map).Keys())
}

func TestNormalize_ListKeepsOrder(t *testing.T) {
	out, err := testSchema().Normalize(ordered("paths", ordered("items", []string{"/b", "/a", "/c"})))
	require.NoError(t, err)

	paths, _ := out.Get("paths")
	items, _ := paths.(*Map).Get("items")
	enabled, _ := paths.(*Map).Get("enabled")
	assert.Equal(t, []any{"/b", "/a", "/c"}, items)
	assert.Equal(t, true, enabled)
}

func TestNormalize_Idempotent(t *testing.T) {
	docs := []any{
		nil,
		ordered("mode", "slow", "marker", nil, "extra", map[string]any{"k": "v"}),
		ordered("auth", ordered("user", "u"), "routes", ordered("b", "1", "a", "2")),
		ordered("paths", ordered("items", []any{"/x"}, "enabled", false)),
	}

	s := testSchema()
	for _, doc := range docs {
		first, err := s.Normalize(doc)
		require.NoError(t, err)
		second, err := s.Normalize(first.Clone())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := ordered("labels", ordered("ok", "Yes"))
	_, err := testSchema().Normalize(in)
	require.NoError(t, err)

	labels, _ := in.Get("labels")
	assert.Equal(t, []string{"ok"}, labels.(*Map).Keys())
}
