package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-generator/adapter"
	"schema-generator/node"
)

func TestParseScalars(t *testing.T) {
	root, err := Parse("config", adapter.Map{
		{Key: "host", Value: "localhost"},
		{Key: "port", Value: int64(8080)},
		{Key: "ratio", Value: 0.5},
		{Key: "enabled", Value: true},
		{Key: "missing", Value: nil},
	})
	require.NoError(t, err)

	assert.Equal(t, "config", root.Name)
	assert.Equal(t, "Config", root.Type())
	require.Len(t, root.Children, 5)

	expected := []struct {
		name      string
		classType string
	}{
		{"host", "string"},
		{"port", "int64"},
		{"ratio", "float64"},
		{"enabled", "bool"},
		{"missing", "any"},
	}
	for i, e := range expected {
		assert.Equal(t, e.name, root.Children[i].Name)
		assert.Equal(t, e.classType, root.Children[i].Type())
		assert.Empty(t, root.Children[i].Children)
	}
}

func TestParseRecordsDefaults(t *testing.T) {
	root, err := Parse("config", adapter.Map{
		{Key: "host", Value: "localhost"},
		{Key: "port", Value: int64(8080)},
		{Key: "ratio", Value: 0.5},
		{Key: "enabled", Value: true},
		{Key: "missing", Value: nil},
		{Key: "db", Value: adapter.Map{
			{Key: "name", Value: "app"},
		}},
		{Key: "tags", Value: []any{"a", int64(2)}},
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost", root.Children[0].Default)
	assert.Equal(t, int64(8080), root.Children[1].Default)
	assert.Equal(t, 0.5, root.Children[2].Default)
	assert.Equal(t, true, root.Children[3].Default)

	// null and composite values carry no default
	assert.Nil(t, root.Children[4].Default)
	assert.Nil(t, root.Children[5].Default)
	assert.Equal(t, "app", root.Children[5].Children[0].Default)

	// list elements keep their observed values too
	list := root.Children[6]
	assert.Nil(t, list.Default)
	require.Len(t, list.Children, 2)
	assert.Equal(t, "a", list.Children[0].Default)
	assert.Equal(t, int64(2), list.Children[1].Default)
}

func TestParseAliases(t *testing.T) {
	root, err := Parse("config", adapter.Map{
		{Key: "Use-TLS", Value: true},
		{Key: "host", Value: "x"},
	})
	require.NoError(t, err)

	assert.Equal(t, "use_tls", root.Children[0].Name)
	assert.Equal(t, "Use-TLS", root.Children[0].OriginalName)

	// no alias recorded when the key is already sanitized
	assert.Empty(t, root.Children[1].OriginalName)
}

func TestParseNestedObjects(t *testing.T) {
	root, err := Parse("app", adapter.Map{
		{Key: "Connection", Value: adapter.Map{
			{Key: "Host", Value: "localhost"},
			{Key: "Port", Value: int64(8080)},
		}},
	})
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	conn := root.Children[0]
	assert.Equal(t, "connection", conn.Name)
	assert.Equal(t, "Connection", conn.Type())
	require.Len(t, conn.Children, 2)
	assert.Equal(t, "host", conn.Children[0].Name)
	assert.Equal(t, "Host", conn.Children[0].OriginalName)
}

func TestParseDedupCollapsesEqualShapes(t *testing.T) {
	// field order differs; shapes are still equal
	root, err := Parse("app", adapter.Map{
		{Key: "primary", Value: adapter.Map{
			{Key: "db", Value: adapter.Map{
				{Key: "host", Value: "a"},
				{Key: "port", Value: int64(1)},
			}},
		}},
		{Key: "backup", Value: adapter.Map{
			{Key: "db", Value: adapter.Map{
				{Key: "port", Value: int64(2)},
				{Key: "host", Value: "b"},
			}},
		}},
	})
	require.NoError(t, err)

	first := root.Children[0].Children[0]
	second := root.Children[1].Children[0]

	assert.Equal(t, "Db", first.Type())
	assert.False(t, first.IsDuplicate)

	assert.Equal(t, "Db", second.Type())
	assert.True(t, second.IsDuplicate)
	assert.False(t, second.NeedsAdjustment)
}

func TestParseCollisionRenamesWithParentPrefix(t *testing.T) {
	root, err := Parse("app", adapter.Map{
		{Key: "server", Value: adapter.Map{
			{Key: "connection", Value: adapter.Map{
				{Key: "host", Value: "a"},
			}},
		}},
		{Key: "client", Value: adapter.Map{
			{Key: "connection", Value: adapter.Map{
				{Key: "timeout", Value: int64(5)},
			}},
		}},
	})
	require.NoError(t, err)

	first := root.Children[0].Children[0]
	second := root.Children[1].Children[0]

	assert.Equal(t, "Connection", first.Type())
	assert.False(t, first.IsDuplicate)

	// structurally different, renamed with the enclosing type prefix
	assert.Equal(t, "ClientConnection", second.Type())
	assert.False(t, second.IsDuplicate)
	assert.False(t, second.NeedsAdjustment)
}

func TestParseCollisionFallsBackToSuffix(t *testing.T) {
	// list items share the ListItem seed and have no parent prefix, so
	// a structural mismatch exhausts the semantic rename and falls
	// back to the counter
	root, err := Parse("app", adapter.Map{
		{Key: "entries", Value: []any{
			adapter.Map{{Key: "id", Value: int64(1)}},
			adapter.Map{{Key: "label", Value: "x"}},
			adapter.Map{{Key: "label", Value: "y"}},
		}},
	})
	require.NoError(t, err)

	items := root.Children[0].Children
	require.Len(t, items, 3)

	assert.Equal(t, "EntriesListItem", items[0].Type())
	assert.False(t, items[0].NeedsAdjustment)

	assert.Equal(t, "EntriesListItem1", items[1].Type())
	assert.True(t, items[1].NeedsAdjustment)
	assert.False(t, items[1].IsDuplicate)

	// the third matches the renamed second and adopts its type
	assert.Equal(t, "EntriesListItem1", items[2].Type())
	assert.True(t, items[2].IsDuplicate)

	assert.Equal(t, "list<Union[EntriesListItem, EntriesListItem1]>", root.Children[0].Type())
}

func TestParseListUnification(t *testing.T) {
	root, err := Parse("app", adapter.Map{
		{Key: "items", Value: []any{
			adapter.Map{{Key: "id", Value: int64(1)}, {Key: "name", Value: "a"}},
			adapter.Map{{Key: "name", Value: "b"}, {Key: "id", Value: int64(2)}},
			adapter.Map{{Key: "id", Value: int64(3)}, {Key: "name", Value: "c"}},
		}},
	})
	require.NoError(t, err)

	items := root.Children[0]
	assert.Equal(t, node.KindList, items.Kind())
	assert.Equal(t, "list<ItemsListItem>", items.Type())

	assert.False(t, items.Children[0].IsDuplicate)
	assert.True(t, items.Children[1].IsDuplicate)
	assert.True(t, items.Children[2].IsDuplicate)
}

func TestParseListMixedTypes(t *testing.T) {
	root, err := Parse("app", adapter.Map{
		{Key: "items", Value: []any{
			adapter.Map{{Key: "id", Value: int64(1)}},
			"plain",
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "list<Union[ItemsListItem, string]>", root.Children[0].Type())
}

func TestParseScalarAndNestedLists(t *testing.T) {
	root, err := Parse("app", adapter.Map{
		{Key: "ports", Value: []any{int64(1), int64(2)}},
		{Key: "matrix", Value: []any{
			[]any{int64(1), int64(2)},
			[]any{int64(3)},
		}},
		{Key: "empty", Value: []any{}},
	})
	require.NoError(t, err)

	assert.Equal(t, "list<int64>", root.Children[0].Type())
	assert.Equal(t, "ports_item", root.Children[0].Children[0].Name)

	assert.Equal(t, "list<list<int64>>", root.Children[1].Type())
	assert.Equal(t, "list", root.Children[2].Type())
}

func TestParseEmptyMapping(t *testing.T) {
	root, err := Parse("empty", adapter.Map{})
	require.NoError(t, err)
	assert.Equal(t, "Empty", root.Type())
	assert.Empty(t, root.Children)
}

func TestParseInvalidKey(t *testing.T) {
	_, err := Parse("app", adapter.Map{
		{Key: "--", Value: int64(1)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, node.ErrInvalidIdentifier))
}

func TestRootName(t *testing.T) {
	assert.Equal(t, "app", RootName("/tmp/in/app.json"))
	assert.Equal(t, "app", RootName("app.prod.yaml"))
	assert.Equal(t, "settings", RootName("settings"))
}

func TestParseFileINI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server_config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[Connection]
Host = localhost
Port = 8080
UseTLS = true
`), 0o644))

	root, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "server_config", root.Name)
	assert.Equal(t, "ServerConfig", root.Type())
	require.Len(t, root.Children, 1)

	conn := root.Children[0]
	assert.Equal(t, "connection", conn.Name)
	assert.Equal(t, "Connection", conn.Type())
	require.Len(t, conn.Children, 3)
	assert.Equal(t, "string", conn.Children[0].Type())
	assert.Equal(t, "int64", conn.Children[1].Type())
	assert.Equal(t, "bool", conn.Children[2].Type())
}

func TestParseFileErrors(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, adapter.ErrNotFound))

	_, err = ParseFile(t.TempDir())
	assert.True(t, errors.Is(err, adapter.ErrWrongPathKind))

	unsupported := filepath.Join(t.TempDir(), "conf.toml")
	require.NoError(t, os.WriteFile(unsupported, []byte("x = 1"), 0o644))
	_, err = ParseFile(unsupported)
	assert.True(t, errors.Is(err, adapter.ErrUnsupportedFormat))

	malformed := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{"), 0o644))
	_, err = ParseFile(malformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), malformed)
}

func TestParseDeterminism(t *testing.T) {
	data := adapter.Map{
		{Key: "entries", Value: []any{
			adapter.Map{{Key: "id", Value: int64(1)}},
			adapter.Map{{Key: "label", Value: "x"}},
		}},
		{Key: "server", Value: adapter.Map{
			{Key: "connection", Value: adapter.Map{{Key: "host", Value: "a"}}},
		}},
	}

	first, err := Parse("app", data)
	require.NoError(t, err)
	second, err := Parse("app", data)
	require.NoError(t, err)

	assert.True(t, first.SameShape(second))
	assert.Equal(t, collectTypes(first), collectTypes(second))
}

func collectTypes(n *node.Node) []string {
	out := []string{n.Type()}
	for _, child := range n.Children {
		out = append(out, collectTypes(child)...)
	}

	return out
}
