package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossbind/crossbind/ir"
)

const jsonTree = `{
  "kind": "namespace",
  "name": "bindings",
  "items": [
    {
      "kind": "namespace",
      "name": "root",
      "items": [
        {
          "kind": "struct",
          "name": "Point",
          "fields": [
            {"name": "x", "type": {"name": "int"}},
            {"name": "y", "type": {"name": "int"}}
          ]
        },
        {
          "kind": "function",
          "name": "translate",
          "params": [{"name": "p", "type": {"name": "Point"}}],
          "ret": {"name": "Point"}
        }
      ]
    }
  ]
}`

const yamlTree = `
kind: namespace
name: bindings
items:
  - kind: namespace
    name: root
    items:
      - kind: const
        name: MAX_POINTS
        type: {name: int}
        value: "64"
`

func TestDecodeTreeJSON(t *testing.T) {
	root, err := DecodeTree([]byte(jsonTree), FormatJSON)
	require.NoError(t, err)

	require.Len(t, root.Items, 1)
	inner := root.Items[0]
	assert.Equal(t, ir.KindNamespace, inner.Kind)
	assert.Equal(t, "root", inner.Name)
	require.Len(t, inner.Items, 2)

	point := inner.Items[0]
	assert.Equal(t, ir.KindStruct, point.Kind)
	require.Len(t, point.Fields, 2)
	assert.Equal(t, "int", point.Fields[0].Type.Name)

	fn := inner.Items[1]
	assert.Equal(t, ir.KindFunction, fn.Kind)
	require.NotNil(t, fn.Ret)
	assert.Equal(t, "Point", fn.Ret.Name)
}

func TestDecodeTreeYAML(t *testing.T) {
	root, err := DecodeTree([]byte(yamlTree), FormatYAML)
	require.NoError(t, err)

	require.Len(t, root.Items, 1)
	require.Len(t, root.Items[0].Items, 1)
	c := root.Items[0].Items[0]
	assert.Equal(t, ir.KindConst, c.Kind)
	assert.Equal(t, "64", c.Value)
	require.NotNil(t, c.Type)
	assert.Equal(t, "int", c.Type.Name)
}

func TestDecodeTreeErrors(t *testing.T) {
	_, err := DecodeTree([]byte("{not json"), FormatJSON)
	require.Error(t, err)

	_, err = DecodeTree([]byte("ok"), Format("xml"))
	require.Error(t, err)
}

func TestLoadTreeSniffsFormat(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "tree.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonTree), 0644))
	root, err := LoadTree(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "bindings", root.Name)

	yamlPath := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlTree), 0644))
	root, err = LoadTree(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "bindings", root.Name)

	_, err = LoadTree(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
