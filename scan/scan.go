// Package scan loads the declaration tree produced by the upstream
// header-scanning tool. The scanner serializes the tree as JSON; YAML is
// accepted as well for hand-written fixtures.
package scan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/ir"
)

// Format selects the serialization of a scanned tree document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// LoadTree reads a scanned declaration tree from disk, sniffing the format
// from the file extension (.json, .yaml, .yml).
func LoadTree(path string) (*ir.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scanned tree %s", path)
	}

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}

	return DecodeTree(data, format)
}

// DecodeTree parses a scanned declaration tree document. Decode failures
// are I/O-shaped errors, distinct from the MalformedInput taxonomy which
// covers structurally unexpected trees.
func DecodeTree(data []byte, format Format) (*ir.Item, error) {
	var root ir.Item
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, errors.Wrap(err, "failed to decode scanned tree as JSON")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, errors.Wrap(err, "failed to decode scanned tree as YAML")
		}
	default:
		return nil, errors.Newf("unsupported tree format %q", format)
	}
	return &root, nil
}
