// Package extract validates the wrapper shape of the scanned declaration
// tree and flattens it into the ordered item sequence the rest of the
// pipeline consumes.
//
// The scanner always wraps the declarations in a namespace container named
// "root". The outer tree must contain exactly that container and nothing
// else; anything unexpected is a typed error, never a panic.
package extract

import (
	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/ir"
)

// RootName is the marker name of the container the scanner wraps all
// declarations in.
const RootName = "root"

// ItemsInRoot confirms the scanned tree has the single expected root
// container and returns its items in original order.
//
// Failure modes:
//   - errors.ErrNoContent: the outer wrapper has no content, or the root
//     container is entirely absent
//   - errors.ErrUnexpectedOuterItem: a top-level item that is not the root
//     container, or more than one container
//
// A root container wrapping an empty sequence is not an error; extraction
// succeeds with an empty slice.
func ItemsInRoot(outer *ir.Item) ([]*ir.Item, error) {
	if outer == nil {
		return nil, errors.Wrap(errors.ErrNoContent, "scanned tree is empty")
	}
	if outer.Kind != ir.KindNamespace {
		return nil, errors.Wrapf(errors.ErrUnexpectedOuterItem,
			"outer wrapper %s has kind %q, expected a namespace container", outer.Name, outer.Kind)
	}
	if outer.Items == nil {
		return nil, errors.Wrapf(errors.ErrNoContent, "wrapper %s has no content", outer.Name)
	}

	var rootItems []*ir.Item
	haveRoot := false
	for _, item := range outer.Items {
		if item.Kind != ir.KindNamespace {
			return nil, errors.Wrapf(errors.ErrUnexpectedOuterItem,
				"top-level item %s of kind %q", item.Name, item.Kind)
		}
		if item.Name != RootName {
			return nil, errors.Wrapf(errors.ErrUnexpectedOuterItem,
				"top-level namespace %q, expected %q", item.Name, RootName)
		}
		if haveRoot {
			return nil, errors.Wrapf(errors.ErrUnexpectedOuterItem,
				"second top-level %q container", RootName)
		}
		haveRoot = true
		rootItems = item.Items
	}

	if !haveRoot {
		return nil, errors.Wrapf(errors.ErrNoContent, "no %q container in scanned tree", RootName)
	}
	if rootItems == nil {
		rootItems = []*ir.Item{}
	}
	return rootItems, nil
}
