// Package ir holds the intermediate representation of the conversion
// pipeline: the scanned declaration tree, type references, by-value safety
// classifications, and the API records the pipeline transforms.
package ir

// ItemKind identifies the shape of a declaration tree node.
type ItemKind string

const (
	KindFunction  ItemKind = "function"
	KindStruct    ItemKind = "struct"
	KindEnum      ItemKind = "enum"
	KindTypeAlias ItemKind = "alias"
	KindConst     ItemKind = "const"
	KindUse       ItemKind = "use"
	KindNamespace ItemKind = "namespace"
)

// Param is a function parameter.
type Param struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeRef `json:"type" yaml:"type"`
}

// Field is a named member of an aggregate type.
type Field struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeRef `json:"type" yaml:"type"`
}

// Item is a node of the scanned declaration tree. Items are immutable once
// extracted; the parser reads them and builds API records, it never writes
// back into the tree.
//
// Which fields are populated depends on Kind:
//
//	KindFunction:  Params, Ret, Unsafe
//	KindStruct:    Fields, Bases, HasCustomDestructor, HasCustomCopy
//	KindEnum:      (name only)
//	KindTypeAlias: Target
//	KindConst:     Type, Value
//	KindUse:       Path
//	KindNamespace: Items
type Item struct {
	Kind ItemKind `json:"kind" yaml:"kind"`
	Name string   `json:"name" yaml:"name"`

	// Function declarations
	Params []Param  `json:"params,omitempty" yaml:"params,omitempty"`
	Ret    *TypeRef `json:"ret,omitempty" yaml:"ret,omitempty"`
	// Unsafe carries the scanner's per-function unsafe marker, consulted
	// only under the PerFunctionMarked policy.
	Unsafe bool `json:"unsafe,omitempty" yaml:"unsafe,omitempty"`

	// Aggregate type declarations
	Fields []Field   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Bases  []TypeRef `json:"bases,omitempty" yaml:"bases,omitempty"`
	// Binary-layout facts reported by the scanner. Either flag breaks
	// value semantics and forces the opaque-handle representation.
	HasCustomDestructor bool `json:"has_custom_destructor,omitempty" yaml:"has_custom_destructor,omitempty"`
	HasCustomCopy       bool `json:"has_custom_copy,omitempty" yaml:"has_custom_copy,omitempty"`

	// Alias declarations
	Target *TypeRef `json:"target,omitempty" yaml:"target,omitempty"`

	// Const declarations
	Type  *TypeRef `json:"type,omitempty" yaml:"type,omitempty"`
	Value string   `json:"value,omitempty" yaml:"value,omitempty"`

	// Use declarations
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Namespace containers
	Items []*Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// IsAggregate reports whether the item declares a structured type with
// fields/bases (as opposed to a primitive, enum, or opaque handle).
func (it *Item) IsAggregate() bool {
	return it.Kind == KindStruct
}
