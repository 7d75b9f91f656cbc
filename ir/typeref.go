package ir

import "strings"

// PathSeparator joins namespace segments in qualified type names.
const PathSeparator = "::"

// TypeRef denotes a type by name plus namespace path. Two references are
// equal iff their fully-qualified paths match.
type TypeRef struct {
	Namespace []string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Name      string   `json:"name" yaml:"name"`
	// Pointer marks an indirect reference (T* rather than T). Pointer-ness
	// is representation, not identity: it does not participate in equality.
	Pointer bool `json:"pointer,omitempty" yaml:"pointer,omitempty"`
}

// primitiveNames are the builtin scalar types of the scanned language.
// They are always by-value safe and never resolve to an API record.
var primitiveNames = map[string]bool{
	"void":     true,
	"bool":     true,
	"char":     true,
	"int":      true,
	"uint":     true,
	"short":    true,
	"long":     true,
	"float":    true,
	"double":   true,
	"int8_t":   true,
	"int16_t":  true,
	"int32_t":  true,
	"int64_t":  true,
	"uint8_t":  true,
	"uint16_t": true,
	"uint32_t": true,
	"uint64_t": true,
	"size_t":   true,
}

// Qualified returns the fully-qualified path of the reference, namespace
// segments joined with "::".
func (r TypeRef) Qualified() string {
	if len(r.Namespace) == 0 {
		return r.Name
	}
	return strings.Join(r.Namespace, PathSeparator) + PathSeparator + r.Name
}

// IsPrimitive reports whether the reference names a builtin scalar type.
func (r TypeRef) IsPrimitive() bool {
	return len(r.Namespace) == 0 && primitiveNames[r.Name]
}

// AsPointer returns a copy of the reference with indirection applied.
func (r TypeRef) AsPointer() TypeRef {
	r.Pointer = true
	return r
}

// ParseTypeRef builds a TypeRef from a fully-qualified "ns::sub::Name" path.
func ParseTypeRef(qualified string) TypeRef {
	segments := strings.Split(qualified, PathSeparator)
	if len(segments) == 1 {
		return TypeRef{Name: segments[0]}
	}
	return TypeRef{
		Namespace: segments[:len(segments)-1],
		Name:      segments[len(segments)-1],
	}
}

// QualifyName joins a namespace path and a bare name into a qualified name.
func QualifyName(namespace []string, name string) string {
	return TypeRef{Namespace: namespace, Name: name}.Qualified()
}
