package ir

// APIKind identifies the unit an API record describes.
type APIKind string

const (
	APIFunction APIKind = "function"
	APIType     APIKind = "type"
	APIConst    APIKind = "const"
	APIUse      APIKind = "use"
)

// API is one record of the intermediate representation. Records are created
// by the parser and read-only afterward; the garbage collector deletes
// records wholesale but never mutates survivors.
type API struct {
	// Name is the unique fully-qualified name of the record.
	Name string `json:"name"`

	Kind APIKind `json:"kind"`

	// Deps are the outgoing type-reference edges: every type this record
	// mentions in its signature or definition.
	Deps []TypeRef `json:"deps,omitempty"`

	// Classification is the safety verdict, populated for APIType records.
	Classification Classification `json:"classification,omitempty"`

	// RequiresUnsafe marks APIFunction records whose generated wrapper
	// needs an unsafe-call annotation.
	RequiresUnsafe bool `json:"requires_unsafe,omitempty"`

	// Item is the declaration payload carried through to code generation.
	// The parser may substitute a rewritten copy (e.g. with pointer
	// indirection applied); it never aliases the scanned tree mutably.
	Item *Item `json:"-"`
}

// UseStmt is a use/import statement collected per originating namespace.
// Needed only for code emission, never for graph analysis.
type UseStmt struct {
	Path string `json:"path"`
}
