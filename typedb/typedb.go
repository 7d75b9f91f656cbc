// Package typedb answers type-policy questions for the conversion pipeline:
// which types the user requested as pass-by-value, which are known opaque,
// which are trivially copyable, and which API names are allowlisted as
// garbage-collection roots. The database is a read-only oracle; nothing in
// the pipeline writes to it.
package typedb

// Database is the external type lookup consulted by the safety analyzer,
// the parser, and the garbage collector.
type Database interface {
	// IsPassByValueRequested reports whether the user explicitly asked for
	// the named type to be passed by value. A requested type that fails
	// safety verification is a pipeline error, not a silent downgrade.
	IsPassByValueRequested(name string) bool

	// IsOpaque reports whether the named type is known to be opaque:
	// reference-only, never copied by value.
	IsOpaque(name string) bool

	// IsTriviallyCopyable reports whether the named type is trivially
	// copyable/movable at the binary level.
	IsTriviallyCopyable(name string) bool

	// Allowlist returns the fully-qualified API names that define the
	// garbage-collection root set.
	Allowlist() []string
}

// Static is an in-memory Database. Embedders and tests build one directly;
// the CLI loads one from a TOML file via LoadFile.
type Static struct {
	passByValue map[string]bool
	opaque      map[string]bool
	nonTrivial  map[string]bool
	allowlist   []string
}

// NewStatic creates an empty static type database.
func NewStatic() *Static {
	return &Static{
		passByValue: make(map[string]bool),
		opaque:      make(map[string]bool),
		nonTrivial:  make(map[string]bool),
	}
}

// RequestPassByValue records user intent to pass the named types by value.
func (s *Static) RequestPassByValue(names ...string) *Static {
	for _, n := range names {
		s.passByValue[n] = true
	}
	return s
}

// MarkOpaque records the named types as reference-only.
func (s *Static) MarkOpaque(names ...string) *Static {
	for _, n := range names {
		s.opaque[n] = true
	}
	return s
}

// MarkNonTriviallyCopyable records the named types as unsafe to memcpy.
func (s *Static) MarkNonTriviallyCopyable(names ...string) *Static {
	for _, n := range names {
		s.nonTrivial[n] = true
	}
	return s
}

// Allow appends the named APIs to the garbage-collection root set.
func (s *Static) Allow(names ...string) *Static {
	s.allowlist = append(s.allowlist, names...)
	return s
}

func (s *Static) IsPassByValueRequested(name string) bool {
	return s.passByValue[name]
}

func (s *Static) IsOpaque(name string) bool {
	return s.opaque[name]
}

// IsTriviallyCopyable defaults to true: the scanner reports value-semantics
// breakers on the declaration itself, so the database only lists exceptions.
func (s *Static) IsTriviallyCopyable(name string) bool {
	return !s.nonTrivial[name]
}

func (s *Static) Allowlist() []string {
	return s.allowlist
}

var _ Database = (*Static)(nil)
