package ir

// Classification is the by-value safety verdict for an aggregate type.
// Computed once by the safety analyzer, immutable afterward.
type Classification int

const (
	// Unknown means the analyzer never examined the type (it is not an
	// aggregate declared in the scanned tree).
	Unknown Classification = iota

	// ByValueSafe means the type may be copied/moved by value: it is
	// trivially copyable at the binary level and so is everything it
	// transitively depends on.
	ByValueSafe

	// NotSafe means the type must be represented as an opaque handle and
	// only ever passed by reference. Cycles in the type graph always
	// resolve here.
	NotSafe
)

func (c Classification) String() string {
	switch c {
	case ByValueSafe:
		return "by-value-safe"
	case NotSafe:
		return "not-safe"
	default:
		return "unknown"
	}
}
