package parse

import "github.com/crossbind/crossbind/errors"

// UnsafePolicy controls whether generated function wrappers carry an
// unsafe-call annotation.
type UnsafePolicy int

const (
	// AllFunctionsSafe generates every wrapper as a safe call.
	AllFunctionsSafe UnsafePolicy = iota

	// AllFunctionsUnsafe annotates every wrapper as unsafe.
	AllFunctionsUnsafe

	// PerFunctionMarked honors the scanner's per-function unsafe marker.
	PerFunctionMarked
)

func (p UnsafePolicy) String() string {
	switch p {
	case AllFunctionsSafe:
		return "safe"
	case AllFunctionsUnsafe:
		return "unsafe"
	case PerFunctionMarked:
		return "marked"
	default:
		return "invalid"
	}
}

// ParseUnsafePolicy converts a CLI/config string into an UnsafePolicy.
func ParseUnsafePolicy(s string) (UnsafePolicy, error) {
	switch s {
	case "safe":
		return AllFunctionsSafe, nil
	case "unsafe":
		return AllFunctionsUnsafe, nil
	case "marked":
		return PerFunctionMarked, nil
	default:
		return AllFunctionsSafe, errors.Newf("unknown unsafe policy %q (want safe, unsafe, or marked)", s)
	}
}
