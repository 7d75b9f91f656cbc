// Package byvalue decides which aggregate types may be passed by value and
// which must be treated as opaque reference-only handles.
//
// A type is by-value safe iff it is trivially copyable at the binary level
// (no custom destructor or copy semantics, not known opaque) and every
// field/base type it depends on is itself by-value safe. Cycles in the type
// graph are always resolved to NotSafe; a cyclic aggregate is never
// silently declared safe.
//
// Field and base type references in the scanned tree are fully qualified by
// the scanner, so dependency resolution is pure name lookup.
package byvalue

import (
	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/ir"
	"github.com/crossbind/crossbind/typedb"
)

// Checker holds the computed classification for every aggregate type
// declared in the scanned tree. Immutable once Identify returns.
type Checker struct {
	class   map[string]ir.Classification
	reasons map[string]string
}

// dfs colors for cycle detection
type color int

const (
	white color = iota // not yet visited
	gray               // on the current resolution path
	black              // fully resolved
)

type resolver struct {
	decls   map[string]*ir.Item
	db      typedb.Database
	colors  map[string]color
	checker *Checker
}

// Identify computes a by-value safety classification for every aggregate
// type declared in items, then verifies that every type the user requested
// as pass-by-value actually classifies safe. A requested type that fails
// verification aborts with a SafetyViolation naming the type; it is never
// silently downgraded.
func Identify(items []*ir.Item, db typedb.Database) (*Checker, error) {
	checker := &Checker{
		class:   make(map[string]ir.Classification),
		reasons: make(map[string]string),
	}
	r := &resolver{
		decls:   make(map[string]*ir.Item),
		db:      db,
		colors:  make(map[string]color),
		checker: checker,
	}

	collectDecls(items, nil, r.decls)

	for name := range r.decls {
		r.resolve(name)
	}

	// Verify user intent against the computed classifications.
	for name := range r.decls {
		if !db.IsPassByValueRequested(name) {
			continue
		}
		if checker.class[name] != ir.ByValueSafe {
			reason := checker.reasons[name]
			if reason == "" {
				reason = "failed by-value safety verification"
			}
			return nil, errors.NewSafetyViolation(name, reason)
		}
	}

	return checker, nil
}

// collectDecls indexes type declarations by qualified name, walking nested
// namespaces.
func collectDecls(items []*ir.Item, namespace []string, decls map[string]*ir.Item) {
	for _, item := range items {
		switch item.Kind {
		case ir.KindNamespace:
			collectDecls(item.Items, append(namespace, item.Name), decls)
		case ir.KindStruct, ir.KindEnum, ir.KindTypeAlias:
			decls[ir.QualifyName(namespace, item.Name)] = item
		}
	}
}

// resolve classifies the named type via post-order traversal of its
// dependency graph. Returns the classification a dependent should see:
// declared types yield their computed classification, primitives yield
// ByValueSafe, and undeclared external types yield NotSafe (conservative)
// without being recorded in the checker.
func (r *resolver) resolve(name string) ir.Classification {
	decl, declared := r.decls[name]
	if !declared {
		if r.db.IsOpaque(name) {
			return ir.NotSafe
		}
		// Unknown external type: never examined, so the checker reports
		// Unknown for it, but dependents must treat it as unsafe.
		return ir.NotSafe
	}

	switch r.colors[name] {
	case black:
		return r.checker.class[name]
	case gray:
		// The type depends, directly or transitively, on itself. Every
		// member of the cycle ends up NotSafe via propagation.
		r.fail(name, "type participates in a dependency cycle")
		return ir.NotSafe
	}
	r.colors[name] = gray
	defer func() { r.colors[name] = black }()

	switch decl.Kind {
	case ir.KindEnum:
		r.pass(name)
		return ir.ByValueSafe

	case ir.KindTypeAlias:
		if decl.Target == nil || decl.Target.IsPrimitive() {
			r.pass(name)
			return ir.ByValueSafe
		}
		if c := r.resolve(decl.Target.Qualified()); c != ir.ByValueSafe {
			r.fail(name, "aliases unsafe type "+decl.Target.Qualified())
			return ir.NotSafe
		}
		r.pass(name)
		return ir.ByValueSafe

	case ir.KindStruct:
		return r.resolveStruct(name, decl)

	default:
		r.fail(name, "not an aggregate type declaration")
		return ir.NotSafe
	}
}

func (r *resolver) resolveStruct(name string, decl *ir.Item) ir.Classification {
	if decl.HasCustomDestructor {
		r.fail(name, "has a custom destructor")
		return ir.NotSafe
	}
	if decl.HasCustomCopy {
		r.fail(name, "has custom copy semantics")
		return ir.NotSafe
	}
	if r.db.IsOpaque(name) {
		r.fail(name, "known opaque type")
		return ir.NotSafe
	}
	if !r.db.IsTriviallyCopyable(name) {
		r.fail(name, "not trivially copyable")
		return ir.NotSafe
	}

	deps := make([]ir.TypeRef, 0, len(decl.Fields)+len(decl.Bases))
	for _, f := range decl.Fields {
		deps = append(deps, f.Type)
	}
	deps = append(deps, decl.Bases...)

	for _, dep := range deps {
		if dep.IsPrimitive() {
			continue
		}
		if c := r.resolve(dep.Qualified()); c != ir.ByValueSafe {
			r.fail(name, "depends on unsafe type "+dep.Qualified())
			return ir.NotSafe
		}
	}

	r.pass(name)
	return ir.ByValueSafe
}

func (r *resolver) pass(name string) {
	r.checker.class[name] = ir.ByValueSafe
}

func (r *resolver) fail(name, reason string) {
	r.checker.class[name] = ir.NotSafe
	if _, seen := r.checker.reasons[name]; !seen {
		r.checker.reasons[name] = reason
	}
}

// Classification returns the verdict for a type reference. Types never
// examined by the analyzer report Unknown.
func (c *Checker) Classification(ref ir.TypeRef) ir.Classification {
	return c.class[ref.Qualified()]
}

// IsSafe reports whether a reference may be passed by value: primitives
// always, declared types iff they classified ByValueSafe.
func (c *Checker) IsSafe(ref ir.TypeRef) bool {
	if ref.IsPrimitive() {
		return true
	}
	return c.class[ref.Qualified()] == ir.ByValueSafe
}

// Reason returns the recorded explanation for a NotSafe verdict, if any.
func (c *Checker) Reason(name string) string {
	return c.reasons[name]
}

// Classifications returns a copy of the full classification mapping.
func (c *Checker) Classifications() map[string]ir.Classification {
	out := make(map[string]ir.Classification, len(c.class))
	for k, v := range c.class {
		out[k] = v
	}
	return out
}
