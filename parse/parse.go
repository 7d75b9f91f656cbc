// Package parse converts extracted declaration items into API records,
// deciding per type between the owned-value and opaque-handle
// representation based on the by-value safety analysis.
package parse

import (
	"strings"

	"github.com/crossbind/crossbind/byvalue"
	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/ir"
	"github.com/crossbind/crossbind/typedb"
)

// UtilitiesNamespace holds the helper APIs the scanner injects for its own
// string-conversion shims. With exclude-utilities set they are skipped
// during parsing, before garbage collection runs — so exclusion wins over
// allowlist reachability: no record exists for the collector to keep.
const UtilitiesNamespace = "crossbind_utils"

// Results is the parser's output: the API records in declaration order,
// plus use statements grouped by originating namespace. The use-statement
// table exists purely for code emission, never for graph analysis.
type Results struct {
	APIs         []ir.API
	UseStmtsByNS map[string][]ir.UseStmt
}

// Parser converts declaration items into API records.
type Parser struct {
	checker *byvalue.Checker
	db      typedb.Database
	policy  UnsafePolicy
}

// NewParser creates a parser over a completed safety analysis.
func NewParser(checker *byvalue.Checker, db typedb.Database, policy UnsafePolicy) *Parser {
	return &Parser{checker: checker, db: db, policy: policy}
}

// ConvertItems parses every declaration item into API records. Parsing is
// fail-fast: the first unrecognized declaration aborts the run with enough
// context to locate the offending item.
func (p *Parser) ConvertItems(items []*ir.Item, excludeUtilities bool) (*Results, error) {
	res := &Results{
		APIs:         []ir.API{},
		UseStmtsByNS: make(map[string][]ir.UseStmt),
	}
	if err := p.convertNamespace(items, nil, excludeUtilities, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Parser) convertNamespace(items []*ir.Item, namespace []string, excludeUtilities bool, res *Results) error {
	for _, item := range items {
		switch item.Kind {
		case ir.KindNamespace:
			if excludeUtilities && item.Name == UtilitiesNamespace {
				continue
			}
			if err := p.convertNamespace(item.Items, append(namespace, item.Name), excludeUtilities, res); err != nil {
				return err
			}

		case ir.KindFunction:
			res.APIs = append(res.APIs, p.convertFunction(item, namespace))

		case ir.KindStruct, ir.KindEnum, ir.KindTypeAlias:
			res.APIs = append(res.APIs, p.convertType(item, namespace))

		case ir.KindConst:
			res.APIs = append(res.APIs, p.convertConst(item, namespace))

		case ir.KindUse:
			nsKey := strings.Join(namespace, ir.PathSeparator)
			res.UseStmtsByNS[nsKey] = append(res.UseStmtsByNS[nsKey], ir.UseStmt{Path: item.Path})
			res.APIs = append(res.APIs, ir.API{
				Name: ir.QualifyName(namespace, item.Name),
				Kind: ir.APIUse,
				Item: item,
			})

		default:
			return errors.NewUnrecognizedDeclaration(string(item.Kind), ir.QualifyName(namespace, item.Name))
		}
	}
	return nil
}

// convertFunction builds a function record. Any parameter or return type
// that is not by-value safe is rewritten to pointer indirection; the
// scanned item itself is never mutated.
func (p *Parser) convertFunction(item *ir.Item, namespace []string) ir.API {
	rewritten := *item
	rewritten.Params = make([]ir.Param, len(item.Params))
	copy(rewritten.Params, item.Params)

	deps := newDepSet()
	for i, param := range rewritten.Params {
		deps.add(param.Type)
		if p.needsIndirection(param.Type) {
			rewritten.Params[i].Type = param.Type.AsPointer()
		}
	}
	if item.Ret != nil {
		deps.add(*item.Ret)
		if p.needsIndirection(*item.Ret) {
			ret := item.Ret.AsPointer()
			rewritten.Ret = &ret
		}
	}

	return ir.API{
		Name:           ir.QualifyName(namespace, item.Name),
		Kind:           ir.APIFunction,
		Deps:           deps.refs,
		RequiresUnsafe: p.requiresUnsafe(item),
		Item:           &rewritten,
	}
}

func (p *Parser) convertType(item *ir.Item, namespace []string) ir.API {
	name := ir.QualifyName(namespace, item.Name)

	deps := newDepSet()
	for _, f := range item.Fields {
		deps.add(f.Type)
	}
	for _, b := range item.Bases {
		deps.add(b)
	}
	if item.Target != nil {
		deps.add(*item.Target)
	}

	return ir.API{
		Name:           name,
		Kind:           ir.APIType,
		Deps:           deps.refs,
		Classification: p.checker.Classification(ir.ParseTypeRef(name)),
		Item:           item,
	}
}

func (p *Parser) convertConst(item *ir.Item, namespace []string) ir.API {
	deps := newDepSet()
	if item.Type != nil {
		deps.add(*item.Type)
	}
	return ir.API{
		Name: ir.QualifyName(namespace, item.Name),
		Kind: ir.APIConst,
		Deps: deps.refs,
		Item: item,
	}
}

// needsIndirection reports whether a by-value occurrence of the reference
// must be rewritten to a pointer in the generated signature.
func (p *Parser) needsIndirection(ref ir.TypeRef) bool {
	return !ref.Pointer && !p.checker.IsSafe(ref)
}

func (p *Parser) requiresUnsafe(item *ir.Item) bool {
	switch p.policy {
	case AllFunctionsUnsafe:
		return true
	case PerFunctionMarked:
		return item.Unsafe
	default:
		return false
	}
}

// depSet accumulates non-primitive type-reference edges, deduplicated by
// qualified path, preserving first-mention order.
type depSet struct {
	refs []ir.TypeRef
	seen map[string]bool
}

func newDepSet() *depSet {
	return &depSet{seen: make(map[string]bool)}
}

func (d *depSet) add(ref ir.TypeRef) {
	if ref.IsPrimitive() {
		return
	}
	q := ref.Qualified()
	if d.seen[q] {
		return
	}
	d.seen[q] = true
	// Edges carry identity only; indirection is a representation detail
	ref.Pointer = false
	d.refs = append(d.refs, ref)
}
