// Package codegen emits the bridge declaration artifact consumed by the
// downstream bridging-layer macro.
//
// Emission is deterministic: include directives keep their original order,
// use statements are grouped by namespace and sorted, and declarations are
// sorted by qualified name.
package codegen

import (
	"sort"
	"strings"

	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/ir"
)

// Input is everything an emitter needs: the surviving API records, the
// original include list, the use-statement table from parsing, and the
// name of the container the scanner wrapped the declarations in.
type Input struct {
	APIs         []ir.API
	IncludeList  []string
	UseStmtsByNS map[string][]ir.UseStmt
	RootName     string
}

// Results is the terminal output bundle of the pipeline.
type Results struct {
	// Bridge is the generated declaration artifact.
	Bridge string

	// Diagnostics are ordered human-readable notes gathered during
	// emission (e.g. opaque-handle downgrades).
	Diagnostics []string

	// APIs are the surviving records, for embedders that post-process
	// the intermediate representation directly.
	APIs []ir.API
}

// Generator is the interface for target-specific bridge emitters.
type Generator interface {
	// GenerateFile renders the bridge artifact and emission diagnostics
	GenerateFile(in *Input) (string, []string, error)

	// FileExtension returns the artifact's file extension (e.g. "bridge")
	FileExtension() string

	// Language returns the emitter's target name
	Language() string
}

// Generate runs the default bridge emitter over the pruned API records.
func Generate(apis []ir.API, includeList []string, useStmts map[string][]ir.UseStmt, rootName string) (*Results, error) {
	gen := &BridgeGenerator{}
	bridge, diags, err := gen.GenerateFile(&Input{
		APIs:         apis,
		IncludeList:  includeList,
		UseStmtsByNS: useStmts,
		RootName:     rootName,
	})
	if err != nil {
		return nil, err
	}
	return &Results{Bridge: bridge, Diagnostics: diags, APIs: apis}, nil
}

// BridgeGenerator emits the declaration DSL the bridging-layer macro
// expands.
type BridgeGenerator struct{}

func (g *BridgeGenerator) FileExtension() string { return "bridge" }
func (g *BridgeGenerator) Language() string      { return "bridge" }

func (g *BridgeGenerator) GenerateFile(in *Input) (string, []string, error) {
	var sb strings.Builder
	var diags []string

	sb.WriteString("// AUTO-GENERATED by crossbind - DO NOT EDIT\n")
	sb.WriteString("// Source container: " + in.RootName + "\n\n")

	for _, include := range in.IncludeList {
		sb.WriteString("#include \"" + include + "\"\n")
	}
	if len(in.IncludeList) > 0 {
		sb.WriteString("\n")
	}

	g.writeUseStmts(&sb, in.UseStmtsByNS)

	decls := make([]ir.API, 0, len(in.APIs))
	for _, api := range in.APIs {
		if api.Kind == ir.APIUse {
			// Already covered by the use-statement table
			continue
		}
		decls = append(decls, api)
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })

	for i, api := range decls {
		if api.Item == nil {
			return "", nil, errors.Wrapf(errors.ErrGraphInconsistency,
				"record %s has no declaration payload", api.Name)
		}
		text, diag := g.renderDecl(api)
		sb.WriteString(text)
		if diag != "" {
			diags = append(diags, diag)
		}
		if i < len(decls)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String(), diags, nil
}

func (g *BridgeGenerator) writeUseStmts(sb *strings.Builder, byNS map[string][]ir.UseStmt) {
	if len(byNS) == 0 {
		return
	}
	nsKeys := make([]string, 0, len(byNS))
	for ns := range byNS {
		nsKeys = append(nsKeys, ns)
	}
	sort.Strings(nsKeys)

	for _, ns := range nsKeys {
		stmts := byNS[ns]
		paths := make([]string, 0, len(stmts))
		for _, s := range stmts {
			paths = append(paths, s.Path)
		}
		sort.Strings(paths)

		if ns != "" {
			sb.WriteString("// namespace " + ns + "\n")
		}
		for _, p := range paths {
			sb.WriteString("use " + p + ";\n")
		}
		sb.WriteString("\n")
	}
}

// renderDecl emits one declaration, returning its text and an optional
// diagnostic note.
func (g *BridgeGenerator) renderDecl(api ir.API) (string, string) {
	switch api.Kind {
	case ir.APIFunction:
		return g.renderFunction(api), ""
	case ir.APIType:
		return g.renderType(api)
	case ir.APIConst:
		return g.renderConst(api), ""
	default:
		// Unreachable after the APIUse filter, kept total for safety
		return "// " + api.Name + "\n", ""
	}
}

func (g *BridgeGenerator) renderFunction(api ir.API) string {
	var sb strings.Builder
	if api.RequiresUnsafe {
		sb.WriteString("unsafe ")
	}
	sb.WriteString("fn " + api.Name + "(")
	for i, p := range api.Item.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name + ": " + typeString(p.Type))
	}
	sb.WriteString(")")
	if api.Item.Ret != nil && api.Item.Ret.Name != "void" {
		sb.WriteString(" -> " + typeString(*api.Item.Ret))
	}
	sb.WriteString(";\n")
	return sb.String()
}

func (g *BridgeGenerator) renderType(api ir.API) (string, string) {
	switch api.Item.Kind {
	case ir.KindEnum:
		return "enum " + api.Name + ";\n", ""
	case ir.KindTypeAlias:
		if api.Item.Target != nil {
			return "type " + api.Name + " = " + typeString(*api.Item.Target) + ";\n", ""
		}
		return "type " + api.Name + ";\n", ""
	}

	if api.Classification != ir.ByValueSafe {
		// Opaque handle: declared, never defined, only ever passed by
		// reference downstream
		return "type " + api.Name + "; // opaque\n",
			"representing " + api.Name + " as an opaque handle"
	}

	var sb strings.Builder
	sb.WriteString("struct " + api.Name)
	for i, b := range api.Item.Bases {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(typeString(b))
	}
	sb.WriteString(" {\n")
	for _, f := range api.Item.Fields {
		sb.WriteString("    " + f.Name + ": " + typeString(f.Type) + ",\n")
	}
	sb.WriteString("}\n")
	return sb.String(), ""
}

func (g *BridgeGenerator) renderConst(api ir.API) string {
	typ := "int"
	if api.Item.Type != nil {
		typ = typeString(*api.Item.Type)
	}
	return "const " + api.Name + ": " + typ + " = " + api.Item.Value + ";\n"
}

func typeString(ref ir.TypeRef) string {
	if ref.Pointer {
		return "*" + ref.Qualified()
	}
	return ref.Qualified()
}
