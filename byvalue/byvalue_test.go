package byvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/ir"
	"github.com/crossbind/crossbind/typedb"
)

func structDecl(name string, fields ...ir.Field) *ir.Item {
	return &ir.Item{Kind: ir.KindStruct, Name: name, Fields: fields}
}

func field(name, typeName string) ir.Field {
	return ir.Field{Name: name, Type: ir.ParseTypeRef(typeName)}
}

func TestPlainStructIsSafe(t *testing.T) {
	// Point{x:int, y:int} with no unsafe fields and no cycle
	items := []*ir.Item{
		structDecl("Point", field("x", "int"), field("y", "int")),
	}

	checker, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, ir.ByValueSafe, checker.Classification(ir.ParseTypeRef("Point")))
	assert.True(t, checker.IsSafe(ir.ParseTypeRef("Point")))
}

func TestSelfReferentialStructIsNotSafe(t *testing.T) {
	// Node{next: Node*} depends on itself
	items := []*ir.Item{
		structDecl("Node", ir.Field{Name: "next", Type: ir.TypeRef{Name: "Node", Pointer: true}}),
	}

	checker, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("Node")))
}

func TestMutualCycleBothNotSafe(t *testing.T) {
	items := []*ir.Item{
		structDecl("A", field("b", "B")),
		structDecl("B", field("a", "A")),
	}

	checker, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("A")))
	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("B")))
}

func TestUnsafetyPropagatesAlongFields(t *testing.T) {
	items := []*ir.Item{
		structDecl("Inner", field("s", "std::string")),
		structDecl("Outer", field("inner", "Inner")),
		structDecl("Clean", field("n", "int")),
	}
	db := typedb.NewStatic().MarkNonTriviallyCopyable("std::string")

	// std::string is undeclared here, but even if it were declared the
	// non-trivial mark would sink it; either way Inner and Outer follow.
	checker, err := Identify(items, db)
	require.NoError(t, err)

	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("Inner")))
	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("Outer")))
	assert.Equal(t, ir.ByValueSafe, checker.Classification(ir.ParseTypeRef("Clean")))
}

func TestUnsafetyPropagatesAlongBases(t *testing.T) {
	unsafeBase := structDecl("Base")
	unsafeBase.HasCustomDestructor = true

	items := []*ir.Item{
		unsafeBase,
		&ir.Item{
			Kind:  ir.KindStruct,
			Name:  "Derived",
			Bases: []ir.TypeRef{{Name: "Base"}},
		},
	}

	checker, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("Base")))
	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("Derived")))
}

func TestCustomCopyBreaksValueSemantics(t *testing.T) {
	decl := structDecl("Tracked", field("n", "int"))
	decl.HasCustomCopy = true

	checker, err := Identify([]*ir.Item{decl}, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("Tracked")))
	assert.Contains(t, checker.Reason("Tracked"), "copy")
}

func TestOpaqueTypeIsNotSafe(t *testing.T) {
	items := []*ir.Item{
		structDecl("Guard", field("m", "std::mutex")),
	}
	db := typedb.NewStatic().MarkOpaque("std::mutex")

	checker, err := Identify(items, db)
	require.NoError(t, err)

	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("Guard")))
}

func TestUndeclaredDependencyIsConservative(t *testing.T) {
	items := []*ir.Item{
		structDecl("Wrapper", field("h", "vendor::Handle")),
	}

	checker, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, ir.NotSafe, checker.Classification(ir.ParseTypeRef("Wrapper")))
	// The undeclared type itself was never examined
	assert.Equal(t, ir.Unknown, checker.Classification(ir.ParseTypeRef("vendor::Handle")))
}

func TestEnumsAndAliases(t *testing.T) {
	items := []*ir.Item{
		{Kind: ir.KindEnum, Name: "Color"},
		{Kind: ir.KindTypeAlias, Name: "Id", Target: &ir.TypeRef{Name: "uint64_t"}},
		structDecl("Pixel", field("c", "Color"), field("id", "Id")),
	}

	checker, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, ir.ByValueSafe, checker.Classification(ir.ParseTypeRef("Color")))
	assert.Equal(t, ir.ByValueSafe, checker.Classification(ir.ParseTypeRef("Id")))
	assert.Equal(t, ir.ByValueSafe, checker.Classification(ir.ParseTypeRef("Pixel")))
}

func TestNamespacedDeclarations(t *testing.T) {
	items := []*ir.Item{
		{
			Kind: ir.KindNamespace,
			Name: "geo",
			Items: []*ir.Item{
				structDecl("Point", field("x", "int"), field("y", "int")),
				structDecl("Segment", field("a", "geo::Point"), field("b", "geo::Point")),
			},
		},
	}

	checker, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, ir.ByValueSafe, checker.Classification(ir.ParseTypeRef("geo::Point")))
	assert.Equal(t, ir.ByValueSafe, checker.Classification(ir.ParseTypeRef("geo::Segment")))
	assert.Equal(t, ir.Unknown, checker.Classification(ir.ParseTypeRef("Point")))
}

func TestRequestedTypeFailingVerificationIsViolation(t *testing.T) {
	items := []*ir.Item{
		structDecl("Widget", field("title", "std::string")),
	}
	db := typedb.NewStatic().
		RequestPassByValue("Widget").
		MarkNonTriviallyCopyable("std::string")

	_, err := Identify(items, db)
	require.Error(t, err)
	assert.True(t, errors.IsSafetyViolation(err))
	assert.Contains(t, err.Error(), "Widget")
}

func TestRequestedSafeTypePasses(t *testing.T) {
	items := []*ir.Item{
		structDecl("Point", field("x", "int"), field("y", "int")),
	}
	db := typedb.NewStatic().RequestPassByValue("Point")

	checker, err := Identify(items, db)
	require.NoError(t, err)
	assert.True(t, checker.IsSafe(ir.ParseTypeRef("Point")))
}

func TestClassificationIsIdempotent(t *testing.T) {
	items := []*ir.Item{
		structDecl("A", field("b", "B")),
		structDecl("B", field("a", "A")),
		structDecl("Point", field("x", "int")),
		structDecl("Wrapper", field("p", "Point")),
	}

	first, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)
	second, err := Identify(items, typedb.NewStatic())
	require.NoError(t, err)

	assert.Equal(t, first.Classifications(), second.Classifications())
}
