package ast_test

import (
	"testing"

	"github.com/mna/vcoverage/lang/ast"
	"github.com/stretchr/testify/assert"
)

func TestScalarWidth(t *testing.T) {
	assert.Equal(t, 1, ast.ScalarType{}.Width())
	assert.Equal(t, 4, ast.ScalarType{Ranged: true, Hi: 3, Lo: 0}.Width())
	assert.Equal(t, 4, ast.ScalarType{Ranged: true, Hi: 7, Lo: 4}.Width())
}

func TestWidthAggregates(t *testing.T) {
	packedArr := ast.PackedArrayType{Lo: 0, Hi: 3, Elem: ast.ScalarType{Ranged: true, Hi: 1, Lo: 0}}
	assert.Equal(t, 8, ast.Width(packedArr))

	packedStruct := ast.PackedStructType{Members: []ast.StructMember{
		{Name: "a", Type: ast.ScalarType{Ranged: true, Hi: 1, Lo: 0}},
		{Name: "b", Type: ast.ScalarType{Ranged: true, Hi: 2, Lo: 0}},
	}}
	assert.Equal(t, 5, ast.Width(packedStruct))

	union := ast.UnionType{Members: []ast.StructMember{
		{Name: "a", Type: ast.ScalarType{Ranged: true, Hi: 1, Lo: 0}},
		{Name: "b", Type: ast.ScalarType{Ranged: true, Hi: 7, Lo: 0}},
	}}
	assert.Equal(t, 8, ast.Width(union))
}

func TestWidthPanicsOnUnpacked(t *testing.T) {
	assert.Panics(t, func() {
		ast.Width(ast.UnpackedArrayType{Lo: 0, Hi: 3, Elem: ast.ScalarType{}})
	})
}

func TestTotalBitCount(t *testing.T) {
	// P2: a 4-bit vector must produce exactly 4 toggle leaves.
	vec := ast.ScalarType{Ranged: true, Hi: 3, Lo: 0}
	assert.Equal(t, 4, ast.TotalBitCount(vec))

	// A packed struct {a:2, b:3} produces 5 leaves (scenario 5).
	packedStruct := ast.PackedStructType{Members: []ast.StructMember{
		{Name: "a", Type: ast.ScalarType{Ranged: true, Hi: 1, Lo: 0}},
		{Name: "b", Type: ast.ScalarType{Ranged: true, Hi: 2, Lo: 0}},
	}}
	assert.Equal(t, 5, ast.TotalBitCount(packedStruct))

	// An unpacked array of 3 scalars contributes count * elem width.
	unpackedArr := ast.UnpackedArrayType{Lo: 0, Hi: 2, Elem: ast.ScalarType{Ranged: true, Hi: 1, Lo: 0}}
	assert.Equal(t, 6, ast.TotalBitCount(unpackedArr))

	// A union only counts its first member.
	union := ast.UnionType{Members: []ast.StructMember{
		{Name: "a", Type: ast.ScalarType{Ranged: true, Hi: 1, Lo: 0}},
		{Name: "b", Type: ast.ScalarType{Ranged: true, Hi: 7, Lo: 0}},
	}}
	assert.Equal(t, 2, ast.TotalBitCount(union))

	assert.Equal(t, 0, ast.TotalBitCount(ast.UnionType{}))
}

func TestElementCount(t *testing.T) {
	assert.Equal(t, 1, ast.ElementCount(ast.ScalarType{Ranged: true, Hi: 3, Lo: 0}))

	unpackedArr := ast.UnpackedArrayType{Lo: 0, Hi: 3, Elem: ast.ScalarType{}}
	assert.Equal(t, 4, ast.ElementCount(unpackedArr))
}
