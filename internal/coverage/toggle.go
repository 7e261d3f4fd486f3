package coverage

import (
	"fmt"
	"strings"

	"github.com/mna/vcoverage/lang/ast"
	"github.com/mna/vcoverage/lang/options"
)

// ToggleEligible reports whether v qualifies for toggle coverage at all
// (§4.4): its declared kind must be togglable, its name must survive the
// underscore filter unless Options.CoverageUnderscore lifts it, and its
// total bit count must not exceed Options.CoverageMaxWidth.
func ToggleEligible(opts options.Options, v *ast.VarDecl) bool {
	if !v.Kind.Togglable() {
		return false
	}
	if !opts.CoverageUnderscore && isUnderscoreName(v.Name) {
		return false
	}
	if ast.TotalBitCount(v.Type) > opts.CoverageMaxWidth {
		return false
	}
	return true
}

func isUnderscoreName(name string) bool {
	if strings.HasPrefix(name, "_") {
		return true
	}
	return strings.Contains(name, "._")
}

// toggleEnt is the comment/value/change triple described in the data model:
// a synthesized pair of AST expressions owned exclusively by the triple
// until a leaf consumes them (cloning both into the final
// ast.CoverageToggleStmt) or the triple is abandoned and must release them.
// Go's garbage collector reclaims the underlying nodes either way; release
// exists to make the ownership handoff explicit and catch accidental reuse
// after a triple has been consumed or dropped.
type toggleEnt struct {
	comment string
	value   ast.Expr
	change  ast.Expr
}

func (e *toggleEnt) release() {
	e.value = nil
	e.change = nil
}

// consume hands the triple's expressions to the caller and clears the
// triple, so a second call (or a later release) is a visible no-op rather
// than a silent double-use.
func (e *toggleEnt) consume() (ast.Expr, ast.Expr) {
	v, c := e.value, e.change
	e.value, e.change = nil, nil
	return v, c
}

// emitToggleLeaf builds one ast.CoverageToggleStmt from a consumed triple
// and appends it to the current module's statement list.
func (c *coverer) emitToggleLeaf(signalName string, ent *toggleEnt) {
	value, change := ent.consume()

	inc := c.newInc(pageToggle, signalName+ent.comment, "", 0, c.curHier)
	if inc == nil {
		return
	}

	tog := &ast.CoverageToggleStmt{
		Inc:        inc,
		ValueExpr:  ast.CloneExpr(value),
		ChangeExpr: ast.CloneExpr(change),
	}
	c.curModule.AddStmt(tog)
}

// expandToggle recursively decomposes t into scalar-bit leaves, dispatching
// on the concrete Type via a type switch rather than a per-class virtual
// method (§9's tagged-variant preference). valueAbove/changeAbove are the
// access-path expressions reaching the current level from the signal and
// its shadow companion respectively; comment accumulates the textual
// access-path suffix (".field[3].sub[2]") appended to the signal's name.
func (c *coverer) expandToggle(signalName string, t ast.Type, valueAbove, changeAbove ast.Expr, comment string) {
	switch tt := t.(type) {
	case ast.ScalarType:
		if !tt.Ranged {
			ent := &toggleEnt{comment: comment, value: ast.CloneExpr(valueAbove), change: ast.CloneExpr(changeAbove)}
			c.emitToggleLeaf(signalName, ent)
			return
		}
		for i := tt.Lo; i <= tt.Hi; i++ {
			bit := i - tt.Lo
			ent := &toggleEnt{
				comment: comment + fmt.Sprintf("[%d]", i),
				value:   &ast.BitSelectExpr{X: ast.CloneExpr(valueAbove), Bit: bit},
				change:  &ast.BitSelectExpr{X: ast.CloneExpr(changeAbove), Bit: bit},
			}
			c.emitToggleLeaf(signalName, ent)
		}

	case ast.UnpackedArrayType:
		for i := tt.Lo; i <= tt.Hi; i++ {
			v := &ast.ArrayIndexExpr{X: ast.CloneExpr(valueAbove), Index: i}
			ch := &ast.ArrayIndexExpr{X: ast.CloneExpr(changeAbove), Index: i}
			c.expandToggle(signalName, tt.Elem, v, ch, comment+fmt.Sprintf("[%d]", i))
		}

	case ast.PackedArrayType:
		w := ast.Width(tt.Elem)
		for i := tt.Lo; i <= tt.Hi; i++ {
			off := (i - tt.Lo) * w
			v := &ast.PartSelectExpr{X: ast.CloneExpr(valueAbove), Offset: off, Width: w}
			ch := &ast.PartSelectExpr{X: ast.CloneExpr(changeAbove), Offset: off, Width: w}
			c.expandToggle(signalName, tt.Elem, v, ch, comment+fmt.Sprintf("[%d]", i))
		}

	case ast.PackedStructType:
		off := 0
		for _, mem := range tt.Members {
			w := ast.Width(mem.Type)
			v := &ast.PartSelectExpr{X: ast.CloneExpr(valueAbove), Offset: off, Width: w}
			ch := &ast.PartSelectExpr{X: ast.CloneExpr(changeAbove), Offset: off, Width: w}
			c.expandToggle(signalName, mem.Type, v, ch, comment+"."+mem.Name)
			off += w
		}

	case ast.UnpackedStructType:
		for _, mem := range tt.Members {
			v := &ast.MemberExpr{X: ast.CloneExpr(valueAbove), Name: mem.Name}
			// Both access paths are built from valueAbove here, not
			// changeAbove — an inconsistency flagged rather than resolved
			// upstream; see the unpacked-struct entry in DESIGN.md.
			ch := &ast.MemberExpr{X: ast.CloneExpr(valueAbove), Name: mem.Name}
			c.expandToggle(signalName, mem.Type, v, ch, comment+"."+mem.Name)
		}

	case ast.UnionType:
		if len(tt.Members) == 0 {
			return
		}
		mem := tt.Members[0]
		v := &ast.MemberExpr{X: ast.CloneExpr(valueAbove), Name: mem.Name}
		ch := &ast.MemberExpr{X: ast.CloneExpr(changeAbove), Name: mem.Name}
		c.expandToggle(signalName, mem.Type, v, ch, comment+"."+mem.Name)

	default:
		panic("coverage: unrecognized Type in toggle expansion")
	}
}

// toggleSignal is the entry point for one eligible variable: it synthesizes
// the shadow "previous value" declaration and drives expandToggle from the
// signal itself (valueAbove) against the shadow (changeAbove).
func (c *coverer) toggleSignal(v *ast.VarDecl) {
	if !ToggleEligible(c.opts, v) {
		c.stats.Skipped++
		c.opts.Log("coverage: skipping toggle coverage for %q (ineligible)", v.Name)
		return
	}

	shadow := &ast.VarDecl{
		Name:     shadowName(v.Name),
		Type:     v.Type,
		Kind:     v.Kind,
		UnusedOK: true,
	}
	if !c.opts.DryRun {
		c.curModule.AddVar(shadow)
	}

	value := &ast.VarRefExpr{Decl: v}
	change := &ast.VarRefExpr{Decl: shadow}
	c.expandToggle(v.Name, v.Type, value, change, "")
}
