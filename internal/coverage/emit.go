package coverage

import "github.com/mna/vcoverage/lang/ast"

// pageName builds "page/module_pretty_name" (§4.5), where page is the
// coverage family (v_line, v_branch, v_toggle or v_user), with
// Options.PagePrefix prepended to the result.
func (c *coverer) pageName(page string) string {
	return c.opts.PagePrefix + page + "/" + c.curModule.PrettyName
}

// newInc is the instrumentation emitter (§4.5): it builds a paired
// coverage-declaration + coverage-increment, optionally chaining a trace
// counter when trace coverage is enabled for a non-class module, and
// returns the increment for the caller to attach wherever is appropriate
// (the declaration travels as the increment's structural child, see
// ast.CoverageIncStmt.Walk). It never attaches the increment itself (only
// a synthesized trace counter variable is added to the module) — callers
// decide whether that means prepending into an arm, appending into a
// block, assigning into a CoverStmt.Inc field, or letting a
// CoverageToggleStmt wrap it for the module's statement list.
//
// In dry-run mode (Options.DryRun) the stats are still recorded, but no
// node is built and no trace name is reserved; nil is returned.
func (c *coverer) newInc(page, comment, lines string, column int, hier string) *ast.CoverageIncStmt {
	return c.newIncAt(page, comment, lines, 0, column, hier)
}

// newIncAt is newInc with an explicit source line for trace-name synthesis
// (§4.6), used where the caller already knows the coverage point's first
// line from its line set.
func (c *coverer) newIncAt(page, comment, lines string, line, column int, hier string) *ast.CoverageIncStmt {
	c.stats.record(page)

	if c.opts.DryRun {
		return nil
	}

	decl := &ast.CoverageDeclStmt{
		Page:    c.pageName(page),
		Comment: comment,
		Lines:   lines,
		Column:  column,
		Hier:    hier,
	}
	inc := &ast.CoverageIncStmt{Decl: decl}

	if c.opts.TraceCoverage && !c.curModule.IsClass {
		typeTag := traceTypeTag(page)
		name := traceName(c.varNames, c.curFile, line, typeTag, hier)
		tmp := &ast.VarDecl{
			Name:      name,
			Type:      ast.ScalarType{Ranged: true, Hi: 31, Lo: 0},
			Kind:      ast.KindReg,
			Traceable: true,
			UnusedOK:  true,
		}
		c.curModule.AddVar(tmp)
		inc.Trace = &ast.AssignStmt{
			Lhs: &ast.VarRefExpr{Decl: tmp, Write: true},
			Rhs: &ast.BinOpExpr{
				Op:    "+",
				Left:  &ast.VarRefExpr{Decl: tmp},
				Right: &ast.ConstExpr{Value: 1},
			},
		}
	}

	return inc
}

// traceTypeTag maps a page prefix to the type-tag component of a trace
// variable name (§4.6).
func traceTypeTag(page string) string {
	switch page {
	case pageLine:
		return "Line"
	case pageBranch:
		return "Branch"
	case pageToggle:
		return "Toggle"
	case pageUser:
		return "User"
	default:
		return "Line"
	}
}

const (
	pageLine   = "v_line"
	pageBranch = "v_branch"
	pageToggle = "v_toggle"
	pageUser   = "v_user"
)
