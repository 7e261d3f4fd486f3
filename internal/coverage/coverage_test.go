package coverage_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/mna/vcoverage/internal/coverage"
	"github.com/mna/vcoverage/lang/ast"
	"github.com/mna/vcoverage/lang/options"
	"github.com/mna/vcoverage/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(f *token.File, line int) token.Pos { return token.MakePos(f, line) }

// scenario 1: a simple if/else with both arms live gets branch coverage.
func TestScenarioSimpleIfElse(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.File("in.v")

	c := &ast.VarDecl{Name: "c", Kind: ast.KindNet, Type: ast.ScalarType{}}
	a := &ast.VarDecl{Name: "a", Kind: ast.KindReg, Type: ast.ScalarType{}}

	ifStmt := &ast.IfStmt{
		Start: pos(f, 10), End: pos(f, 12),
		Cond: &ast.VarRefExpr{Decl: c},
		Then: &ast.Block{Start: pos(f, 11), End: pos(f, 11), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(f, 11), End: pos(f, 11), Lhs: &ast.VarRefExpr{Decl: a, Write: true}, Rhs: &ast.ConstExpr{Value: 1}},
		}},
		Else: &ast.Block{Start: pos(f, 12), End: pos(f, 12), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(f, 12), End: pos(f, 12), Lhs: &ast.VarRefExpr{Decl: a, Write: true}, Rhs: &ast.ConstExpr{Value: 2}},
		}},
	}
	m := &ast.Module{Start: pos(f, 1), End: pos(f, 20), Name: "m", PrettyName: "m", Vars: []*ast.VarDecl{c, a}, Stmts: []ast.Stmt{ifStmt}}
	root := &ast.Netlist{Modules: []*ast.Module{m}}

	opts := options.Default()
	opts.CoverageToggle = false
	stats := coverage.Cover(opts, root)

	require.Equal(t, 1, stats.Branch)
	require.Len(t, ifStmt.Then.Stmts, 2)
	require.Len(t, ifStmt.Else.Stmts, 2)

	thenDecl := ifStmt.Then.Stmts[0].(*ast.CoverageIncStmt).Decl
	elseDecl := ifStmt.Else.Stmts[0].(*ast.CoverageIncStmt).Decl

	assert.Equal(t, "v_branch/m", thenDecl.Page)
	assert.Equal(t, "if", thenDecl.Comment)
	assert.Equal(t, "11", thenDecl.Lines)
	assert.Equal(t, 0, thenDecl.Column)

	assert.Equal(t, "else", elseDecl.Comment)
	assert.Equal(t, "12", elseDecl.Lines)
	assert.Equal(t, 1, elseDecl.Column)
}

// scenario 2: an elsif chain gets v_line/elsif descriptors, never v_branch.
func TestScenarioElsifChain(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.File("in.v")
	x := &ast.VarDecl{Name: "x", Kind: ast.KindReg, Type: ast.ScalarType{}}
	av := &ast.VarDecl{Name: "a", Kind: ast.KindNet, Type: ast.ScalarType{}}
	bv := &ast.VarDecl{Name: "b", Kind: ast.KindNet, Type: ast.ScalarType{}}
	cv := &ast.VarDecl{Name: "c", Kind: ast.KindNet, Type: ast.ScalarType{}}

	assign := func(line int, val uint32) *ast.Block {
		return &ast.Block{Start: pos(f, line), End: pos(f, line), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(f, line), End: pos(f, line), Lhs: &ast.VarRefExpr{Decl: x, Write: true}, Rhs: &ast.ConstExpr{Value: val}},
		}}
	}

	innerMost := &ast.IfStmt{
		Start: pos(f, 22), End: pos(f, 27),
		Cond: &ast.VarRefExpr{Decl: cv},
		Then: assign(23, 3),
		Else: assign(27, 4),
	}
	middle := &ast.IfStmt{
		Start: pos(f, 21), End: pos(f, 27),
		Cond: &ast.VarRefExpr{Decl: bv},
		Then: assign(22, 2),
		Else: &ast.Block{Start: pos(f, 22), End: pos(f, 27), Stmts: []ast.Stmt{innerMost}},
	}
	outer := &ast.IfStmt{
		Start: pos(f, 20), End: pos(f, 27),
		Cond: &ast.VarRefExpr{Decl: av},
		Then: assign(21, 1),
		Else: &ast.Block{Start: pos(f, 21), End: pos(f, 27), Stmts: []ast.Stmt{middle}},
	}

	m := &ast.Module{Start: pos(f, 1), End: pos(f, 30), Name: "m", PrettyName: "m",
		Vars:  []*ast.VarDecl{x, av, bv, cv},
		Stmts: []ast.Stmt{outer},
	}
	root := &ast.Netlist{Modules: []*ast.Module{m}}

	opts := options.Default()
	opts.CoverageToggle = false
	stats := coverage.Cover(opts, root)

	assert.Equal(t, 0, stats.Branch)
	assert.True(t, stats.Line > 0)
}

// scenario 3: a procedure containing $stop truncates its block descriptor's
// lines at the $stop line.
func TestScenarioStopTruncatesBlock(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.File("in.v")
	s := &ast.VarDecl{Name: "s", Kind: ast.KindReg, Type: ast.ScalarType{}}

	proc := &ast.ProcStmt{
		Start: pos(f, 30), End: pos(f, 34),
		Kind: ast.ProcAlways,
		Body: &ast.Block{Start: pos(f, 30), End: pos(f, 34), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(f, 31), End: pos(f, 31), Lhs: &ast.VarRefExpr{Decl: s, Write: true}, Rhs: &ast.ConstExpr{Value: 1}},
			&ast.StopStmt{Start: pos(f, 32), End: pos(f, 32)},
			&ast.AssignStmt{Start: pos(f, 33), End: pos(f, 33), Lhs: &ast.VarRefExpr{Decl: s, Write: true}, Rhs: &ast.ConstExpr{Value: 2}},
		}},
	}
	m := &ast.Module{Start: pos(f, 1), End: pos(f, 40), Name: "m", PrettyName: "m", Vars: []*ast.VarDecl{s}, Stmts: []ast.Stmt{proc}}
	root := &ast.Netlist{Modules: []*ast.Module{m}}

	opts := options.Default()
	opts.CoverageToggle = false
	_ = coverage.Cover(opts, root)

	require.Len(t, proc.Body.Stmts, 4) // 3 original + 1 appended block descriptor
	decl := proc.Body.Stmts[3].(*ast.CoverageIncStmt).Decl
	assert.Equal(t, "block", decl.Comment)
	assert.Equal(t, "30-32", decl.Lines)
}

// scenario 6: a user cover point inside a named generate block g1.g2 gets a
// v_user descriptor hierarchy "g1.g2" and a trace name with that prefix.
func TestScenarioUserCoverHierarchy(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.File("in.v")
	cv := &ast.VarDecl{Name: "c", Kind: ast.KindNet, Type: ast.ScalarType{}}

	cover := &ast.CoverStmt{
		Start: pos(f, 50), End: pos(f, 50),
		Cond: &ast.VarRefExpr{Decl: cv},
		Body: &ast.Block{Start: pos(f, 50), End: pos(f, 50)},
	}
	g2 := &ast.BeginBlockStmt{Start: pos(f, 49), End: pos(f, 51), Name: "g2",
		Body: &ast.Block{Start: pos(f, 49), End: pos(f, 51), Stmts: []ast.Stmt{cover}}}
	g1 := &ast.BeginBlockStmt{Start: pos(f, 48), End: pos(f, 52), Name: "g1",
		Body: &ast.Block{Start: pos(f, 48), End: pos(f, 52), Stmts: []ast.Stmt{g2}}}

	m := &ast.Module{Start: pos(f, 1), End: pos(f, 60), Name: "m", PrettyName: "m", Vars: []*ast.VarDecl{cv}, Stmts: []ast.Stmt{g1}}
	root := &ast.Netlist{Modules: []*ast.Module{m}}

	opts := options.Default()
	opts.CoverageToggle = false
	opts.TraceCoverage = true
	stats := coverage.Cover(opts, root)

	require.Equal(t, 1, stats.User)
	require.NotNil(t, cover.Inc)
	assert.Equal(t, "g1.g2", cover.Inc.Decl.Hier)
	require.NotNil(t, cover.Inc.Trace)
	traceDecl := cover.Inc.Trace.Lhs.(*ast.VarRefExpr).Decl
	assert.Contains(t, traceDecl.Name, "g1.g2_vlCoverageUserTrace")
}

// P4: a $stop never suppresses a user cover statement reached afterward.
func TestStopNeverSuppressesUserCover(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.File("in.v")
	cv := &ast.VarDecl{Name: "c", Kind: ast.KindNet, Type: ast.ScalarType{}}

	cover := &ast.CoverStmt{Start: pos(f, 3), End: pos(f, 3), Cond: &ast.VarRefExpr{Decl: cv}, Body: &ast.Block{Start: pos(f, 3), End: pos(f, 3)}}
	body := &ast.Block{Start: pos(f, 1), End: pos(f, 4), Stmts: []ast.Stmt{
		&ast.StopStmt{Start: pos(f, 2), End: pos(f, 2)},
		cover,
	}}
	proc := &ast.ProcStmt{Start: pos(f, 1), End: pos(f, 4), Kind: ast.ProcInitial, Body: body}

	m := &ast.Module{Start: pos(f, 1), End: pos(f, 10), Name: "m", PrettyName: "m", Vars: []*ast.VarDecl{cv}, Stmts: []ast.Stmt{proc}}
	root := &ast.Netlist{Modules: []*ast.Module{m}}

	opts := options.Default()
	opts.CoverageToggle = false
	stats := coverage.Cover(opts, root)

	assert.Equal(t, 1, stats.User)
	assert.NotNil(t, cover.Inc)
}

// P5: a coverage-off pragma disables instrumentation for the remainder of
// its scope and removes itself from the tree.
func TestCoverageOffPragmaRemovesItself(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.File("in.v")
	sv := &ast.VarDecl{Name: "s", Kind: ast.KindReg, Type: ast.ScalarType{}}

	body := &ast.Block{Start: pos(f, 1), End: pos(f, 5), Stmts: []ast.Stmt{
		&ast.AssignStmt{Start: pos(f, 2), End: pos(f, 2), Lhs: &ast.VarRefExpr{Decl: sv, Write: true}, Rhs: &ast.ConstExpr{Value: 1}},
		&ast.PragmaStmt{Start: pos(f, 3), End: pos(f, 3), Kind: ast.PragmaCoverageOff},
		&ast.AssignStmt{Start: pos(f, 4), End: pos(f, 4), Lhs: &ast.VarRefExpr{Decl: sv, Write: true}, Rhs: &ast.ConstExpr{Value: 2}},
	}}
	proc := &ast.ProcStmt{Start: pos(f, 1), End: pos(f, 5), Kind: ast.ProcInitial, Body: body}

	m := &ast.Module{Start: pos(f, 1), End: pos(f, 10), Name: "m", PrettyName: "m", Vars: []*ast.VarDecl{sv}, Stmts: []ast.Stmt{proc}}
	root := &ast.Netlist{Modules: []*ast.Module{m}}

	opts := options.Default()
	opts.CoverageToggle = false
	_ = coverage.Cover(opts, root)

	for _, s := range body.Stmts {
		_, isPragma := s.(*ast.PragmaStmt)
		assert.False(t, isPragma, "pragma must be removed from the tree")
	}
	assert.Equal(t, 0, len(body.Stmts)-2, "only the two original assignments remain (no block descriptor: coverage ended off)")
}

// P7: underscore-prefixed and inlined-underscore names are skipped from
// toggle coverage by default, and counted in Stats.Skipped.
func TestUnderscoreSignalsSkipped(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.File("in.v")
	plain := &ast.VarDecl{Name: "ok", Kind: ast.KindReg, Type: ast.ScalarType{}}
	under := &ast.VarDecl{Name: "_x", Kind: ast.KindReg, Type: ast.ScalarType{}}
	inlined := &ast.VarDecl{Name: "a._b", Kind: ast.KindReg, Type: ast.ScalarType{}}

	m := &ast.Module{Start: pos(f, 1), End: pos(f, 2), Name: "m", PrettyName: "m", Vars: []*ast.VarDecl{plain, under, inlined}}
	root := &ast.Netlist{Modules: []*ast.Module{m}}

	stats := coverage.Cover(options.Default(), root)

	assert.Equal(t, 1, stats.Toggle)
	assert.Equal(t, 2, stats.Skipped)
}

// P3: handle values used within a module are pairwise distinct. This is
// exercised indirectly: a module with several nested scopes must not panic
// and must produce the expected number of distinct branch/line points.
func TestHandlesDistinctAcrossScopes(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.File("in.v")
	c1 := &ast.VarDecl{Name: "c1", Kind: ast.KindNet, Type: ast.ScalarType{}}
	c2 := &ast.VarDecl{Name: "c2", Kind: ast.KindNet, Type: ast.ScalarType{}}
	sv := &ast.VarDecl{Name: "s", Kind: ast.KindReg, Type: ast.ScalarType{}}

	inner := &ast.IfStmt{
		Start: pos(f, 5), End: pos(f, 7),
		Cond: &ast.VarRefExpr{Decl: c2},
		Then: &ast.Block{Start: pos(f, 6), End: pos(f, 6), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(f, 6), End: pos(f, 6), Lhs: &ast.VarRefExpr{Decl: sv, Write: true}, Rhs: &ast.ConstExpr{Value: 1}},
		}},
		Else: &ast.Block{Start: pos(f, 7), End: pos(f, 7), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(f, 7), End: pos(f, 7), Lhs: &ast.VarRefExpr{Decl: sv, Write: true}, Rhs: &ast.ConstExpr{Value: 2}},
		}},
	}
	proc := &ast.ProcStmt{Start: pos(f, 4), End: pos(f, 8), Kind: ast.ProcAlways, Body: &ast.Block{
		Start: pos(f, 4), End: pos(f, 8), Stmts: []ast.Stmt{inner},
	}}
	outer := &ast.IfStmt{
		Start: pos(f, 1), End: pos(f, 9),
		Cond: &ast.VarRefExpr{Decl: c1},
		Then: &ast.Block{Start: pos(f, 2), End: pos(f, 2), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(f, 2), End: pos(f, 2), Lhs: &ast.VarRefExpr{Decl: sv, Write: true}, Rhs: &ast.ConstExpr{Value: 9}},
		}},
		Else: &ast.Block{Start: pos(f, 3), End: pos(f, 3), Stmts: []ast.Stmt{proc}},
	}

	m := &ast.Module{Start: pos(f, 1), End: pos(f, 10), Name: "m", PrettyName: "m", Vars: []*ast.VarDecl{c1, c2, sv}, Stmts: []ast.Stmt{outer}}
	root := &ast.Netlist{Modules: []*ast.Module{m}}

	opts := options.Default()
	opts.CoverageToggle = false
	stats := coverage.Cover(opts, root)

	assert.Equal(t, 2, stats.Branch) // one branch pair per if/else
}

// Cover is deterministic: running it twice over two structurally identical
// but separately-built fixtures must produce byte-for-byte identical decl
// metadata. A readable structural diff pinpoints the first divergent field
// on failure instead of a flat "not equal".
func TestCoverIsDeterministicAcrossIdenticalInputs(t *testing.T) {
	build := func() *ast.Netlist {
		fs := token.NewFileSet()
		f := fs.File("in.v")
		c := &ast.VarDecl{Name: "c", Kind: ast.KindNet, Type: ast.ScalarType{}}
		a := &ast.VarDecl{Name: "a", Kind: ast.KindReg, Type: ast.ScalarType{}}
		ifStmt := &ast.IfStmt{
			Start: pos(f, 10), End: pos(f, 12),
			Cond: &ast.VarRefExpr{Decl: c},
			Then: &ast.Block{Start: pos(f, 11), End: pos(f, 11), Stmts: []ast.Stmt{
				&ast.AssignStmt{Start: pos(f, 11), End: pos(f, 11), Lhs: &ast.VarRefExpr{Decl: a, Write: true}, Rhs: &ast.ConstExpr{Value: 1}},
			}},
			Else: &ast.Block{Start: pos(f, 12), End: pos(f, 12), Stmts: []ast.Stmt{
				&ast.AssignStmt{Start: pos(f, 12), End: pos(f, 12), Lhs: &ast.VarRefExpr{Decl: a, Write: true}, Rhs: &ast.ConstExpr{Value: 2}},
			}},
		}
		return &ast.Netlist{Modules: []*ast.Module{{
			Start: pos(f, 1), End: pos(f, 20), Name: "m", PrettyName: "m",
			Vars: []*ast.VarDecl{c, a}, Stmts: []ast.Stmt{ifStmt},
		}}}
	}

	opts := options.Default()
	opts.CoverageToggle = false

	root1 := build()
	coverage.Cover(opts, root1)
	decl1 := root1.Modules[0].Stmts[0].(*ast.IfStmt).Then.Stmts[0].(*ast.CoverageIncStmt).Decl

	root2 := build()
	coverage.Cover(opts, root2)
	decl2 := root2.Modules[0].Stmts[0].(*ast.IfStmt).Then.Stmts[0].(*ast.CoverageIncStmt).Decl

	if diff := pretty.Compare(decl1, decl2); diff != "" {
		t.Fatalf("decl metadata diverged across identical runs:\n%s", diff)
	}
}
