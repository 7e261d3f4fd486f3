package coverage

import (
	"github.com/mna/vcoverage/lang/ast"
	"github.com/mna/vcoverage/lang/token"
)

// Sample builds a small, self-contained netlist exercising these
// instrumented constructs: a two-legged if/else, a procedure block truncated
// by $stop, a 4-bit vector and a packed struct signal for toggle expansion,
// and a user cover statement inside a named generate block. It has no elsif
// chain, case statement, loop or task. It exists for the CLI demo, which has
// no front end to parse a tree from source.
func Sample(fs *token.FileSet) *ast.Netlist {
	f := fs.File("sample.v")
	pos := func(line int) token.Pos { return token.MakePos(f, line) }

	sigA := &ast.VarDecl{Start: pos(5), End: pos(5), Name: "a", Kind: ast.KindReg, Type: ast.ScalarType{}}
	sigC := &ast.VarDecl{Start: pos(5), End: pos(5), Name: "c", Kind: ast.KindNet, Type: ast.ScalarType{}}
	sigVec := &ast.VarDecl{Start: pos(6), End: pos(6), Name: "sig", Kind: ast.KindReg, Type: ast.ScalarType{Ranged: true, Hi: 3, Lo: 0}}
	sigStruct := &ast.VarDecl{
		Start: pos(7), End: pos(7), Name: "s", Kind: ast.KindReg,
		Type: ast.PackedStructType{Members: []ast.StructMember{
			{Name: "a", Type: ast.ScalarType{Ranged: true, Hi: 1, Lo: 0}},
			{Name: "b", Type: ast.ScalarType{Ranged: true, Hi: 2, Lo: 0}},
		}},
	}

	ifStmt := &ast.IfStmt{
		Start: pos(10), End: pos(12),
		Cond: &ast.VarRefExpr{Decl: sigC},
		Then: &ast.Block{Start: pos(11), End: pos(11), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(11), End: pos(11), Lhs: &ast.VarRefExpr{Decl: sigA, Write: true}, Rhs: &ast.ConstExpr{Value: 1}},
		}},
		Else: &ast.Block{Start: pos(12), End: pos(12), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(12), End: pos(12), Lhs: &ast.VarRefExpr{Decl: sigA, Write: true}, Rhs: &ast.ConstExpr{Value: 2}},
		}},
	}

	proc := &ast.ProcStmt{
		Start: pos(30), End: pos(34),
		Kind: ast.ProcAlways,
		Body: &ast.Block{Start: pos(30), End: pos(34), Stmts: []ast.Stmt{
			&ast.AssignStmt{Start: pos(31), End: pos(31), Lhs: &ast.VarRefExpr{Decl: sigA, Write: true}, Rhs: &ast.ConstExpr{Value: 1}},
			&ast.StopStmt{Start: pos(32), End: pos(32)},
			&ast.AssignStmt{Start: pos(33), End: pos(33), Lhs: &ast.VarRefExpr{Decl: sigA, Write: true}, Rhs: &ast.ConstExpr{Value: 2}},
		}},
	}

	cover := &ast.CoverStmt{
		Start: pos(50), End: pos(50),
		Cond: &ast.VarRefExpr{Decl: sigC},
		Body: &ast.Block{Start: pos(50), End: pos(50)},
	}
	g2 := &ast.BeginBlockStmt{
		Start: pos(49), End: pos(51), Name: "g2",
		Body: &ast.Block{Start: pos(49), End: pos(51), Stmts: []ast.Stmt{cover}},
	}
	g1 := &ast.BeginBlockStmt{
		Start: pos(48), End: pos(52), Name: "g1",
		Body: &ast.Block{Start: pos(48), End: pos(52), Stmts: []ast.Stmt{g2}},
	}

	m := &ast.Module{
		Start: pos(1), End: pos(60),
		Name: "top", PrettyName: "top",
		Vars: []*ast.VarDecl{sigA, sigC, sigVec, sigStruct},
		Stmts: []ast.Stmt{
			ifStmt,
			proc,
			g1,
		},
	}

	return &ast.Netlist{Modules: []*ast.Module{m}}
}
