package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints a tree as an indented, one-node-per-line listing,
// following the teacher's own Visitor-driven printer: depth tracks via
// VisitEnter/VisitExit and each line is indented to match.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer
}

// Print walks n, writing one indented line per node.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	if _, err := fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth-1), describe(n)); err != nil {
		p.err = err
		return nil
	}
	return p
}

// describe renders a one-line, implementation-specific label for n; it
// intentionally does not try to be a full source-level unparser, only a
// readable node-kind summary for the demo CLI and for eyeballing test
// fixtures.
func describe(n Node) string {
	switch n := n.(type) {
	case *Netlist:
		return "Netlist"
	case *Module:
		kind := "module"
		if n.IsClass {
			kind = "class"
		}
		return fmt.Sprintf("%s %s", kind, n.Name)
	case *Block:
		return "block"
	case *ProcStmt:
		return "proc"
	case *LoopStmt:
		return "loop"
	case *TaskStmt:
		return fmt.Sprintf("task %s", n.Name)
	case *IfStmt:
		return "if"
	case *CaseItem:
		return "case-item"
	case *CaseStmt:
		return "case"
	case *CoverStmt:
		return "cover"
	case *StopStmt:
		return "$stop"
	case *PragmaStmt:
		return "pragma"
	case *BeginBlockStmt:
		if n.Name == "" {
			return "begin"
		}
		return fmt.Sprintf("begin : %s", n.Name)
	case *AssignStmt:
		return "assign"
	case *ExprStmt:
		return "expr-stmt"
	case *CoverageDeclStmt:
		return fmt.Sprintf("coverage-decl %s %q lines=%q col=%d hier=%q", n.Page, n.Comment, n.Lines, n.Column, n.Hier)
	case *CoverageIncStmt:
		return "coverage-inc"
	case *CoverageToggleStmt:
		return "coverage-toggle"
	case *VarRefExpr:
		name := "<nil>"
		if n.Decl != nil {
			name = n.Decl.Name
		}
		return fmt.Sprintf("var-ref %s", name)
	case *BitSelectExpr:
		return fmt.Sprintf("bit-select[%d]", n.Bit)
	case *PartSelectExpr:
		return fmt.Sprintf("part-select[%d+:%d]", n.Offset, n.Width)
	case *ArrayIndexExpr:
		return fmt.Sprintf("array-index[%d]", n.Index)
	case *MemberExpr:
		return fmt.Sprintf("member .%s", n.Name)
	case *BinOpExpr:
		return fmt.Sprintf("binop %s", n.Op)
	case *ConstExpr:
		return fmt.Sprintf("const %d", n.Value)
	default:
		return fmt.Sprintf("%T", n)
	}
}
