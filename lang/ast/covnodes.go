package ast

import "github.com/mna/vcoverage/lang/token"

// CoverageDeclStmt is the static metadata for one coverage point: page name,
// textual comment, covered-lines string, column offset, and hierarchy
// (§4.5, §6).
type CoverageDeclStmt struct {
	Start, End token.Pos

	Page    string // v_line, v_branch, v_toggle or v_user, then "/" and the module's pretty name
	Comment string
	Lines   string // coalesced line-range string, e.g. "3-5,7,9-10"
	Column  int    // disambiguates same-line/same-page points sharing a column
	Hier    string // hierarchical name (begin-hierarchy for user cover points)
}

func (CoverageDeclStmt) stmt() {}
func (n *CoverageDeclStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CoverageDeclStmt) Walk(_ Visitor)                {}

// CoverageIncStmt increments the counter associated with Decl. An optional
// chained Trace assignment ("temp := temp + 1") is attached when trace
// coverage is enabled for a non-class module (§4.5 point 2).
type CoverageIncStmt struct {
	Start, End token.Pos

	Decl  *CoverageDeclStmt
	Trace *AssignStmt // nil unless trace_coverage synthesized a counter
}

func (CoverageIncStmt) stmt() {}
func (n *CoverageIncStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CoverageIncStmt) Walk(v Visitor) {
	// Decl is walked here (rather than separately attached to the module's
	// statement list) so that every increment structurally owns its
	// declaration, satisfying the "every new subtree is linked as a child of
	// an existing node" ownership rule regardless of which block the
	// increment itself ends up prepended or appended to.
	Walk(v, n.Decl)
	if n.Trace != nil {
		Walk(v, n.Trace)
	}
}

// CoverageToggleStmt is one scalar-bit toggle check: an increment tied to a
// declaration, plus the cloned access-path expressions for the signal's
// current value and its shadow "previous value" companion (§4.4 leaf rule).
type CoverageToggleStmt struct {
	Start, End token.Pos

	Inc         *CoverageIncStmt
	ValueExpr   Expr
	ChangeExpr  Expr
}

func (CoverageToggleStmt) stmt() {}
func (n *CoverageToggleStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CoverageToggleStmt) Walk(v Visitor) {
	Walk(v, n.Inc)
	Walk(v, n.ValueExpr)
	Walk(v, n.ChangeExpr)
}
