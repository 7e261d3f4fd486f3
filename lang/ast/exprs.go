package ast

import "github.com/mna/vcoverage/lang/token"

// VarRefExpr is a reference to a declared variable (the signal itself, its
// shadow companion, or a synthesized temporary). Write marks an assignment
// target.
type VarRefExpr struct {
	Start, End token.Pos
	Decl       *VarDecl
	Write      bool
}

func (VarRefExpr) expr() {}
func (n *VarRefExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *VarRefExpr) Walk(_ Visitor)                {}

// BitSelectExpr selects a single bit of X at the given zero-based bit
// position within the underlying expression (already translated from a
// declared index via "i − lo", per §4.4's ranged-scalar row).
type BitSelectExpr struct {
	X   Expr
	Bit int
}

func (BitSelectExpr) expr()                            {}
func (n *BitSelectExpr) Span() (start, end token.Pos) { return n.X.Span() }
func (n *BitSelectExpr) Walk(v Visitor)                { Walk(v, n.X) }

// PartSelectExpr selects a contiguous bit range [Offset, Offset+Width) of X,
// used for packed-array element access and packed-struct member access.
type PartSelectExpr struct {
	X             Expr
	Offset, Width int
}

func (PartSelectExpr) expr()                            {}
func (n *PartSelectExpr) Span() (start, end token.Pos) { return n.X.Span() }
func (n *PartSelectExpr) Walk(v Visitor)                { Walk(v, n.X) }

// ArrayIndexExpr selects one element of an unpacked array X at the given
// declared index.
type ArrayIndexExpr struct {
	X     Expr
	Index int
}

func (ArrayIndexExpr) expr()                            {}
func (n *ArrayIndexExpr) Span() (start, end token.Pos) { return n.X.Span() }
func (n *ArrayIndexExpr) Walk(v Visitor)                { Walk(v, n.X) }

// MemberExpr selects one named member of an unpacked struct or union X.
type MemberExpr struct {
	X    Expr
	Name string
}

func (MemberExpr) expr()                            {}
func (n *MemberExpr) Span() (start, end token.Pos) { return n.X.Span() }
func (n *MemberExpr) Walk(v Visitor)                { Walk(v, n.X) }

// BinOpExpr is a binary operation; the coverage pass only ever synthesizes
// "+" for trace-counter increments (§4.5).
type BinOpExpr struct {
	Op          string
	Left, Right Expr
}

func (BinOpExpr) expr()                            {}
func (n *BinOpExpr) Span() (start, end token.Pos) { return n.Left.Span() }
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

// ConstExpr is an unsigned 32-bit literal.
type ConstExpr struct {
	Value uint32
}

func (ConstExpr) expr()                            {}
func (n *ConstExpr) Span() (start, end token.Pos) { return token.NoPos, token.NoPos }
func (n *ConstExpr) Walk(_ Visitor)                {}

// CloneExpr deep-copies an access-path expression. ToggleEnt triples own
// their Value/Change expressions only transiently (§5, §9); once a leaf is
// emitted, the final coverage-toggle node gets its own clone so the
// original triple can be released without the final tree sharing mutable
// state with a discarded intermediate.
func CloneExpr(e Expr) Expr {
	switch e := e.(type) {
	case nil:
		return nil
	case *VarRefExpr:
		cp := *e
		return &cp
	case *BitSelectExpr:
		return &BitSelectExpr{X: CloneExpr(e.X), Bit: e.Bit}
	case *PartSelectExpr:
		return &PartSelectExpr{X: CloneExpr(e.X), Offset: e.Offset, Width: e.Width}
	case *ArrayIndexExpr:
		return &ArrayIndexExpr{X: CloneExpr(e.X), Index: e.Index}
	case *MemberExpr:
		return &MemberExpr{X: CloneExpr(e.X), Name: e.Name}
	case *BinOpExpr:
		return &BinOpExpr{Op: e.Op, Left: CloneExpr(e.Left), Right: CloneExpr(e.Right)}
	case *ConstExpr:
		cp := *e
		return &cp
	default:
		panic("ast: CloneExpr: unrecognized Expr")
	}
}
