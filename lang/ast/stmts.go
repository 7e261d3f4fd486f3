package ast

import "github.com/mna/vcoverage/lang/token"

// ProcKind distinguishes the three procedural-block flavors the scope
// controller treats identically (§4.1: "a procedure (always/initial/final
// block)").
type ProcKind int

const (
	ProcAlways ProcKind = iota
	ProcInitial
	ProcFinal
)

// ProcStmt is an always/initial/final procedural block.
type ProcStmt struct {
	Start, End token.Pos
	Kind       ProcKind
	Body       *Block
}

func (ProcStmt) stmt() {}
func (n *ProcStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *ProcStmt) Walk(v Visitor)                { Walk(v, n.Body) }

// LoopStmt is a for/while/repeat/forever loop.
type LoopStmt struct {
	Start, End token.Pos
	Body       *Block
}

func (LoopStmt) stmt() {}
func (n *LoopStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *LoopStmt) Walk(v Visitor)                { Walk(v, n.Body) }

// TaskStmt is a task or function definition. Foreign tasks/functions (DPI
// imports with no body owned by this compiler) are never toggle-off'd or
// handle-assigned, matching the "non-foreign task/function" qualifier in
// §4.1.
type TaskStmt struct {
	Start, End token.Pos
	Name       string
	Foreign    bool
	Body       *Block
}

func (TaskStmt) stmt() {}
func (n *TaskStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *TaskStmt) Walk(v Visitor) {
	if !n.Foreign {
		Walk(v, n.Body)
	}
}

// IfStmt is a two-legged conditional. Else is nil for a lone "if"; an
// "else if" is represented as Else containing exactly one statement, itself
// an *IfStmt (mirroring how the teacher's resolver recognizes an elseif
// chain by inspecting a single-statement false block).
type IfStmt struct {
	Start, End token.Pos
	Cond       Expr
	Then       *Block
	Else       *Block
}

func (IfStmt) stmt() {}
func (n *IfStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

// ElseIsChainedIf reports whether this if's Else block is exactly a single
// nested IfStmt, i.e. this is the head of (or a link in) an elsif chain.
func (n *IfStmt) ElseIsChainedIf() (*IfStmt, bool) {
	if n.Else == nil || len(n.Else.Stmts) != 1 {
		return nil, false
	}
	nested, ok := n.Else.Stmts[0].(*IfStmt)
	return nested, ok
}

// CaseItem is one branch of a CaseStmt. Conds is empty for the default
// item.
type CaseItem struct {
	Start, End token.Pos
	Conds      []Expr
	Body       *Block
}

func (n *CaseItem) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CaseItem) Walk(v Visitor) {
	for _, c := range n.Conds {
		Walk(v, c)
	}
	Walk(v, n.Body)
}

// CaseStmt is a case/casex/casez statement.
type CaseStmt struct {
	Start, End token.Pos
	Cond       Expr
	Items      []*CaseItem
}

func (CaseStmt) stmt() {}
func (n *CaseStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CaseStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	for _, it := range n.Items {
		Walk(v, it)
	}
}

// CoverStmt is a programmer-written cover statement, distinct from inferred
// line/branch/toggle coverage (GLOSSARY "User cover").
type CoverStmt struct {
	Start, End token.Pos
	Cond       Expr
	Body       *Block

	// Inc, if non-nil, is a pre-existing coverage-increment child attached by
	// an earlier pass; the visitor must not attach a second one (§4.1).
	Inc *CoverageIncStmt
}

func (CoverStmt) stmt() {}
func (n *CoverStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CoverStmt) Walk(v Visitor) {
	if n.Cond != nil {
		Walk(v, n.Cond)
	}
	Walk(v, n.Body)
	if n.Inc != nil {
		Walk(v, n.Inc)
	}
}

// StopStmt is a $stop-like terminator: reaching it disables coverage for the
// remainder of the enclosing scope (§4.1, P4).
type StopStmt struct {
	Start, End token.Pos
}

func (StopStmt) stmt() {}
func (n *StopStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *StopStmt) Walk(_ Visitor)                {}

// PragmaKind distinguishes pragmas the pass cares about from transparent
// ones.
type PragmaKind int

const (
	PragmaOther      PragmaKind = iota
	PragmaCoverageOff            // disables coverage for the rest of the scope, then is deleted
)

// PragmaStmt is a compiler directive. Only PragmaCoverageOff has an effect
// on this pass; everything else is transparent (left untouched, traversal
// continues past it).
type PragmaStmt struct {
	Start, End token.Pos
	Kind       PragmaKind
}

func (PragmaStmt) stmt() {}
func (n *PragmaStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *PragmaStmt) Walk(_ Visitor)                {}

// BeginBlockStmt is a named (or anonymous, Name == "") sub-block ("begin :
// name ... end"-style generate/procedural block). Named blocks extend the
// begin-hierarchy used to tag user cover points (§4.1).
type BeginBlockStmt struct {
	Start, End token.Pos
	Name       string
	Body       *Block
}

func (BeginBlockStmt) stmt() {}
func (n *BeginBlockStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *BeginBlockStmt) Walk(v Visitor)                { Walk(v, n.Body) }

// AssignStmt is a plain procedural or continuous assignment; it carries no
// special scope semantics of its own but participates in line tracking like
// any other statement.
type AssignStmt struct {
	Start, End token.Pos
	Lhs, Rhs   Expr
}

func (AssignStmt) stmt() {}
func (n *AssignStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *AssignStmt) Walk(v Visitor) {
	Walk(v, n.Lhs)
	Walk(v, n.Rhs)
}

// ExprStmt is an expression (typically a call) used as a statement.
type ExprStmt struct {
	Start, End token.Pos
	X          Expr
}

func (ExprStmt) stmt() {}
func (n *ExprStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.X) }
