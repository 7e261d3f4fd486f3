package ast

import "github.com/mna/vcoverage/lang/token"

// Netlist is the root of the elaborated tree: a flat list of modules (and
// classes, which share the Module shape here since both host a statement
// list and member variables).
type Netlist struct {
	Modules []*Module
}

func (n *Netlist) Span() (start, end token.Pos) { return token.NoPos, token.NoPos }
func (n *Netlist) Walk(v Visitor) {
	for _, m := range n.Modules {
		Walk(v, m)
	}
}

// Module is a module, or a class (IsClass true) sharing the same shape.
type Module struct {
	Start, End token.Pos

	// Name is the internal (possibly mangled) name; PrettyName is the
	// human-readable hierarchical name used to build page names.
	Name       string
	PrettyName string

	// Top marks the synthesized top-level shell module, which opts out of
	// coverage entirely (ScopeState.in_module_off).
	Top bool

	// IsClass marks this as a class definition; trace variables are not
	// synthesized inside classes (§4.5).
	IsClass bool

	Vars  []*VarDecl
	Stmts []Stmt
}

func (n *Module) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Module) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// AddStmt appends a statement to the module's top-level statement list; the
// emitter uses this to attach newly synthesized declaration/increment nodes.
func (n *Module) AddStmt(s Stmt) { n.Stmts = append(n.Stmts, s) }

// AddVar appends a module-level variable (signal declaration or synthesized
// temporary).
func (n *Module) AddVar(v *VarDecl) { n.Vars = append(n.Vars, v) }

// Block is an ordered list of statements sharing a lexical scope.
type Block struct {
	Start, End token.Pos
	Stmts      []Stmt
}

func (n *Block) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// Prepend inserts s at the front of the block's statement list; used by the
// branch instrumentation (§4.3) to place a coverage increment before the
// arm's original statements.
func (b *Block) Prepend(s Stmt) {
	b.Stmts = append([]Stmt{s}, b.Stmts...)
}

// Append adds s to the end of the block's statement list.
func (b *Block) Append(s Stmt) {
	b.Stmts = append(b.Stmts, s)
}
