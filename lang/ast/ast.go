// Package ast defines the abstract syntax tree operated on by the coverage
// pass: netlists, modules, procedural statements, expressions, and the
// packed/unpacked type system the toggle expander decomposes.
//
// It follows the Node/Expr/Stmt/Visitor shape of a tree-walking compiler
// front end (Walk calls Visit on enter, recurses into children, then calls
// Visit again on exit), the same pattern a resolver or type-checker pass
// would use to annotate an already-parsed tree. Construction of this AST
// from HDL source text is out of scope here; the node constructors below are
// the minimal surface "surrounding compiler infrastructure" would provide.
package ast

import "github.com/mna/vcoverage/lang/token"

// Node is any node participating in the coverage pass's traversal.
type Node interface {
	// Span reports the start and end source position of the node.
	Span() (start, end token.Pos)

	// Walk visits this node's children with v.
	Walk(v Visitor)
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// VisitDirection indicates whether a call to Visit is entering or exiting a
// node.
type VisitDirection int

const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor is called for every node Walk encounters. Returning a nil Visitor
// from a VisitEnter call skips the node's children.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc adapts a function to the Visitor interface; it is only ever
// called on VisitEnter (matching the coverage pass, which never needs to
// observe exits generically — each visitor method handles its own
// save/restore discipline instead).
type VisitorFunc func(n Node) Visitor

func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		return nil
	}
	return f(n)
}

// Walk implements the enter/recurse/exit protocol for any Node.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if w := v.Visit(n, VisitEnter); w != nil {
		n.Walk(w)
		w.Visit(n, VisitExit)
	}
}
