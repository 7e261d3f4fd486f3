package ast

import "github.com/mna/vcoverage/lang/token"

// VarKind classifies a declared variable for toggle-eligibility purposes
// (§4.4's "declared kind is not a togglable signal type").
type VarKind int

const (
	// KindNet is a continuously-driven net (wire-like signal).
	KindNet VarKind = iota
	// KindReg is a procedurally-assigned register/variable.
	KindReg
	// KindParam is a compile-time parameter; never togglable.
	KindParam
	// KindEvent is an event/semaphore-like handle; never togglable.
	KindEvent
	// KindClassHandle is a reference to a class instance; never togglable.
	KindClassHandle
)

// Togglable reports whether this kind of declaration is eligible to
// participate in toggle coverage at all (independent of name/width
// filtering, see coverage.ToggleEligible).
func (k VarKind) Togglable() bool {
	return k == KindNet || k == KindReg
}

// VarDecl is a signal or variable declaration: a module-level port/net/reg,
// or a synthesized temporary (shadow variable, trace counter).
type VarDecl struct {
	Start, End token.Pos

	Name string
	Type Type
	Kind VarKind

	// Traceable marks a synthesized 32-bit counter that the trace backend
	// should sample (§4.5 point 1).
	Traceable bool

	// UnusedOK suppresses unused-signal warnings for synthesized shadow
	// variables, which are written but may never be read back by name.
	UnusedOK bool
}

func (n *VarDecl) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *VarDecl) Walk(_ Visitor)                {}
