package coverage

import (
	"github.com/dolthub/swiss"
	"github.com/mna/vcoverage/lang/ast"
)

// elsifTable is the scoped, reset-on-pass-exit side-table the design notes
// (§9) prefer over a permanent per-node field for the one-bit "elsif
// continuation" annotation: a nested *ast.IfStmt is marked by its parent
// just before the parent descends into its Else arm, and the nested if
// reads the mark on entry. Keying by node identity (a pointer) rather than
// threading an extra field through ast.IfStmt keeps the annotation entirely
// private to this pass.
type elsifTable struct {
	m *swiss.Map[ast.Node, bool]
}

func newElsifTable() *elsifTable {
	return &elsifTable{m: swiss.NewMap[ast.Node, bool](8)}
}

func (t *elsifTable) markContinuation(n ast.Node) {
	t.m.Put(n, true)
}

func (t *elsifTable) isContinuation(n ast.Node) bool {
	v, _ := t.m.Get(n)
	return v
}

// varNameMap derives unique instrumentation variable names from a textual
// base name by tracking a collision counter per base name (§4.6, the "if the
// name is a repeat within this module, append _collisionCount" rule).
type varNameMap struct {
	m *swiss.Map[string, int]
}

func newVarNameMap() *varNameMap {
	return &varNameMap{m: swiss.NewMap[string, int](8)}
}

// next returns base unchanged the first time it's requested, and
// base + "_" + n for every subsequent request with the same base.
func (m *varNameMap) next(base string) string {
	n, _ := m.m.Get(base)
	m.m.Put(base, n+1)
	if n == 0 {
		return base
	}
	return base + "_" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
