// Package coverage implements the coverage-instrumentation pass: a single
// tree-rewriting visitor that walks a fully-elaborated netlist and inserts
// line, branch, toggle, and user-cover instrumentation nodes in place.
package coverage

import (
	"github.com/mna/vcoverage/lang/ast"
	"github.com/mna/vcoverage/lang/options"
	"github.com/mna/vcoverage/lang/token"
)

// Stats summarizes how many descriptors of each family the pass attached,
// plus how many signals were silently skipped by the toggle eligibility
// filter (§7.1's "informational log line" category, counted as well as
// logged).
type Stats struct {
	Line, Branch, Toggle, User int
	Skipped                    int
}

func (s *Stats) record(page string) {
	switch page {
	case pageLine:
		s.Line++
	case pageBranch:
		s.Branch++
	case pageToggle:
		s.Toggle++
	case pageUser:
		s.User++
	}
}

// coverer carries the pass's per-run state: the visitor record the design
// notes (§9) prefer over process-wide statics for the handle counter,
// variable-name map, and begin-hierarchy.
type coverer struct {
	opts   options.Options
	stats  *Stats
	elsifs *elsifTable

	// Reset on entry to each top-level module.
	varNames      *varNameMap
	lineSets      map[int]*lineSet
	handleCounter int
	curModule     *ast.Module
	curFile       *token.File
	curHier       string
}

func (c *coverer) newHandle() int {
	c.handleCounter++
	return c.handleCounter
}

// consumeLines reads and coalesces a handle's accumulated line set, then
// frees it: "line sets live until their handle's descriptor is emitted,
// then they become garbage" (§3). It also returns the set's smallest line,
// used by trace-name synthesis (§4.6).
func (c *coverer) consumeLines(handle int) (lines string, firstLine int) {
	ls := c.lineSets[handle]
	if ls != nil {
		lines, firstLine = ls.coalesce(), ls.first()
	}
	delete(c.lineSets, handle)
	return lines, firstLine
}

// trackNode inserts n's line range into the current scope's line set, when
// that scope currently has coverage on and n's file matches the scope's
// anchor (§4.2).
func (c *coverer) trackNode(state scopeState, n ast.Node) {
	if !state.covering() {
		return
	}
	start, end := n.Span()
	if start.File == nil || state.anchorFile == nil || start.File != state.anchorFile {
		return
	}
	ls := c.lineSets[state.handle]
	if ls == nil {
		return
	}
	for line := start.Line; line <= end.Line; line++ {
		ls.add(line)
	}
}

// descendScope pushes a fresh handle/line-set scope derived from parent,
// anchored to block's own source file, traverses block's statements under
// it, writes back the (possibly pragma-filtered) statement list, and
// returns the resulting state for the caller to inspect (e.g. to decide
// whether to emit a trailing descriptor). forceOn, if non-nil, overrides
// the inherited `on` value (used by user cover points, §4.1).
func (c *coverer) descendScope(parent scopeState, block *ast.Block, forceOn *bool) scopeState {
	state := parent
	state.handle = c.newHandle()
	c.lineSets[state.handle] = newLineSet()
	state.anchorFile = fileOf(block.Start)
	if forceOn != nil {
		state.on = *forceOn
	}

	newStmts, final := c.visitStmts(state, block.Stmts)
	block.Stmts = newStmts
	return final
}

// visitStmts is the shared statement-list driver used for both a module's
// top-level statements and any block's statements: it dispatches each
// statement to its specialization, tracks lines, deletes coverage-off
// pragmas from the rebuilt list, and threads the mutable `on` flag through
// $stop and pragma handling so later statements in the same scope see it.
func (c *coverer) visitStmts(state scopeState, stmts []ast.Stmt) ([]ast.Stmt, scopeState) {
	kept := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		c.trackNode(state, s)

		switch n := s.(type) {
		case *ast.PragmaStmt:
			if n.Kind == ast.PragmaCoverageOff {
				state.on = false
				continue // deleted from the tree (P5)
			}
			kept = append(kept, s)

		case *ast.StopStmt:
			kept = append(kept, s)
			state.on = false

		case *ast.IfStmt:
			c.visitIf(state, n)
			kept = append(kept, s)

		case *ast.CaseStmt:
			c.visitCase(state, n)
			kept = append(kept, s)

		case *ast.ProcStmt:
			c.visitBlockScope(state, n, n.Body)
			kept = append(kept, s)

		case *ast.LoopStmt:
			c.visitBlockScope(state, n, n.Body)
			kept = append(kept, s)

		case *ast.TaskStmt:
			if !n.Foreign {
				c.visitBlockScope(state, n, n.Body)
			}
			kept = append(kept, s)

		case *ast.CoverStmt:
			c.visitCover(state, n)
			kept = append(kept, s)

		case *ast.BeginBlockStmt:
			state = c.visitBeginBlock(state, n)
			kept = append(kept, s)

		default:
			kept = append(kept, s)
		}
	}
	return kept, state
}

// visitBlockScope handles the shared procedure/loop/task rule (§4.1): push,
// mark the toggle-off region (a no-op in this AST, since in-block
// variable declarations are not represented as statements here; toggle
// coverage is driven entirely from Module.Vars), fresh handle, descend,
// and on exit emit one "block" line descriptor if coverage is still on.
// A $stop among the body's own statements only ends line tracking: the
// descriptor is still emitted, with the lines up to and including the
// $stop. A coverage-off pragma reached before any such $stop drops it.
//
// header's own opening line is tracked into the new scope before its body
// is visited (the "always @* begin" line is itself part of the block), so
// a $stop partway through the body still yields a line set that starts at
// the construct's header rather than its first statement. If/else arms and
// case items have no equivalent header line of their own and don't do this
// (see visitIf, visitCase).
func (c *coverer) visitBlockScope(parent scopeState, header ast.Node, body *ast.Block) {
	state := parent
	state.handle = c.newHandle()
	c.lineSets[state.handle] = newLineSet()
	state.anchorFile = fileOf(body.Start)
	c.trackHeaderLine(state, header)

	stopped := false
	for _, s := range body.Stmts {
		if _, ok := s.(*ast.StopStmt); ok {
			stopped = true
			break
		}
		if p, ok := s.(*ast.PragmaStmt); ok && p.Kind == ast.PragmaCoverageOff {
			break
		}
	}

	newStmts, final := c.visitStmts(state, body.Stmts)
	body.Stmts = newStmts

	lines, firstLine := c.consumeLines(final.handle)
	if !c.opts.CoverageLine || !(final.covering() || (stopped && state.covering())) {
		return
	}
	inc := c.newIncAt(pageLine, "block", lines, firstLine, 0, c.curHier)
	if inc != nil {
		body.Append(inc)
	}
}

// trackHeaderLine inserts only n's start line (not its full range) into the
// current scope's line set.
func (c *coverer) trackHeaderLine(state scopeState, n ast.Node) {
	if !state.covering() {
		return
	}
	start, _ := n.Span()
	if start.File == nil || state.anchorFile == nil || start.File != state.anchorFile {
		return
	}
	if ls := c.lineSets[state.handle]; ls != nil {
		ls.add(start.Line)
	}
}

// visitIf implements the branch/elsif classification of §4.3.
func (c *coverer) visitIf(parent scopeState, n *ast.IfStmt) {
	thenState := c.descendScope(parent, n.Then, nil)

	hasElse := n.Else != nil
	var elseState scopeState
	nested, isElsif := n.ElseIsChainedIf()
	if hasElse {
		if isElsif {
			c.elsifs.markContinuation(nested)
		}
		elseState = c.descendScope(parent, n.Else, nil)
	}

	isContinuation := c.elsifs.isContinuation(n)
	firstElsif := isElsif && !isContinuation
	contElsif := isElsif && isContinuation
	finalElsif := isContinuation && !isElsif && hasElse

	thenLines, thenFirst := c.consumeLines(thenState.handle)
	var elseLines string
	var elseFirst int
	if hasElse {
		elseLines, elseFirst = c.consumeLines(elseState.handle)
	}

	if !c.opts.CoverageLine {
		return
	}

	switch {
	case !firstElsif && !contElsif && !finalElsif && hasElse && thenState.covering() && elseState.covering():
		ifInc := c.newIncAt(pageBranch, "if", thenLines, thenFirst, 0, c.curHier)
		if ifInc != nil {
			n.Then.Prepend(ifInc)
		}
		elseInc := c.newIncAt(pageBranch, "else", elseLines, elseFirst, 1, c.curHier)
		if elseInc != nil {
			n.Else.Prepend(elseInc)
		}

	case firstElsif || contElsif:
		if thenState.covering() {
			inc := c.newIncAt(pageLine, "elsif", thenLines, thenFirst, 0, c.curHier)
			if inc != nil {
				n.Then.Prepend(inc)
			}
		}

	default:
		if thenState.covering() {
			inc := c.newIncAt(pageLine, "if", thenLines, thenFirst, 0, c.curHier)
			if inc != nil {
				n.Then.Prepend(inc)
			}
		}
		if hasElse && elseState.covering() {
			inc := c.newIncAt(pageLine, "else", elseLines, elseFirst, 1, c.curHier)
			if inc != nil {
				n.Else.Prepend(inc)
			}
		}
	}
}

// visitCase implements the per-item rule of §4.1.
func (c *coverer) visitCase(parent scopeState, n *ast.CaseStmt) {
	for _, item := range n.Items {
		for _, cond := range item.Conds {
			c.trackNode(parent, cond)
		}
		final := c.descendScope(parent, item.Body, nil)
		lines, firstLine := c.consumeLines(final.handle)
		if !c.opts.CoverageLine || !final.covering() {
			continue
		}
		inc := c.newIncAt(pageLine, "case", lines, firstLine, 0, c.curHier)
		if inc != nil {
			item.Body.Append(inc)
		}
	}
}

// visitCover implements the user-cover rule of §4.1: coverage is forced on
// for the point's own scope regardless of the enclosing on/off state, and a
// pre-existing increment (attached by an earlier pass) is never replaced.
func (c *coverer) visitCover(parent scopeState, n *ast.CoverStmt) {
	forced := true
	final := c.descendScope(parent, n.Body, &forced)
	lines, firstLine := c.consumeLines(final.handle)

	if n.Inc != nil || !c.opts.CoverageUser {
		return
	}
	inc := c.newIncAt(pageUser, "cover", lines, firstLine, 0, c.curHier)
	if inc != nil {
		n.Inc = inc
	}
}

// visitBeginBlock implements the named/unnamed sub-block rule of §4.1: the
// begin-hierarchy extends (joined by ".") only for a named block, and no
// new handle is pushed — the sub-block's statements continue accumulating
// into the enclosing scope's line set, so a $stop inside it still
// suppresses the rest of that enclosing scope.
func (c *coverer) visitBeginBlock(parent scopeState, n *ast.BeginBlockStmt) scopeState {
	savedHier := c.curHier
	if n.Name != "" {
		if c.curHier == "" {
			c.curHier = n.Name
		} else {
			c.curHier = c.curHier + "." + n.Name
		}
	}

	newStmts, final := c.visitStmts(parent, n.Body.Stmts)
	n.Body.Stmts = newStmts

	c.curHier = savedHier
	return final
}

// visitModule implements the module rule of §4.1: reset per-module state,
// create the module's own top-level handle, mark the synthesized top-level
// shell as coverage-disabled, traverse, then run the toggle expander once
// over every declared signal.
func (c *coverer) visitModule(m *ast.Module) {
	c.curModule = m
	c.curHier = ""
	c.varNames = newVarNameMap()
	c.lineSets = make(map[int]*lineSet)
	c.handleCounter = 0
	c.curFile = fileOf(m.Start)

	state := scopeState{on: true, inModuleOff: m.Top}
	state.handle = c.newHandle()
	c.lineSets[state.handle] = newLineSet()
	state.anchorFile = c.curFile

	newStmts, final := c.visitStmts(state, m.Stmts)
	m.Stmts = newStmts
	c.consumeLines(final.handle) // the module's own top-level scope has no descriptor of its own; lines discarded

	if c.opts.CoverageToggle {
		for _, v := range m.Vars {
			c.toggleSignal(v)
		}
	}
}

// Cover is the pass entry point (§6: "a single function coverage(root)
// taking the netlist root; returns nothing; mutates the tree in place").
// It additionally returns a Stats summary, since a caller driving this from
// a CLI or a test wants that visibility; the in-place mutation contract is
// unchanged regardless of the return value.
func Cover(opts options.Options, root *ast.Netlist) Stats {
	c := &coverer{
		opts:   opts,
		stats:  &Stats{},
		elsifs: newElsifTable(),
	}
	for _, m := range root.Modules {
		c.visitModule(m)
	}
	return *c.stats
}
