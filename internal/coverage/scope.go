package coverage

import "github.com/mna/vcoverage/lang/token"

// scopeState is the per-scope record described in the data model: whether
// coverage is currently enabled, whether the enclosing module opted out
// entirely, the handle identifying this scope for line tracking, and the
// file that pins the scope's "home" source (only lines from that file are
// tracked, per §4.2's file-match rule).
//
// scopeState is a value type: it composes by save-on-entry (copy the
// current value), modify, descend, restore-on-exit (assign the saved copy
// back), exactly the discipline §5 requires and the teacher's resolver
// block-push/pop demonstrates for its own (different) per-scope state.
type scopeState struct {
	on          bool
	inModuleOff bool
	handle      int
	anchorFile  *token.File
}

// covering reports whether instrumentation should currently be emitted:
// both the scope itself must be on, and the enclosing module must not have
// opted out entirely.
func (s scopeState) covering() bool {
	return s.on && !s.inModuleOff
}

func fileOf(p token.Pos) *token.File {
	return p.File
}
