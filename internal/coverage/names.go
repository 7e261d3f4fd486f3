package coverage

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mna/vcoverage/lang/token"
)

// sanitizeName replaces characters that can't appear in a synthesized
// identifier (a dotted access path, a bracketed index) with underscores.
func sanitizeName(name string) string {
	r := strings.NewReplacer(".", "_", "[", "_", "]", "_")
	return r.Replace(name)
}

// shadowName derives the "previous value" companion variable name for a
// signal (§4.4, §6: "__Vtogcov__" + sanitized-signal-name).
func shadowName(signal string) string {
	return "__Vtogcov__" + sanitizeName(signal)
}

// traceName synthesizes a per-increment trace variable name (§4.6). User
// cover points are prefixed by the accumulated begin-hierarchy instead of
// the source basename, matching scenario 6 ("g1.g2_vlCoverageUserTrace…");
// every other coverage family uses the file/line/type-tag formula verbatim.
func traceName(vnm *varNameMap, file *token.File, line int, typeTag, hier string) string {
	var base string
	if typeTag == "User" {
		base = hier + "_vlCoverageUserTrace"
	} else {
		basename := "input"
		if file != nil && file.Name != "" {
			b := filepath.Base(file.Name)
			basename = strings.TrimSuffix(b, filepath.Ext(b))
		}
		base = "vlCoverageLineTrace_" + basename + "__" + strconv.Itoa(line) + "_" + typeTag
	}
	return vnm.next(base)
}
