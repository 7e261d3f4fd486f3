// Package options defines the global, read-only options record the
// coverage pass consumes (§6 of spec.md). Building this record from command
// line flags is out of scope for the pass itself; FromEnv is provided so a
// front end (or a test) can populate one the way the teacher's CLI loads
// its own flags, via struct tags.
package options

import "github.com/caarlos0/env/v6"

// Options mirrors the six coverage-related knobs spec.md §6 says the pass
// consumes from "a global options record".
type Options struct {
	// CoverageLine enables line/branch instrumentation.
	CoverageLine bool `env:"COVERAGE_LINE" envDefault:"true"`
	// CoverageToggle enables toggle instrumentation.
	CoverageToggle bool `env:"COVERAGE_TOGGLE" envDefault:"true"`
	// CoverageUser enables user cover-point instrumentation.
	CoverageUser bool `env:"COVERAGE_USER" envDefault:"true"`
	// CoverageUnderscore disables the leading-underscore filter (i.e. when
	// true, underscore-prefixed signals are no longer skipped).
	CoverageUnderscore bool `env:"COVERAGE_UNDERSCORE" envDefault:"false"`
	// CoverageMaxWidth caps declared_width × unpacked_element_count for
	// toggle eligibility.
	CoverageMaxWidth int `env:"COVERAGE_MAX_WIDTH" envDefault:"256"`
	// TraceCoverage additionally synthesizes per-increment trace variables.
	TraceCoverage bool `env:"TRACE_COVERAGE" envDefault:"false"`

	// PagePrefix is prepended to the page name recorded on every coverage
	// declaration, which is the coverage family (v_line, v_branch, v_toggle
	// or v_user), "/", and the module's pretty name.
	PagePrefix string `env:"COVERAGE_PAGE_PREFIX" envDefault:""`

	// DryRun runs every visitor decision without attaching any synthesized
	// node to the tree (§5 of SPEC_FULL.md); it has no effect unless set
	// explicitly and exists to let the scope-state machine and eligibility
	// filter be unit-tested in isolation from the emitter's node shapes.
	DryRun bool `env:"-"`

	// Logf, if non-nil, receives one line per silently-skipped signal (§7.1).
	// There is no logging dependency in the examined corpus to ground a
	// structured logger on, so this follows the teacher's own
	// fmt.Fprintf-to-stderr convention instead of a package-level logger.
	Logf func(format string, args ...any) `env:"-"`
}

// Default returns an Options with every family enabled and the teacher's
// conventional defaults applied, equivalent to FromEnv with no environment
// variables set.
func Default() Options {
	return Options{
		CoverageLine:     true,
		CoverageToggle:   true,
		CoverageUser:     true,
		CoverageMaxWidth: 256,
	}
}

// FromEnv loads an Options from environment variables using the `env`
// struct tags above, falling back to their envDefault values.
func FromEnv() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// log is a nil-safe helper for Options.Logf.
func (o Options) log(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// Log exposes the nil-safe logger to other packages.
func (o Options) Log(format string, args ...any) { o.log(format, args...) }
