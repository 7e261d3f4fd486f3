package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/vcoverage/internal/coverage"
	"github.com/mna/vcoverage/lang/ast"
	"github.com/mna/vcoverage/lang/options"
	"github.com/mna/vcoverage/lang/token"
)

func (c *Cmd) Cover(ctx context.Context, stdio mainer.Stdio, args []string) error {
	opts := options.Default()
	opts.CoverageLine = !c.NoLine
	opts.CoverageToggle = !c.NoToggle
	opts.CoverageUser = !c.NoUser
	opts.CoverageUnderscore = c.Underscore
	opts.TraceCoverage = c.Trace
	opts.PagePrefix = c.PagePrefix
	if c.MaxWidth > 0 {
		opts.CoverageMaxWidth = c.MaxWidth
	}
	opts.Logf = func(format string, a ...any) {
		fmt.Fprintf(stdio.Stderr, format+"\n", a...)
	}

	fs := token.NewFileSet()
	root := coverage.Sample(fs)

	stats := coverage.Cover(opts, root)

	printer := ast.Printer{Output: stdio.Stdout}
	if err := printer.Print(root); err != nil {
		return printError(stdio, err)
	}

	fmt.Fprintf(stdio.Stdout, "\nline=%d branch=%d toggle=%d user=%d skipped=%d\n",
		stats.Line, stats.Branch, stats.Toggle, stats.User, stats.Skipped)

	_ = ctx
	return nil
}
