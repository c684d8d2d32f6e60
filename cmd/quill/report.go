package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/quill-lang/quill/internal/diagnostics"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
	ansiReset  = "\x1b[0m"
)

type reporter struct {
	color    bool
	errors   int
	warnings int
}

func newReporter() *reporter {
	return &reporter{
		color: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// report prints one diagnostic as path:line:col severity[code]: message.
// Line and column are reconstructed from the source bytes.
func (r *reporter) report(d *diagnostics.Diagnostic, source []byte) {
	if d.Severity == diagnostics.SeverityError {
		r.errors++
	} else {
		r.warnings++
	}

	location := d.ModulePath
	if location == "" {
		location = "<input>"
	}

	if source != nil {
		line, col := lineColumn(source, d.Pos.Start)
		location = fmt.Sprintf("%s:%d:%d", location, line, col)
	}

	severity := d.Severity.String()
	if r.color {
		color := ansiRed
		if d.Severity == diagnostics.SeverityWarning {
			color = ansiYellow
		}
		severity = color + severity + ansiReset
		location = ansiBold + location + ansiReset
	}

	fmt.Fprintf(os.Stderr, "%s %s[%s]: %s\n", location, severity, d.Code, d.Message)
}

func (r *reporter) summarize() {
	if r.errors == 0 && r.warnings == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s)\n", r.errors, r.warnings)
}

func lineColumn(source []byte, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
