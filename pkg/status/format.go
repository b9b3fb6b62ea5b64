package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dfandrich/renuniq/pkg/plan"
)

// Renderer writes plan and conflict lines to a console writer.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// RenamePlan prints one mv-style line per effective rename, shell-quoted so
// the output is copy-pasteable. Identity no-ops are marked and skipped by
// the executor.
func (r *Renderer) RenamePlan(p *plan.Plan) {
	for _, pair := range p.Pairs {
		if pair.NoOp {
			fmt.Fprintf(r.out, "%s %s unchanged\n",
				color.New(color.FgYellow).Sprint("-"),
				ShellQuote(pair.Source.Path))
			continue
		}
		fmt.Fprintf(r.out, "mv %s %s\n", ShellQuote(pair.Source.Path), ShellQuote(pair.Destination))
	}
}

// Conflicts prints every conflict on its own line.
func (r *Renderer) Conflicts(conflicts []plan.Conflict) {
	mark := color.New(color.FgRed).Sprint("✗")
	for _, c := range conflicts {
		fmt.Fprintf(r.out, "%s %s\n", mark, c)
	}
}

// shellSafe is the set of bytes that need no quoting in a POSIX shell.
const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_@%+=:,./-"

// ShellQuote quotes s for display in a copy-pasteable command line.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(shellSafe, rune(s[i])) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
