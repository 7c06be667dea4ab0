package ui

import (
	"fmt"
	"io"
	"strings"

	"photon/internal/shaders"
)

// Printer writes operator-facing lines. It satisfies sdk.Reporter.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styles: NewStyles(w)}
}

// Info prints a plain line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Warn prints a line in the warning color.
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, p.styles.Warning.Render(msg))
}

// Outcome prints one shader result: compiler stdout (if any) followed by a
// marked status line on success, or the marked failure and its diagnostic.
func (p *Printer) Outcome(o shaders.CompileOutcome) {
	if o.Succeeded {
		if out := strings.TrimRight(o.Stdout, "\n"); out != "" {
			fmt.Fprintln(p.w, out)
		}
		fmt.Fprintln(p.w, p.styles.Success.Render(
			fmt.Sprintf("%s Compiled %s successfully", SuccessMarker, o.Source.Path)))
		return
	}

	fmt.Fprintln(p.w, p.styles.Failure.Render(
		fmt.Sprintf("%s Error when compiling %s:", FailureMarker, o.Source.Path)))
	if detail := strings.TrimRight(o.Detail(), "\n"); detail != "" {
		fmt.Fprintln(p.w, detail)
	}
}

// Summary prints the batch totals.
func (p *Printer) Summary(r shaders.Report) {
	line := fmt.Sprintf("%d compiled, %d failed (%d total)", r.Succeeded(), r.Failed(), len(r.Outcomes))
	style := p.styles.Success
	if !r.OK() {
		style = p.styles.Failure
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, style.Bold(true).Render(line))
	fmt.Fprintln(p.w, p.styles.Muted.Render("run "+r.RunID.String()))
}
