package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// DownloadBar draws installer download progress on one terminal line.
type DownloadBar struct {
	w    io.Writer
	bar  progress.Model
	last int
	done bool
}

// NewDownloadBar creates a bar writing to w.
func NewDownloadBar(w io.Writer) *DownloadBar {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return &DownloadBar{w: w, bar: bar, last: -1}
}

// Update redraws the bar. It matches fetch.ProgressFunc. Unknown totals
// are not drawn; redraws only happen when the whole percent changes.
func (d *DownloadBar) Update(written, total int64) {
	if total <= 0 || d.done {
		return
	}

	ratio := float64(written) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	pct := int(ratio * 100)
	if pct == d.last {
		return
	}
	d.last = pct

	fmt.Fprintf(d.w, "\r%s", d.bar.ViewAs(ratio))
	if written >= total {
		d.done = true
		fmt.Fprintln(d.w)
	}
}
