package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/halcyonnouveau/sopmod/internal/fetch"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/terminal"
)

var isTerminalWriter = terminal.IsTerminalWriter

// newProgress returns a bar renderer when out is a terminal and a single
// summary line per download otherwise.
func newProgress(out io.Writer) fetch.Progress {
	if isTerminalWriter(out) {
		width := terminal.Width(out, 80) / 3
		if width < 10 {
			width = 10
		}
		return &barProgress{
			out: out,
			bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(width)),
		}
	}
	return &lineProgress{out: out}
}

// barProgress redraws one line in place with carriage returns.
type barProgress struct {
	mu          sync.Mutex
	out         io.Writer
	bar         progress.Model
	label       string
	total       int64
	transferred int64
}

func (p *barProgress) Start(label string, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = label
	p.total = total
	p.transferred = 0
	p.render()
}

func (p *barProgress) Update(transferred int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transferred = transferred
	p.render()
}

func (p *barProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total > 0 {
		p.transferred = p.total
	}
	p.render()
	_, _ = fmt.Fprintln(p.out)
}

func (p *barProgress) render() {
	if p.total <= 0 {
		_, _ = fmt.Fprintf(p.out, "\r"+messages.CLIProgressUnknownFmt, p.label, humanize.Bytes(uint64(p.transferred)))
		return
	}
	percent := float64(p.transferred) / float64(p.total)
	if percent > 1 {
		percent = 1
	}
	_, _ = fmt.Fprintf(p.out, "\r"+messages.CLIProgressFmt,
		p.label,
		p.bar.ViewAs(percent),
		humanize.Bytes(uint64(p.transferred)),
		humanize.Bytes(uint64(p.total)),
	)
}

// lineProgress prints the label and final size once.
type lineProgress struct {
	out         io.Writer
	label       string
	transferred int64
}

func (p *lineProgress) Start(label string, _ int64) {
	p.label = label
	p.transferred = 0
}

func (p *lineProgress) Update(transferred int64) {
	p.transferred = transferred
}

func (p *lineProgress) Finish() {
	_, _ = fmt.Fprintf(p.out, messages.CLIProgressDoneFmt, p.label, humanize.Bytes(uint64(p.transferred)))
}
