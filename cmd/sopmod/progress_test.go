package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestLineProgressPrintsSummaryOnce(t *testing.T) {
	var out bytes.Buffer
	p := newProgress(&out)
	p.Start("Downloading sop 0.6.0", 2048)
	p.Update(1024)
	p.Update(2048)
	p.Finish()

	got := out.String()
	if got != "Downloading sop 0.6.0 2.0 kB\n" {
		t.Fatalf("unexpected progress output %q", got)
	}
}

func TestBarProgressRendersInPlace(t *testing.T) {
	orig := isTerminalWriter
	isTerminalWriter = func(any) bool { return true }
	t.Cleanup(func() { isTerminalWriter = orig })

	var out bytes.Buffer
	p := newProgress(&out)
	if _, ok := p.(*barProgress); !ok {
		t.Fatalf("expected bar progress, got %T", p)
	}
	p.Start("Downloading go 1.23.2", 1000)
	p.Update(500)
	p.Finish()

	got := out.String()
	if strings.Count(got, "\r") != 3 {
		t.Fatalf("expected three redraws, got %q", got)
	}
	if !strings.Contains(got, "500 B / 1.0 kB") {
		t.Fatalf("expected byte counts, got %q", got)
	}
	if !strings.HasSuffix(got, "1.0 kB / 1.0 kB\n") {
		t.Fatalf("expected completed line, got %q", got)
	}
}

func TestBarProgressUnknownTotal(t *testing.T) {
	orig := isTerminalWriter
	isTerminalWriter = func(any) bool { return true }
	t.Cleanup(func() { isTerminalWriter = orig })

	var out bytes.Buffer
	p := newProgress(&out)
	p.Start("Downloading sop 0.6.0", -1)
	p.Update(3000)
	p.Finish()

	if !strings.Contains(out.String(), "Downloading sop 0.6.0 3.0 kB") {
		t.Fatalf("expected byte count without bar, got %q", out.String())
	}
}
