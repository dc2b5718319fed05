package stdin

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	in := strings.NewReader("Run 1\n,,\n" +
		"Scan Sweep Time (Sec),Scan Number,Ch A,Ch B\n" +
		"12:00:00,1,3.5,\n12:00:01,2,,4.25\n")
	var out bytes.Buffer

	if err := Run(in, &out, nil); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "12:00:00\tstdin\tCh A\t3.5\tstdin" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "12:00:01\tstdin\tCh B\t4.25\tstdin" {
		t.Fatalf("unexpected second line: %q", lines[1])
	}
}
