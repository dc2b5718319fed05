package stdin

// Module to decode a single CSV export from stdin and print the
// measurements without touching the database. Useful for inspecting what a
// given export file would produce.

import (
	"fmt"
	"io"
	"os"

	"github.com/lemslab/benchpipe/config"
	"github.com/lemslab/benchpipe/watcher"
)

// Run decodes one export stream from r and prints one tab-separated line
// per measurement to w.
func Run(r io.Reader, w io.Writer, aliases config.AliasMap) error {
	measurements, err := watcher.DecodeStream(r, "stdin", "stdin", aliases)
	if err != nil {
		return fmt.Errorf("error decoding stdin: %w", err)
	}
	for _, m := range measurements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\n", m.Timestamp, m.Source, m.Channel, m.Value, m.Extra)
	}
	return nil
}

// Init handles the -stdin mode: decode stdin, print, exit.
func Init(aliases config.AliasMap) {
	if err := Run(os.Stdin, os.Stdout, aliases); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	os.Exit(0)
}
