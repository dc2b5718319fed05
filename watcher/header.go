package watcher

import (
	"strings"

	"github.com/lemslab/benchpipe/config"
)

// The first two header columns are fixed labels; everything after them
// names a measurement channel.
const (
	headerTimeLabel = "Scan Sweep Time (Sec)"
	headerScanLabel = "Scan Number"
)

// channelBinding ties a channel name to its absolute column index in the
// header row. Empty header cells get no binding, so data rows are read by
// column, not by counting non-empty names.
type channelBinding struct {
	name string
	col  int
}

// parseHeader reports whether line is the BenchVue header row. On a match
// it returns the channel bindings for all named columns after the second;
// the list may be empty, in which case the file will never produce records.
func parseHeader(line string) ([]channelBinding, bool) {
	fields := splitRow(line)
	if len(fields) < 2 {
		return nil, false
	}
	if !strings.EqualFold(strings.TrimSpace(fields[0]), headerTimeLabel) ||
		!strings.EqualFold(strings.TrimSpace(fields[1]), headerScanLabel) {
		return nil, false
	}
	var channels []channelBinding
	for i := 2; i < len(fields); i++ {
		name := strings.TrimSpace(fields[i])
		if name == "" {
			continue
		}
		channels = append(channels, channelBinding{name: name, col: i})
	}
	return channels, true
}

func applyAliases(channels []channelBinding, aliases config.AliasMap) []channelBinding {
	if len(aliases) == 0 {
		return channels
	}
	for i, c := range channels {
		if alias, ok := aliases[c.name]; ok {
			channels[i].name = alias
		}
	}
	return channels
}
