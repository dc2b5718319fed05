package watcher

import (
	"bufio"
	"io"
	"strings"

	"github.com/lemslab/benchpipe/config"
	"github.com/lemslab/benchpipe/model"
)

// DecodeStream decodes one complete export read from r: preamble, header
// row, data rows. It is the one-shot counterpart of the polling tracker,
// used by the stdin mode.
func DecodeStream(r io.Reader, source, extra string, aliases config.AliasMap) ([]*model.Measurement, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		channels []channelBinding
		bound    bool
		res      []*model.Measurement
	)
	for scanner.Scan() {
		line := strings.TrimPrefix(scanner.Text(), "\ufeff")
		if !bound {
			if ch, ok := parseHeader(line); ok {
				channels = applyAliases(ch, aliases)
				bound = true
			}
			continue
		}
		res = append(res, decodeLine(line, channels, source, extra)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
