package watcher

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/lemslab/benchpipe/config"
	"github.com/lemslab/benchpipe/model"
)

type trackState int

const (
	seekingHeader trackState = iota
	streaming
)

func (s trackState) String() string {
	if s == streaming {
		return "streaming"
	}
	return "seeking_header"
}

// trackedFile is the per-file cursor kept across poll cycles: the byte
// offset of the next unread byte, the channel bindings once the header has
// been seen, and the source tag from the filename. The offset only moves
// forward past fully consumed lines.
type trackedFile struct {
	path     string
	source   string
	state    trackState
	offset   int64
	channels []channelBinding
}

// newTrackedFile sets the initial cursor for a freshly discovered file.
// Without backfill the cursor starts at the current end of file, so only
// rows appended after discovery are ever decoded; the header is then only
// looked for in that suffix.
func newTrackedFile(fs afero.Fs, path, source string, backfill bool) *trackedFile {
	t := &trackedFile{path: path, source: source, state: seekingHeader}
	if !backfill {
		if info, err := fs.Stat(path); err == nil {
			t.offset = info.Size()
		}
	}
	return t
}

func (t *trackedFile) reset() {
	t.state = seekingHeader
	t.offset = 0
	t.channels = nil
}

// poll reads everything appended since the cursor and decodes the complete
// lines in it. A trailing line without a newline is left unconsumed for a
// later poll. A file that shrank below the cursor has been replaced by the
// instrument's crash-restart behavior and is rescanned from the start.
// Missing or unreadable files yield nothing and are retried next cycle.
func (t *trackedFile) poll(fs afero.Fs, aliases config.AliasMap) ([]*model.Measurement, error) {
	info, err := fs.Stat(t.path)
	if err != nil {
		return nil, nil
	}
	if info.Size() < t.offset {
		t.reset()
	}
	if info.Size() == t.offset {
		return nil, nil
	}

	f, err := fs.Open(t.path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s to %d: %w", t.path, t.offset, err)
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}

	extra := filepath.Base(t.path)
	var res []*model.Measurement
	consumed := 0
	for {
		nl := bytes.IndexByte(buf[consumed:], '\n')
		if nl < 0 {
			break
		}
		line := string(buf[consumed : consumed+nl])
		consumed += nl + 1
		line = strings.TrimSuffix(line, "\r")
		// BenchVue writes a UTF-8 BOM at the top of each file
		line = strings.TrimPrefix(line, "\ufeff")

		if t.state == seekingHeader {
			if channels, ok := parseHeader(line); ok {
				t.channels = applyAliases(channels, aliases)
				t.state = streaming
			}
			// anything before the header is opaque preamble
			continue
		}
		res = append(res, decodeLine(line, t.channels, t.source, extra)...)
	}
	t.offset += int64(consumed)
	return res, nil
}
