package watcher

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// BenchVue names its exports "AutoExportTrace_<tag> <timestamp>.csv". The
// tag distinguishes simultaneous export streams (e.g. "iso" vs "40").
const fileMarker = "AutoExportTrace_"

var sourcePattern = regexp.MustCompile(`(?i)AutoExportTrace_([^\s_.]+)`)

// Candidate is one matching file reported by a directory scan.
type Candidate struct {
	Path   string
	Source string
}

// Scan lists the files in dir that follow the BenchVue export naming
// convention. Non-matching files are ignored silently.
func Scan(fs afero.Fs, dir string) ([]Candidate, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}
	var res []Candidate
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := info.Name()
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, strings.ToLower(fileMarker)) || !strings.HasSuffix(lower, ".csv") {
			continue
		}
		res = append(res, Candidate{
			Path:   filepath.Join(dir, name),
			Source: sourceFromFilename(name),
		})
	}
	return res, nil
}

// sourceFromFilename extracts the export tag between the marker and the
// next delimiter. Falls back to the filename minus marker and extension
// when the tag cannot be isolated.
func sourceFromFilename(base string) string {
	if m := sourcePattern.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	rest := base
	if i := strings.Index(strings.ToLower(rest), strings.ToLower(fileMarker)); i >= 0 {
		rest = rest[i+len(fileMarker):]
	}
	rest = strings.TrimSuffix(rest, filepath.Ext(rest))
	if rest == "" {
		return base
	}
	return rest
}
