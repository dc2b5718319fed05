package watcher

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
)

func TestScan(t *testing.T) {
	g := NewGomegaWithT(t)
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/logs/AutoExportTrace_iso 2024-05-01 120000.csv", []byte{}, 0644)
	afero.WriteFile(fs, "/logs/AutoExportTrace_40 2024-05-01 120000.csv", []byte{}, 0644)
	afero.WriteFile(fs, "/logs/notes.txt", []byte{}, 0644)
	afero.WriteFile(fs, "/logs/other.csv", []byte{}, 0644)

	candidates, err := Scan(fs, "/logs")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(candidates).To(HaveLen(2))

	sources := map[string]string{}
	for _, c := range candidates {
		sources[c.Path] = c.Source
	}
	g.Expect(sources).To(Equal(map[string]string{
		"/logs/AutoExportTrace_iso 2024-05-01 120000.csv": "iso",
		"/logs/AutoExportTrace_40 2024-05-01 120000.csv":  "40",
	}))
}

func TestScanMissingDir(t *testing.T) {
	g := NewGomegaWithT(t)
	fs := afero.NewMemMapFs()

	_, err := Scan(fs, "/nope")
	g.Expect(err).To(HaveOccurred())
}

func TestSourceFromFilename(t *testing.T) {
	g := NewGomegaWithT(t)

	cases := map[string]string{
		"AutoExportTrace_iso 2024-05-01 120000.csv": "iso",
		"AutoExportTrace_40 trace.csv":              "40",
		"AutoExportTrace_iso.csv":                   "iso",
		"autoexporttrace_ISO 1.csv":                 "ISO",
		// no isolatable tag: fall back to the rest of the name
		"AutoExportTrace_.csv": "AutoExportTrace_.csv",
	}
	for name, want := range cases {
		g.Expect(sourceFromFilename(name)).To(Equal(want), "filename %q", name)
	}
}
