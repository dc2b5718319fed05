package watcher

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/lemslab/benchpipe/config"
)

func TestDecodeStream(t *testing.T) {
	g := NewGomegaWithT(t)

	ms, err := DecodeStream(strings.NewReader(testPreamble+testHeader+testData),
		"stdin", "stdin", nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(ms).To(HaveLen(2))
	g.Expect(ms[0].Channel).To(Equal("Ch A"))
	g.Expect(ms[1].Channel).To(Equal("Ch B"))
	g.Expect(ms[0].Source).To(Equal("stdin"))
}

func TestDecodeStreamNoHeader(t *testing.T) {
	g := NewGomegaWithT(t)

	ms, err := DecodeStream(strings.NewReader(testPreamble+testData), "stdin", "stdin", nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(ms).To(BeEmpty())
}

func TestDecodeStreamAliases(t *testing.T) {
	g := NewGomegaWithT(t)

	ms, err := DecodeStream(strings.NewReader(testHeader+testData),
		"stdin", "stdin", config.AliasMap{"Ch A": "alpha"})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(ms[0].Channel).To(Equal("alpha"))
}
