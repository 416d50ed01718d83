package offerdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	build := func() *Document {
		return &Document{Blocks: []Block{
			&Heading{Level: 1, Text: "Introduction", Number: SectionNumber{1}},
			&Paragraph{Runs: []Run{{Text: "body", Bold: true}}},
			&Table{Rows: [][]Cell{{{Paragraphs: []Paragraph{{Runs: []Run{{Text: "cell"}}}}}}}},
			&SectionBreak{},
		}}
	}

	first := Fingerprint(build())
	second := Fingerprint(build())
	require.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestFingerprintDetectsChanges(t *testing.T) {
	base := &Document{Blocks: []Block{
		&Heading{Level: 1, Text: "Introduction", Number: SectionNumber{1}},
		&Paragraph{Runs: []Run{{Text: "body"}}},
	}}
	reference := Fingerprint(base)

	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{name: "text change", mutate: func(d *Document) { d.Blocks[1].(*Paragraph).Runs[0].Text = "other" }},
		{name: "bold flag", mutate: func(d *Document) { d.Blocks[1].(*Paragraph).Runs[0].Bold = true }},
		{name: "heading number", mutate: func(d *Document) { d.Blocks[0].(*Heading).Number = SectionNumber{2} }},
		{name: "heading level", mutate: func(d *Document) { d.Blocks[0].(*Heading).Level = 2 }},
		{name: "list level", mutate: func(d *Document) { d.Blocks[1].(*Paragraph).ListLevel = intPtr(0) }},
		{name: "extra block", mutate: func(d *Document) { d.Blocks = append(d.Blocks, &SectionBreak{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := base.Clone()
			tt.mutate(mutated)
			assert.NotEqual(t, reference, Fingerprint(mutated))
		})
	}
}

func TestFingerprintIgnoresClone(t *testing.T) {
	doc := &Document{Blocks: []Block{
		&Heading{Level: 1, Text: "Introduction", Number: SectionNumber{1}},
	}}
	assert.Equal(t, Fingerprint(doc), Fingerprint(doc.Clone()))
}
