package offerdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestValidateNumberingContiguous(t *testing.T) {
	tests := []struct {
		name       string
		blocks     []Block
		contiguous bool
	}{
		{
			name: "contiguous tree",
			blocks: []Block{
				&Heading{Level: 1, Text: "A", Number: SectionNumber{1}},
				&Heading{Level: 2, Text: "B", Number: SectionNumber{1, 1}},
				&Heading{Level: 2, Text: "C", Number: SectionNumber{1, 2}},
				&Heading{Level: 1, Text: "D", Number: SectionNumber{2}},
			},
			contiguous: true,
		},
		{
			name: "gap between siblings",
			blocks: []Block{
				&Heading{Level: 1, Text: "A", Number: SectionNumber{1}},
				&Heading{Level: 1, Text: "B", Number: SectionNumber{3}},
			},
			contiguous: false,
		},
		{
			name: "child does not restart",
			blocks: []Block{
				&Heading{Level: 1, Text: "A", Number: SectionNumber{1}},
				&Heading{Level: 2, Text: "B", Number: SectionNumber{1, 1}},
				&Heading{Level: 1, Text: "C", Number: SectionNumber{2}},
				&Heading{Level: 2, Text: "D", Number: SectionNumber{2, 2}},
			},
			contiguous: false,
		},
		{
			name: "unnumbered heading",
			blocks: []Block{
				&Heading{Level: 1, Text: "A", Number: SectionNumber{1}},
				&Heading{Level: 2, Text: "B"},
			},
			contiguous: false,
		},
		{
			name: "level skip",
			blocks: []Block{
				&Heading{Level: 1, Text: "A", Number: SectionNumber{1}},
				&Heading{Level: 3, Text: "B", Number: SectionNumber{1, 1, 1}},
			},
			contiguous: false,
		},
		{
			name:       "no headings",
			blocks:     []Block{&Paragraph{Runs: []Run{{Text: "only text"}}}},
			contiguous: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(&Document{Blocks: tt.blocks}, nil)
			assert.Equal(t, tt.contiguous, report.NumberingContiguous)
		})
	}
}

func TestValidateRequiredHeadings(t *testing.T) {
	doc := &Document{Blocks: []Block{
		&Heading{Level: 1, Text: "Introduction", Number: SectionNumber{1}},
		&Heading{Level: 2, Text: "Payment Terms", Number: SectionNumber{1, 1}},
	}}

	tests := []struct {
		name     string
		required []string
		missing  []string
	}{
		{name: "exact text", required: []string{"Introduction"}},
		{name: "numbered display text", required: []string{"1.1 Payment Terms"}},
		{name: "prefix of text", required: []string{"Payment"}},
		{name: "prefix of display", required: []string{"1 Intro"}},
		{name: "absent heading", required: []string{"Warranty"}, missing: []string{"Warranty"}},
		{
			name:     "mixed present and absent",
			required: []string{"Introduction", "Warranty", "Liability"},
			missing:  []string{"Warranty", "Liability"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(doc, tt.required)
			assert.Equal(t, tt.missing, report.MissingRequiredHeadings)
		})
	}
}

func TestValidateNestedLists(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		nested bool
	}{
		{
			name: "top level and nested list",
			blocks: []Block{
				&Paragraph{Runs: []Run{{Text: "item"}}, ListLevel: intPtr(0)},
				&Paragraph{Runs: []Run{{Text: "sub item"}}, ListLevel: intPtr(1)},
			},
			nested: true,
		},
		{
			name: "top level only",
			blocks: []Block{
				&Paragraph{Runs: []Run{{Text: "item"}}, ListLevel: intPtr(0)},
			},
			nested: false,
		},
		{
			name: "nested levels inside a table cell count",
			blocks: []Block{
				&Paragraph{Runs: []Run{{Text: "item"}}, ListLevel: intPtr(0)},
				&Table{Rows: [][]Cell{{{Paragraphs: []Paragraph{
					{Runs: []Run{{Text: "cell item"}}, ListLevel: intPtr(2)},
				}}}}},
			},
			nested: true,
		},
		{
			name:   "no lists at all",
			blocks: []Block{&Paragraph{Runs: []Run{{Text: "plain"}}}},
			nested: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(&Document{Blocks: tt.blocks}, nil)
			assert.Equal(t, tt.nested, report.HasNestedLists)
		})
	}
}

func TestValidationReportErr(t *testing.T) {
	clean := ValidationReport{NumberingContiguous: true}
	require.NoError(t, clean.Err())

	// nested lists are informational, never fatal
	noLists := ValidationReport{NumberingContiguous: true, HasNestedLists: false}
	require.NoError(t, noLists.Err())

	broken := ValidationReport{NumberingContiguous: false}
	err := broken.Err()
	require.Error(t, err)
	assert.True(t, IsValidationFailed(err))

	missing := ValidationReport{NumberingContiguous: true, MissingRequiredHeadings: []string{"Warranty"}}
	err = missing.Err()
	require.Error(t, err)
	assert.True(t, IsValidationFailed(err))
	assert.Contains(t, err.Error(), "Warranty")
}
