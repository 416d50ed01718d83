package offerdoc

import "strings"

// ValidationReport holds the post-merge structural invariants. Validation is
// advisory: saving is only blocked on a failing report when the caller runs
// in strict mode.
type ValidationReport struct {
	// NumberingContiguous is true iff sibling numbers increase by exactly 1
	// at every level and child sequences restart at 1 under a new parent.
	NumberingContiguous bool
	// MissingRequiredHeadings lists required heading texts not found by
	// exact or prefix match.
	MissingRequiredHeadings []string
	// HasNestedLists is true iff both a top-level and a deeper list
	// paragraph exist, confirming multi-level list support was exercised.
	HasNestedLists bool
}

// Err returns a ValidationFailedError when an invariant failed, nil
// otherwise. Nested-list absence is informational and never fails a report.
func (r ValidationReport) Err() error {
	if r.NumberingContiguous && len(r.MissingRequiredHeadings) == 0 {
		return nil
	}
	return &ValidationFailedError{Report: r}
}

// Validate checks the document's structural invariants against the
// allocation rule and the caller-supplied set of required heading texts.
func Validate(doc *Document, requiredHeadings []string) ValidationReport {
	report := ValidationReport{
		NumberingContiguous: numberingContiguous(doc),
		HasNestedLists:      hasNestedLists(doc),
	}

	for _, required := range requiredHeadings {
		if !headingPresent(doc, required) {
			report.MissingRequiredHeadings = append(report.MissingRequiredHeadings, required)
		}
	}
	return report
}

// numberingContiguous re-derives every heading number from scratch and
// compares it against the stored one.
func numberingContiguous(doc *Document) bool {
	numberer := NewNumberer()
	for _, h := range doc.Headings() {
		expected, err := numberer.Allocate(h.Level)
		if err != nil {
			return false
		}
		if !h.Number.Equal(expected) {
			return false
		}
	}
	return true
}

// headingPresent matches required text exactly or as a prefix. Prefix
// matching is needed because section numbers are prepended onto the same
// heading text in the serialized form.
func headingPresent(doc *Document, required string) bool {
	required = strings.TrimSpace(required)
	for _, h := range doc.Headings() {
		text := strings.TrimSpace(h.Text)
		display := strings.TrimSpace(h.DisplayText())
		if text == required || display == required {
			return true
		}
		if strings.HasPrefix(text, required) || strings.HasPrefix(display, required) {
			return true
		}
	}
	return false
}

func hasNestedLists(doc *Document) bool {
	top, nested := false, false
	forEachParagraph(doc, func(p *Paragraph) {
		if p.ListLevel == nil {
			return
		}
		if *p.ListLevel == 0 {
			top = true
		} else if *p.ListLevel > 0 {
			nested = true
		}
	})
	return top && nested
}

func forEachParagraph(doc *Document, fn func(*Paragraph)) {
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case *Paragraph:
			fn(b)
		case *Table:
			for _, row := range b.Rows {
				for i := range row {
					for j := range row[i].Paragraphs {
						fn(&row[i].Paragraphs[j])
					}
				}
			}
		}
	}
}
