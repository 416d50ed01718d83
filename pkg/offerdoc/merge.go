package offerdoc

import "strings"

// Merger inserts fragment content into a base document at an anchor heading
// and keeps the section numbering contiguous. Formatting behavior comes from
// the config passed at construction; there is no global formatting state.
//
// A document has exactly one logical owner: merge calls require exclusive
// access and must not run concurrently against the same document. Decoding
// fragment files concurrently is fine, fragments are read-only inputs.
type Merger struct {
	config *Config
	logger *Logger
}

// NewMerger creates a merger with the given configuration. A nil config
// falls back to the global configuration.
func NewMerger(config *Config) *Merger {
	if config == nil {
		config = GetGlobalConfig()
	}
	return &Merger{
		config: config,
		logger: GetLogger(),
	}
}

// FragmentFailure records one failed fragment inside a best-effort batch
type FragmentFailure struct {
	FragmentIndex int
	Err           error
}

// MergeReport summarizes a MergeMany call
type MergeReport struct {
	Applied  int
	Failures []FragmentFailure
}

// Ok reports whether every fragment was applied
func (r MergeReport) Ok() bool {
	return len(r.Failures) == 0
}

// MergeContent inserts the fragment's blocks immediately after the anchor
// heading, preserving their relative order, then renumbers every heading in
// the document. If newSubsection is non-empty, one additional heading is
// appended after the inserted content, one level deeper than the anchor.
//
// The operation is atomic: it is staged on a working copy and the document
// is only swapped to the merged state when every step succeeded. On any
// error the document is structurally identical to its pre-call state.
func (m *Merger) MergeContent(doc *Document, fragment *Document, anchorHeading string, newSubsection string) error {
	anchorIdx, err := ResolveAnchor(doc, anchorHeading)
	if err != nil {
		return err
	}

	if err := checkFragment(fragment); err != nil {
		return err
	}

	anchor, _ := doc.Blocks[anchorIdx].(*Heading)

	inserted := make([]Block, 0, len(fragment.Blocks)+1)
	for _, block := range fragment.Blocks {
		clone := block.CloneBlock()
		// Fragment headings come in provisional; renumbering assigns
		// their place in the base document's scheme.
		if h, ok := clone.(*Heading); ok {
			h.Number = nil
		}
		inserted = append(inserted, clone)
	}

	if newSubsection != "" {
		inserted = append(inserted, &Heading{
			Level: anchor.Level + 1,
			Text:  strings.TrimSpace(newSubsection),
		})
	}

	if m.config.NormalizeFonts {
		normalizeBlocks(inserted, m.config.DefaultFont, m.config.DefaultSizePt)
	}

	working := doc.Clone()
	merged := make([]Block, 0, len(working.Blocks)+len(inserted))
	merged = append(merged, working.Blocks[:anchorIdx+1]...)
	merged = append(merged, inserted...)
	merged = append(merged, working.Blocks[anchorIdx+1:]...)
	working.Blocks = merged

	if err := NewNumberer().RenumberAll(working); err != nil {
		return err
	}

	doc.Blocks = working.Blocks

	m.logger.WithFields(Fields{
		"anchor": anchorHeading,
		"blocks": len(inserted),
	}).Debug("merged fragment into base document")
	return nil
}

// MergeMany applies MergeContent once per fragment, in list order, treating
// each fragment independently: a failing fragment is recorded and skipped,
// successful fragments stay applied. This best-effort mode matches operator
// expectations when merging many optional sections.
func (m *Merger) MergeMany(doc *Document, fragments []*Document, anchorHeading string) MergeReport {
	var report MergeReport
	for i, fragment := range fragments {
		if err := m.MergeContent(doc, fragment, anchorHeading, ""); err != nil {
			m.logger.WithFields(Fields{"fragment": i, "anchor": anchorHeading}).
				Warn("skipping fragment: %v", err)
			report.Failures = append(report.Failures, FragmentFailure{FragmentIndex: i, Err: err})
			continue
		}
		report.Applied++
	}
	return report
}

// checkFragment validates that a fragment is a well-formed document
func checkFragment(fragment *Document) error {
	if fragment == nil {
		return NewInvalidFragmentError("", nil)
	}
	for _, block := range fragment.Blocks {
		if block == nil {
			return NewInvalidFragmentError("", nil)
		}
		if h, ok := block.(*Heading); ok && h.Level < 1 {
			return NewInvalidFragmentError("", NewNumberingConflictError(h.Text, h.Level, "heading level must be positive"))
		}
	}
	return nil
}

// normalizeBlocks applies the default font and size to inserted content.
// Presentation only: bold, italic and underline flags pass through untouched.
func normalizeBlocks(blocks []Block, font string, sizePt int) {
	for _, block := range blocks {
		switch b := block.(type) {
		case *Paragraph:
			normalizeRuns(b.Runs, font, sizePt)
		case *Table:
			for _, row := range b.Rows {
				for i := range row {
					for j := range row[i].Paragraphs {
						normalizeRuns(row[i].Paragraphs[j].Runs, font, sizePt)
					}
				}
			}
		}
	}
}

func normalizeRuns(runs []Run, font string, sizePt int) {
	for i := range runs {
		runs[i].Font = font
		runs[i].SizePt = sizePt
	}
}
