package offerdoc

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a hex digest over a canonical structural dump of the
// document. Two documents with identical structure and content hash the
// same, so callers can assert that a failed merge left no trace.
func Fingerprint(doc *Document) string {
	sum := blake3.Sum256([]byte(dumpDocument(doc)))
	return hex.EncodeToString(sum[:])
}

func dumpDocument(doc *Document) string {
	var sb strings.Builder
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case *Heading:
			fmt.Fprintf(&sb, "H%d|%s|%s\n", b.Level, b.Number, b.Text)
		case *Paragraph:
			dumpParagraph(&sb, b)
		case *Table:
			fmt.Fprintf(&sb, "T%dx\n", len(b.Rows))
			for _, row := range b.Rows {
				for i := range row {
					fmt.Fprintf(&sb, "C%d\n", i)
					for j := range row[i].Paragraphs {
						dumpParagraph(&sb, &row[i].Paragraphs[j])
					}
				}
			}
		case *SectionBreak:
			sb.WriteString("SB\n")
		}
	}
	return sb.String()
}

func dumpParagraph(sb *strings.Builder, p *Paragraph) {
	level := "-"
	if p.ListLevel != nil {
		level = fmt.Sprintf("%d", *p.ListLevel)
	}
	fmt.Fprintf(sb, "P|%s\n", level)
	for _, r := range p.Runs {
		fmt.Fprintf(sb, "R|%t|%t|%t|%s|%d|%s\n", r.Bold, r.Italic, r.Underline, r.Font, r.SizePt, r.Text)
	}
}
