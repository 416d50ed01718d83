package offerdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Block represents any element that can appear in a document body
type Block interface {
	isBlock()
	// CloneBlock returns a deep copy of the block
	CloneBlock() Block
}

// Document is an ordered sequence of blocks. It is the single mutable
// aggregate of the engine: merge operations mutate it in place and require
// exclusive access. Fragments passed into a merge are never mutated.
type Document struct {
	Blocks []Block
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	clone := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		clone.Blocks[i] = b.CloneBlock()
	}
	return clone
}

// Headings returns pointers to all heading blocks in document order
func (d *Document) Headings() []*Heading {
	var headings []*Heading
	for _, b := range d.Blocks {
		if h, ok := b.(*Heading); ok {
			headings = append(headings, h)
		}
	}
	return headings
}

// SectionNumber is the dotted hierarchical number assigned to a heading,
// e.g. [1,2,3] renders as "1.2.3". It is derived by the numberer from the
// document structure and must never be edited by hand.
type SectionNumber []int

// String renders the number in dotted form
func (n SectionNumber) String() string {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two section numbers are identical
func (n SectionNumber) Equal(other SectionNumber) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the section number
func (n SectionNumber) Clone() SectionNumber {
	if n == nil {
		return nil
	}
	clone := make(SectionNumber, len(n))
	copy(clone, n)
	return clone
}

// ParseSectionNumber parses a dotted number string like "1.2.3".
// Returns nil and false if the string is not a pure dotted number.
func ParseSectionNumber(s string) (SectionNumber, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(strings.TrimSuffix(s, "."), ".")
	number := make(SectionNumber, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v <= 0 {
			return nil, false
		}
		number = append(number, v)
	}
	return number, true
}

// Heading is a section heading. Level is 1-based; Number is nil while the
// heading is provisional (freshly inserted, not yet renumbered).
type Heading struct {
	Level  int
	Text   string
	Number SectionNumber
}

func (h *Heading) isBlock() {}

// CloneBlock returns a deep copy of the heading
func (h *Heading) CloneBlock() Block {
	return &Heading{Level: h.Level, Text: h.Text, Number: h.Number.Clone()}
}

// DisplayText returns the heading text with its section number prepended,
// matching how the heading appears in the serialized document.
func (h *Heading) DisplayText() string {
	if len(h.Number) == 0 {
		return h.Text
	}
	return fmt.Sprintf("%s %s", h.Number, h.Text)
}

// Equal reports structural equality with another heading
func (h *Heading) Equal(other *Heading) bool {
	return h.Level == other.Level && h.Text == other.Text && h.Number.Equal(other.Number)
}

// Run is the smallest unit of formatted inline text. Font and Size carry
// presentation defaults only; the three flags are content formatting and are
// never altered by normalization.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Font      string
	SizePt    int
}

// Equal reports structural equality with another run
func (r Run) Equal(other Run) bool {
	return r == other
}

// Paragraph is a body paragraph. ListLevel is nil for plain paragraphs and
// 0-based for list items.
type Paragraph struct {
	Runs      []Run
	ListLevel *int
}

func (p *Paragraph) isBlock() {}

// CloneBlock returns a deep copy of the paragraph
func (p *Paragraph) CloneBlock() Block {
	return p.clone()
}

func (p *Paragraph) clone() *Paragraph {
	clone := &Paragraph{Runs: make([]Run, len(p.Runs))}
	copy(clone.Runs, p.Runs)
	if p.ListLevel != nil {
		level := *p.ListLevel
		clone.ListLevel = &level
	}
	return clone
}

// Text returns the concatenated text of all runs
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Equal reports structural equality with another paragraph
func (p *Paragraph) Equal(other *Paragraph) bool {
	if len(p.Runs) != len(other.Runs) {
		return false
	}
	for i := range p.Runs {
		if !p.Runs[i].Equal(other.Runs[i]) {
			return false
		}
	}
	if (p.ListLevel == nil) != (other.ListLevel == nil) {
		return false
	}
	if p.ListLevel != nil && *p.ListLevel != *other.ListLevel {
		return false
	}
	return true
}

// Cell is a table cell: an ordered sequence of paragraphs owned by its row
type Cell struct {
	Paragraphs []Paragraph
}

// Clone returns a deep copy of the cell
func (c Cell) Clone() Cell {
	clone := Cell{Paragraphs: make([]Paragraph, len(c.Paragraphs))}
	for i := range c.Paragraphs {
		clone.Paragraphs[i] = *c.Paragraphs[i].clone()
	}
	return clone
}

// Text returns the concatenated text of the cell's paragraphs
func (c Cell) Text() string {
	texts := make([]string, 0, len(c.Paragraphs))
	for i := range c.Paragraphs {
		texts = append(texts, c.Paragraphs[i].Text())
	}
	return strings.Join(texts, "\n")
}

// Table is a table block: rows of cells. Row and column counts are exactly
// those of the source; the merger performs no column reconciliation.
type Table struct {
	Rows [][]Cell
}

func (t *Table) isBlock() {}

// CloneBlock returns a deep copy of the table
func (t *Table) CloneBlock() Block {
	clone := &Table{Rows: make([][]Cell, len(t.Rows))}
	for i, row := range t.Rows {
		clone.Rows[i] = make([]Cell, len(row))
		for j, cell := range row {
			clone.Rows[i][j] = cell.Clone()
		}
	}
	return clone
}

// SectionBreak marks a section boundary in the body
type SectionBreak struct{}

func (s *SectionBreak) isBlock() {}

// CloneBlock returns a copy of the section break
func (s *SectionBreak) CloneBlock() Block {
	return &SectionBreak{}
}
