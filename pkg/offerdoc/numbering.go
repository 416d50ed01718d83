package offerdoc

// Numberer allocates hierarchical section numbers for headings. It keeps a
// per-level counter stack: counters[L-1] is the last number used at level L
// under the current parent path. Levels must be entered without skipping;
// a level-3 heading with no level-2 ancestor is a numbering conflict, never
// silently coerced.
type Numberer struct {
	counters []int
}

// NewNumberer returns a numberer with empty counter state
func NewNumberer() *Numberer {
	return &Numberer{}
}

// Reset clears the counter state
func (n *Numberer) Reset() {
	n.counters = n.counters[:0]
}

// Initialize scans the document's headings top to bottom and validates that
// their stored numbers follow the allocation rule: siblings increase by
// exactly 1 and every child sequence restarts at 1 under a new parent.
// Headings without a number (provisional) are skipped; they receive numbers
// on the next RenumberAll. The counter state afterwards reflects the last
// numbered heading seen.
func (n *Numberer) Initialize(doc *Document) error {
	n.Reset()

	for _, h := range doc.Headings() {
		if len(h.Number) == 0 {
			continue
		}
		expected, err := n.Allocate(h.Level)
		if err != nil {
			return attachHeading(err, h.Text)
		}
		if !h.Number.Equal(expected) {
			return NewNumberingConflictError(h.Text, h.Level,
				"stored number "+h.Number.String()+" does not match expected "+expected.String())
		}
	}
	return nil
}

// Allocate returns the next section number at the given level and resets all
// deeper-level counters. Using a level more than one deeper than the current
// depth is a conflict.
func (n *Numberer) Allocate(level int) (SectionNumber, error) {
	if level < 1 {
		return nil, NewNumberingConflictError("", level, "heading level must be positive")
	}
	if level > len(n.counters)+1 {
		return nil, NewNumberingConflictError("", level, "heading skips a level")
	}

	if level == len(n.counters)+1 {
		n.counters = append(n.counters, 0)
	} else {
		n.counters = n.counters[:level]
	}
	n.counters[level-1]++

	number := make(SectionNumber, level)
	copy(number, n.counters)
	return number, nil
}

// RenumberAll re-walks the full block list and reassigns every heading number
// from scratch using the allocation rule. A full rewalk after every
// structural change keeps numbering globally contiguous no matter how many
// merges were applied.
func (n *Numberer) RenumberAll(doc *Document) error {
	n.Reset()

	for _, h := range doc.Headings() {
		number, err := n.Allocate(h.Level)
		if err != nil {
			return attachHeading(err, h.Text)
		}
		h.Number = number
	}
	return nil
}

// attachHeading fills in the heading text on a conflict raised by Allocate,
// which only knows the level.
func attachHeading(err error, heading string) error {
	if conflict, ok := err.(*NumberingConflictError); ok && conflict.Heading == "" {
		conflict.Heading = heading
	}
	return err
}
