package offerdoc

import "strings"

// ResolveAnchor locates the insertion point for a merge: the first heading
// whose trimmed display text exactly equals headingText (case-sensitive).
// Duplicate matches are permitted in the input; only the first is targeted,
// and the duplicates are reported through the logger as a lint warning.
func ResolveAnchor(doc *Document, headingText string) (int, error) {
	want := strings.TrimSpace(headingText)
	found := -1
	duplicates := 0

	for i, block := range doc.Blocks {
		h, ok := block.(*Heading)
		if !ok {
			continue
		}
		if strings.TrimSpace(h.DisplayText()) != want {
			continue
		}
		if found == -1 {
			found = i
		} else {
			duplicates++
		}
	}

	if found == -1 {
		return 0, NewAnchorNotFoundError(headingText)
	}
	if duplicates > 0 {
		GetLogger().WithFields(Fields{"anchor": want, "duplicates": duplicates}).
			Warn("anchor heading is ambiguous, targeting first occurrence")
	}
	return found, nil
}
