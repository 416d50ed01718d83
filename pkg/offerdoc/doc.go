// Package offerdoc assembles business offer documents by merging partial
// DOCX fragments into a base document while keeping a hierarchical,
// contiguous heading-numbering scheme, inline run formatting, list nesting
// and table structure intact.
//
// Basic Usage:
//
//	base, err := ooxml.LoadFile("base_template_en.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fragment, err := ooxml.LoadFile("textblocks/section_1_1a_en.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	merger := offerdoc.NewMerger(nil)
//	if err := merger.MergeContent(base, fragment, "1.2 Details", "Additional Information"); err != nil {
//	    log.Fatal(err)
//	}
//
//	report := offerdoc.Validate(base, []string{"Introduction", "Technical Specifications"})
//	if err := report.Err(); err != nil {
//	    log.Println(err) // advisory unless running in strict mode
//	}
//
// Single merges are atomic: either all fragment blocks are inserted and the
// whole document renumbered, or the base document is left untouched. Batch
// merges via MergeMany are best effort and report per-fragment failures.
//
// Parsing and serializing the DOCX container is the job of the ooxml
// subpackage; this package operates purely on the structural model.
package offerdoc
