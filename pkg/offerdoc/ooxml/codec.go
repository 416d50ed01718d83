package ooxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/offerdoc/go-offerdoc/pkg/offerdoc"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Load parses a DOCX package into the structural model
func Load(data []byte) (*offerdoc.Document, error) {
	container, err := NewContainer(data)
	if err != nil {
		return nil, err
	}

	docXML, err := container.DocumentXML()
	if err != nil {
		return nil, err
	}

	root, err := parseDocument(bytes.NewReader(docXML))
	if err != nil {
		return nil, err
	}

	return buildModel(root.Body), nil
}

// LoadFile parses a DOCX file into the structural model
func LoadFile(path string) (*offerdoc.Document, error) {
	container, err := ContainerFromFile(path)
	if err != nil {
		return nil, err
	}

	docXML, err := container.DocumentXML()
	if err != nil {
		return nil, err
	}

	root, err := parseDocument(bytes.NewReader(docXML))
	if err != nil {
		return nil, err
	}

	return buildModel(root.Body), nil
}

// LoadFragment parses a fragment DOCX file; decode failures come back as
// an InvalidFragmentError so MergeMany can record and skip the fragment.
func LoadFragment(path string) (*offerdoc.Document, error) {
	fragment, err := LoadFile(path)
	if err != nil {
		return nil, offerdoc.NewInvalidFragmentError(path, err)
	}
	return fragment, nil
}

// Save serializes the model back into a DOCX package. The source package
// supplies everything outside the body: root namespaces, the trailing
// section properties, styles, relationships and media are carried over
// unchanged.
func Save(doc *offerdoc.Document, source []byte) ([]byte, error) {
	container, err := NewContainer(source)
	if err != nil {
		return nil, err
	}

	docXML, err := container.DocumentXML()
	if err != nil {
		return nil, err
	}

	root, err := parseDocument(bytes.NewReader(docXML))
	if err != nil {
		return nil, err
	}

	out, err := encodeDocument(doc, root.Attrs, root.Body.SectPr)
	if err != nil {
		return nil, err
	}

	return container.Rebuild(out)
}

// SaveNew serializes the model into a minimal, self-contained DOCX package
func SaveNew(doc *offerdoc.Document) ([]byte, error) {
	out, err := encodeDocument(doc, nil, nil)
	if err != nil {
		return nil, err
	}
	return NewPackage(out)
}

// buildModel maps a decoded body onto the structural model
func buildModel(body *docBody) *offerdoc.Document {
	doc := &offerdoc.Document{}

	for _, element := range body.Elements {
		switch el := element.(type) {
		case *paragraph:
			doc.Blocks = append(doc.Blocks, paragraphToBlock(el))
		case *table:
			doc.Blocks = append(doc.Blocks, tableToBlock(el))
		}
	}
	return doc
}

// paragraphToBlock decides what a w:p is in model terms: a section break,
// a heading (by style or by a leading dotted-number token, the convention
// the offer templates use), or a plain paragraph.
func paragraphToBlock(p *paragraph) offerdoc.Block {
	if p.Props != nil && p.Props.SectPr && len(p.Runs) == 0 {
		return &offerdoc.SectionBreak{}
	}

	text := strings.TrimSpace(p.text())
	styleLevel := headingStyleLevel(p)
	number, rest := splitNumberPrefix(text)

	if styleLevel > 0 {
		if number != nil {
			return &offerdoc.Heading{Level: styleLevel, Text: rest, Number: number}
		}
		return &offerdoc.Heading{Level: styleLevel, Text: text}
	}
	if number != nil && rest != "" && !isList(p) {
		return &offerdoc.Heading{Level: len(number), Text: rest, Number: number}
	}

	return paragraphToModel(p)
}

func paragraphToModel(p *paragraph) *offerdoc.Paragraph {
	para := &offerdoc.Paragraph{}
	for i := range p.Runs {
		para.Runs = append(para.Runs, runToModel(&p.Runs[i]))
	}
	if p.Props != nil && p.Props.NumPr != nil {
		level := p.Props.NumPr.Ilvl
		para.ListLevel = &level
	}
	return para
}

func runToModel(r *run) offerdoc.Run {
	model := offerdoc.Run{Text: r.text()}
	if r.Props != nil {
		model.Bold = r.Props.Bold
		model.Italic = r.Props.Italic
		model.Underline = r.Props.Underline
		model.Font = r.Props.Font
		model.SizePt = r.Props.SizeHalfPt / 2
	}
	return model
}

func tableToBlock(t *table) *offerdoc.Table {
	model := &offerdoc.Table{Rows: make([][]offerdoc.Cell, len(t.Rows))}
	for i, row := range t.Rows {
		model.Rows[i] = make([]offerdoc.Cell, len(row.Cells))
		for j := range row.Cells {
			cell := offerdoc.Cell{}
			for k := range row.Cells[j].Paragraphs {
				cell.Paragraphs = append(cell.Paragraphs, *paragraphToModel(&row.Cells[j].Paragraphs[k]))
			}
			model.Rows[i][j] = cell
		}
	}
	return model
}

// headingStyleLevel extracts the level from a HeadingN paragraph style
func headingStyleLevel(p *paragraph) int {
	if p.Props == nil || p.Props.Style == "" {
		return 0
	}
	style := strings.TrimSpace(p.Props.Style)
	if !strings.HasPrefix(style, "Heading") {
		return 0
	}
	level, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(style, "Heading")))
	if err != nil || level < 1 || level > 9 {
		return 0
	}
	return level
}

func isList(p *paragraph) bool {
	return p.Props != nil && p.Props.NumPr != nil
}

// splitNumberPrefix splits "1.2 Details" into ([1,2], "Details"). Returns
// a nil number when the first token is not a pure dotted number.
func splitNumberPrefix(text string) (offerdoc.SectionNumber, string) {
	first, rest := text, ""
	if idx := strings.IndexAny(text, " \t"); idx >= 0 {
		first, rest = text[:idx], strings.TrimSpace(text[idx+1:])
	}
	number, ok := offerdoc.ParseSectionNumber(first)
	if !ok {
		return nil, text
	}
	return number, rest
}

// encodeDocument serializes the model into word/document.xml bytes. Root
// attributes and the trailing sectPr come from the source document when
// rebuilding a package, or get wordprocessingml defaults for new packages.
func encodeDocument(doc *offerdoc.Document, rootAttrs []xml.Attr, sectPr *rawElement) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(xmlHeader)

	sb.WriteString("<w:document")
	if len(rootAttrs) > 0 {
		for _, attr := range rootAttrs {
			sb.WriteString(" ")
			sb.WriteString(attrString(attr))
		}
	} else {
		sb.WriteString(` xmlns:w="` + wordMLNamespace + `"`)
	}
	sb.WriteString("><w:body>")

	for _, block := range doc.Blocks {
		element := blockToSchema(block)
		out, err := xml.Marshal(element)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body element: %w", err)
		}
		sb.Write(out)
	}

	if sectPr != nil {
		sb.WriteString(sectPr.renderRaw())
	}

	sb.WriteString("</w:body></w:document>")
	return []byte(sb.String()), nil
}

// blockToSchema maps one model block onto its OOXML form
func blockToSchema(block offerdoc.Block) interface{} {
	switch b := block.(type) {
	case *offerdoc.Heading:
		return &paragraph{
			Props: &paragraphProps{Style: fmt.Sprintf("Heading%d", b.Level)},
			Runs:  []run{{Text: &runText{Content: b.DisplayText(), Space: spaceAttr(b.DisplayText())}}},
		}
	case *offerdoc.Paragraph:
		return modelParagraphToSchema(b)
	case *offerdoc.Table:
		schema := &table{Rows: make([]tableRow, len(b.Rows))}
		for i, row := range b.Rows {
			schema.Rows[i].Cells = make([]tableCell, len(row))
			for j := range row {
				for k := range row[j].Paragraphs {
					schema.Rows[i].Cells[j].Paragraphs = append(
						schema.Rows[i].Cells[j].Paragraphs,
						*modelParagraphToSchema(&row[j].Paragraphs[k]),
					)
				}
			}
		}
		return schema
	case *offerdoc.SectionBreak:
		return &paragraph{Props: &paragraphProps{SectPr: true}}
	default:
		return &paragraph{}
	}
}

func modelParagraphToSchema(p *offerdoc.Paragraph) *paragraph {
	schema := &paragraph{}
	if p.ListLevel != nil {
		schema.Props = &paragraphProps{
			Style: "ListParagraph",
			NumPr: &numberingProps{Ilvl: *p.ListLevel, NumID: 1},
		}
	}
	for _, r := range p.Runs {
		schema.Runs = append(schema.Runs, modelRunToSchema(r))
	}
	return schema
}

func modelRunToSchema(r offerdoc.Run) run {
	schema := run{Text: &runText{Content: r.Text, Space: spaceAttr(r.Text)}}
	if r.Bold || r.Italic || r.Underline || r.Font != "" || r.SizePt > 0 {
		schema.Props = &runProps{
			Bold:       r.Bold,
			Italic:     r.Italic,
			Underline:  r.Underline,
			Font:       r.Font,
			SizeHalfPt: r.SizePt * 2,
		}
	}
	return schema
}

// spaceAttr marks text with leading or trailing whitespace for preservation
func spaceAttr(text string) string {
	if text != strings.TrimSpace(text) {
		return "preserve"
	}
	return ""
}
