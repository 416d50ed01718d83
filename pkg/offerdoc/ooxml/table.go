package ooxml

import (
	"encoding/xml"
	"io"
)

// table represents a w:tbl element. Only structure and cell content are
// modeled; table-level presentation properties are regenerated on encode.
type table struct {
	Rows []tableRow
}

func (t *table) isBodyElement() {}

// tableRow represents a w:tr element
type tableRow struct {
	Cells []tableCell
}

// tableCell represents a w:tc element
type tableCell struct {
	Paragraphs []paragraph
}

// UnmarshalXML implements custom XML unmarshaling for tables
func (t *table) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "tr" {
				var row tableRow
				if err := dec.DecodeElement(&row, &tok); err != nil {
					return err
				}
				t.Rows = append(t.Rows, row)
			} else if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if tok.Name.Local == "tbl" {
				return nil
			}
		}
	}
	return nil
}

// UnmarshalXML implements custom XML unmarshaling for table rows
func (r *tableRow) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "tc" {
				var cell tableCell
				if err := dec.DecodeElement(&cell, &tok); err != nil {
					return err
				}
				r.Cells = append(r.Cells, cell)
			} else if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if tok.Name.Local == "tr" {
				return nil
			}
		}
	}
	return nil
}

// UnmarshalXML implements custom XML unmarshaling for table cells
func (c *tableCell) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "p" {
				var para paragraph
				if err := dec.DecodeElement(&para, &tok); err != nil {
					return err
				}
				c.Paragraphs = append(c.Paragraphs, para)
			} else if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if tok.Name.Local == "tc" {
				return nil
			}
		}
	}
	return nil
}

// MarshalXML implements custom XML marshaling for tables to ensure proper namespacing
func (t *table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:tbl"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	propsStart := xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}
	if err := e.EncodeToken(propsStart); err != nil {
		return err
	}
	if err := encodeValElement(e, "w:tblStyle", "TableGrid"); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.EndElement{Name: propsStart.Name}); err != nil {
		return err
	}

	cols := 0
	for _, row := range t.Rows {
		if len(row.Cells) > cols {
			cols = len(row.Cells)
		}
	}
	gridStart := xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}
	if err := e.EncodeToken(gridStart); err != nil {
		return err
	}
	for i := 0; i < cols; i++ {
		col := xml.StartElement{Name: xml.Name{Local: "w:gridCol"}}
		if err := e.EncodeElement(struct{}{}, col); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(xml.EndElement{Name: gridStart.Name}); err != nil {
		return err
	}

	for _, row := range t.Rows {
		if err := e.Encode(&row); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML implements custom XML marshaling for table rows
func (r *tableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:tr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, cell := range r.Cells {
		if err := e.Encode(&cell); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML implements custom XML marshaling for table cells. Word rejects
// cells without at least one paragraph, so an empty cell gets one.
func (c *tableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:tc"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	paragraphs := c.Paragraphs
	if len(paragraphs) == 0 {
		paragraphs = []paragraph{{}}
	}
	for i := range paragraphs {
		if err := e.Encode(&paragraphs[i]); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
