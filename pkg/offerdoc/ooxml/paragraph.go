package ooxml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// paragraph represents a w:p element
type paragraph struct {
	Props *paragraphProps
	Runs  []run
}

func (p *paragraph) isBodyElement() {}

// paragraphProps represents the subset of w:pPr the engine cares about:
// the paragraph style, the numbering reference for list items, and whether
// the paragraph carries an inline section break.
type paragraphProps struct {
	Style  string
	NumPr  *numberingProps
	SectPr bool
}

// numberingProps represents w:numPr
type numberingProps struct {
	Ilvl  int
	NumID int
}

// UnmarshalXML implements custom XML unmarshaling to preserve run order.
// Hyperlink runs are flattened into plain runs; link targets are not part
// of the structural model.
func (p *paragraph) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				var props paragraphProps
				if err := dec.DecodeElement(&props, &t); err != nil {
					return err
				}
				p.Props = &props
			case "r":
				var r run
				if err := dec.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, r)
			case "hyperlink":
				runs, err := decodeHyperlinkRuns(dec)
				if err != nil {
					return err
				}
				p.Runs = append(p.Runs, runs...)
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				return nil
			}
		}
	}
	return nil
}

func decodeHyperlinkRuns(dec *xml.Decoder) ([]run, error) {
	var runs []run
	for {
		token, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "r" {
				var r run
				if err := dec.DecodeElement(&r, &t); err != nil {
					return nil, err
				}
				runs = append(runs, r)
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == "hyperlink" {
				return runs, nil
			}
		}
	}
}

// UnmarshalXML implements custom XML unmarshaling for paragraph properties
func (p *paragraphProps) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pStyle":
				p.Style = attrVal(t, "val")
				if err := dec.Skip(); err != nil {
					return err
				}
			case "numPr":
				var num numberingProps
				if err := dec.DecodeElement(&num, &t); err != nil {
					return err
				}
				p.NumPr = &num
			case "sectPr":
				p.SectPr = true
				if err := dec.Skip(); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "pPr" {
				return nil
			}
		}
	}
	return nil
}

// UnmarshalXML implements custom XML unmarshaling for w:numPr
func (n *numberingProps) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "ilvl":
				if v, err := strconv.Atoi(attrVal(t, "val")); err == nil {
					n.Ilvl = v
				}
			case "numId":
				if v, err := strconv.Atoi(attrVal(t, "val")); err == nil {
					n.NumID = v
				}
			}
			if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "numPr" {
				return nil
			}
		}
	}
	return nil
}

// MarshalXML implements custom XML marshaling for paragraph to ensure proper namespacing
func (p paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:p"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Props != nil {
		if err := e.Encode(p.Props); err != nil {
			return err
		}
	}

	for _, r := range p.Runs {
		if err := e.Encode(&r); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML implements custom XML marshaling for paragraph properties
func (p *paragraphProps) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:pPr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != "" {
		if err := encodeValElement(e, "w:pStyle", p.Style); err != nil {
			return err
		}
	}

	if p.NumPr != nil {
		numStart := xml.StartElement{Name: xml.Name{Local: "w:numPr"}}
		if err := e.EncodeToken(numStart); err != nil {
			return err
		}
		if err := encodeValElement(e, "w:ilvl", strconv.Itoa(p.NumPr.Ilvl)); err != nil {
			return err
		}
		if err := encodeValElement(e, "w:numId", strconv.Itoa(p.NumPr.NumID)); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: numStart.Name}); err != nil {
			return err
		}
	}

	if p.SectPr {
		sectStart := xml.StartElement{Name: xml.Name{Local: "w:sectPr"}}
		if err := e.EncodeToken(sectStart); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: sectStart.Name}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// encodeValElement writes a self-closing element with a single w:val attribute
func encodeValElement(e *xml.Encoder, name, val string) error {
	start := xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: val}},
	}
	return e.EncodeElement(struct{}{}, start)
}

// attrVal returns the value of the named attribute, ignoring namespace
func attrVal(t xml.StartElement, local string) string {
	for _, attr := range t.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

// text returns the concatenated text of all runs in the paragraph
func (p *paragraph) text() string {
	var sb strings.Builder
	for i := range p.Runs {
		sb.WriteString(p.Runs[i].text())
	}
	return sb.String()
}
