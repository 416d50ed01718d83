package ooxml

import (
	"encoding/xml"
	"io"
	"strconv"
)

// run represents a w:r element
type run struct {
	Props *runProps
	Text  *runText
}

// runProps represents the subset of w:rPr the structural model carries:
// the three content formatting flags plus the presentation font and size.
type runProps struct {
	Bold       bool
	Italic     bool
	Underline  bool
	Font       string
	SizeHalfPt int
}

// runText represents a w:t element
type runText struct {
	Space   string
	Content string
}

// UnmarshalXML implements custom XML unmarshaling for runs
func (r *run) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
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
			case "rPr":
				var props runProps
				if err := dec.DecodeElement(&props, &t); err != nil {
					return err
				}
				r.Props = &props
			case "t":
				var txt runText
				txt.Space = attrVal(t, "space")
				if err := dec.DecodeElement(&txt.Content, &t); err != nil {
					return err
				}
				r.Text = &txt
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "r" {
				return nil
			}
		}
	}
	return nil
}

// UnmarshalXML implements custom XML unmarshaling for run properties.
// An empty toggle element means on; an explicit w:val of "0", "false" or
// "none" means off.
func (p *runProps) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
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
			case "b":
				p.Bold = toggleOn(attrVal(t, "val"))
			case "i":
				p.Italic = toggleOn(attrVal(t, "val"))
			case "u":
				p.Underline = toggleOn(attrVal(t, "val"))
			case "rFonts":
				p.Font = attrVal(t, "ascii")
			case "sz":
				if v, err := strconv.Atoi(attrVal(t, "val")); err == nil {
					p.SizeHalfPt = v
				}
			}
			if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "rPr" {
				return nil
			}
		}
	}
	return nil
}

func toggleOn(val string) bool {
	switch val {
	case "0", "false", "none":
		return false
	default:
		return true
	}
}

// MarshalXML implements custom XML marshaling for runs to ensure proper namespacing
func (r *run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:r"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Props != nil {
		if err := e.Encode(r.Props); err != nil {
			return err
		}
	}

	if r.Text != nil {
		if err := e.Encode(r.Text); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML implements custom XML marshaling for run properties
func (p *runProps) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:rPr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Font != "" {
		fonts := xml.StartElement{
			Name: xml.Name{Local: "w:rFonts"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:ascii"}, Value: p.Font}},
		}
		if err := e.EncodeElement(struct{}{}, fonts); err != nil {
			return err
		}
	}

	if p.Bold {
		if err := encodeEmptyElement(e, "w:b"); err != nil {
			return err
		}
	}
	if p.Italic {
		if err := encodeEmptyElement(e, "w:i"); err != nil {
			return err
		}
	}
	if p.Underline {
		if err := encodeValElement(e, "w:u", "single"); err != nil {
			return err
		}
	}
	if p.SizeHalfPt > 0 {
		if err := encodeValElement(e, "w:sz", strconv.Itoa(p.SizeHalfPt)); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML implements custom XML marshaling for w:t, preserving spaces
func (t *runText) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:t"}}
	if t.Space == "preserve" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Space: "http://www.w3.org/XML/1998/namespace", Local: "space"},
			Value: "preserve",
		})
	}
	return e.EncodeElement(t.Content, start)
}

func encodeEmptyElement(e *xml.Encoder, name string) error {
	return e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: name}})
}

// text returns the text content of the run
func (r *run) text() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}
