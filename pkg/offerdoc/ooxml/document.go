package ooxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// bodyElement represents any element that can appear in a document body
type bodyElement interface {
	isBodyElement()
}

// rawElement preserves an element we do not parse, such as the trailing
// section properties, byte for byte in prefixed form
type rawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	Content []byte
}

// docRoot represents the w:document root element
type docRoot struct {
	Attrs []xml.Attr
	Body  *docBody
}

// docBody represents the document body, preserving element order
type docBody struct {
	Elements []bodyElement
	// SectPr is the section properties block at the end of the body;
	// Word requires it to survive a rewrite
	SectPr *rawElement
}

// UnmarshalXML implements custom XML unmarshaling to preserve root attributes
func (d *docRoot) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	d.Attrs = start.Attr

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
			if t.Name.Local == "body" {
				var body docBody
				if err := dec.DecodeElement(&body, &t); err != nil {
					return err
				}
				d.Body = &body
			} else if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "document" {
				return nil
			}
		}
	}
	return nil
}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (b *docBody) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
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
			case "p":
				var para paragraph
				if err := dec.DecodeElement(&para, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &para)
			case "tbl":
				var tbl table
				if err := dec.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &tbl)
			case "sectPr":
				raw, err := captureRaw(dec, t)
				if err != nil {
					return err
				}
				b.SectPr = raw
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		}
	}
	return nil
}

// captureRaw reads an element and its content into prefixed raw XML text
func captureRaw(dec *xml.Decoder, start xml.StartElement) (*rawElement, error) {
	raw := &rawElement{XMLName: start.Name, Attrs: start.Attr}

	depth := 1
	var buf strings.Builder

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch tt := tok.(type) {
		case xml.StartElement:
			depth++
			writeStartTag(&buf, tt)
		case xml.EndElement:
			depth--
			if depth > 0 {
				writeEndTag(&buf, tt)
			}
		case xml.CharData:
			buf.WriteString(escapeCharData(string(tt)))
		}
	}

	raw.Content = []byte(buf.String())
	return raw, nil
}

func writeStartTag(buf *strings.Builder, t xml.StartElement) {
	buf.WriteString("<")
	writeName(buf, t.Name)
	for _, attr := range t.Attr {
		buf.WriteString(" ")
		writeName(buf, attr.Name)
		buf.WriteString("=\"")
		buf.WriteString(attr.Value)
		buf.WriteString("\"")
	}
	buf.WriteString(">")
}

func writeEndTag(buf *strings.Builder, t xml.EndElement) {
	buf.WriteString("</")
	writeName(buf, t.Name)
	buf.WriteString(">")
}

func writeName(buf *strings.Builder, name xml.Name) {
	if name.Space != "" {
		buf.WriteString(namespaceToPrefix(name.Space))
		buf.WriteString(":")
	}
	buf.WriteString(name.Local)
}

func escapeCharData(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// renderRaw renders a captured raw element back into XML text
func (r *rawElement) renderRaw() string {
	var buf strings.Builder
	buf.WriteString("<")
	writeName(&buf, r.XMLName)
	for _, attr := range r.Attrs {
		buf.WriteString(" ")
		writeName(&buf, attr.Name)
		buf.WriteString("=\"")
		buf.WriteString(attr.Value)
		buf.WriteString("\"")
	}
	buf.WriteString(">")
	buf.Write(r.Content)
	buf.WriteString("</")
	writeName(&buf, r.XMLName)
	buf.WriteString(">")
	return buf.String()
}

// parseDocument parses a word/document.xml payload
func parseDocument(r io.Reader) (*docRoot, error) {
	decoder := xml.NewDecoder(r)

	var doc docRoot
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Body == nil {
		return nil, fmt.Errorf("failed to parse document: missing body")
	}
	return &doc, nil
}
