package ooxml

import "encoding/xml"

const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// namespaceToPrefix converts a namespace URI to its conventional prefix.
// Needed when reconstructing raw XML, because encoding/xml resolves prefixes
// to URIs during decoding.
func namespaceToPrefix(uri string) string {
	prefixMap := map[string]string{
		"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
		"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
		"http://schemas.openxmlformats.org/officeDocument/2006/math":             "m",
		"http://www.w3.org/XML/1998/namespace":                                   "xml",
		"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
		"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
		"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
		"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
		"urn:schemas-microsoft-com:vml":                                          "v",
		"urn:schemas-microsoft-com:office:office":                                "o",
		"urn:schemas-microsoft-com:office:word":                                  "w10",
		"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
		"http://schemas.microsoft.com/office/word/2012/wordml":                   "w15",
	}

	if prefix, ok := prefixMap[uri]; ok {
		return prefix
	}
	return uri
}

// attrString renders a decoded root attribute back into source form
func attrString(attr xml.Attr) string {
	switch {
	case attr.Name.Space == "xmlns":
		return "xmlns:" + attr.Name.Local + "=\"" + attr.Value + "\""
	case attr.Name.Local == "xmlns":
		return "xmlns=\"" + attr.Value + "\""
	case attr.Name.Space != "":
		return namespaceToPrefix(attr.Name.Space) + ":" + attr.Name.Local + "=\"" + attr.Value + "\""
	default:
		return attr.Name.Local + "=\"" + attr.Value + "\""
	}
}
