// Package ooxml is the DOCX codec for the composition engine: it parses a
// WordprocessingML package into the structural model of package offerdoc and
// serializes a merged model back into a package.
package ooxml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

const documentPart = "word/document.xml"

// Container handles reading the parts of a DOCX package
type Container struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
	source []byte
}

// NewContainer opens a DOCX package from bytes
func NewContainer(data []byte) (*Container, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	c := &Container{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
		source: data,
	}

	for _, file := range zipReader.File {
		c.Parts[file.Name] = file
	}

	if _, ok := c.Parts[documentPart]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", documentPart)
	}

	return c, nil
}

// ContainerFromFile opens a DOCX package from a file path
func ContainerFromFile(path string) (*Container, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return NewContainer(content)
}

// DocumentXML retrieves the content of word/document.xml
func (c *Container) DocumentXML() ([]byte, error) {
	return c.Part(documentPart)
}

// Part retrieves the content of a specific part
func (c *Container) Part(partName string) ([]byte, error) {
	file, ok := c.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}

	return content, nil
}

// Rebuild writes a new package with the given document.xml content, copying
// every other part of the source package unchanged. Styles, relationships,
// headers and media survive the merge untouched.
func (c *Container) Rebuild(documentXML []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for _, file := range c.reader.File {
		fw, err := w.Create(file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", file.Name, err)
		}

		if file.Name == documentPart {
			if _, err := fw.Write(documentXML); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", file.Name, err)
			}
			continue
		}

		fr, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
		}
		_, err = io.Copy(fw, fr)
		fr.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize package: %w", err)
	}
	return buf.Bytes(), nil
}

// NewPackage builds a minimal DOCX package around the given document.xml.
// Used for fragments and generated templates that have no source package.
func NewPackage(documentXML []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	parts := []struct {
		name    string
		content string
	}{
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`},
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
	}

	for _, part := range parts {
		fw, err := w.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := io.WriteString(fw, part.content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	fw, err := w.Create(documentPart)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", documentPart, err)
	}
	if _, err := fw.Write(documentXML); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", documentPart, err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize package: %w", err)
	}
	return buf.Bytes(), nil
}
