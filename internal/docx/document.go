package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	documentPart     = "word/document.xml"
	contentTypesPart = "[Content_Types].xml"
	packageRelsPart  = "_rels/.rels"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n"

const minimalContentTypes = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const minimalPackageRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// Document is an opened .docx package. The main document part is parsed into
// a mutable body tree; every other package part (styles, relationships,
// headers, media) is carried through byte-for-byte and written back on Save.
//
// A Document is not safe for concurrent use. Callers that generate multiple
// outputs from one template open the template once per output.
type Document struct {
	parts     map[string][]byte
	partOrder []string
	rootAttrs []xml.Attr
	prefixes  map[string]string
	body      *Body
}

// Body holds the ordered block-level content of the document: paragraphs and
// tables in document order, plus preserved elements the model does not
// interpret. Section properties are kept aside and re-emitted last, where
// WordprocessingML requires them.
type Body struct {
	items  []BodyElement
	sectPr *rawNode
}

// BodyElement is a block-level element in a document body or a table cell:
// *Paragraph, *Table, or preserved raw content.
type BodyElement interface {
	bodyElement()
	encodeElement(e *xml.Encoder, prefixes map[string]string) error
}

func (*rawNode) bodyElement() {}

func (n *rawNode) encodeElement(e *xml.Encoder, prefixes map[string]string) error {
	return n.encode(e, prefixes)
}

// New creates an empty document carrying only the package parts Word
// requires. Content is added through AddParagraph and AddTable.
func New() *Document {
	return &Document{
		parts: map[string][]byte{
			contentTypesPart: []byte(minimalContentTypes),
			packageRelsPart:  []byte(minimalPackageRels),
			documentPart:     nil, // regenerated on Save
		},
		partOrder: []string{contentTypesPart, packageRelsPart, documentPart},
		prefixes:  buildPrefixes(nil),
		body:      &Body{},
	}
}

// Open reads a .docx file from disk and parses its main document part.
func Open(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer zr.Close()

	doc := &Document{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		doc.parts[f.Name] = data
		doc.partOrder = append(doc.partOrder, f.Name)
	}

	main, ok := doc.parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("open %s: no %s part", path, documentPart)
	}
	if err := doc.parseMain(main); err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentPart, err)
	}
	return doc, nil
}

// parseMain parses word/document.xml into the body tree and records the root
// element's attributes and namespace declarations for faithful re-emission.
func (doc *Document) parseMain(data []byte) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return fmt.Errorf("no document element")
		}
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "document" {
			return fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}
		doc.rootAttrs = append(doc.rootAttrs, start.Attr...)
		doc.prefixes = buildPrefixes(doc.rootAttrs)
		return doc.parseDocumentElement(d)
	}
}

func (doc *Document) parseDocumentElement(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				body, err := parseBody(d)
				if err != nil {
					return err
				}
				doc.body = body
			} else if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			// end of w:document
		}
	}
	if doc.body == nil {
		return fmt.Errorf("document has no body")
	}
	return nil
}

func parseBody(d *xml.Decoder) (*Body, error) {
	body := &Body{}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := parseParagraph(d, t)
				if err != nil {
					return nil, err
				}
				body.items = append(body.items, p)
			case "tbl":
				tbl, err := parseTable(d, t)
				if err != nil {
					return nil, err
				}
				body.items = append(body.items, tbl)
			case "sectPr":
				sp, err := decodeRaw(d, t)
				if err != nil {
					return nil, err
				}
				body.sectPr = sp
			default:
				n, err := decodeRaw(d, t)
				if err != nil {
					return nil, err
				}
				body.items = append(body.items, n)
			}
		case xml.EndElement:
			return body, nil
		}
	}
}

// buildPrefixes derives the namespace→prefix table from the root element's
// xmlns declarations, backfilled with the canonical OOXML prefixes for
// namespaces the root does not declare.
func buildPrefixes(attrs []xml.Attr) map[string]string {
	prefixes := make(map[string]string, len(defaultPrefixes))
	for uri, p := range defaultPrefixes {
		prefixes[uri] = p
	}
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			prefixes[a.Value] = a.Name.Local
		}
	}
	return prefixes
}

// Paragraphs returns the body's top-level paragraphs in document order.
// Paragraphs inside table cells are reached through Tables.
func (doc *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, item := range doc.body.items {
		if p, ok := item.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the body's top-level tables in document order.
func (doc *Document) Tables() []*Table {
	var out []*Table
	for _, item := range doc.body.items {
		if t, ok := item.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// AddParagraph appends a paragraph with the given text to the body.
func (doc *Document) AddParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.AddRun(text)
	}
	doc.body.items = append(doc.body.items, p)
	return p
}

// AddTable appends a table with the given dimensions. Each cell starts with
// one empty paragraph, and the grid is populated so column counting works.
func (doc *Document) AddTable(rows, cols int) *Table {
	t := newTable(rows, cols)
	doc.body.items = append(doc.body.items, t)
	return t
}

// mainXML serializes the body tree back into the word/document.xml part.
func (doc *Document) mainXML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)

	attrs := ensureNamespaceAttrs(doc.rootAttrs, doc.prefixes)
	buf.WriteString("<w:document")
	for _, a := range attrs {
		buf.WriteString(" ")
		buf.WriteString(prefixedAttrName(a.Name, doc.prefixes))
		buf.WriteString(`="`)
		xml.EscapeText(&buf, []byte(a.Value))
		buf.WriteString(`"`)
	}
	buf.WriteString(">")

	e := xml.NewEncoder(&buf)
	if err := e.EncodeToken(xml.StartElement{Name: xml.Name{Local: "w:body"}}); err != nil {
		return nil, err
	}
	for _, item := range doc.body.items {
		if err := item.encodeElement(e, doc.prefixes); err != nil {
			return nil, err
		}
	}
	if doc.body.sectPr != nil {
		if err := doc.body.sectPr.encode(e, doc.prefixes); err != nil {
			return nil, err
		}
	}
	if err := e.EncodeToken(xml.EndElement{Name: xml.Name{Local: "w:body"}}); err != nil {
		return nil, err
	}
	if err := e.Flush(); err != nil {
		return nil, err
	}

	buf.WriteString("</w:document>")
	return buf.Bytes(), nil
}

// ensureNamespaceAttrs guarantees the w and r namespaces are declared on the
// document element, since serialized content always uses those prefixes.
func ensureNamespaceAttrs(attrs []xml.Attr, prefixes map[string]string) []xml.Attr {
	out := append([]xml.Attr{}, attrs...)
	for _, ns := range []struct{ uri, prefix string }{{nsW, "w"}, {nsR, "r"}} {
		declared := false
		for _, a := range out {
			if a.Name.Space == "xmlns" && a.Value == ns.uri {
				declared = true
				break
			}
		}
		if !declared {
			out = append(out, xml.Attr{
				Name:  xml.Name{Space: "xmlns", Local: prefixes[ns.uri]},
				Value: ns.uri,
			})
		}
	}
	return out
}

// Save writes the document to path atomically: the package is assembled in a
// temporary file in the destination directory and renamed into place only
// after a fully successful write, so a failed save leaves no partial output.
func (doc *Document) Save(path string) error {
	main, err := doc.mainXML()
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := doc.writePackage(tmp, main); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func (doc *Document) writePackage(w io.Writer, main []byte) error {
	zw := zip.NewWriter(w)
	names := doc.partOrder
	if _, ok := doc.parts[documentPart]; !ok {
		names = append(append([]string{}, names...), documentPart)
	}
	for _, name := range names {
		data := doc.parts[name]
		if name == documentPart {
			data = main
		}
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize package: %w", err)
	}
	return nil
}

// bodyText joins the text of each paragraph in items, one paragraph per
// line. Used for cell text and diagnostics.
func bodyText(items []BodyElement) string {
	var parts []string
	for _, item := range items {
		if p, ok := item.(*Paragraph); ok {
			parts = append(parts, p.Text())
		}
	}
	return strings.Join(parts, "\n")
}
