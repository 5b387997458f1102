package xml

import (
	"encoding/xml"
	"fmt"
	"io"
)

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// DocumentPartName is the package part holding the main document.
const DocumentPartName = "word/document.xml"

// Document is the parsed word/document.xml part. Attrs keeps the root
// element's attributes, namespace declarations included, so the saved
// part declares the same namespaces the source did.
type Document struct {
	Attrs []xml.Attr
	Extra []byte
	Body  *Body
}

// NewDocument returns an empty document declaring the namespaces the
// model writes.
func NewDocument() *Document {
	return &Document{
		Attrs: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: nsMain},
			{Name: xml.Name{Local: "xmlns:r"}, Value: nsRelationships},
		},
		Body: &Body{},
	}
}

// ParseDocument decodes a document part from r.
func ParseDocument(r io.Reader) (*Document, error) {
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no document element found")
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "document" {
			return nil, fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}
		doc := &Document{Attrs: prefixedAttrs(start.Attr)}
		if err := doc.unmarshalChildren(d); err != nil {
			return nil, err
		}
		if doc.Body == nil {
			return nil, fmt.Errorf("document has no body")
		}
		return doc, nil
	}
}

func (doc *Document) unmarshalChildren(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				body := &Body{}
				if err := body.unmarshal(d); err != nil {
					return err
				}
				doc.Body = body
				continue
			}
			raw, err := captureRaw(d, t)
			if err != nil {
				return err
			}
			doc.Extra = append(doc.Extra, raw.Content...)
		case xml.EndElement:
			return nil
		}
	}
}

// Sections returns the document's sections in order: one per paragraph
// carrying a sectPr in its properties, then the body-level sectPr that
// closes the final section.
func (doc *Document) Sections() []*SectionProperties {
	var sections []*SectionProperties
	for _, el := range doc.Body.Elements {
		p, ok := el.(*Paragraph)
		if !ok || p.Properties == nil || p.Properties.SectPr == nil {
			continue
		}
		sections = append(sections, p.Properties.SectPr)
	}
	if doc.Body.SectPr != nil {
		sections = append(sections, doc.Body.SectPr)
	}
	return sections
}

// Body holds the block-level elements of the document in order plus the
// trailing body-level section properties.
type Body struct {
	Elements []BodyElement
	SectPr   *SectionProperties
}

// Paragraphs returns the body's top-level paragraphs in document order.
func (b *Body) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, el := range b.Elements {
		if p, ok := el.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// Tables returns the body's top-level tables in document order.
func (b *Body) Tables() []*Table {
	var tables []*Table
	for _, el := range b.Elements {
		if t, ok := el.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

func (b *Body) unmarshal(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p Paragraph
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &p)
			case "tbl":
				var tbl Table
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &tbl)
			case "sectPr":
				sect := &SectionProperties{}
				if err := sect.unmarshal(d, t); err != nil {
					return err
				}
				b.SectPr = sect
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				b.Elements = append(b.Elements, raw)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (b *Body) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:body"}}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	for _, el := range b.Elements {
		if err := e.Encode(el); err != nil {
			return err
		}
	}
	if b.SectPr != nil {
		if err := b.SectPr.marshal(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}
