package xml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Root element names of header and footer parts.
const (
	HeaderRoot = "hdr"
	FooterRoot = "ftr"
)

// HeaderFooter is a parsed header or footer part. RootLocal is HeaderRoot
// or FooterRoot and decides the element name written on save.
type HeaderFooter struct {
	RootLocal string
	Attrs     []xml.Attr
	Elements  []BodyElement
}

// NewHeaderFooter returns an empty part with the namespaces the model
// writes declared on its root.
func NewHeaderFooter(rootLocal string) *HeaderFooter {
	return &HeaderFooter{
		RootLocal: rootLocal,
		Attrs: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: nsMain},
			{Name: xml.Name{Local: "xmlns:r"}, Value: nsRelationships},
		},
	}
}

// Paragraphs returns the part's top-level paragraphs in document order.
func (hf *HeaderFooter) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, el := range hf.Elements {
		if p, ok := el.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// Tables returns the part's top-level tables in document order.
func (hf *HeaderFooter) Tables() []*Table {
	var tables []*Table
	for _, el := range hf.Elements {
		if t, ok := el.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// ParseHeaderFooter decodes a header or footer part from r.
func ParseHeaderFooter(r io.Reader) (*HeaderFooter, error) {
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no header or footer element found")
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != HeaderRoot && start.Name.Local != FooterRoot {
			return nil, fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}
		hf := &HeaderFooter{RootLocal: start.Name.Local, Attrs: prefixedAttrs(start.Attr)}
		if err := hf.unmarshalChildren(d); err != nil {
			return nil, err
		}
		return hf, nil
	}
}

func (hf *HeaderFooter) unmarshalChildren(d *xml.Decoder) error {
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
			switch t.Name.Local {
			case "p":
				var p Paragraph
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				hf.Elements = append(hf.Elements, &p)
			case "tbl":
				var tbl Table
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				hf.Elements = append(hf.Elements, &tbl)
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				hf.Elements = append(hf.Elements, raw)
			}
		case xml.EndElement:
			return nil
		}
	}
}
