package xml

import "encoding/xml"

// Table is a <w:tbl> block. Table-level and row-level properties are not
// interpreted, only preserved; the model exposes just the row and cell
// structure replacement needs to reach paragraphs.
type Table struct {
	Attrs    []xml.Attr
	PropsRaw []byte
	GridRaw  []byte
	Extra    []byte
	Rows     []*TableRow
}

func (*Table) isBodyElement() {}

func (t *Table) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	t.Attrs = prefixedAttrs(start.Attr)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tblPr":
				raw, err := captureRaw(d, el)
				if err != nil {
					return err
				}
				t.PropsRaw = raw.Content
			case "tblGrid":
				raw, err := captureRaw(d, el)
				if err != nil {
					return err
				}
				t.GridRaw = raw.Content
			case "tr":
				row := &TableRow{}
				if err := row.unmarshal(d, el); err != nil {
					return err
				}
				t.Rows = append(t.Rows, row)
			default:
				raw, err := captureRaw(d, el)
				if err != nil {
					return err
				}
				t.Extra = append(t.Extra, raw.Content...)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (t *Table) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:tbl"}, Attr: t.Attrs}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	if err := encodeRaw(e, t.PropsRaw); err != nil {
		return err
	}
	if err := encodeRaw(e, t.GridRaw); err != nil {
		return err
	}
	if err := encodeRaw(e, t.Extra); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := e.Encode(row); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}

// TableRow is a <w:tr>.
type TableRow struct {
	Attrs    []xml.Attr
	PropsRaw []byte
	Extra    []byte
	Cells    []*TableCell
}

func (r *TableRow) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	r.Attrs = prefixedAttrs(start.Attr)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "trPr":
				raw, err := captureRaw(d, el)
				if err != nil {
					return err
				}
				r.PropsRaw = raw.Content
			case "tc":
				cell := &TableCell{}
				if err := cell.unmarshal(d, el); err != nil {
					return err
				}
				r.Cells = append(r.Cells, cell)
			default:
				raw, err := captureRaw(d, el)
				if err != nil {
					return err
				}
				r.Extra = append(r.Extra, raw.Content...)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (r *TableRow) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:tr"}, Attr: r.Attrs}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	if err := encodeRaw(e, r.PropsRaw); err != nil {
		return err
	}
	if err := encodeRaw(e, r.Extra); err != nil {
		return err
	}
	for _, cell := range r.Cells {
		if err := e.Encode(cell); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}

// TableCell is a <w:tc>. Blocks holds the cell's block-level children in
// order: paragraphs, nested tables, and anything else as raw XML.
type TableCell struct {
	Attrs    []xml.Attr
	PropsRaw []byte
	Blocks   []BodyElement
}

// Paragraphs returns the cell's direct paragraphs. Paragraphs inside
// nested tables are not included.
func (c *TableCell) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, b := range c.Blocks {
		if p, ok := b.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

func (c *TableCell) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	c.Attrs = prefixedAttrs(start.Attr)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tcPr":
				raw, err := captureRaw(d, el)
				if err != nil {
					return err
				}
				c.PropsRaw = raw.Content
			case "p":
				var p Paragraph
				if err := d.DecodeElement(&p, &el); err != nil {
					return err
				}
				c.Blocks = append(c.Blocks, &p)
			case "tbl":
				var nested Table
				if err := d.DecodeElement(&nested, &el); err != nil {
					return err
				}
				c.Blocks = append(c.Blocks, &nested)
			default:
				raw, err := captureRaw(d, el)
				if err != nil {
					return err
				}
				c.Blocks = append(c.Blocks, raw)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (c *TableCell) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:tc"}, Attr: c.Attrs}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	if err := encodeRaw(e, c.PropsRaw); err != nil {
		return err
	}
	for _, b := range c.Blocks {
		if err := e.Encode(b); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}
