package xml

import (
	"encoding/xml"
	"strings"
)

// Paragraph is a <w:p> block. Content holds the paragraph's inline
// children in document order; runs nested inside hyperlinks stay inside
// their Hyperlink element and are not part of the paragraph's own run
// sequence.
type Paragraph struct {
	Attrs      []xml.Attr
	Properties *ParagraphProperties
	Content    []ParagraphContent
}

func (*Paragraph) isBodyElement() {}

// NewParagraph returns a paragraph built from runs, optionally styled.
func NewParagraph(style string, runs ...*Run) *Paragraph {
	p := &Paragraph{}
	if style != "" {
		p.Properties = &ParagraphProperties{Style: style}
	}
	for _, r := range runs {
		p.Content = append(p.Content, r)
	}
	return p
}

// Runs returns the paragraph's top-level runs in document order. These
// are the fragments replacement operates on.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.Content {
		if r, ok := c.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// GetText returns the concatenated text of the paragraph's top-level
// runs.
func (p *Paragraph) GetText() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(r.GetText())
	}
	return b.String()
}

func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Attrs = prefixedAttrs(start.Attr)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				props := &ParagraphProperties{}
				if err := props.unmarshal(d, t); err != nil {
					return err
				}
				p.Properties = props
			case "r":
				var run Run
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &run)
			case "hyperlink":
				var link Hyperlink
				if err := link.unmarshal(d, t); err != nil {
					return err
				}
				p.Content = append(p.Content, &link)
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				p.Content = append(p.Content, raw)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *Paragraph) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:p"}, Attr: p.Attrs}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	if p.Properties != nil {
		if err := p.Properties.marshal(e); err != nil {
			return err
		}
	}
	for _, c := range p.Content {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}

// ParagraphProperties carries <w:pPr>. Parsed children are preserved in
// Raw except for sectPr, which is decoded so section boundaries can be
// enumerated. Style and Alignment exist for paragraphs built from
// scratch.
type ParagraphProperties struct {
	Raw       []byte
	Style     string
	Alignment string
	SectPr    *SectionProperties
}

func (pp *ParagraphProperties) unmarshal(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "sectPr" {
				sect := &SectionProperties{}
				if err := sect.unmarshal(d, t); err != nil {
					return err
				}
				pp.SectPr = sect
				continue
			}
			raw, err := captureRaw(d, t)
			if err != nil {
				return err
			}
			pp.Raw = append(pp.Raw, raw.Content...)
		case xml.EndElement:
			return nil
		}
	}
}

func (pp *ParagraphProperties) marshal(e *xml.Encoder) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:pPr"}}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	if pp.Style != "" {
		if err := encodeValElement(e, "w:pStyle", pp.Style); err != nil {
			return err
		}
	}
	if pp.Alignment != "" {
		if err := encodeValElement(e, "w:jc", pp.Alignment); err != nil {
			return err
		}
	}
	if err := encodeRaw(e, pp.Raw); err != nil {
		return err
	}
	if pp.SectPr != nil {
		if err := pp.SectPr.marshal(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}

// Hyperlink is a <w:hyperlink> wrapper around runs. Its attributes,
// including the relationship id, are preserved as parsed.
type Hyperlink struct {
	Attrs   []xml.Attr
	Content []ParagraphContent
}

func (*Hyperlink) isParagraphContent() {}

func (h *Hyperlink) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	h.Attrs = prefixedAttrs(start.Attr)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "r" {
				var run Run
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				h.Content = append(h.Content, &run)
				continue
			}
			raw, err := captureRaw(d, t)
			if err != nil {
				return err
			}
			h.Content = append(h.Content, raw)
		case xml.EndElement:
			return nil
		}
	}
}

func (h *Hyperlink) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:hyperlink"}, Attr: h.Attrs}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	for _, c := range h.Content {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}
