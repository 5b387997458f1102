package xml

import (
	"encoding/xml"
	"strings"
)

// RunContent is implemented by the inline children of a run.
type RunContent interface {
	isRunContent()
}

func (*RawXMLElement) isRunContent() {}

// Run is a region of text sharing one set of character properties. Runs
// are the unit of styling: replacement rewrites their text in place and
// never splits, merges, or removes them.
type Run struct {
	Attrs      []xml.Attr
	Properties *RunProperties
	Content    []RunContent
}

func (*Run) isParagraphContent() {}

// NewTextRun returns a run holding text, optionally with properties.
func NewTextRun(text string, props *RunProperties) *Run {
	r := &Run{Properties: props}
	r.SetText(text)
	return r
}

// NewPageBreakRun returns a run holding a single page break.
func NewPageBreakRun() *Run {
	return &Run{Content: []RunContent{
		&Break{Attrs: []xml.Attr{{Name: xml.Name{Local: "w:type"}, Value: "page"}}},
	}}
}

// GetText returns the run's visible text. Tabs contribute "\t", line
// breaks and carriage returns contribute "\n", matching how offsets are
// counted when placeholder positions are mapped back onto runs.
func (r *Run) GetText() string {
	var b strings.Builder
	for _, c := range r.Content {
		switch t := c.(type) {
		case *Text:
			b.WriteString(t.Value)
		case *Tab:
			b.WriteString("\t")
		case *Break, *CarriageReturn:
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SetText replaces the run's content with a single text element. The
// run's properties are untouched, so styling carries over to the new
// text. An empty string leaves an empty text element rather than
// removing the run.
func (r *Run) SetText(text string) {
	t := &Text{Value: text}
	if text != strings.Trim(text, " \t") {
		t.Space = "preserve"
	}
	r.Content = []RunContent{t}
}

func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	r.Attrs = prefixedAttrs(start.Attr)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				r.Properties = &RunProperties{Raw: raw.Content}
			case "t":
				var tx struct {
					Space string `xml:"space,attr"`
					Value string `xml:",chardata"`
				}
				if err := d.DecodeElement(&tx, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, &Text{Space: tx.Space, Value: tx.Value})
			case "tab":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Content = append(r.Content, &Tab{})
			case "br":
				attrs := prefixedAttrs(t.Attr)
				if err := d.Skip(); err != nil {
					return err
				}
				r.Content = append(r.Content, &Break{Attrs: attrs})
			case "cr":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Content = append(r.Content, &CarriageReturn{})
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				r.Content = append(r.Content, raw)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (r *Run) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:r"}, Attr: r.Attrs}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	if r.Properties != nil {
		if err := e.Encode(r.Properties); err != nil {
			return err
		}
	}
	for _, c := range r.Content {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}

// RunProperties carries a run's character formatting. Parsed documents
// keep the original <w:rPr> subtree in Raw; the typed fields exist for
// constructing runs from scratch and are ignored when Raw is set.
type RunProperties struct {
	Raw    []byte
	Bold   bool
	Italic bool
	Color  string
	Size   string
}

func (p *RunProperties) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	if len(p.Raw) > 0 {
		return encodeRaw(e, p.Raw)
	}
	st := xml.StartElement{Name: xml.Name{Local: "w:rPr"}}
	if err := e.EncodeToken(st); err != nil {
		return err
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
	if p.Color != "" {
		if err := encodeValElement(e, "w:color", p.Color); err != nil {
			return err
		}
	}
	if p.Size != "" {
		if err := encodeValElement(e, "w:sz", p.Size); err != nil {
			return err
		}
		if err := encodeValElement(e, "w:szCs", p.Size); err != nil {
			return err
		}
	}
	return e.EncodeToken(st.End())
}

// Text is a <w:t> element. Space holds the xml:space attribute value
// when whitespace must survive Word's trimming.
type Text struct {
	Space string
	Value string
}

func (*Text) isRunContent() {}

func (t *Text) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:t"}}
	if t.Space != "" {
		st.Attr = append(st.Attr, xml.Attr{Name: xml.Name{Local: "xml:space"}, Value: t.Space})
	}
	return e.EncodeElement(t.Value, st)
}

// Tab is a <w:tab> inside a run.
type Tab struct{}

func (*Tab) isRunContent() {}

func (t *Tab) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return encodeEmptyElement(e, "w:tab")
}

// Break is a <w:br>, attributes preserved.
type Break struct {
	Attrs []xml.Attr
}

func (*Break) isRunContent() {}

func (b *Break) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:br"}, Attr: b.Attrs}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	return e.EncodeToken(st.End())
}

// CarriageReturn is a <w:cr>.
type CarriageReturn struct{}

func (*CarriageReturn) isRunContent() {}

func (c *CarriageReturn) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return encodeEmptyElement(e, "w:cr")
}

func prefixedAttrs(attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		var b strings.Builder
		writeRawName(&b, a.Name)
		out = append(out, xml.Attr{Name: xml.Name{Local: b.String()}, Value: a.Value})
	}
	return out
}

func encodeEmptyElement(e *xml.Encoder, name string) error {
	st := xml.StartElement{Name: xml.Name{Local: name}}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	return e.EncodeToken(st.End())
}

func encodeValElement(e *xml.Encoder, name, val string) error {
	st := xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: val}},
	}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	return e.EncodeToken(st.End())
}
