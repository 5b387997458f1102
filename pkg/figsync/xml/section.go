package xml

import "encoding/xml"

// Header and footer reference kinds, as carried by w:type.
const (
	ReferenceDefault = "default"
	ReferenceEven    = "even"
	ReferenceFirst   = "first"
)

// HeaderFooterReference binds a section to a header or footer part
// through a relationship id.
type HeaderFooterReference struct {
	Type string
	ID   string
}

// SectionProperties is a <w:sectPr>, either body-level or nested in a
// paragraph's properties. Header and footer references are decoded so
// the parts they point at can be located; TitlePage records w:titlePg.
// Everything else stays raw.
type SectionProperties struct {
	Attrs            []xml.Attr
	HeaderReferences []HeaderFooterReference
	FooterReferences []HeaderFooterReference
	TitlePage        bool
	Raw              []byte
}

func (sp *SectionProperties) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	sp.Attrs = prefixedAttrs(start.Attr)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "headerReference":
				sp.HeaderReferences = append(sp.HeaderReferences, parseReference(t))
				if err := d.Skip(); err != nil {
					return err
				}
			case "footerReference":
				sp.FooterReferences = append(sp.FooterReferences, parseReference(t))
				if err := d.Skip(); err != nil {
					return err
				}
			case "titlePg":
				sp.TitlePage = parseOnOff(t)
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				sp.Raw = append(sp.Raw, raw.Content...)
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				sp.Raw = append(sp.Raw, raw.Content...)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func parseReference(start xml.StartElement) HeaderFooterReference {
	var ref HeaderFooterReference
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "type":
			ref.Type = a.Value
		case "id":
			ref.ID = a.Value
		}
	}
	return ref
}

func parseOnOff(start xml.StartElement) bool {
	for _, a := range start.Attr {
		if a.Name.Local == "val" {
			switch a.Value {
			case "0", "false", "off":
				return false
			}
		}
	}
	return true
}

func (sp *SectionProperties) marshal(e *xml.Encoder) error {
	st := xml.StartElement{Name: xml.Name{Local: "w:sectPr"}, Attr: sp.Attrs}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	for _, ref := range sp.HeaderReferences {
		if err := encodeReference(e, "w:headerReference", ref); err != nil {
			return err
		}
	}
	for _, ref := range sp.FooterReferences {
		if err := encodeReference(e, "w:footerReference", ref); err != nil {
			return err
		}
	}
	if err := encodeRaw(e, sp.Raw); err != nil {
		return err
	}
	return e.EncodeToken(st.End())
}

func (sp *SectionProperties) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return sp.marshal(e)
}

func encodeReference(e *xml.Encoder, name string, ref HeaderFooterReference) error {
	st := xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "w:type"}, Value: ref.Type},
			{Name: xml.Name{Local: "r:id"}, Value: ref.ID},
		},
	}
	if err := e.EncodeToken(st); err != nil {
		return err
	}
	return e.EncodeToken(st.End())
}
