package xml

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// BodyElement is implemented by every block-level element the model keeps
// in document order inside a body, a table cell, or a header/footer part.
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent is implemented by every inline element kept in order
// inside a paragraph.
type ParagraphContent interface {
	isParagraphContent()
}

// RawXMLElement preserves one element subtree that the model does not
// decode. Content holds the complete element, open tag through close tag,
// serialized with the conventional OOXML prefixes so it can be written
// back into the saved part unchanged.
type RawXMLElement struct {
	Name    xml.Name
	Content []byte
}

func (*RawXMLElement) isBodyElement()      {}
func (*RawXMLElement) isParagraphContent() {}

// namespaceToPrefix maps the namespace URIs found in Word documents back
// to their conventional prefixes. The decoder expands prefixes to URIs;
// re-serialization needs the reverse mapping.
var namespaceToPrefix = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":             "m",
	"http://www.w3.org/XML/1998/namespace":                                   "xml",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
	"http://schemas.microsoft.com/office/drawing/2010/main":                  "a14",
	"urn:schemas-microsoft-com:vml":                                          "v",
	"urn:schemas-microsoft-com:office:office":                                "o",
	"urn:schemas-microsoft-com:office:word":                                  "w10",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":      "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas":     "wpc",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":      "wpg",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingInk":        "wpi",
	"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":                   "w15",
	"http://schemas.microsoft.com/office/word/2018/wordml":                   "w16",
	"http://schemas.microsoft.com/office/word/2018/wordml/cex":               "w16cex",
	"http://schemas.microsoft.com/office/word/2016/wordml/cid":               "w16cid",
	"http://schemas.microsoft.com/office/word/2020/wordml/sdtdatahash":       "w16sdtdh",
	"http://schemas.microsoft.com/office/word/2015/wordml/symex":             "w16se",
	"http://schemas.microsoft.com/office/word/2006/wordml":                   "wne",
	"http://schemas.microsoft.com/office/drawing/2014/chartex":               "cx",
	"http://schemas.microsoft.com/office/drawing/2015/9/8/chartex":           "cx1",
	"http://schemas.microsoft.com/office/drawing/2015/10/21/chartex":         "cx2",
	"http://schemas.microsoft.com/office/drawing/2016/5/9/chartex":           "cx3",
	"http://schemas.microsoft.com/office/drawing/2016/5/10/chartex":          "cx4",
	"http://schemas.microsoft.com/office/drawing/2016/5/11/chartex":          "cx5",
	"http://schemas.microsoft.com/office/drawing/2016/5/12/chartex":          "cx6",
	"http://schemas.microsoft.com/office/drawing/2016/5/13/chartex":          "cx7",
	"http://schemas.microsoft.com/office/drawing/2016/5/14/chartex":          "cx8",
	"http://schemas.microsoft.com/office/drawing/2016/ink":                   "aink",
	"http://schemas.microsoft.com/office/drawing/2017/model3d":               "am3d",
	"http://schemas.microsoft.com/office/2019/extlst":                        "oel",
}

var rawTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func writeRawName(b *strings.Builder, name xml.Name) {
	switch {
	case name.Space == "":
		b.WriteString(name.Local)
	case name.Space == "xmlns":
		b.WriteString("xmlns:")
		b.WriteString(name.Local)
	default:
		if prefix, ok := namespaceToPrefix[name.Space]; ok {
			b.WriteString(prefix)
			b.WriteString(":")
		}
		b.WriteString(name.Local)
	}
}

func writeRawStart(b *strings.Builder, start xml.StartElement) {
	b.WriteString("<")
	writeRawName(b, start.Name)
	for _, attr := range start.Attr {
		b.WriteString(" ")
		writeRawName(b, attr.Name)
		b.WriteString(`="`)
		rawTextEscaper.WriteString(b, attr.Value)
		b.WriteString(`"`)
	}
	b.WriteString(">")
}

// captureRaw consumes the element opened by start, nested content
// included, and returns it as a RawXMLElement. The element's namespace
// URIs are converted back to prefixes as it is read.
func captureRaw(d *xml.Decoder, start xml.StartElement) (*RawXMLElement, error) {
	var b strings.Builder
	writeRawStart(&b, start)
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("capturing <%s>: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			writeRawStart(&b, t)
			depth++
		case xml.EndElement:
			depth--
			b.WriteString("</")
			writeRawName(&b, t.Name)
			b.WriteString(">")
		case xml.CharData:
			rawTextEscaper.WriteString(&b, string(t))
		}
	}
	return &RawXMLElement{Name: start.Name, Content: []byte(b.String())}, nil
}

// captureRawInner is captureRaw without the outer tags. It is used for
// property containers whose children are preserved verbatim while the
// container element itself stays typed.
func captureRawInner(d *xml.Decoder, start xml.StartElement) ([]byte, error) {
	raw, err := captureRaw(d, start)
	if err != nil {
		return nil, err
	}
	content := string(raw.Content)
	open := strings.Index(content, ">")
	end := strings.LastIndex(content, "<")
	if open < 0 || end <= open {
		return nil, nil
	}
	return []byte(content[open+1 : end]), nil
}
