package xml

import (
	"bytes"
	"encoding/xml"
	"regexp"
	"strings"
)

// Raw subtrees travel through encoding/xml as the character data of
// marker elements. The encoder escapes that text like any other; after
// encoding, expandRawMarkers locates the markers, reverses the escaping,
// and splices the raw bytes into the output. No real OOXML element
// shares the marker name, and any literal occurrence of it inside
// document text arrives escaped, so a marker in the encoded stream is
// always one of ours.
const rawMarkerTag = "figsyncRaw"

func encodeRaw(e *xml.Encoder, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	return e.EncodeElement(string(raw), xml.StartElement{Name: xml.Name{Local: rawMarkerTag}})
}

var rawMarkerPattern = regexp.MustCompile(`(?s)<` + rawMarkerTag + `>(.*?)</` + rawMarkerTag + `>`)

// rawUnescaper reverses the exact entity set encoding/xml emits for
// character data. Entities that were already part of the raw bytes
// arrive double-escaped and come back out as entities.
var rawUnescaper = strings.NewReplacer(
	"&#x9;", "\t",
	"&#xA;", "\n",
	"&#xD;", "\r",
	"&#34;", `"`,
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

func expandRawMarkers(encoded []byte) []byte {
	open := len("<" + rawMarkerTag + ">")
	end := len("</" + rawMarkerTag + ">")
	return rawMarkerPattern.ReplaceAllFunc(encoded, func(m []byte) []byte {
		inner := string(m[open : len(m)-end])
		return []byte(rawUnescaper.Replace(inner))
	})
}

// xmlDeclaration matches the declaration Word writes at the top of every
// part.
const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func writePart(root string, attrs []xml.Attr, encodedBody []byte) []byte {
	var out bytes.Buffer
	out.WriteString(xmlDeclaration)
	out.WriteString("<")
	out.WriteString(root)
	for _, a := range attrs {
		out.WriteString(" ")
		out.WriteString(a.Name.Local)
		out.WriteString(`="`)
		out.WriteString(rawTextEscaper.Replace(a.Value))
		out.WriteString(`"`)
	}
	out.WriteString(">")
	out.Write(expandRawMarkers(encodedBody))
	out.WriteString("</")
	out.WriteString(root)
	out.WriteString(">")
	return out.Bytes()
}

// SerializeDocument renders the document part, raw subtrees restored
// verbatim.
func SerializeDocument(doc *Document) ([]byte, error) {
	var inner bytes.Buffer
	enc := xml.NewEncoder(&inner)
	if err := encodeRaw(enc, doc.Extra); err != nil {
		return nil, err
	}
	if err := enc.Encode(doc.Body); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return writePart("w:document", doc.Attrs, inner.Bytes()), nil
}

// SerializeHeaderFooter renders a header or footer part.
func SerializeHeaderFooter(hf *HeaderFooter) ([]byte, error) {
	var inner bytes.Buffer
	enc := xml.NewEncoder(&inner)
	for _, el := range hf.Elements {
		if err := enc.Encode(el); err != nil {
			return nil, err
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return writePart("w:"+hf.RootLocal, hf.Attrs, inner.Bytes()), nil
}
