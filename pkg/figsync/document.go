package figsync

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/benjaminschreck/go-figsync/pkg/figsync/xml"
)

// headerFooterKinds lists a section's header and footer slots in walk
// order. The names are the ones used in location strings.
var headerFooterKinds = []struct {
	name   string
	header bool
	ref    string
}{
	{"header", true, xml.ReferenceDefault},
	{"footer", false, xml.ReferenceDefault},
	{"even_page_header", true, xml.ReferenceEven},
	{"even_page_footer", false, xml.ReferenceEven},
	{"first_page_header", true, xml.ReferenceFirst},
	{"first_page_footer", false, xml.ReferenceFirst},
}

// ReportDocument is a DOCX report opened for substitution: the parsed
// main document plus every header and footer part its sections
// reference. Mutations happen on the parsed trees; Save re-packages them
// together with the untouched parts of the source file.
type ReportDocument struct {
	reader *DocxReader
	path   string

	doc  *xml.Document
	rels []Relationship

	// parsed header/footer parts keyed by part name. Sections that
	// reference the same part share one parsed tree, so a placeholder in
	// a shared header is only ever replaced once.
	headerFooters map[string]*xml.HeaderFooter
}

// OpenReport opens a DOCX report from disk.
func OpenReport(path string) (*ReportDocument, error) {
	reader, err := DocxReaderFromFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	doc, err := newReportDocument(reader)
	if err != nil {
		return nil, NewDocumentError("parse", path, err)
	}
	doc.path = path
	return doc, nil
}

// NewReportDocument opens a DOCX report from package bytes.
func NewReportDocument(content []byte) (*ReportDocument, error) {
	reader, err := NewDocxReader(content)
	if err != nil {
		return nil, NewDocumentError("open", "document", err)
	}
	doc, err := newReportDocument(reader)
	if err != nil {
		return nil, NewDocumentError("parse", "document", err)
	}
	return doc, nil
}

func newReportDocument(reader *DocxReader) (*ReportDocument, error) {
	data, err := reader.GetPart(xml.DocumentPartName)
	if err != nil {
		return nil, err
	}
	doc, err := xml.ParseDocument(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	rels, err := reader.GetRelationships(xml.DocumentPartName)
	if err != nil {
		return nil, err
	}

	rd := &ReportDocument{
		reader:        reader,
		doc:           doc,
		rels:          rels,
		headerFooters: make(map[string]*xml.HeaderFooter),
	}

	// Parse every referenced header/footer part up front. A reference
	// whose relationship or part is missing is skipped, mirroring how a
	// dangling reference reads as "no header here" rather than an error.
	for _, sect := range doc.Sections() {
		refs := append([]xml.HeaderFooterReference{}, sect.HeaderReferences...)
		refs = append(refs, sect.FooterReferences...)
		for _, ref := range refs {
			partName := rd.relTarget(ref.ID)
			if partName == "" || !reader.HasPart(partName) {
				continue
			}
			if _, done := rd.headerFooters[partName]; done {
				continue
			}
			partData, err := reader.GetPart(partName)
			if err != nil {
				return nil, err
			}
			hf, err := xml.ParseHeaderFooter(bytes.NewReader(partData))
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", partName, err)
			}
			rd.headerFooters[partName] = hf
		}
	}
	return rd, nil
}

// Path returns the file the document was opened from, or "" when it was
// opened from memory.
func (d *ReportDocument) Path() string {
	return d.path
}

// Document exposes the parsed main document part.
func (d *ReportDocument) Document() *xml.Document {
	return d.doc
}

func (d *ReportDocument) relTarget(id string) string {
	for _, rel := range d.rels {
		if rel.ID == id {
			return resolveTarget(xml.DocumentPartName, rel.Target)
		}
	}
	return ""
}

func (d *ReportDocument) sectionPart(sect *xml.SectionProperties, header bool, refType string) *xml.HeaderFooter {
	refs := sect.FooterReferences
	if header {
		refs = sect.HeaderReferences
	}
	for _, ref := range refs {
		if ref.Type == refType {
			return d.headerFooters[d.relTarget(ref.ID)]
		}
	}
	return nil
}

// container is one paragraph reachable by the document walk, paired with
// the location string that identifies it in issues and audit records.
type container struct {
	location string
	runs     []*xml.Run
}

// containers walks every paragraph substitution can reach, in a fixed
// order: body paragraphs, then body table cells, then each section's
// headers and footers (paragraphs before tables). The same input
// document always yields the same sequence.
func (d *ReportDocument) containers() []container {
	var out []container

	for i, para := range d.doc.Body.Paragraphs() {
		out = append(out, container{
			location: fmt.Sprintf("paragraph:%d", i),
			runs:     para.Runs(),
		})
	}

	for ti, table := range d.doc.Body.Tables() {
		out = append(out, tableContainers(table, fmt.Sprintf("table:%d", ti))...)
	}

	for si, sect := range d.doc.Sections() {
		for _, kind := range headerFooterKinds {
			part := d.sectionPart(sect, kind.header, kind.ref)
			if part == nil {
				continue
			}
			base := fmt.Sprintf("section:%d:%s", si, kind.name)
			for pi, para := range part.Paragraphs() {
				out = append(out, container{
					location: fmt.Sprintf("%s:para:%d", base, pi),
					runs:     para.Runs(),
				})
			}
			for ti, table := range part.Tables() {
				out = append(out, tableContainers(table, fmt.Sprintf("%s:table:%d", base, ti))...)
			}
		}
	}
	return out
}

func tableContainers(table *xml.Table, base string) []container {
	var out []container
	for ri, row := range table.Rows {
		for ci, cell := range row.Cells {
			for pi, para := range cell.Paragraphs() {
				out = append(out, container{
					location: fmt.Sprintf("%s:row:%d:col:%d:para:%d", base, ri, ci, pi),
					runs:     para.Runs(),
				})
			}
		}
	}
	return out
}

// runFragments widens a run slice to the Fragment interface.
func runFragments(runs []*xml.Run) []Fragment {
	fragments := make([]Fragment, len(runs))
	for i, r := range runs {
		fragments[i] = r
	}
	return fragments
}

// Bytes packages the document, with all mutations applied, as DOCX
// bytes. Parts that were never parsed are copied from the source
// byte for byte.
func (d *ReportDocument) Bytes() ([]byte, error) {
	serialized := make(map[string][]byte, len(d.headerFooters)+1)

	data, err := xml.SerializeDocument(d.doc)
	if err != nil {
		return nil, NewDocumentError("serialize", xml.DocumentPartName, err)
	}
	serialized[xml.DocumentPartName] = data

	for name, hf := range d.headerFooters {
		data, err := xml.SerializeHeaderFooter(hf)
		if err != nil {
			return nil, NewDocumentError("serialize", name, err)
		}
		serialized[name] = data
	}

	source := d.reader.Source()
	zipReader, err := zip.NewReader(bytes.NewReader(source), int64(len(source)))
	if err != nil {
		return nil, fmt.Errorf("failed to read source zip: %w", err)
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for _, file := range zipReader.File {
		fw, err := w.Create(file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", file.Name, err)
		}
		if replaced, ok := serialized[file.Name]; ok {
			if _, err := fw.Write(replaced); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", file.Name, err)
			}
			continue
		}
		fr, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
		}
		if _, err := io.Copy(fw, fr); err != nil {
			fr.Close()
			return nil, fmt.Errorf("failed to copy %s: %w", file.Name, err)
		}
		fr.Close()
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the packaged document to path.
func (d *ReportDocument) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewDocumentError("save", path, err)
	}
	return nil
}
