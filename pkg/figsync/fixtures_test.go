package figsync

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared fixtures for the package tests. Documents are built as real zip
// packages so every test exercises the same open path production uses.

var testFieldNames = []string{"MV", "NIY", "RENT", "ERV"}

func testRawSchedule() RawSchedule {
	return RawSchedule{
		"LON_001": {"MV": 2500000.0, "NIY": 0.0475, "RENT": 112500.0, "ERV": 125000.0},
		"MCR_001": {"MV": 1100000.0, "NIY": 0.06, "RENT": 63000.0, "ERV": 70000.0},
	}
}

// mustSchedule validates raw and fails the test if validation reports
// anything at all.
func mustSchedule(t *testing.T, raw RawSchedule, fields []string) *Schedule {
	t.Helper()
	schedule, issues := ValidateSchedule(raw, fields, "schedule.xlsx")
	require.Empty(t, issues)
	return schedule
}

// docPara renders one paragraph with one run per text segment, so tests
// can control exactly how token text is fragmented.
func docPara(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, text := range texts {
		b.WriteString(`<w:r><w:t xml:space="preserve">`)
		b.WriteString(text)
		b.WriteString(`</w:t></w:r>`)
	}
	b.WriteString("</w:p>")
	return b.String()
}

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const testRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// buildDocxBytes zips parts into a package. Parts beyond document.xml
// (rels files, footers) are written exactly as given.
func buildDocxBytes(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels"} {
		if _, ok := parts[name]; !ok {
			f, err := w.Create(name)
			require.NoError(t, err)
			content := testContentTypes
			if name == "_rels/.rels" {
				content = testRootRels
			}
			_, err = f.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(parts[name]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// docxWithBody packages body XML inside a minimal main document part.
func docxWithBody(t *testing.T, bodyXML string) []byte {
	t.Helper()
	document := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>%s</w:body></w:document>`, bodyXML)
	return buildDocxBytes(t, map[string]string{"word/document.xml": document})
}

// openTestReport opens an in-memory document whose body is bodyXML.
func openTestReport(t *testing.T, bodyXML string) *ReportDocument {
	t.Helper()
	doc, err := NewReportDocument(docxWithBody(t, bodyXML))
	require.NoError(t, err)
	return doc
}

// documentText joins the text of every reachable paragraph with newlines,
// in walk order.
func documentText(doc *ReportDocument) string {
	var parts []string
	for _, c := range doc.containers() {
		combined, _ := BuildSpans(runFragments(c.runs))
		parts = append(parts, combined)
	}
	return strings.Join(parts, "\n")
}

// issuesByCode groups issues for order-insensitive assertions.
func issuesByCode(issues []Issue) map[string][]Issue {
	out := make(map[string][]Issue)
	for _, i := range issues {
		out[i.Code] = append(out[i.Code], i)
	}
	return out
}
