package figsync

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/benjaminschreck/go-figsync/pkg/figsync/xml"
)

// DemoAsset is one property row of the built-in demo portfolio.
type DemoAsset struct {
	ID     string
	Name   string
	Values map[string]float64
}

// DemoFieldColumns lists the demo schedule's field columns in sheet
// order.
var DemoFieldColumns = []string{"MV", "NIY", "TOPPED_UP_NIY", "RENT", "ERV", "AREA", "CAPITAL_VALUE"}

// DemoAssets is the built-in demo portfolio.
var DemoAssets = []DemoAsset{
	{
		ID:   "LON_001",
		Name: "100 Bishopsgate, EC2",
		Values: map[string]float64{
			"MV": 2500000, "NIY": 0.0475, "TOPPED_UP_NIY": 0.0490,
			"RENT": 112500, "ERV": 125000, "AREA": 22000, "CAPITAL_VALUE": 113.64,
		},
	},
	{
		ID:   "LON_002",
		Name: "45 Moorgate, EC2",
		Values: map[string]float64{
			"MV": 875000, "NIY": 0.0550, "TOPPED_UP_NIY": 0.0565,
			"RENT": 45000, "ERV": 50000, "AREA": 8500, "CAPITAL_VALUE": 102.94,
		},
	},
	{
		ID:   "MCR_001",
		Name: "1 Spinningfields, M3",
		Values: map[string]float64{
			"MV": 1100000, "NIY": 0.0600, "TOPPED_UP_NIY": 0.0615,
			"RENT": 63000, "ERV": 70000, "AREA": 14000, "CAPITAL_VALUE": 78.57,
		},
	},
}

// WriteDemoSchedule writes a demo schedule workbook to path. A nil
// assets slice uses the full built-in portfolio.
func WriteDemoSchedule(path string, assets []DemoAsset) error {
	if assets == nil {
		assets = DemoAssets
	}

	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName(wb.GetSheetName(0), ScheduleSheetName); err != nil {
		return NewScheduleError(path, err)
	}

	headers := []any{ColumnAssetID, ColumnAssetName}
	for _, f := range DemoFieldColumns {
		headers = append(headers, f)
	}
	if err := wb.SetSheetRow(ScheduleSheetName, "A1", &headers); err != nil {
		return NewScheduleError(path, err)
	}

	for i, a := range assets {
		row := []any{a.ID, a.Name}
		for _, f := range DemoFieldColumns {
			row = append(row, a.Values[f])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return NewScheduleError(path, err)
		}
		if err := wb.SetSheetRow(ScheduleSheetName, cell, &row); err != nil {
			return NewScheduleError(path, err)
		}
	}

	if err := wb.SetColWidth(ScheduleSheetName, "A", "A", 14); err != nil {
		return NewScheduleError(path, err)
	}
	if err := wb.SetColWidth(ScheduleSheetName, "B", "B", 28); err != nil {
		return NewScheduleError(path, err)
	}
	if err := wb.SetColWidth(ScheduleSheetName, "C", "I", 16); err != nil {
		return NewScheduleError(path, err)
	}

	if err := wb.SaveAs(path); err != nil {
		return NewScheduleError(path, err)
	}
	log.Info("demo schedule written", zap.String("path", path))
	return nil
}

// WriteDemoReport writes a demo report document to path. The report
// deliberately splits most placeholders across several runs so a sync
// against it exercises the fragment merging from the first try. A nil
// assets slice uses the full built-in portfolio.
func WriteDemoReport(path string, assets []DemoAsset) error {
	if assets == nil {
		assets = DemoAssets
	}

	doc := buildDemoDocument(assets)
	footer := buildDemoFooter()

	data, err := packageDemoReport(doc, footer)
	if err != nil {
		return NewDocumentError("write", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewDocumentError("write", path, err)
	}
	log.Info("demo report written", zap.String("path", path))
	return nil
}

// splitTokenRuns renders a placeholder as several runs split at each
// ":", with the separator-bearing runs alternating bold, the way Word
// fragments tokens when part of the text was restyled.
func splitTokenRuns(token string) []*xml.Run {
	parts := strings.Split(token, ":")
	runs := make([]*xml.Run, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += ":"
		}
		var props *xml.RunProperties
		if i%2 == 1 {
			props = &xml.RunProperties{Bold: true}
		}
		runs = append(runs, xml.NewTextRun(part, props))
	}
	return runs
}

func appendRuns(content []xml.ParagraphContent, runs []*xml.Run) []xml.ParagraphContent {
	for _, r := range runs {
		content = append(content, r)
	}
	return content
}

func pageBreakParagraph() *xml.Paragraph {
	return xml.NewParagraph("", xml.NewPageBreakRun())
}

const demoTableProps = `<w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/></w:tblPr>`

func demoGrid(cols int) []byte {
	var b strings.Builder
	b.WriteString("<w:tblGrid>")
	width := 9360 / cols
	for i := 0; i < cols; i++ {
		fmt.Fprintf(&b, `<w:gridCol w:w="%d"/>`, width)
	}
	b.WriteString("</w:tblGrid>")
	return []byte(b.String())
}

func demoTable(cols int) *xml.Table {
	return &xml.Table{
		PropsRaw: []byte(demoTableProps),
		GridRaw:  demoGrid(cols),
	}
}

func demoCell(runs ...*xml.Run) *xml.TableCell {
	return &xml.TableCell{Blocks: []xml.BodyElement{xml.NewParagraph("", runs...)}}
}

func demoBoldCell(text string) *xml.TableCell {
	return demoCell(xml.NewTextRun(text, &xml.RunProperties{Bold: true}))
}

func demoTextCell(text string) *xml.TableCell {
	return demoCell(xml.NewTextRun(text, nil))
}

func demoTokenCell(token string) *xml.TableCell {
	return demoCell(splitTokenRuns(token)...)
}

func buildDemoDocument(assets []DemoAsset) *xml.Document {
	doc := xml.NewDocument()
	body := doc.Body
	add := func(el xml.BodyElement) {
		body.Elements = append(body.Elements, el)
	}

	title := xml.NewParagraph("Title",
		xml.NewTextRun("Commercial Real Estate Valuation Report", nil))
	title.Properties.Alignment = "center"
	add(title)

	sub := xml.NewParagraph("", xml.NewTextRun("Valuation Date: 31 January 2025", nil))
	sub.Properties = &xml.ParagraphProperties{Alignment: "center"}
	add(sub)

	add(pageBreakParagraph())

	add(xml.NewParagraph("Heading1", xml.NewTextRun("Executive Summary", nil)))

	exec := xml.NewParagraph("", xml.NewTextRun(
		"This report summarises the valuation of a portfolio of three commercial "+
			"properties located in London and Manchester. The aggregate portfolio market "+
			"value is ", nil))
	exec.Content = appendRuns(exec.Content, splitTokenRuns("{{MV:LON_001:£,0}}"))
	exec.Content = append(exec.Content, xml.NewTextRun(" for the Bishopsgate asset, ", nil))
	exec.Content = appendRuns(exec.Content, splitTokenRuns("{{MV:LON_002:£,0}}"))
	exec.Content = append(exec.Content, xml.NewTextRun(" for the Moorgate asset, and ", nil))
	exec.Content = appendRuns(exec.Content, splitTokenRuns("{{MV:MCR_001:£,0}}"))
	exec.Content = append(exec.Content, xml.NewTextRun(" for the Spinningfields asset.", nil))
	add(exec)

	add(pageBreakParagraph())

	for _, a := range assets {
		add(xml.NewParagraph("Heading2", xml.NewTextRun(a.Name, nil)))

		para := xml.NewParagraph("", xml.NewTextRun(
			fmt.Sprintf("The property at %s has been assessed at a market value of ", a.Name), nil))
		para.Content = appendRuns(para.Content, splitTokenRuns(fmt.Sprintf("{{MV:%s:£,0}}", a.ID)))
		para.Content = append(para.Content, xml.NewTextRun(", reflecting a net initial yield of ", nil))
		para.Content = appendRuns(para.Content, splitTokenRuns(fmt.Sprintf("{{NIY:%s:0.00%%}}", a.ID)))
		para.Content = append(para.Content, xml.NewTextRun(". The passing rent is ", nil))
		para.Content = appendRuns(para.Content, splitTokenRuns(fmt.Sprintf("{{RENT:%s:£,0}}", a.ID)))
		para.Content = append(para.Content, xml.NewTextRun(" per annum against an estimated rental value of ", nil))
		para.Content = appendRuns(para.Content, splitTokenRuns(fmt.Sprintf("{{ERV:%s:£,0}}", a.ID)))
		para.Content = append(para.Content, xml.NewTextRun(".", nil))
		add(para)

		table := demoTable(2)
		table.Rows = append(table.Rows,
			&xml.TableRow{Cells: []*xml.TableCell{demoBoldCell("Field"), demoBoldCell("Value")}},
			&xml.TableRow{Cells: []*xml.TableCell{
				demoTextCell("Floor Area"),
				demoTokenCell(fmt.Sprintf("{{AREA:%s:#,##0 sq ft}}", a.ID)),
			}},
			&xml.TableRow{Cells: []*xml.TableCell{
				demoTextCell("Capital Value"),
				demoTokenCell(fmt.Sprintf("{{CAPITAL_VALUE:%s:psf}}", a.ID)),
			}},
			&xml.TableRow{Cells: []*xml.TableCell{
				demoTextCell("Topped-Up NIY"),
				demoTokenCell(fmt.Sprintf("{{TOPPED_UP_NIY:%s:0.00%%}}", a.ID)),
			}},
		)
		add(table)

		add(xml.NewParagraph(""))
	}

	add(pageBreakParagraph())

	add(xml.NewParagraph("Heading1", xml.NewTextRun("Portfolio Summary", nil)))

	portfolioFields := []struct{ field, spec string }{
		{"MV", "£,0"}, {"NIY", "0.00%"}, {"RENT", "£,0"}, {"ERV", "£,0"},
		{"AREA", "#,##0 sq ft"}, {"CAPITAL_VALUE", "psf"},
	}

	portfolio := demoTable(len(portfolioFields) + 1)
	header := []*xml.TableCell{demoBoldCell("Asset")}
	for _, pf := range portfolioFields {
		header = append(header, demoBoldCell(pf.field))
	}
	portfolio.Rows = append(portfolio.Rows, &xml.TableRow{Cells: header})

	// Single-run tokens here, so the straightforward path stays covered
	// alongside the fragmented ones.
	for _, a := range assets {
		cells := []*xml.TableCell{demoTextCell(a.Name)}
		for _, pf := range portfolioFields {
			cells = append(cells, demoTextCell(fmt.Sprintf("{{%s:%s:%s}}", pf.field, a.ID, pf.spec)))
		}
		portfolio.Rows = append(portfolio.Rows, &xml.TableRow{Cells: cells})
	}
	add(portfolio)

	body.SectPr = &xml.SectionProperties{
		FooterReferences: []xml.HeaderFooterReference{
			{Type: xml.ReferenceDefault, ID: "rId2"},
		},
		Raw: []byte(`<w:pgSz w:w="12240" w:h="15840"/>` +
			`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>`),
	}
	return doc
}

func buildDemoFooter() *xml.HeaderFooter {
	footer := xml.NewHeaderFooter(xml.FooterRoot)
	footer.Elements = append(footer.Elements, xml.NewParagraph("",
		xml.NewTextRun("Flagship asset market value: ", nil),
		xml.NewTextRun("{{MV:LON_001:£m}}", nil),
		xml.NewTextRun("  |  Confidential", nil)))
	return footer
}

const demoContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/><Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/></Types>`

const demoRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const demoDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/></Relationships>`

const demoStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style><w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="56"/><w:szCs w:val="56"/></w:rPr></w:style><w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="32"/><w:szCs w:val="32"/></w:rPr></w:style><w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="26"/><w:szCs w:val="26"/></w:rPr></w:style><w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/></w:tblBorders></w:tblPr></w:style></w:styles>`

func packageDemoReport(doc *xml.Document, footer *xml.HeaderFooter) ([]byte, error) {
	documentXML, err := xml.SerializeDocument(doc)
	if err != nil {
		return nil, err
	}
	footerXML, err := xml.SerializeHeaderFooter(footer)
	if err != nil {
		return nil, err
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(demoContentTypes)},
		{"_rels/.rels", []byte(demoRootRels)},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", []byte(demoDocumentRels)},
		{"word/styles.xml", []byte(demoStyles)},
		{"word/footer1.xml", footerXML},
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, part := range parts {
		fw, err := w.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
