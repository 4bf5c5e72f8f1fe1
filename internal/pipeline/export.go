package pipeline

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pricelist/internal"
)

const DefaultHTMLOutput = "output.html"

// RenderHTML writes a standalone UTF-8 document holding one table.
func RenderHTML(w io.Writer, items []internal.PricedItem) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	title := element(atom.Title)
	title.AppendChild(text("Price list"))
	head.AppendChild(title)
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(buildTable(items))
	root.AppendChild(body)
	doc.AppendChild(root)

	return html.Render(w, doc)
}

func buildTable(items []internal.PricedItem) *html.Node {
	table := element(atom.Table)

	thead := element(atom.Thead)
	headRow := element(atom.Tr)
	for _, h := range TableHeaders {
		th := element(atom.Th)
		th.AppendChild(text(h))
		headRow.AppendChild(th)
	}
	thead.AppendChild(headRow)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range TableRows(items) {
		tr := element(atom.Tr)
		for _, cell := range row {
			td := element(atom.Td)
			td.AppendChild(text(cell))
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// ExportHTML overwrites outputPath with the rendered document.
func ExportHTML(items []internal.PricedItem, outputPath string) error {
	if outputPath == "" {
		outputPath = DefaultHTMLOutput
	}
	buf := bytes.NewBuffer(nil)
	if err := RenderHTML(buf, items); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, buf.Bytes(), 0o644)
}

func ExportXLSX(items []internal.PricedItem, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range TableHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, i+1)
		set(2, item.Name)
		set(3, item.UnitPrice)
		set(4, item.Weight)
		set(5, item.SourceFile)
		set(6, item.PricePerKg)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
