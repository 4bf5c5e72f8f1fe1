package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"pricelist/internal"
)

func sampleItems() []internal.PricedItem {
	return []internal.PricedItem{
		{Name: "Сахар", UnitPrice: 50, Weight: 2, SourceFile: "price1.csv", PricePerKg: 25},
		{Name: "Чай <листовой> & травы", UnitPrice: 300, Weight: 0.25, SourceFile: "price2.csv", PricePerKg: 1200},
		{Name: "Соль", UnitPrice: 12, Weight: 1, SourceFile: "price1.csv", PricePerKg: 12},
	}
}

func readDoc(t *testing.T, path string) *goquery.Document {
	t.Helper()
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExportHTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "output.html")
	items := sampleItems()
	if err := ExportHTML(items, out); err != nil {
		t.Fatal(err)
	}

	doc := readDoc(t, out)
	if doc.Find("table").Length() != 1 {
		t.Fatalf("tables=%d", doc.Find("table").Length())
	}
	if rows := doc.Find("tr").Length(); rows != len(items)+1 {
		t.Fatalf("rows=%d", rows)
	}

	headers := []string{}
	doc.Find("thead th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, s.Text())
	})
	if strings.Join(headers, "|") != strings.Join(TableHeaders, "|") {
		t.Fatalf("headers=%v", headers)
	}

	doc.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != len(TableHeaders) {
			t.Fatalf("row %d cells=%d", i, cells.Length())
		}
		if idx := cells.First().Text(); idx != []string{"1", "2", "3"}[i] {
			t.Fatalf("row %d index=%q", i, idx)
		}
		if name := cells.Eq(1).Text(); name != items[i].Name {
			t.Fatalf("row %d name=%q", i, name)
		}
	})

	if charset, _ := doc.Find("meta").Attr("charset"); charset != "utf-8" {
		t.Fatalf("charset=%q", charset)
	}
}

func TestExportHTMLOverwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "output.html")
	if err := ExportHTML(sampleItems(), out); err != nil {
		t.Fatal(err)
	}
	if err := ExportHTML(sampleItems()[:1], out); err != nil {
		t.Fatal(err)
	}
	if rows := readDoc(t, out).Find("tbody tr").Length(); rows != 1 {
		t.Fatalf("rows=%d", rows)
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := RenderHTML(buf, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("missing doctype: %q", out)
	}
	if !strings.Contains(out, "<th>Price per kg</th>") || strings.Contains(out, "<td>") {
		t.Fatalf("unexpected body: %q", out)
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := RenderHTML(buf, sampleItems()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<листовой>") {
		t.Fatal("name was not escaped")
	}
	if !strings.Contains(buf.String(), "&lt;листовой&gt;") {
		t.Fatalf("escaped name missing: %q", buf.String())
	}
}

func TestExportXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "catalog.xlsx")
	if err := ExportXLSX(sampleItems(), out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0][5] != "Price per kg" || rows[1][1] != "Сахар" || rows[3][0] != "3" {
		t.Fatalf("rows=%v", rows)
	}
}
