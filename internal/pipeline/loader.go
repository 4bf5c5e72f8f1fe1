package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"pricelist/internal"
	"pricelist/internal/config"
	"pricelist/internal/logger"
	"pricelist/internal/util"
)

var (
	ErrFolderUnreadable = errors.New("price folder is not readable")
	ErrNotUTF8          = errors.New("file is not valid UTF-8")
)

// ScanPriceFiles lists entries of dir whose name contains marker, in lexical
// order. Directories are never returned.
func ScanPriceFiles(dir, marker string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFolderUnreadable, dir, err)
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), marker) {
			continue
		}
		out = append(out, entry.Name())
	}
	return out, nil
}

func SourceKindOf(filename string) internal.SourceKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return internal.SourceXLSX
	case ".html", ".htm":
		return internal.SourceHTML
	default:
		return internal.SourceCSV
	}
}

type Loader struct {
	dir    string
	marker string
	log    *logger.Logger

	filesRead   int
	filesFailed int
}

func NewLoader(cfg config.Config, log *logger.Logger) *Loader {
	return &Loader{dir: cfg.PriceDir, marker: cfg.FileMarker, log: log}
}

// Records scans the folder once and returns a single-pass sequence of rows.
// Files that cannot be read or decoded are logged and skipped.
func (l *Loader) Records() (iter.Seq[internal.RawRecord], error) {
	files, err := ScanPriceFiles(l.dir, l.marker)
	if err != nil {
		return nil, err
	}
	l.log.Debug("price files found", "dir", l.dir, "count", len(files))

	return func(yield func(internal.RawRecord) bool) {
		for _, name := range files {
			if !l.loadFile(name, yield) {
				return
			}
		}
	}, nil
}

// FileCounts reports files parsed and files skipped so far.
func (l *Loader) FileCounts() (read, failed int) {
	return l.filesRead, l.filesFailed
}

func (l *Loader) loadFile(name string, yield func(internal.RawRecord) bool) bool {
	log := l.log.With("file", name)

	blob, err := readWhole(filepath.Join(l.dir, name))
	if err != nil {
		l.filesFailed++
		log.Warn("skipping price file", "err", err)
		return true
	}

	kind := SourceKindOf(name)
	stopped := false
	emit := func(rec internal.RawRecord) bool {
		rec.File = name
		if !yield(rec) {
			stopped = true
			return false
		}
		return true
	}

	switch kind {
	case internal.SourceXLSX:
		err = parseXLSX(blob, emit)
	case internal.SourceHTML:
		err = parseHTMLTables(blob, emit)
	default:
		err = parseCSV(blob, emit)
	}
	if err != nil {
		l.filesFailed++
		log.Warn("price file parse failed", "kind", kind, "err", err)
	} else {
		l.filesRead++
	}
	return !stopped
}

func readWhole(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	blob, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return blob, nil
}

func decodeText(blob []byte) (io.Reader, error) {
	if !utf8.Valid(blob) {
		return nil, ErrNotUTF8
	}
	return transform.NewReader(bytes.NewReader(blob), unicode.UTF8BOM.NewDecoder()), nil
}

func normalizeHeaders(row []string) []string {
	out := make([]string, len(row))
	for i, h := range row {
		out[i] = util.NormalizeColumn(h)
	}
	return out
}

// rowValues maps cells onto headers. Missing trailing cells stay present but
// empty; extra cells are ignored. A repeated header keeps its last cell.
func rowValues(headers, cells []string) map[string]string {
	values := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			values[h] = cells[i]
		} else {
			values[h] = ""
		}
	}
	return values
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseCSV(blob []byte, emit func(internal.RawRecord) bool) error {
	text, err := decodeText(blob)
	if err != nil {
		return err
	}

	reader := csv.NewReader(text)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	headers := normalizeHeaders(header)

	lineNo := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv row %d: %w", lineNo+1, err)
		}
		lineNo++
		if !emit(internal.RawRecord{Line: lineNo, Values: rowValues(headers, row)}) {
			return nil
		}
	}
}

func parseXLSX(blob []byte, emit func(internal.RawRecord) bool) error {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return err
	}
	defer f.Close()

	lineNo := 0
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		var headers []string
		for _, row := range rows {
			if blankRow(row) {
				continue
			}
			if headers == nil {
				headers = normalizeHeaders(row)
				continue
			}
			lineNo++
			if !emit(internal.RawRecord{Line: lineNo, Values: rowValues(headers, row)}) {
				return nil
			}
		}
	}
	return nil
}

func parseHTMLTables(blob []byte, emit func(internal.RawRecord) bool) error {
	text, err := decodeText(blob)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(text)
	if err != nil {
		return err
	}

	lineNo := 0
	stopped := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return true
		}

		headers := normalizeHeaders(cellTexts(rows.First()))
		rows.Slice(1, rows.Length()).EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := cellTexts(row)
			if len(cells) == 0 {
				return true
			}
			lineNo++
			if !emit(internal.RawRecord{Line: lineNo, Values: rowValues(headers, cells)}) {
				stopped = true
				return false
			}
			return true
		})
		return !stopped
	})
	return nil
}

func cellTexts(row *goquery.Selection) []string {
	cells := []string{}
	row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, util.NormalizeSpaces(cell.Text()))
	})
	return cells
}
