package pipeline

import (
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"pricelist/internal"
	"pricelist/internal/util"
)

var TableHeaders = []string{"№", "Name", "Price", "Weight", "File", "Price per kg"}

type TextOptions struct {
	// MaxNameWidth truncates the name column to this many display cells; 0 disables.
	MaxNameWidth int
}

// TableRows lays items out under TableHeaders with a 1-based index.
func TableRows(items []internal.PricedItem) [][]string {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.Name,
			util.FormatDecimal(item.UnitPrice),
			util.FormatDecimal(item.Weight),
			item.SourceFile,
			util.FormatMoney(item.PricePerKg),
		})
	}
	return rows
}

func RenderText(w io.Writer, items []internal.PricedItem, opts TextOptions) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(TableHeaders)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, row := range TableRows(items) {
		if opts.MaxNameWidth > 0 {
			row[1] = runewidth.Truncate(row[1], opts.MaxNameWidth, "…")
		}
		table.Append(row)
	}
	table.Render()
}
