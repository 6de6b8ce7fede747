package portfolio

import (
	"fmt"
	"io"

	tw "github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

func currStr(val decimal.Decimal) string {
	return "R$ " + val.StringFixed(2)
}

func quantityStr(val decimal.Decimal) string {
	return val.String()
}

func renderTable(writer io.Writer, title string, header []string, rows [][]string) {
	fmt.Fprintf(writer, "%s\n", title)

	table := tw.NewWriter(writer)
	table.SetHeader(header)
	table.SetBorder(false)

	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

// RenderPositions prints the snapshot as a table.
func RenderPositions(writer io.Writer, rows []PositionRow) {
	tableRows := make([][]string, len(rows))
	for i, row := range rows {
		tableRows[i] = []string{
			row.Symbol,
			quantityStr(row.Quantity),
			currStr(row.Cost),
			currStr(row.CostPerShare),
		}
	}
	renderTable(writer, "Positions",
		[]string{"Symbol", "Quantity", "Cost", "Cost per share"}, tableRows)
}

// RenderUSPositions prints the joined USD/BRL snapshot as a table.
func RenderUSPositions(writer io.Writer, rows []USPositionRow) {
	tableRows := make([][]string, len(rows))
	for i, row := range rows {
		tableRows[i] = []string{
			row.Symbol,
			quantityStr(row.Quantity),
			"$" + row.Cost.StringFixed(2),
			"$" + row.CostPerShare.StringFixed(2),
			currStr(row.CostBRL),
			currStr(row.CostPerShareBRL),
		}
	}
	renderTable(writer, "US positions",
		[]string{"Symbol", "Quantity", "Cost", "Cost per share", "Cost (BRL)", "Cost per share (BRL)"},
		tableRows)
}
