// formatters.go
package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/segpro/complaints_analyzer/domain/models"
)

// GenerateSummaryTable renders the headline metrics as a text table.
func GenerateSummaryTable(summary models.Summary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Métrica", "Valor"})
	t.AppendRows([]table.Row{
		{"Total Quejas", summary.Total},
		{"Resueltas", summary.Resolved},
		{"En Proceso", summary.InProgress},
		{"Pendientes", summary.Pending},
		{"Tasa Resolución", fmt.Sprintf("%.1f%%", summary.ResolutionRate)},
		{"Satisfacción Inicial", fmt.Sprintf("%.1f", summary.AvgSatisfactionInitial)},
		{"Satisfacción Final", formatFinalSatisfaction(summary)},
	})
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func formatFinalSatisfaction(summary models.Summary) string {
	if summary.FinalScored == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d casos)", summary.AvgSatisfactionFinal, summary.FinalScored)
}

// GenerateBreakdownTable renders one grouped dimension.
func GenerateBreakdownTable(title string, counts []models.ValueCount) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{title, "Cantidad", "%"})
	for _, count := range counts {
		t.AppendRow(table.Row{count.Value, count.Count, fmt.Sprintf("%.1f", count.Percent)})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func GenerateBreakdownTables(summary models.Summary) []string {
	return []string{
		GenerateBreakdownTable("Tipo de Error", summary.ByErrorType),
		GenerateBreakdownTable("Estado", summary.ByState),
		GenerateBreakdownTable("Producto", summary.ByProduct),
	}
}

// GenerateRecordsTable renders the complaint detail view, at most limit
// rows (0 means all).
func GenerateRecordsTable(records []models.Record, limit int) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Fecha", "Cliente", "Producto", "Tipo de Error", "Estado", "Sat. Inicial", "Sat. Final"})
	for i, record := range records {
		if limit > 0 && i >= limit {
			t.AppendFooter(table.Row{fmt.Sprintf("... y %d más", len(records)-limit)})
			break
		}
		date := PlaceholderDate
		if record.Date != nil {
			date = record.Date.Format(dayLayout)
		}
		final := "-"
		if record.SatisfactionFinal != nil {
			final = fmt.Sprintf("%d", *record.SatisfactionFinal)
		}
		t.AppendRow(table.Row{date, record.Customer, record.Product, record.ErrorType, record.State, record.SatisfactionInitial, final})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// FormatClassification renders the reply for a single complaint text sent
// straight to the chat.
func FormatClassification(c TextClassification) string {
	b := &strings.Builder{}
	b.WriteString("Clasificación de la queja:\n")
	fmt.Fprintf(b, "- Tipo de error: %s\n", c.ErrorType)
	fmt.Fprintf(b, "- Producto: %s\n", c.Product)
	fmt.Fprintf(b, "- Estado: %s\n", c.State)
	fmt.Fprintf(b, "- Satisfacción estimada: %d/5\n", c.Satisfaction)
	return b.String()
}
