package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"gear-system/internal/entities"
)

const pdfBottomMargin = 20.0

// RenderPDF lays the report out as a paginated A4 document: a header, KPI
// lines, insight blocks and the per-user and per-equipment tables.
func RenderPDF(report *entities.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Gear Usage Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	period := fmt.Sprintf("%s - %s", report.PeriodStart.Format("2006-01-02"), report.PeriodEnd.Format("2006-01-02"))
	pdf.CellFormat(0, 6, period, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeSummary(pdf, report.Summary)
	writeInsights(pdf, report)

	writeTable(pdf, "Users",
		[]string{"User", "Requests", "Checkouts", "Check-ins", "Overdue", "Damages"},
		[]float64{60, 26, 26, 26, 26, 26},
		len(report.UserStats),
		func(i int) []string {
			s := report.UserStats[i]
			return []string{s.Fio, strconv.Itoa(s.Requests), strconv.Itoa(s.Checkouts),
				strconv.Itoa(s.Checkins), strconv.Itoa(s.Overdue), strconv.Itoa(s.DamageReports)}
		})

	writeTable(pdf, "Equipment",
		[]string{"Equipment", "Category", "Checkouts", "Damages", "Utilization"},
		[]float64{60, 40, 30, 30, 30},
		len(report.EquipmentStats),
		func(i int) []string {
			s := report.EquipmentStats[i]
			return []string{s.Name, s.Category, strconv.Itoa(s.Checkouts),
				strconv.Itoa(s.DamageReports), fmt.Sprintf("%.1f%%", s.Utilization)}
		})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(pdf *fpdf.Fpdf, summary entities.ReportSummary) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	lines := []struct {
		label string
		value string
	}{
		{"Total requests", strconv.Itoa(summary.TotalRequests)},
		{"Total checkouts", strconv.Itoa(summary.TotalCheckouts)},
		{"Total check-ins", strconv.Itoa(summary.TotalCheckins)},
		{"Damage reports", strconv.Itoa(summary.TotalDamageReports)},
		{"Overdue items", strconv.Itoa(summary.OverdueItems)},
		{"Active users", strconv.Itoa(summary.ActiveUsers)},
		{"Avg request duration", fmt.Sprintf("%.1f days", summary.AvgRequestDurationDays)},
	}
	for _, line := range lines {
		pdf.CellFormat(60, 6, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, line.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeInsights(pdf *fpdf.Fpdf, report *entities.Report) {
	if len(report.Insights) == 0 && len(report.Recommendations) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Insights", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, insight := range report.Insights {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("[%s] %s", insight.Severity, insight.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, insight.Description, "", "L", false)
	}
	for _, rec := range report.Recommendations {
		pdf.MultiCell(0, 5, "- "+rec, "", "L", false)
	}
	pdf.Ln(4)
}

func writeTable(pdf *fpdf.Fpdf, title string, headers []string, widths []float64, rowCount int, row func(i int) []string) {
	_, pageHeight := pdf.GetPageSize()
	// Keep the title and header row together.
	if pdf.GetY()+20 > pageHeight-pdfBottomMargin {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, header := range headers {
			pdf.CellFormat(widths[i], 7, header, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 9)
	for i := 0; i < rowCount; i++ {
		if pdf.GetY()+6 > pageHeight-pdfBottomMargin {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 9)
		}
		for j, cell := range row(i) {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}
