package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"gear-system/internal/entities"
)

// RenderCSV writes the report as labeled sections in one delimited file.
// encoding/csv handles quoting, so free-text fields with commas or quotes
// survive round-trips through spreadsheet tools.
func RenderCSV(report *entities.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Gear Usage Report"},
		{"Period", report.PeriodStart.Format("2006-01-02"), report.PeriodEnd.Format("2006-01-02")},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Summary"},
		{"Total requests", strconv.Itoa(report.Summary.TotalRequests)},
		{"Total checkouts", strconv.Itoa(report.Summary.TotalCheckouts)},
		{"Total check-ins", strconv.Itoa(report.Summary.TotalCheckins)},
		{"Damage reports", strconv.Itoa(report.Summary.TotalDamageReports)},
		{"Overdue items", strconv.Itoa(report.Summary.OverdueItems)},
		{"Active users", strconv.Itoa(report.Summary.ActiveUsers)},
		{"Avg request duration (days)", fmt.Sprintf("%.1f", report.Summary.AvgRequestDurationDays)},
		{},
		{"User statistics"},
		{"User", "Requests", "Checkouts", "Check-ins", "Overdue", "Damage reports"},
	}
	for _, stat := range report.UserStats {
		rows = append(rows, []string{
			stat.Fio,
			strconv.Itoa(stat.Requests),
			strconv.Itoa(stat.Checkouts),
			strconv.Itoa(stat.Checkins),
			strconv.Itoa(stat.Overdue),
			strconv.Itoa(stat.DamageReports),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Equipment statistics"},
		[]string{"Equipment", "Category", "Requests", "Checkouts", "Check-ins", "Damage reports", "Utilization %"},
	)
	for _, stat := range report.EquipmentStats {
		rows = append(rows, []string{
			stat.Name,
			stat.Category,
			strconv.Itoa(stat.Requests),
			strconv.Itoa(stat.Checkouts),
			strconv.Itoa(stat.Checkins),
			strconv.Itoa(stat.DamageReports),
			fmt.Sprintf("%.1f", stat.Utilization),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Daily trends"},
		[]string{"Day", "Requests", "Checkouts", "Damages"},
	)
	for _, point := range report.Trends {
		rows = append(rows, []string{
			point.Day,
			strconv.Itoa(point.Requests),
			strconv.Itoa(point.Checkouts),
			strconv.Itoa(point.Damages),
		})
	}

	rows = append(rows, []string{}, []string{"Insights"}, []string{"Severity", "Title", "Description"})
	for _, insight := range report.Insights {
		rows = append(rows, []string{insight.Severity, insight.Title, insight.Description})
	}
	rows = append(rows, []string{}, []string{"Recommendations"})
	for _, rec := range report.Recommendations {
		rows = append(rows, []string{rec})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write report csv: %w", err)
	}
	return buf.Bytes(), nil
}
