package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gear-system/internal/entities"
)

// RenderXLSX builds a three-sheet workbook: Summary, Users and Equipment.
func RenderXLSX(report *entities.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, report, headerStyle); err != nil {
		return nil, err
	}
	if err := writeUsersSheet(f, report, headerStyle); err != nil {
		return nil, err
	}
	if err := writeEquipmentSheet(f, report, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render report xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *entities.Report, headerStyle int) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Gear Usage Report"},
		{"Period", report.PeriodStart.Format("2006-01-02") + " - " + report.PeriodEnd.Format("2006-01-02")},
		{},
		{"Total requests", report.Summary.TotalRequests},
		{"Total checkouts", report.Summary.TotalCheckouts},
		{"Total check-ins", report.Summary.TotalCheckins},
		{"Damage reports", report.Summary.TotalDamageReports},
		{"Overdue items", report.Summary.OverdueItems},
		{"Active users", report.Summary.ActiveUsers},
		{"Avg request duration (days)", report.Summary.AvgRequestDurationDays},
		{},
		{"Insights"},
	}
	for _, insight := range report.Insights {
		rows = append(rows, []interface{}{insight.Severity, insight.Title, insight.Description})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Recommendations"})
	for _, rec := range report.Recommendations {
		rows = append(rows, []interface{}{rec})
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, "A1", "A1", headerStyle)
}

func writeUsersSheet(f *excelize.File, report *entities.Report, headerStyle int) error {
	const sheet = "Users"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}

	header := []interface{}{"User", "Requests", "Checkouts", "Check-ins", "Overdue", "Damage reports"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return err
	}
	for i, stat := range report.UserStats {
		row := []interface{}{stat.Fio, stat.Requests, stat.Checkouts, stat.Checkins, stat.Overdue, stat.DamageReports}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeEquipmentSheet(f *excelize.File, report *entities.Report, headerStyle int) error {
	const sheet = "Equipment"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "B", 25); err != nil {
		return err
	}

	header := []interface{}{"Equipment", "Category", "Requests", "Checkouts", "Check-ins", "Damage reports", "Utilization %"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return err
	}
	for i, stat := range report.EquipmentStats {
		row := []interface{}{stat.Name, stat.Category, stat.Requests, stat.Checkouts, stat.Checkins, stat.DamageReports, stat.Utilization}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}
