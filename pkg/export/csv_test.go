package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gear-system/internal/entities"
)

func sampleReport() *entities.Report {
	from := time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC)
	return &entities.Report{
		PeriodStart: from,
		PeriodEnd:   from.AddDate(0, 0, 7),
		GeneratedAt: from.AddDate(0, 0, 7),
		Summary: entities.ReportSummary{
			TotalRequests:  3,
			TotalCheckouts: 2,
			ActiveUsers:    2,
		},
		UserStats: []entities.UserStats{
			{UserID: 1, Fio: `Smith, John "JJ"`, Requests: 2, Checkouts: 1},
		},
		EquipmentStats: []entities.EquipmentStats{
			{EquipmentID: 5, Name: "Camera, 4K", Category: "camera", Utilization: 42.5},
		},
		Trends: []entities.TrendPoint{
			{Day: "2024-08-05", Requests: 2, Checkouts: 1},
		},
		Insights: []entities.Insight{
			{Title: "Low adoption", Description: "Only 2 users were active in this period.", Severity: entities.SeverityInfo},
		},
		Recommendations: []string{"Promote the checkout system to the wider team."},
	}
}

func TestRenderCSVQuotesFreeText(t *testing.T) {
	data, err := RenderCSV(sampleReport())
	require.NoError(t, err)

	// Commas and quotes in names must survive a round-trip through a
	// standards-compliant reader.
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	var found bool
	for _, record := range records {
		if len(record) > 0 && record[0] == `Smith, John "JJ"` {
			found = true
		}
	}
	assert.True(t, found, "quoted user name should parse back intact")
}

func TestRenderCSVSections(t *testing.T) {
	data, err := RenderCSV(sampleReport())
	require.NoError(t, err)

	text := string(data)
	for _, section := range []string{"Summary", "User statistics", "Equipment statistics", "Daily trends", "Insights", "Recommendations"} {
		assert.True(t, strings.Contains(text, section), "missing section %q", section)
	}
}

func TestRenderCSVEmptyReport(t *testing.T) {
	report := &entities.Report{
		PeriodStart: time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC),
	}
	data, err := RenderCSV(report)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	data, err := RenderPDF(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderXLSXProducesWorkbook(t *testing.T) {
	data, err := RenderXLSX(sampleReport())
	require.NoError(t, err)
	// xlsx is a zip container
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}
