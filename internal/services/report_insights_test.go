package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gear-system/internal/entities"
)

func titles(insights []entities.Insight) []string {
	out := make([]string, 0, len(insights))
	for _, insight := range insights {
		out = append(out, insight.Title)
	}
	return out
}

func TestGenerateInsightsHighUtilization(t *testing.T) {
	report := &entities.Report{
		Summary: entities.ReportSummary{TotalCheckouts: 10, TotalCheckins: 8, ActiveUsers: 5},
		EquipmentStats: []entities.EquipmentStats{
			{Name: "Camera", Category: "camera", Utilization: 92},
			{Name: "Tripod", Category: "tripod", Utilization: 12},
		},
	}

	insights, recommendations := GenerateInsights(report)
	assert.Contains(t, titles(insights), "High equipment utilization")
	assert.Contains(t, recommendations, "Consider expanding inventory in the camera category.")
	assert.NotContains(t, titles(insights), "No equipment activity")
}

func TestGenerateInsightsHighUtilizationPerItem(t *testing.T) {
	report := &entities.Report{
		Summary: entities.ReportSummary{TotalCheckouts: 10, TotalCheckins: 8, ActiveUsers: 5},
		EquipmentStats: []entities.EquipmentStats{
			{Name: "Camera", Category: "camera", Utilization: 92},
			{Name: "Drone", Category: "drone", Utilization: 85},
			{Name: "Tripod", Category: "tripod", Utilization: 12},
		},
	}

	insights, recommendations := GenerateInsights(report)

	var hot int
	for _, title := range titles(insights) {
		if title == "High equipment utilization" {
			hot++
		}
	}
	assert.Equal(t, 2, hot, "every item over the threshold gets its own finding")
	assert.Contains(t, recommendations, "Consider expanding inventory in the camera category.")
	assert.Contains(t, recommendations, "Consider expanding inventory in the drone category.")
}

func TestGenerateInsightsUtilizationAtThresholdDoesNotFire(t *testing.T) {
	report := &entities.Report{
		Summary:        entities.ReportSummary{TotalCheckouts: 5, TotalCheckins: 5, ActiveUsers: 4},
		EquipmentStats: []entities.EquipmentStats{{Name: "Camera", Utilization: 80}},
	}

	insights, _ := GenerateInsights(report)
	assert.NotContains(t, titles(insights), "High equipment utilization")
}

func TestGenerateInsightsDamageRate(t *testing.T) {
	report := &entities.Report{
		Summary: entities.ReportSummary{
			TotalCheckouts:     5,
			TotalCheckins:      4,
			TotalDamageReports: 1, // 1/10 = 10%
			ActiveUsers:        4,
		},
	}

	insights, recommendations := GenerateInsights(report)
	assert.Contains(t, titles(insights), "Elevated damage rate")
	assert.Contains(t, recommendations, "Schedule an equipment handling training session.")
}

func TestGenerateInsightsLowAdoption(t *testing.T) {
	report := &entities.Report{
		Summary: entities.ReportSummary{TotalCheckouts: 2, TotalCheckins: 2, ActiveUsers: 2},
	}

	insights, _ := GenerateInsights(report)
	assert.Contains(t, titles(insights), "Low adoption")
}

func TestGenerateInsightsRulesFireIndependently(t *testing.T) {
	// A completely dead period triggers both the activity warning and the
	// adoption finding at once.
	report := &entities.Report{}

	insights, _ := GenerateInsights(report)
	got := titles(insights)
	assert.Contains(t, got, "No equipment activity")
	assert.Contains(t, got, "Low adoption")
}

func TestGenerateInsightsQuietOnHealthyPeriod(t *testing.T) {
	report := &entities.Report{
		Summary: entities.ReportSummary{TotalCheckouts: 20, TotalCheckins: 18, ActiveUsers: 9},
		EquipmentStats: []entities.EquipmentStats{
			{Name: "Camera", Utilization: 40},
		},
	}

	insights, recommendations := GenerateInsights(report)
	assert.Empty(t, insights)
	assert.Empty(t, recommendations)
}
