package services

import (
	"fmt"

	"gear-system/internal/entities"
)

const (
	highUtilizationThreshold = 80.0
	damageRateThreshold      = 0.05
	minActiveUsers           = 3
)

// GenerateInsights derives findings and recommendations from an aggregated
// report. Each rule fires independently; a quiet period can legitimately
// trigger several at once.
func GenerateInsights(report *entities.Report) ([]entities.Insight, []string) {
	var insights []entities.Insight
	var recommendations []string

	summary := report.Summary

	if summary.TotalCheckouts == 0 && summary.TotalCheckins == 0 {
		insights = append(insights, entities.Insight{
			Title:       "No equipment activity",
			Description: "No checkouts or check-ins were recorded in this period.",
			Severity:    entities.SeverityWarning,
		})
		recommendations = append(recommendations, "Review whether pending requests are being processed in time.")
	}

	// One finding per hot item; duplicate advice across categories is fine.
	for _, stat := range report.EquipmentStats {
		if stat.Utilization > highUtilizationThreshold {
			insights = append(insights, entities.Insight{
				Title:       "High equipment utilization",
				Description: fmt.Sprintf("%s was in use %.0f%% of the period.", stat.Name, stat.Utilization),
				Severity:    entities.SeverityHigh,
			})
			recommendations = append(recommendations,
				fmt.Sprintf("Consider expanding inventory in the %s category.", stat.Category))
		}
	}

	handled := summary.TotalCheckouts + summary.TotalCheckins + summary.TotalDamageReports
	if handled > 0 {
		rate := float64(summary.TotalDamageReports) / float64(handled)
		if rate > damageRateThreshold {
			insights = append(insights, entities.Insight{
				Title:       "Elevated damage rate",
				Description: fmt.Sprintf("%.1f%% of handling events ended in a damage report.", rate*100),
				Severity:    entities.SeverityWarning,
			})
			recommendations = append(recommendations, "Schedule an equipment handling training session.")
		}
	}

	if summary.ActiveUsers < minActiveUsers {
		insights = append(insights, entities.Insight{
			Title:       "Low adoption",
			Description: fmt.Sprintf("Only %d users were active in this period.", summary.ActiveUsers),
			Severity:    entities.SeverityInfo,
		})
		recommendations = append(recommendations, "Promote the checkout system to the wider team.")
	}

	return insights, recommendations
}
