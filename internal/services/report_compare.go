package services

import "gear-system/internal/entities"

// ComparePerformance computes percentage deltas between two adjacent periods.
// A zero prior baseline yields 0 for that metric, never NaN or Inf.
func ComparePerformance(current, previous *entities.Report) entities.PerformanceComparison {
	return entities.PerformanceComparison{
		ActivityChange: pctChange(
			float64(current.Summary.TotalRequests+current.Summary.TotalCheckouts),
			float64(previous.Summary.TotalRequests+previous.Summary.TotalCheckouts)),
		DamageChange: pctChange(
			float64(current.Summary.TotalDamageReports),
			float64(previous.Summary.TotalDamageReports)),
		UtilizationChange: pctChange(meanUtilization(current), meanUtilization(previous)),
	}
}

func pctChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func meanUtilization(report *entities.Report) float64 {
	if len(report.EquipmentStats) == 0 {
		return 0
	}
	var total float64
	for _, stat := range report.EquipmentStats {
		total += stat.Utilization
	}
	return total / float64(len(report.EquipmentStats))
}
