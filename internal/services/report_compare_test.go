package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"gear-system/internal/entities"
)

func TestComparePerformanceZeroBaseline(t *testing.T) {
	current := &entities.Report{
		Summary: entities.ReportSummary{TotalCheckouts: 10, TotalCheckins: 5, TotalDamageReports: 2},
		EquipmentStats: []entities.EquipmentStats{
			{Utilization: 50},
		},
	}
	previous := &entities.Report{}

	comparison := ComparePerformance(current, previous)

	assert.Equal(t, 0.0, comparison.ActivityChange)
	assert.Equal(t, 0.0, comparison.DamageChange)
	assert.Equal(t, 0.0, comparison.UtilizationChange)
	assert.False(t, math.IsNaN(comparison.ActivityChange))
	assert.False(t, math.IsInf(comparison.ActivityChange, 0))
}

func TestComparePerformanceDeltas(t *testing.T) {
	current := &entities.Report{
		Summary: entities.ReportSummary{TotalRequests: 12, TotalCheckouts: 8, TotalDamageReports: 1},
		EquipmentStats: []entities.EquipmentStats{
			{Utilization: 60}, {Utilization: 30},
		},
	}
	previous := &entities.Report{
		Summary: entities.ReportSummary{TotalRequests: 6, TotalCheckouts: 4, TotalDamageReports: 2},
		EquipmentStats: []entities.EquipmentStats{
			{Utilization: 20}, {Utilization: 40},
		},
	}

	comparison := ComparePerformance(current, previous)

	assert.InDelta(t, 100.0, comparison.ActivityChange, 0.001)   // 10 -> 20
	assert.InDelta(t, -50.0, comparison.DamageChange, 0.001)     // 2 -> 1
	assert.InDelta(t, 50.0, comparison.UtilizationChange, 0.001) // 30 -> 45
}
