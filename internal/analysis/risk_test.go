package analysis

import (
	"testing"
	"time"

	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRisk_EmptyInputIsLow(t *testing.T) {
	// Действие
	risk := ScoreRisk(nil, nil, TrendResult{Trend: TrendStable}, 0)

	// Проверки: деградированная, но валидная оценка
	assert.Equal(t, RiskLow, risk.Level)
	assert.Zero(t, risk.Score)
	assert.Zero(t, risk.Confidence)
	assert.Empty(t, risk.Factors)
}

func TestScoreRisk_SingleFactorStaysLow(t *testing.T) {
	// Подготовка: один фактор (внешние тревоги), без высокой серьёзности
	alerts := []*models.Alert{
		{Title: "a", Severity: models.SeverityModerate, Source: models.SourceGDACS},
		{Title: "b", Severity: models.SeverityLow, Source: models.SourceGDACS},
	}

	// Действие
	risk := ScoreRisk(alerts, nil, TrendResult{}, 2)

	// Проверки: 0.5*1 = 0.5, ниже порога MEDIUM
	require.Len(t, risk.Factors, 1)
	assert.Equal(t, RiskLow, risk.Level)
	assert.InDelta(t, 0.5, risk.Score, 1e-9)
}

func TestScoreRisk_ScenarioHigh(t *testing.T) {
	// Подготовка: 2 тревоги высокой серьёзности, кластер, внешние данные,
	// растущий тренд: 0.5*4 + 0.3*2 = 2.6
	alerts := []*models.Alert{
		{Title: "a", Severity: models.SeverityCritical, Source: models.SourceOpenMeteo},
		{Title: "b", Severity: models.SeverityHigh, Source: models.SourceLocal},
		{Title: "c", Severity: models.SeverityLow, Source: models.SourceLocal},
	}
	clusters := []*Cluster{{Alerts: alerts[:2]}}
	trend := TrendResult{Trend: TrendIncreasing, Increasing: true}

	// Действие
	risk := ScoreRisk(alerts, clusters, trend, 1)

	// Проверки
	assert.Equal(t, RiskHigh, risk.Level)
	assert.InDelta(t, 2.6, risk.Score, 1e-9)
	assert.Len(t, risk.Factors, 4)
	assert.Len(t, risk.Recommendations, 4)
	assert.InDelta(t, 2.6/3.0, risk.Confidence, 1e-9)
}

func TestScoreRisk_ColocatedSevereSnapshot(t *testing.T) {
	// Подготовка: 5 тревог в одной точке с серьёзностями [4,4,3,2,1],
	// одна из внешнего источника
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	severities := []int{
		models.SeverityCritical,
		models.SeverityCritical,
		models.SeverityHigh,
		models.SeverityModerate,
		models.SeverityLow,
	}
	alerts := make([]*models.Alert, 0, len(severities))
	for i, severity := range severities {
		source := models.SourceLocal
		if i == 1 {
			source = models.SourceGDACS
		}
		alerts = append(alerts, &models.Alert{
			Title:     string(rune('a' + i)),
			Severity:  severity,
			Latitude:  14.625,
			Longitude: -90.525,
			Source:    source,
			CreatedAt: day.Add(time.Duration(i) * time.Hour),
		})
	}

	// Действие
	clusters := ClusterAlerts(alerts, DefaultClusterRadius)
	trend := AnalyzeTrend(alerts, 7)
	risk := ScoreRisk(alerts, clusters, trend, 1)

	// Проверки: один кластер из всех пяти, совпадающие координаты не
	// сдвигают центроид
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Alerts, 5)
	assert.InDelta(t, 14.625, clusters[0].CenterLat, 1e-9)
	assert.InDelta(t, -90.525, clusters[0].CenterLon, 1e-9)
	assert.Equal(t, 3, CountHighSeverity(alerts))

	// Факторы: высокая серьёзность, концентрация, внешний источник;
	// 0.5*3 + 0.3*3 = 2.4
	assert.Equal(t, RiskHigh, risk.Level)
	assert.InDelta(t, 2.4, risk.Score, 1e-9)
	assert.Len(t, risk.Factors, 3)
	assert.NotEmpty(t, risk.Recommendations)
	assert.InDelta(t, 0.8, risk.Confidence, 1e-9)
}

func TestScoreRisk_ManyHighSeverityIsCritical(t *testing.T) {
	// Подготовка: 10 тревог высокой серьёзности: 0.5*1 + 0.3*10 = 3.5,
	// плюс факторы концентрации и тренда дают >= 5
	alerts := make([]*models.Alert, 0, 12)
	for i := 0; i < 12; i++ {
		alerts = append(alerts, &models.Alert{
			Title:    string(rune('a' + i)),
			Severity: models.SeverityCritical,
			Source:   models.SourceLocal,
		})
	}
	clusters := []*Cluster{{Alerts: alerts[:3]}}
	trend := TrendResult{Trend: TrendIncreasing, Increasing: true}

	// Действие
	risk := ScoreRisk(alerts, clusters, trend, 0)

	// Проверки: 0.5*3 + 0.3*12 = 5.1
	assert.Equal(t, RiskCritical, risk.Level)
	assert.InDelta(t, 5.1, risk.Score, 1e-9)
	assert.Equal(t, 1.0, risk.Confidence)
}

func TestScoreRisk_MonotonicInHighSeverity(t *testing.T) {
	// Подготовка: добавление тревоги высокой серьёзности не снижает счет
	base := []*models.Alert{
		{Title: "a", Severity: models.SeverityHigh, Source: models.SourceLocal},
	}
	more := append([]*models.Alert{}, base...)
	more = append(more, &models.Alert{Title: "b", Severity: models.SeverityCritical, Source: models.SourceLocal})

	// Действие
	lower := ScoreRisk(base, nil, TrendResult{}, 0)
	higher := ScoreRisk(more, nil, TrendResult{}, 0)

	// Проверки
	assert.GreaterOrEqual(t, higher.Score, lower.Score)
}

func TestCountHighSeverity(t *testing.T) {
	alerts := []*models.Alert{
		{Severity: models.SeverityLow},
		{Severity: models.SeverityModerate},
		{Severity: models.SeverityHigh},
		{Severity: models.SeverityCritical},
		nil,
	}
	assert.Equal(t, 2, CountHighSeverity(alerts))
}

func TestSeverityHistogramAndAverage(t *testing.T) {
	// Подготовка
	alerts := []*models.Alert{
		{Severity: models.SeverityLow},
		{Severity: models.SeverityLow},
		{Severity: models.SeverityCritical},
	}

	// Действие
	histogram := SeverityHistogram(alerts)

	// Проверки
	assert.Equal(t, 2, histogram[models.SeverityLow])
	assert.Equal(t, 1, histogram[models.SeverityCritical])
	assert.InDelta(t, 2.0, AverageSeverity(alerts), 1e-9)
	assert.Zero(t, AverageSeverity(nil))
}
