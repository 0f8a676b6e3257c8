package analysis

import (
	"fmt"

	"github.com/shenikar/disaster_alert_system/internal/models"
)

// Уровни риска
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// Веса и пороги скоринга. Это настраиваемая политика, а не закон:
// пороги подобраны под региональный масштаб системы.
const (
	factorWeight       = 0.5
	highSeverityWeight = 0.3

	mediumThreshold   = 1.0
	highThreshold     = 2.0
	criticalThreshold = 5.0
)

// RiskAssessment - категориальная оценка риска по текущему состоянию тревог
type RiskAssessment struct {
	Level           string   `json:"risk_level"`
	Confidence      float64  `json:"confidence"`
	Score           float64  `json:"score"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// ScoreRisk собирает факторы риска и сводит их во взвешенную оценку.
// Факторы: наличие тревог высокой серьёзности, географическая концентрация,
// внешние источники, растущий тренд. На пустом входе возвращает валидную
// деградированную оценку (LOW, уверенность 0), никогда не ошибку.
func ScoreRisk(alerts []*models.Alert, clusters []*Cluster, trend TrendResult, externalCount int) RiskAssessment {
	factors := make([]string, 0, 4)
	recommendations := make([]string, 0, 4)

	highSeverity := CountHighSeverity(alerts)
	if highSeverity > 0 {
		factors = append(factors, fmt.Sprintf("%d high severity alerts active", highSeverity))
		recommendations = append(recommendations, "continuously monitor high severity alerts")
	}

	if len(clusters) > 0 {
		factors = append(factors, fmt.Sprintf("alert concentration in %d zones", len(clusters)))
		recommendations = append(recommendations, "evaluate resources in high concentration zones")
	}

	if externalCount > 0 {
		factors = append(factors, fmt.Sprintf("%d external alerts detected", externalCount))
		recommendations = append(recommendations, "integrate external alerts into monitoring")
	}

	if trend.Increasing {
		factors = append(factors, "increasing trend in alert volume")
		recommendations = append(recommendations, "increase response capacity")
	}

	score := factorWeight*float64(len(factors)) + highSeverityWeight*float64(highSeverity)

	level := RiskLow
	switch {
	case score >= criticalThreshold:
		level = RiskCritical
	case score >= highThreshold:
		level = RiskHigh
	case score >= mediumThreshold:
		level = RiskMedium
	}

	confidence := score / 3.0
	if confidence > 1.0 {
		confidence = 1.0
	}

	return RiskAssessment{
		Level:           level,
		Confidence:      confidence,
		Score:           score,
		Factors:         factors,
		Recommendations: recommendations,
	}
}

// CountHighSeverity считает тревоги с серьёзностью >= 3
func CountHighSeverity(alerts []*models.Alert) int {
	count := 0
	for _, alert := range alerts {
		if alert != nil && alert.Severity >= models.SeverityHigh {
			count++
		}
	}
	return count
}

// SeverityHistogram возвращает распределение тревог по уровням серьёзности
func SeverityHistogram(alerts []*models.Alert) map[int]int {
	histogram := make(map[int]int)
	for _, alert := range alerts {
		if alert != nil {
			histogram[alert.Severity]++
		}
	}
	return histogram
}

// AverageSeverity возвращает среднюю серьёзность снимка, 0 для пустого
func AverageSeverity(alerts []*models.Alert) float64 {
	if len(alerts) == 0 {
		return 0
	}
	sum := 0
	n := 0
	for _, alert := range alerts {
		if alert != nil {
			sum += alert.Severity
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
