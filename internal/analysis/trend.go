package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/shenikar/disaster_alert_system/internal/models"
)

// Направления тренда
const (
	TrendStable           = "stable"
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendInsufficientData = "insufficient_data"
)

// DefaultTrendWindowDays - окно тренда по умолчанию в различных датах
const DefaultTrendWindowDays = 7

// Доля тревог в одном часе, начиная с которой час считается пиковым
const peakShareThreshold = 0.2

// DailyCount - количество тревог за календарную дату (UTC)
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// TrendResult - классификация направления объема тревог за окно последних дней
type TrendResult struct {
	Trend      string       `json:"trend"`
	Increasing bool         `json:"increasing"`
	Daily      []DailyCount `json:"daily"`
}

// AnalyzeTrend группирует тревоги по календарной дате (UTC) создания и
// сравнивает самое раннее ведро окна с самым поздним: строго больше -
// increasing, иначе decreasing. Пустой снимок дает stable, менее двух
// различных дат - insufficient_data.
func AnalyzeTrend(alerts []*models.Alert, windowDays int) TrendResult {
	if len(alerts) == 0 {
		return TrendResult{Trend: TrendStable}
	}
	if windowDays < 2 {
		windowDays = 2
	}

	counts := make(map[string]int)
	for _, alert := range alerts {
		if alert == nil {
			continue
		}
		date := alert.CreatedAt.UTC().Format("2006-01-02")
		counts[date]++
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	// Окно: последние windowDays различных дат, присутствующих в снимке
	if len(dates) > windowDays {
		dates = dates[len(dates)-windowDays:]
	}

	daily := make([]DailyCount, 0, len(dates))
	for _, date := range dates {
		daily = append(daily, DailyCount{Date: date, Count: counts[date]})
	}

	if len(dates) < 2 {
		return TrendResult{Trend: TrendInsufficientData, Daily: daily}
	}

	trend := TrendDecreasing
	if counts[dates[len(dates)-1]] > counts[dates[0]] {
		trend = TrendIncreasing
	}
	return TrendResult{
		Trend:      trend,
		Increasing: trend == TrendIncreasing,
		Daily:      daily,
	}
}

// HourlyPeak группирует снимок по часу суток (UTC) и возвращает описание
// пикового часа, если на один час приходится более 20% всего объема.
// Пустая строка означает отсутствие выраженного пика.
func HourlyPeak(alerts []*models.Alert) string {
	if len(alerts) == 0 {
		return ""
	}

	hourly := make(map[int]int)
	total := 0
	for _, alert := range alerts {
		if alert == nil {
			continue
		}
		hourly[alert.CreatedAt.UTC().Hour()]++
		total++
	}
	if total == 0 {
		return ""
	}

	peakHour, peakCount := 0, 0
	for hour := 0; hour < 24; hour++ {
		if hourly[hour] > peakCount {
			peakHour, peakCount = hour, hourly[hour]
		}
	}

	if float64(peakCount) > float64(total)*peakShareThreshold {
		return fmt.Sprintf("alert peak around %02d:00 UTC", peakHour)
	}
	return ""
}

// RecentCount возвращает количество тревог, созданных после момента since
func RecentCount(alerts []*models.Alert, since time.Time) int {
	count := 0
	for _, alert := range alerts {
		if alert != nil && alert.CreatedAt.After(since) {
			count++
		}
	}
	return count
}
