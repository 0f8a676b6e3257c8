package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/disaster_alert_system/internal/analysis"
	"github.com/shenikar/disaster_alert_system/internal/config"
	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/shenikar/disaster_alert_system/internal/recommend"
	"github.com/shenikar/disaster_alert_system/internal/service"
	"github.com/shenikar/disaster_alert_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAnalyticsService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestAnalyticsService(t *testing.T) (service.AnalyticsService, *mocks.MockAlertRepository, *mocks.MockShelterRepository, *clockwork.FakeClock) {
	ctrl := gomock.NewController(t)
	alertsMock := mocks.NewMockAlertRepository(ctrl)
	sheltersMock := mocks.NewMockShelterRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		ClusterRadiusDegrees: 0.01,
		TrendWindowDays:      7,
		SnapshotLimit:        500,
	}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	svc := service.NewAnalyticsService(alertsMock, sheltersMock, logger, cfg, clock, nil)
	return svc, alertsMock, sheltersMock, clock
}

func snapshotAlerts(now time.Time) []*models.Alert {
	return []*models.Alert{
		{
			Title:     "Пожар на рынке",
			Severity:  models.SeverityCritical,
			Latitude:  14.6250,
			Longitude: -90.5250,
			Source:    models.SourceLocal,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			Title:     "Задымление рядом",
			Severity:  models.SeverityHigh,
			Latitude:  14.6255,
			Longitude: -90.5255,
			Source:    models.SourceLocal,
			CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			Title:     "GDACS: Flood",
			Severity:  models.SeverityModerate,
			Latitude:  14.6260,
			Longitude: -90.5260,
			Source:    models.SourceGDACS,
			CreatedAt: now.Add(-30 * time.Minute),
		},
	}
}

func TestDashboard_CacheMissComputesAndCaches(t *testing.T) {
	// Подготовка
	svc, alertsMock, _, clock := newTestAnalyticsService(t)
	ctx := context.Background()
	alerts := snapshotAlerts(clock.Now())

	// Ожидания
	alertsMock.EXPECT().
		GetCache(ctx, gomock.Any()).
		Return(nil, nil).
		Times(1)
	alertsMock.EXPECT().
		ListAll(ctx, 500).
		Return(alerts, nil).
		Times(1)
	alertsMock.EXPECT().
		SetCache(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	summary, err := svc.Dashboard(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalAlerts)
	assert.Equal(t, 1, summary.ExternalAlerts)
	assert.Equal(t, 2, summary.HighSeverity)
	assert.Equal(t, 3, summary.RecentAlerts24h)
	assert.Equal(t, 2, summary.SeverityBreakdown[models.SeverityHigh]+summary.SeverityBreakdown[models.SeverityCritical])
	assert.InDelta(t, 3.0, summary.AverageSeverity, 1e-9)
	assert.NotEmpty(t, summary.Risk.Level)
	assert.Equal(t, clock.Now().UTC(), summary.GeneratedAt)
}

func TestDashboard_ServedFromCache(t *testing.T) {
	// Подготовка
	svc, alertsMock, _, _ := newTestAnalyticsService(t)
	ctx := context.Background()
	cached := &service.DashboardSummary{TotalAlerts: 42}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	// Ожидания: снимок из бд не запрашивается
	alertsMock.EXPECT().
		GetCache(ctx, gomock.Any()).
		Return(payload, nil).
		Times(1)

	// Действие
	summary, err := svc.Dashboard(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 42, summary.TotalAlerts)
}

func TestDashboard_MalformedCacheRecomputed(t *testing.T) {
	// Подготовка
	svc, alertsMock, _, _ := newTestAnalyticsService(t)
	ctx := context.Background()

	// Ожидания: битый кеш отбрасывается и пересчитывается
	alertsMock.EXPECT().GetCache(ctx, gomock.Any()).Return([]byte("{broken"), nil).Times(1)
	alertsMock.EXPECT().ListAll(ctx, 500).Return(nil, nil).Times(1)
	alertsMock.EXPECT().SetCache(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие
	summary, err := svc.Dashboard(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Zero(t, summary.TotalAlerts)
	assert.Equal(t, analysis.TrendStable, summary.Trend.Trend)
}

func TestAssessRisk_ScenarioHigh(t *testing.T) {
	// Подготовка: кластер, внешние данные и высокая серьёзность
	svc, alertsMock, _, clock := newTestAnalyticsService(t)
	ctx := context.Background()

	// Ожидания
	alertsMock.EXPECT().
		ListAll(ctx, 500).
		Return(snapshotAlerts(clock.Now()), nil).
		Times(1)

	// Действие
	risk, err := svc.AssessRisk(ctx)

	// Проверки: 3 фактора (0.5*3) + 2 высокой серьёзности (0.3*2) = 2.1
	require.NoError(t, err)
	assert.Equal(t, analysis.RiskHigh, risk.Level)
	assert.InDelta(t, 2.1, risk.Score, 1e-9)
	assert.Len(t, risk.Factors, 3)
}

func TestCorrelations_GeographicAndCrossSource(t *testing.T) {
	// Подготовка: внешняя тревога рядом с локальными
	svc, alertsMock, _, clock := newTestAnalyticsService(t)
	ctx := context.Background()

	// Ожидания
	alertsMock.EXPECT().
		ListAll(ctx, 500).
		Return(snapshotAlerts(clock.Now()), nil).
		Times(1)

	// Действие
	report, err := svc.Correlations(ctx)

	// Проверки
	require.NoError(t, err)
	require.Len(t, report.GeographicClusters, 1)

	types := make(map[string]int)
	for _, c := range report.Correlations {
		types[c.Type]++
	}
	assert.Equal(t, 1, types["geographic"])
	assert.Equal(t, 1, types["cross_source"])
}

func TestRecommend_CitizenWithLocation(t *testing.T) {
	// Подготовка
	svc, alertsMock, sheltersMock, clock := newTestAnalyticsService(t)
	ctx := context.Background()
	shelters := []*models.Shelter{
		{Name: "Escuela Central", Latitude: 14.6250, Longitude: -90.5250, Capacity: 200},
	}

	// Ожидания
	alertsMock.EXPECT().ListAll(ctx, 500).Return(snapshotAlerts(clock.Now()), nil).Times(1)
	sheltersMock.EXPECT().ListAll(ctx).Return(shelters, nil).Times(1)

	// Действие
	rec, err := svc.Recommend(ctx, recommend.RoleCitizen, &recommend.Location{Latitude: 14.6250, Longitude: -90.5250})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, recommend.RoleCitizen, rec.Role)
	assert.NotEmpty(t, rec.Items)
}

func TestListAlerts_LimitClampedToSnapshotLimit(t *testing.T) {
	// Подготовка
	svc, alertsMock, _, _ := newTestAnalyticsService(t)
	ctx := context.Background()

	// Ожидания: неположительный и завышенный лимит зажимаются
	alertsMock.EXPECT().ListRecent(ctx, 500).Return(nil, nil).Times(2)
	alertsMock.EXPECT().ListRecent(ctx, 10).Return(nil, nil).Times(1)

	// Действие и проверки
	_, err := svc.ListAlerts(ctx, 0)
	require.NoError(t, err)
	_, err = svc.ListAlerts(ctx, 100000)
	require.NoError(t, err)
	_, err = svc.ListAlerts(ctx, 10)
	require.NoError(t, err)
}

func TestListShelters_PropagatesRepository(t *testing.T) {
	// Подготовка
	svc, _, sheltersMock, _ := newTestAnalyticsService(t)
	ctx := context.Background()
	shelters := []*models.Shelter{{Name: "Hospital General", Capacity: 150}}

	// Ожидания
	sheltersMock.EXPECT().ListAll(ctx).Return(shelters, nil).Times(1)

	// Действие
	got, err := svc.ListShelters(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, shelters, got)
}

func TestSnapshot_SkipsMalformedRecords(t *testing.T) {
	// Подготовка: срез с пустым заголовком и nil-записью
	svc, alertsMock, _, clock := newTestAnalyticsService(t)
	ctx := context.Background()
	alerts := append(snapshotAlerts(clock.Now()),
		&models.Alert{Title: "", Severity: models.SeverityCritical},
		nil,
	)

	// Ожидания
	alertsMock.EXPECT().ListAll(ctx, 500).Return(alerts, nil).Times(1)

	// Действие
	assessment, err := svc.AssessRisk(ctx)

	// Проверки: битые записи не валят анализ и не учитываются в оценке
	require.NoError(t, err)
	assert.Equal(t, analysis.RiskHigh, assessment.Level)
	assert.InDelta(t, 2.1, assessment.Score, 1e-9)
}
