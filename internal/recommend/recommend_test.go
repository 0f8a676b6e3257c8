package recommend

import (
	"testing"
	"time"

	"github.com/shenikar/disaster_alert_system/internal/analysis"
	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertNear(title string, severity int, lat, lon float64) *models.Alert {
	return &models.Alert{
		Title:     title,
		Severity:  severity,
		Latitude:  lat,
		Longitude: lon,
		Source:    models.SourceLocal,
	}
}

func TestBuild_FirstResponder_HighPriorityNearby(t *testing.T) {
	// Подготовка: критичная тревога в оперативном радиусе
	loc := &Location{Latitude: 14.6250, Longitude: -90.5250}
	alerts := []*models.Alert{
		alertNear("fire", models.SeverityCritical, 14.6260, -90.5250),
		alertNear("flood", models.SeverityLow, 14.6300, -90.5250),
		alertNear("far", models.SeverityCritical, 15.0000, -91.0000),
	}

	// Действие
	rec := Build(RoleFirstResponder, alerts, nil, nil, loc)

	// Проверки: приоритет HIGH, пункт немедленных действий первым,
	// пункт безопасности всегда присутствует
	assert.Equal(t, RoleFirstResponder, rec.Role)
	assert.Equal(t, PriorityHigh, rec.Priority)
	assert.Equal(t, time.Hour, rec.ValidityPeriod)
	require.Len(t, rec.Items, 3)
	assert.Equal(t, "immediate_action", rec.Items[0].Type)
	assert.Equal(t, "safety", rec.Items[2].Type)
}

func TestBuild_FirstResponder_NoLocationStillNonEmpty(t *testing.T) {
	// Действие: без точки запрашивающего выборка рядом пуста
	rec := Build(RoleFirstResponder, nil, nil, nil, nil)

	// Проверки: остается постоянный пункт безопасности
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "safety", rec.Items[0].Type)
	assert.Equal(t, PriorityMedium, rec.Priority)
}

func TestBuild_Coordinator_WholeSnapshot(t *testing.T) {
	// Подготовка: высокая серьёзность, внешние данные, два кластера
	alerts := []*models.Alert{
		alertNear("a", models.SeverityCritical, 14.6250, -90.5250),
		{Title: "b", Severity: models.SeverityModerate, Source: models.SourceGDACS},
	}
	clusters := []*analysis.Cluster{
		{Alerts: alerts},
		{Alerts: alerts},
	}

	// Действие
	rec := Build(RoleCoordinator, alerts, clusters, nil, nil)

	// Проверки
	assert.Equal(t, PriorityHigh, rec.Priority)
	assert.Equal(t, 2*time.Hour, rec.ValidityPeriod)
	require.Len(t, rec.Items, 3)
	assert.Equal(t, "resource_management", rec.Items[0].Type)
	assert.Equal(t, "integration", rec.Items[1].Type)
	assert.Equal(t, "strategic", rec.Items[2].Type)
}

func TestBuild_Coordinator_QuietSnapshotFallsBackToMonitoring(t *testing.T) {
	// Действие
	rec := Build(RoleCoordinator, nil, nil, nil, nil)

	// Проверки
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "general", rec.Items[0].Type)
	assert.Equal(t, PriorityMedium, rec.Priority)
}

func TestBuild_CivilProtection_CapacityPressure(t *testing.T) {
	// Подготовка: 3 активных тревоги против вместимости 4: 3 > 4*0.5
	alerts := []*models.Alert{
		alertNear("a", models.SeverityModerate, 14.62, -90.52),
		alertNear("b", models.SeverityHigh, 14.63, -90.53),
		alertNear("c", models.SeverityCritical, 14.64, -90.54),
		alertNear("minor", models.SeverityLow, 14.65, -90.55),
	}
	shelters := []*models.Shelter{
		{Name: "small", Capacity: 4},
	}

	// Действие
	rec := Build(RoleCivilProtection, alerts, nil, shelters, nil)

	// Проверки
	assert.Equal(t, PriorityMedium, rec.Priority)
	assert.Equal(t, 4*time.Hour, rec.ValidityPeriod)
	require.NotEmpty(t, rec.Items)
	assert.Equal(t, "capacity", rec.Items[0].Type)
}

func TestBuild_CivilProtection_SufficientCapacity(t *testing.T) {
	// Подготовка: вместимость с запасом, тренд без роста
	alerts := []*models.Alert{
		alertNear("a", models.SeverityModerate, 14.62, -90.52),
	}
	shelters := []*models.Shelter{
		{Name: "big", Capacity: 500},
	}

	// Действие
	rec := Build(RoleCivilProtection, alerts, nil, shelters, nil)

	// Проверки: остается пункт мониторинга
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "general", rec.Items[0].Type)
}

func TestBuild_Citizen_NearbyAlertsAndShelters(t *testing.T) {
	// Подготовка
	loc := &Location{Latitude: 14.6250, Longitude: -90.5250}
	alerts := []*models.Alert{
		alertNear("close", models.SeverityCritical, 14.6255, -90.5255),
	}
	shelters := []*models.Shelter{
		{Name: "near", Latitude: 14.6300, Longitude: -90.5250},
		{Name: "far", Latitude: 15.0000, Longitude: -91.0000},
	}

	// Действие
	rec := Build(RoleCitizen, alerts, nil, shelters, loc)

	// Проверки: предупреждение, информация, убежища
	assert.Equal(t, PriorityLow, rec.Priority)
	assert.Equal(t, 6*time.Hour, rec.ValidityPeriod)
	require.Len(t, rec.Items, 3)
	assert.Equal(t, "safety", rec.Items[0].Type)
	assert.Equal(t, "information", rec.Items[1].Type)
	assert.Equal(t, "preparation", rec.Items[2].Type)
}

func TestBuild_Citizen_NothingNearbyIsSituationNormal(t *testing.T) {
	// Подготовка: тревоги есть, но вне радиуса гражданина
	loc := &Location{Latitude: 14.6250, Longitude: -90.5250}
	alerts := []*models.Alert{
		alertNear("far", models.SeverityCritical, 15.0000, -91.0000),
	}

	// Действие
	rec := Build(RoleCitizen, alerts, nil, nil, loc)

	// Проверки
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "Situation normal", rec.Items[0].Title)
}

func TestBuild_UnknownRoleFallsBackToGeneral(t *testing.T) {
	// Действие
	rec := Build(Role("director"), nil, nil, nil, nil)

	// Проверки
	assert.Equal(t, RoleGeneral, rec.Role)
	assert.Equal(t, PriorityLow, rec.Priority)
	assert.Equal(t, 12*time.Hour, rec.ValidityPeriod)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "System monitoring", rec.Items[0].Title)
}

func TestBuild_EveryRoleReturnsItems(t *testing.T) {
	// Проверки: любой ролевой ответ непуст даже на пустом снимке
	roles := []Role{RoleFirstResponder, RoleCoordinator, RoleCivilProtection, RoleCitizen, RoleGeneral}
	for _, role := range roles {
		rec := Build(role, nil, nil, nil, nil)
		assert.NotEmptyf(t, rec.Items, "role %s returned no items", role)
		assert.Positivef(t, rec.ValidityPeriod, "role %s has no validity period", role)
	}
}
