// Package recommend строит ролевые рекомендации по снимку тревог, кластерам
// и убежищам. Каждая роль - отдельная чистая функция с фиксированной
// политикой; диспетчеризация идет по перечислимому типу роли.
package recommend

import (
	"fmt"
	"time"

	"github.com/shenikar/disaster_alert_system/internal/analysis"
	"github.com/shenikar/disaster_alert_system/internal/models"
)

// Role - роль запрашивающего
type Role string

const (
	RoleFirstResponder  Role = "first_responder"
	RoleCoordinator     Role = "coordinator"
	RoleCivilProtection Role = "civil_protection"
	RoleCitizen         Role = "citizen"
	RoleGeneral         Role = "general"
)

// Приоритеты рекомендаций
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Радиусы выборки в градусах: оперативная зона респондента и зона гражданина
const (
	responderRadius      = 0.02
	citizenAlertRadius   = 0.01
	citizenShelterRadius = 0.02
)

// Location - необязательная точка запрашивающего
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Item - один пункт рекомендации с упорядоченным списком действий
type Item struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// Recommendation - итоговый ответ: пункты, общий приоритет и срок действия.
// Срок действия фиксирован политикой роли, а не вычисляется.
type Recommendation struct {
	Role           Role          `json:"role"`
	Items          []Item        `json:"recommendations"`
	Priority       string        `json:"priority"`
	ValidityPeriod time.Duration `json:"validity_period"`
}

// Build диспетчеризует построение рекомендаций по роли. Неизвестная роль
// трактуется как general. Каждая ветка гарантирует непустой список пунктов.
func Build(role Role, alerts []*models.Alert, clusters []*analysis.Cluster, shelters []*models.Shelter, loc *Location) Recommendation {
	switch role {
	case RoleFirstResponder:
		return forFirstResponder(alerts, loc)
	case RoleCoordinator:
		return forCoordinator(alerts, clusters)
	case RoleCivilProtection:
		return forCivilProtection(alerts, shelters)
	case RoleCitizen:
		return forCitizen(alerts, shelters, loc)
	default:
		return forGeneral(alerts)
	}
}

// forFirstResponder: тревоги в оперативном радиусе точки запрашивающего.
// Любая близкая тревога серьёзности >= 3 требует немедленных действий.
func forFirstResponder(alerts []*models.Alert, loc *Location) Recommendation {
	var nearby []*models.Alert
	if loc != nil {
		nearby = analysis.Nearby(alerts, loc.Latitude, loc.Longitude, responderRadius)
	}

	highPriority := 0
	for _, alert := range nearby {
		if alert.Severity >= models.SeverityHigh {
			highPriority++
		}
	}

	items := make([]Item, 0, 3)
	if highPriority > 0 {
		items = append(items, Item{
			Type:        "immediate_action",
			Title:       "Attend high priority alerts",
			Description: fmt.Sprintf("%d critical alerts in your immediate area", highPriority),
			Actions:     []string{"Deploy team", "Report situation", "Request backup if needed"},
		})
	}
	if len(nearby) > 0 {
		items = append(items, Item{
			Type:        "assessment",
			Title:       "Assess overall situation",
			Description: fmt.Sprintf("%d alerts total in coverage zone", len(nearby)),
			Actions:     []string{"Prioritize by severity", "Coordinate with other teams", "Report progress"},
		})
	}

	// Постоянный пункт: протоколы личной безопасности
	items = append(items, Item{
		Type:        "safety",
		Title:       "Safety protocols",
		Description: "Maintain personal safety protocols during interventions",
		Actions:     []string{"Full protective equipment", "Constant communication", "Assess environmental risks"},
	})

	priority := PriorityMedium
	if highPriority > 0 {
		priority = PriorityHigh
	}
	return Recommendation{
		Role:           RoleFirstResponder,
		Items:          items,
		Priority:       priority,
		ValidityPeriod: time.Hour,
	}
}

// forCoordinator: весь снимок, без фильтра по точке
func forCoordinator(alerts []*models.Alert, clusters []*analysis.Cluster) Recommendation {
	highSeverity := analysis.CountHighSeverity(alerts)
	external := 0
	for _, alert := range alerts {
		if alert != nil && alert.IsExternal() {
			external++
		}
	}

	items := make([]Item, 0, 3)
	if highSeverity > 0 {
		items = append(items, Item{
			Type:        "resource_management",
			Title:       "Manage critical resources",
			Description: fmt.Sprintf("%d high severity alerts require priority attention", highSeverity),
			Actions:     []string{"Mobilize specialized teams", "Coordinate with authorities", "Update contingency plans"},
		})
	}
	if external > 0 {
		items = append(items, Item{
			Type:        "integration",
			Title:       "Integrate external alerts",
			Description: fmt.Sprintf("%d external alerts may affect operations", external),
			Actions:     []string{"Evaluate local impact", "Update response plans", "Inform relevant teams"},
		})
	}
	if len(clusters) > 1 {
		items = append(items, Item{
			Type:        "strategic",
			Title:       "Optimize resource distribution",
			Description: fmt.Sprintf("alerts concentrated in %d geographic zones", len(clusters)),
			Actions:     []string{"Assign teams per zone", "Establish local operation centers", "Optimize response routes"},
		})
	}
	if len(items) == 0 {
		items = append(items, monitoringItem(len(alerts)))
	}

	priority := PriorityMedium
	if highSeverity > 0 {
		priority = PriorityHigh
	}
	return Recommendation{
		Role:           RoleCoordinator,
		Items:          items,
		Priority:       priority,
		ValidityPeriod: 2 * time.Hour,
	}
}

// forCivilProtection: вместимость убежищ против числа активных тревог
func forCivilProtection(alerts []*models.Alert, shelters []*models.Shelter) Recommendation {
	totalCapacity := 0
	for _, shelter := range shelters {
		if shelter != nil {
			totalCapacity += shelter.Capacity
		}
	}

	activeAlerts := 0
	for _, alert := range alerts {
		if alert != nil && alert.Severity >= models.SeverityModerate {
			activeAlerts++
		}
	}

	items := make([]Item, 0, 2)
	if float64(activeAlerts) > float64(totalCapacity)*0.5 {
		items = append(items, Item{
			Type:        "capacity",
			Title:       "Expand shelter capacity",
			Description: fmt.Sprintf("shelter capacity (%d) may be insufficient for %d active alerts", totalCapacity, activeAlerts),
			Actions:     []string{"Identify additional spaces", "Coordinate with institutions", "Prepare supplies"},
		})
	}

	trend := analysis.AnalyzeTrend(alerts, analysis.DefaultTrendWindowDays)
	if trend.Increasing {
		items = append(items, Item{
			Type:        "preparation",
			Title:       "Prepare for increased demand",
			Description: "increasing trend in alert volume",
			Actions:     []string{"Review contingency plans", "Verify supply inventory", "Coordinate with volunteers"},
		})
	}
	if len(items) == 0 {
		items = append(items, monitoringItem(len(alerts)))
	}

	return Recommendation{
		Role:           RoleCivilProtection,
		Items:          items,
		Priority:       PriorityMedium,
		ValidityPeriod: 4 * time.Hour,
	}
}

// forCitizen: только близкие тревоги и убежища; без тревог рядом -
// нейтральный пункт "обстановка нормальная"
func forCitizen(alerts []*models.Alert, shelters []*models.Shelter, loc *Location) Recommendation {
	var nearbyAlerts []*models.Alert
	var nearbyShelters []*models.Shelter
	if loc != nil {
		nearbyAlerts = analysis.Nearby(alerts, loc.Latitude, loc.Longitude, citizenAlertRadius)
		nearbyShelters = analysis.NearbyShelters(shelters, loc.Latitude, loc.Longitude, citizenShelterRadius)
	}

	items := make([]Item, 0, 3)
	if len(nearbyAlerts) > 0 {
		highSeverityNearby := false
		for _, alert := range nearbyAlerts {
			if alert.Severity >= models.SeverityHigh {
				highSeverityNearby = true
				break
			}
		}
		if highSeverityNearby {
			items = append(items, Item{
				Type:        "safety",
				Title:       "Safety warning",
				Description: "high severity alerts in your area, take precautions",
				Actions:     []string{"Stay informed", "Follow official instructions", "Prepare emergency kit"},
			})
		}
		items = append(items, Item{
			Type:        "information",
			Title:       "Alerts in your area",
			Description: fmt.Sprintf("%d alerts reported near your location", len(nearbyAlerts)),
			Actions:     []string{"Monitor updates", "Identify safe routes", "Know nearby shelters"},
		})
	}
	if len(nearbyShelters) > 0 {
		items = append(items, Item{
			Type:        "preparation",
			Title:       "Available shelters",
			Description: fmt.Sprintf("%d shelters identified in your area", len(nearbyShelters)),
			Actions:     []string{"Know the locations", "Save contacts", "Prepare evacuation route"},
		})
	}
	if len(items) == 0 {
		items = append(items, Item{
			Type:        "general",
			Title:       "Situation normal",
			Description: "no critical alerts in your immediate area",
			Actions:     []string{"Maintain basic preparedness", "Know emergency numbers", "Follow official sources"},
		})
	}

	return Recommendation{
		Role:           RoleCitizen,
		Items:          items,
		Priority:       PriorityLow,
		ValidityPeriod: 6 * time.Hour,
	}
}

// forGeneral: единственный пункт мониторинга для неизвестных ролей
func forGeneral(alerts []*models.Alert) Recommendation {
	return Recommendation{
		Role:           RoleGeneral,
		Items:          []Item{monitoringItem(len(alerts))},
		Priority:       PriorityLow,
		ValidityPeriod: 12 * time.Hour,
	}
}

func monitoringItem(total int) Item {
	return Item{
		Type:        "general",
		Title:       "System monitoring",
		Description: fmt.Sprintf("system active with %d registered alerts", total),
		Actions:     []string{"Check dashboard regularly", "Report anomalous situations", "Keep profile updated"},
	}
}
