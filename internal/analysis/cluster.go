// Package analysis содержит чистые функции аналитики над снимком тревог:
// геокластеризация, временные тренды и оценка риска. Функции не имеют
// побочных эффектов и безопасны для конкурентного вызова.
package analysis

import (
	"math"

	"github.com/shenikar/disaster_alert_system/internal/models"
)

// DefaultClusterRadius - радиус кластеризации в градусах (~1.1 км).
// Евклидово расстояние в градусах без геодезической коррекции: допустимо
// только на региональном масштабе, на который рассчитана система.
const DefaultClusterRadius = 0.01

// Cluster - эфемерная группа тревог с бегущим центроидом.
// Пересчитывается при каждом вызове аналитики и нигде не сохраняется.
type Cluster struct {
	CenterLat float64         `json:"center_lat"`
	CenterLon float64         `json:"center_lon"`
	Alerts    []*models.Alert `json:"alerts"`
}

// ClusterAlerts группирует тревоги жадным одношаговым присваиванием к
// ближайшему центроиду. Обход идет строго в порядке входного среза, и от
// этого порядка зависит итоговое членство на граничных расстояниях -
// это контракт, а не дефект: снимок передается в стабильном
// хронологическом порядке. Возвращаются только кластеры из двух и более
// тревог; одиночные отбрасываются.
func ClusterAlerts(alerts []*models.Alert, radius float64) []*Cluster {
	if radius <= 0 {
		radius = DefaultClusterRadius
	}

	clusters := make([]*Cluster, 0)
	for _, alert := range alerts {
		if alert == nil {
			continue
		}

		// Ищем первый кластер, центроид которого достаточно близко
		var found *Cluster
		for _, cluster := range clusters {
			if distance(alert.Latitude, alert.Longitude, cluster.CenterLat, cluster.CenterLon) < radius {
				found = cluster
				break
			}
		}

		if found == nil {
			clusters = append(clusters, &Cluster{
				CenterLat: alert.Latitude,
				CenterLon: alert.Longitude,
				Alerts:    []*models.Alert{alert},
			})
			continue
		}

		found.Alerts = append(found.Alerts, alert)
		found.recenter()
	}

	// Одиночные кластеры не считаются концентрацией
	concentrated := make([]*Cluster, 0, len(clusters))
	for _, cluster := range clusters {
		if len(cluster.Alerts) >= 2 {
			concentrated = append(concentrated, cluster)
		}
	}
	return concentrated
}

// recenter пересчитывает центроид как среднее арифметическое координат членов
func (c *Cluster) recenter() {
	var sumLat, sumLon float64
	for _, alert := range c.Alerts {
		sumLat += alert.Latitude
		sumLon += alert.Longitude
	}
	n := float64(len(c.Alerts))
	c.CenterLat = sumLat / n
	c.CenterLon = sumLon / n
}

// distance - евклидово расстояние в градусном пространстве
func distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Nearby возвращает тревоги в радиусе maxDistance от точки (в градусах)
func Nearby(alerts []*models.Alert, lat, lon, maxDistance float64) []*models.Alert {
	nearby := make([]*models.Alert, 0)
	for _, alert := range alerts {
		if alert == nil {
			continue
		}
		if distance(alert.Latitude, alert.Longitude, lat, lon) <= maxDistance {
			nearby = append(nearby, alert)
		}
	}
	return nearby
}

// NearbyShelters возвращает убежища в радиусе maxDistance от точки (в градусах)
func NearbyShelters(shelters []*models.Shelter, lat, lon, maxDistance float64) []*models.Shelter {
	nearby := make([]*models.Shelter, 0)
	for _, shelter := range shelters {
		if shelter == nil {
			continue
		}
		if distance(shelter.Latitude, shelter.Longitude, lat, lon) <= maxDistance {
			nearby = append(nearby, shelter)
		}
	}
	return nearby
}
