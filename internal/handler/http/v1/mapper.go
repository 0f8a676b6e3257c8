package v1

import (
	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/shenikar/disaster_alert_system/internal/recommend"
	"github.com/shenikar/disaster_alert_system/internal/service"
)

// DTOToAlertModel преобразует DTO подачи тревоги в доменную модель
func DTOToAlertModel(dto CreateAlertRequest) *models.Alert {
	return &models.Alert{
		Title:       dto.Title,
		Description: dto.Description,
		Severity:    dto.Severity,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		Source:      models.SourceLocal,
	}
}

// ModelToAlertResponse преобразует доменную модель в DTO для ответа
func ModelToAlertResponse(model *models.Alert) *AlertResponse {
	return &AlertResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Severity:    model.Severity,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Source:      model.Source,
		CreatedAt:   model.CreatedAt,
	}
}

// ModelsToAlertResponses преобразует слайс моделей в слайс DTO
func ModelsToAlertResponses(models []*models.Alert) []*AlertResponse {
	responses := make([]*AlertResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}

// ModelsToShelterResponses преобразует слайс убежищ в слайс DTO
func ModelsToShelterResponses(models []*models.Shelter) []*ShelterResponse {
	responses := make([]*ShelterResponse, len(models))
	for i, model := range models {
		responses[i] = &ShelterResponse{
			ID:          model.ID,
			Name:        model.Name,
			Latitude:    model.Latitude,
			Longitude:   model.Longitude,
			Capacity:    model.Capacity,
			ShelterType: model.ShelterType,
		}
	}
	return responses
}

// RecommendationToResponse преобразует рекомендацию в DTO для ответа
func RecommendationToResponse(rec recommend.Recommendation) *RecommendationResponse {
	items := make([]RecommendationItemResponse, len(rec.Items))
	for i, item := range rec.Items {
		items[i] = RecommendationItemResponse{
			Type:        item.Type,
			Title:       item.Title,
			Description: item.Description,
			Actions:     item.Actions,
		}
	}
	return &RecommendationResponse{
		Role:            string(rec.Role),
		Priority:        rec.Priority,
		Items:           items,
		ValiditySeconds: int(rec.ValidityPeriod.Seconds()),
	}
}

// ReportToRefreshResponse преобразует итог опроса источников в DTO
func ReportToRefreshResponse(report *service.RefreshReport) *RefreshResponse {
	return &RefreshResponse{
		Fetched:    report.Fetched,
		Inserted:   report.Inserted,
		Duplicates: report.Duplicates,
		Failed:     report.Failed,
	}
}
