package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/disaster_alert_system/internal/config"
	"github.com/shenikar/disaster_alert_system/internal/recommend"
	"github.com/shenikar/disaster_alert_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	ingestService    service.IngestService
	analyticsService service.AnalyticsService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(ingestService service.IngestService, analyticsService service.AnalyticsService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		ingestService:    ingestService,
		analyticsService: analyticsService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// @Summary Submit a new alert
// @Description Submit a local alert. Returns 409 if an alert with the same title already exists. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param alert body CreateAlertRequest true "Alert submission request"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Alert with the same title already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToAlertModel(input)
	created, err := h.ingestService.SubmitAlert(c.Request.Context(), model)
	if err != nil {
		log.WithError(err).Error("Failed to submit alert in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "alert with the same title already exists"})
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(model))
}

// @Summary Get a list of alerts
// @Description Get the most recent alerts, newest first. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum number of alerts" default(100)
// @Success 200 {array} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	alerts, err := h.analyticsService.ListAlerts(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get a list of shelters
// @Description Get all known shelters. Requires API key.
// @Tags Shelters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ShelterResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /shelters [get]
func (h *Handler) listShelters(c *gin.Context) {
	log := h.logger.WithField("method", "listShelters")

	shelters, err := h.analyticsService.ListShelters(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list shelters from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToShelterResponses(shelters))
}

// @Summary Refresh external sources
// @Description Poll every configured external source and ingest new alerts. Requires API key.
// @Tags Sources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sources/refresh [post]
func (h *Handler) refreshSources(c *gin.Context) {
	log := h.logger.WithField("method", "refreshSources")

	report, err := h.ingestService.RefreshSources(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to refresh sources in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ReportToRefreshResponse(report))
}

// @Summary Get dashboard summary
// @Description Get an aggregated snapshot of the current alert situation. Requires API key.
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.DashboardSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "getDashboard")

	summary, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to build dashboard in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary Get risk assessment
// @Description Get the current weighted risk assessment. Requires API key.
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} analysis.RiskAssessment
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/risk [get]
func (h *Handler) getRisk(c *gin.Context) {
	log := h.logger.WithField("method", "getRisk")

	risk, err := h.analyticsService.AssessRisk(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to assess risk in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, risk)
}

// @Summary Get correlation report
// @Description Get temporal and geographic correlations across the current alerts. Requires API key.
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.CorrelationReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/correlation [get]
func (h *Handler) getCorrelation(c *gin.Context) {
	log := h.logger.WithField("method", "getCorrelation")

	report, err := h.analyticsService.Correlations(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to build correlation report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// @Summary Get role-based recommendations
// @Description Get recommendations tailored to the requester role and optional location. Requires API key.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body RecommendationRequest true "Recommendation request"
// @Success 200 {object} RecommendationResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /recommendations [post]
func (h *Handler) getRecommendations(c *gin.Context) {
	var input RecommendationRequest
	log := h.logger.WithField("method", "getRecommendations")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var loc *recommend.Location
	if input.Location != nil {
		loc = &recommend.Location{
			Latitude:  input.Location.Latitude,
			Longitude: input.Location.Longitude,
		}
	}

	rec, err := h.analyticsService.Recommend(c.Request.Context(), recommend.Role(input.Role), loc)
	if err != nil {
		log.WithError(err).Error("Failed to build recommendations in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, RecommendationToResponse(rec))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
