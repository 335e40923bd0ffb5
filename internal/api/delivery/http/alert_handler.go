package http

import (
	"errors"
	"net/http"
	"strconv"

	"go-signalist/internal/api/dto"
	"go-signalist/internal/api/service"
	"go-signalist/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AlertHandler handles HTTP requests for price alerts.
type AlertHandler struct {
	alertService service.AlertService
	logger       *logger.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService, logger *logger.Logger) *AlertHandler {
	return &AlertHandler{alertService: alertService, logger: logger}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateAlert)
	g.GET("", h.GetAlerts)
	g.PUT("/:id", h.UpdateAlert)
	g.DELETE("/:id", h.DeleteAlert)
}

func (h *AlertHandler) CreateAlert(c echo.Context) error {
	var req dto.CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	alert, err := h.alertService.Create(c.Request().Context(), sessionFromContext(c), &req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: validationErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create alert"})
	}

	return c.JSON(http.StatusCreated, dto.ActionResponse{Success: true, Message: "Alert created successfully", Data: alert})
}

func (h *AlertHandler) GetAlerts(c echo.Context) error {
	alerts, err := h.alertService.ListWithMarketData(c.Request().Context(), sessionFromContext(c))
	if err != nil {
		h.logger.Error("Failed to fetch user alerts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch user alerts"})
	}
	return c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) UpdateAlert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid alert ID"})
	}

	var req dto.UpdateAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	matched, err := h.alertService.Update(c.Request().Context(), sessionFromContext(c), uint(id), &req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: validationErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update alert"})
	}
	if !matched {
		return c.JSON(http.StatusOK, dto.ActionResponse{Success: false, Message: "Alert not found"})
	}

	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Alert updated successfully"})
}

func (h *AlertHandler) DeleteAlert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid alert ID"})
	}

	if err := h.alertService.Delete(c.Request().Context(), sessionFromContext(c), uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete alert"})
	}

	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Alert deleted successfully"})
}
