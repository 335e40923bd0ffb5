package http

import (
	"errors"
	"net/http"

	"go-signalist/internal/api/dto"
	"go-signalist/internal/api/service"
	"go-signalist/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles HTTP requests for the watchlist, symbol search and
// watchlist news.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.AddToWatchlist)
	g.GET("", h.GetWatchlist)
	g.GET("/data", h.GetWatchlistWithData)
	g.DELETE("/:symbol", h.RemoveFromWatchlist)
}

// RegisterMarketRoutes registers the search and news routes.
func (h *WatchlistHandler) RegisterMarketRoutes(g *echo.Group) {
	g.GET("/search", h.SearchStocks)
	g.GET("/news", h.GetNews)
}

func (h *WatchlistHandler) AddToWatchlist(c echo.Context) error {
	var req dto.AddWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	result, err := h.watchlistService.Add(c.Request().Context(), sessionFromContext(c), &req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: validationErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add stock to watchlist"})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	items, err := h.watchlistService.List(c.Request().Context(), sessionFromContext(c))
	if err != nil {
		h.logger.Error("Failed to fetch watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlist"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WatchlistHandler) GetWatchlistWithData(c echo.Context) error {
	rows, err := h.watchlistService.ListWithData(c.Request().Context(), sessionFromContext(c))
	if err != nil {
		h.logger.Error("Failed to fetch watchlist with data", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlist"})
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *WatchlistHandler) RemoveFromWatchlist(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid symbol"})
	}

	if err := h.watchlistService.Remove(c.Request().Context(), sessionFromContext(c), symbol); err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to remove stock from watchlist"})
	}

	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Stock removed from watchlist"})
}

func (h *WatchlistHandler) SearchStocks(c echo.Context) error {
	results, err := h.watchlistService.Search(c.Request().Context(), sessionFromContext(c), c.QueryParam("q"))
	if err != nil {
		h.logger.Error("Failed to search stocks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to search stocks"})
	}
	return c.JSON(http.StatusOK, results)
}

func (h *WatchlistHandler) GetNews(c echo.Context) error {
	news, err := h.watchlistService.News(c.Request().Context(), sessionFromContext(c))
	if err != nil {
		h.logger.Error("Failed to fetch news", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch news"})
	}
	return c.JSON(http.StatusOK, news)
}
