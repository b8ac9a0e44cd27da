package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
)

// StockService is the part of the inventory service exposed over HTTP.
type StockService interface {
	Stock(ctx context.Context) (models.Stock, error)
	AddItem(ctx context.Context, name string, sellIn, quality int) (*models.Item, error)
	AdvanceDay(ctx context.Context) (models.StockReport, error)
}

// StockHandler exposes the inn's stock.
type StockHandler struct {
	svc    StockService
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc StockService, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

type itemResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	SellIn   int    `json:"sell_in"`
	Quality  int    `json:"quality"`
}

type stockResponse struct {
	Day   int            `json:"day"`
	Items []itemResponse `json:"items"`
}

func toItemResponse(item *models.Item) itemResponse {
	return itemResponse{
		Name:     item.Name,
		Category: item.Category().String(),
		SellIn:   item.SellIn,
		Quality:  item.Quality,
	}
}

// List returns the current stock.
func (h *StockHandler) List(c *gin.Context) {
	stock, err := h.svc.Stock(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading stock", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load stock"})
		return
	}

	resp := stockResponse{Day: stock.Day, Items: make([]itemResponse, 0, len(stock.Items))}
	for _, item := range stock.Items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

// Create adds an item to the stock.
func (h *StockHandler) Create(c *gin.Context) {
	var req models.NewItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), req.Name, *req.SellIn, *req.Quality)
	if errors.Is(err, models.ErrInvalidQuality) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed adding item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to add item"})
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

// Advance runs the nightly update immediately.
func (h *StockHandler) Advance(c *gin.Context) {
	report, err := h.svc.AdvanceDay(c.Request.Context())
	if err != nil {
		h.logger.Error("failed advancing stock", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to advance stock"})
		return
	}

	c.JSON(http.StatusOK, report)
}
