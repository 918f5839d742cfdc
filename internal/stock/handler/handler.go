package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/response"
	"github.com/jith-01/Billing-Software-amd/internal/stock"
	"github.com/jith-01/Billing-Software-amd/internal/stock/dto"
)

type StockHandler struct {
	uc     stock.UseCase
	logger logger.ZapLogger
}

func NewStockHandler(uc stock.UseCase, log logger.ZapLogger) *StockHandler {
	return &StockHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StockHandler) MapRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock", h.HandleListStock)
	rg.POST("/stock", h.HandleAddItem)
}

// HandleListStock returns the catalog rows and the rendered listing.
func (h *StockHandler) HandleListStock(c *gin.Context) {
	listing, err := h.uc.Listing(c.Request.Context())
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *StockHandler) HandleAddItem(c *gin.Context) {
	var input dto.AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RenderErr(c, response.ErrBadRequest(err))
		return
	}

	out, err := h.uc.AddItem(c.Request.Context(), &input)
	if err != nil {
		h.logger.Debug("add item rejected", zap.String("sl_no", input.SlNo), zap.Error(err))
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
