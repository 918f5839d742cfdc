package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/response"
	"github.com/jith-01/Billing-Software-amd/internal/sales"
)

type SalesHandler struct {
	uc     sales.UseCase
	logger logger.ZapLogger
}

func NewSalesHandler(uc sales.UseCase, log logger.ZapLogger) *SalesHandler {
	return &SalesHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SalesHandler) MapRoutes(rg *gin.RouterGroup) {
	rg.GET("/sales", h.HandleDailyReport)
}

// HandleDailyReport serves GET /sales?date=YYYY-MM-DD.
func (h *SalesHandler) HandleDailyReport(c *gin.Context) {
	report, err := h.uc.DailyReport(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
