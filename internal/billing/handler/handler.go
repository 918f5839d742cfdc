package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jith-01/Billing-Software-amd/internal/billing"
	"github.com/jith-01/Billing-Software-amd/internal/billing/dto"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/model"
	"github.com/jith-01/Billing-Software-amd/internal/response"
	"github.com/jith-01/Billing-Software-amd/internal/session"
)

// quantity accepts both "2" and 2 from clients.
type quantity string

func (q *quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*q = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = quantity(s)
	default:
		*q = quantity(b)
	}
	return nil
}

type generateBillRequest struct {
	CustomerName string              `json:"customer_name"`
	RationCard   string              `json:"ration_card"`
	Quantities   map[string]quantity `json:"quantities"`
}

type printRequest struct {
	Text string `json:"text"`
}

type BillingHandler struct {
	uc       billing.UseCase
	sessions *session.Registry
	logger   logger.ZapLogger
}

func NewBillingHandler(uc billing.UseCase, sessions *session.Registry, log logger.ZapLogger) *BillingHandler {
	return &BillingHandler{
		uc:       uc,
		sessions: sessions,
		logger:   log,
	}
}

func (h *BillingHandler) MapRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.HandleLoadCatalog)
	rg.POST("/bills", h.HandleGenerateBill)
	rg.GET("/bills/:billID", h.HandleGetBill)
	rg.POST("/receipt/print", h.HandlePrintReceipt)
}

// HandleLoadCatalog refreshes the price list new bills are priced with.
func (h *BillingHandler) HandleLoadCatalog(c *gin.Context) {
	items, err := h.uc.LoadCatalog(c.Request.Context())
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *BillingHandler) HandleGenerateBill(c *gin.Context) {
	var req generateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RenderErr(c, response.ErrBadRequest(err))
		return
	}

	input := &dto.GenerateBillInput{
		CustomerName: req.CustomerName,
		RationCard:   req.RationCard,
		Quantities:   make(map[string]string, len(req.Quantities)),
	}
	for name, q := range req.Quantities {
		input.Quantities[name] = string(q)
	}

	ctx := c.Request.Context()
	sess := h.sessions.FromContext(ctx)

	var receipt *model.Receipt
	err := sess.Do(ctx, func(ctx context.Context) error {
		var err error
		receipt, err = h.uc.GenerateBill(ctx, input)
		if err != nil {
			return err
		}
		sess.SetReceipt(receipt.Text)
		return nil
	})
	if err != nil {
		response.RenderErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func (h *BillingHandler) HandleGetBill(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("billID"), 10, 64)
	if err != nil || id <= 0 {
		response.RenderErr(c, model.NewValidationError("bill_id", "bill id must be a positive integer"))
		return
	}

	bill, err := h.uc.GetBill(c.Request.Context(), id)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// HandlePrintReceipt prints the text in the body, or the terminal's last
// receipt when the body carries none.
func (h *BillingHandler) HandlePrintReceipt(c *gin.Context) {
	// An empty body, chunked or not, decodes to io.EOF.
	var req printRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RenderErr(c, response.ErrBadRequest(err))
		return
	}

	ctx := c.Request.Context()
	sess := h.sessions.FromContext(ctx)

	err := sess.Do(ctx, func(ctx context.Context) error {
		text := req.Text
		if text == "" {
			text = sess.Receipt()
		}
		return h.uc.PrintReceipt(ctx, text)
	})
	if err != nil {
		h.logger.Warn("print receipt failed", zap.String("terminal_id", sess.ID), zap.Error(err))
		response.RenderErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Receipt sent to the printer."})
}
