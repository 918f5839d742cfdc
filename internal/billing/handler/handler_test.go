package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jith-01/Billing-Software-amd/internal/billing/handler"
	billingrepo "github.com/jith-01/Billing-Software-amd/internal/billing/repository"
	"github.com/jith-01/Billing-Software-amd/internal/billing/usecase"
	"github.com/jith-01/Billing-Software-amd/internal/database/dbtest"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/model"
	"github.com/jith-01/Billing-Software-amd/internal/printer"
	"github.com/jith-01/Billing-Software-amd/internal/session"
	stockdto "github.com/jith-01/Billing-Software-amd/internal/stock/dto"
	stockrepo "github.com/jith-01/Billing-Software-amd/internal/stock/repository"
	stockuc "github.com/jith-01/Billing-Software-amd/internal/stock/usecase"
)

type fixture struct {
	router   *gin.Engine
	db       *sqlx.DB
	spoolDir string
}

func newFixture(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)
	db := dbtest.NewSQLite(t)
	log := logger.FromZap(zaptest.NewLogger(t))

	stockUC := stockuc.NewStockUseCase(stockrepo.NewSQLRepository(db), log)
	for _, in := range []stockdto.AddItemInput{
		{SlNo: "1", ItemName: "Rice", Rate: "50"},
		{SlNo: "2", ItemName: "Sugar", Rate: "40"},
	} {
		in := in
		_, err := stockUC.AddItem(context.Background(), &in)
		require.NoError(t, err)
	}

	spoolDir := t.TempDir()
	p, err := printer.New(printer.Config{Backend: "spool", SpoolDir: spoolDir})
	require.NoError(t, err)

	uc := usecase.NewBillingUseCase(billingrepo.NewSQLRepository(db), stockUC, p, log)
	h := handler.NewBillingHandler(uc, session.NewRegistry(), log)

	r := gin.New()
	r.Use(session.Middleware())
	h.MapRoutes(r.Group("/api/v1"))

	return &fixture{router: r, db: db, spoolDir: spoolDir}
}

func (f *fixture) do(method, path, terminal, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if terminal != "" {
		req.Header.Set(session.HeaderTerminalID, terminal)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestGenerateBillThenFetch(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/catalog", "till-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sugar")

	w = f.do(http.MethodPost, "/api/v1/bills", "till-1",
		`{"customer_name":"Anu","ration_card":"RC-1","quantities":{"Rice":2,"Sugar":"1"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var receipt model.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, "140", receipt.Total.String())
	assert.Contains(t, receipt.Text, "Total Amount: 140.00")

	w = f.do(http.MethodGet, "/api/v1/bills/"+strconv.FormatInt(receipt.BillID, 10), "till-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var bill model.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bill))
	assert.Len(t, bill.Items, 2)
}

func TestGenerateBillInvalidQuantity(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/bills", "till-1",
		`{"customer_name":"Anu","ration_card":"RC-1","quantities":{"Rice":"abc"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid quantity for Rice.","field":"Rice"}`, w.Body.String())
	assert.Zero(t, dbtest.Count(t, f.db, "bills"))
}

func TestGetBillErrors(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/bills/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/api/v1/bills/404", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrintUsesTerminalReceipt(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/receipt/print", "till-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no receipt to print")

	w = f.do(http.MethodPost, "/api/v1/bills", "till-1",
		`{"customer_name":"Anu","ration_card":"RC-1","quantities":{"Rice":"1"}}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// another terminal has nothing on display
	w = f.do(http.MethodPost, "/api/v1/receipt/print", "till-2", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/api/v1/receipt/print", "till-1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(http.MethodPost, "/api/v1/receipt/print", "till-2", `{"text":"reprint"}`)
	require.Equal(t, http.StatusOK, w.Code)

	files, err := os.ReadDir(f.spoolDir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	var docs []string
	for _, fi := range files {
		b, err := os.ReadFile(filepath.Join(f.spoolDir, fi.Name()))
		require.NoError(t, err)
		docs = append(docs, string(b))
	}
	joined := strings.Join(docs, "\n")
	assert.Contains(t, joined, "(Customer: Anu) show")
	assert.Contains(t, joined, "(reprint) show")
}

func TestPrintEmptyChunkedBodyUsesTerminalReceipt(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/bills", "till-1",
		`{"customer_name":"Anu","ration_card":"RC-1","quantities":{"Rice":"1"}}`)
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipt/print", strings.NewReader(""))
	req.ContentLength = -1
	req.Header.Set(session.HeaderTerminalID, "till-1")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	files, err := os.ReadDir(f.spoolDir)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	// a malformed body is still rejected
	w = f.do(http.MethodPost, "/api/v1/receipt/print", "till-1", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
