package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	billingH "github.com/jith-01/Billing-Software-amd/internal/billing/handler"
	billingrepo "github.com/jith-01/Billing-Software-amd/internal/billing/repository"
	billinguc "github.com/jith-01/Billing-Software-amd/internal/billing/usecase"
	"github.com/jith-01/Billing-Software-amd/internal/database/dbtest"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/printer"
	salesH "github.com/jith-01/Billing-Software-amd/internal/sales/handler"
	salesrepo "github.com/jith-01/Billing-Software-amd/internal/sales/repository"
	salesuc "github.com/jith-01/Billing-Software-amd/internal/sales/usecase"
	"github.com/jith-01/Billing-Software-amd/internal/server"
	"github.com/jith-01/Billing-Software-amd/internal/session"
	stockH "github.com/jith-01/Billing-Software-amd/internal/stock/handler"
	stockrepo "github.com/jith-01/Billing-Software-amd/internal/stock/repository"
	stockuc "github.com/jith-01/Billing-Software-amd/internal/stock/usecase"
)

func newServer(t *testing.T, origins ...string) (*server.Server, *sqlx.DB) {
	db := dbtest.NewSQLite(t)
	log := logger.FromZap(zaptest.NewLogger(t))

	p, err := printer.New(printer.Config{Backend: "spool", SpoolDir: t.TempDir()})
	require.NoError(t, err)

	stockUC := stockuc.NewStockUseCase(stockrepo.NewSQLRepository(db), log)
	billingUC := billinguc.NewBillingUseCase(billingrepo.NewSQLRepository(db), stockUC, p, log)
	salesUC := salesuc.NewSalesUseCase(salesrepo.NewSQLRepository(db), log)

	srv := server.NewServer(server.Config{Port: "0", AllowedOrigins: origins, GinMode: gin.TestMode}, db, server.Handlers{
		Stock:   stockH.NewStockHandler(stockUC, log),
		Billing: billingH.NewBillingHandler(billingUC, session.NewRegistry(), log),
		Sales:   salesH.NewSalesHandler(salesUC, log),
	}, log)
	return srv, db
}

func TestHealthz(t *testing.T) {
	srv, db := newServer(t)

	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get(session.HeaderTerminalID))

	require.NoError(t, db.Close())
	w = httptest.NewRecorder()
	srv.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutesMounted(t *testing.T) {
	srv, _ := newServer(t)

	for _, tc := range []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/api/v1/stock", "", http.StatusOK},
		{http.MethodPost, "/api/v1/stock", `{"sl_no":"1","item_name":"Rice","rate":"50"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/catalog", "", http.StatusOK},
		{http.MethodPost, "/api/v1/bills", `{"customer_name":"Anu","ration_card":"RC-1","quantities":{"Rice":"2"}}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/bills/1", "", http.StatusOK},
		{http.MethodGet, "/api/v1/sales?date=2024-01-15", "", http.StatusOK},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, "%s %s: %s", tc.method, tc.path, w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	srv, _ := newServer(t, "http://till-1.local")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stock", nil)
	req.Header.Set("Origin", "http://till-1.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)

	assert.Equal(t, "http://till-1.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stock", nil)
	req.Header.Set("Origin", "http://elsewhere.local")
	w = httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShutdownBeforeRun(t *testing.T) {
	srv, _ := newServer(t)
	assert.NoError(t, srv.Shutdown(context.Background()))
}
