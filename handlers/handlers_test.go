package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"

	"fintrack/db"
	mw "fintrack/middleware"
	"fintrack/observability"
)

const testJWTKey = "test-secret"

// newTestServer wires the full route table against an in-memory sqlite
// store, mirroring main.go.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e, _ := newTestServerWithDB(t)
	return e
}

// newTestServerWithDB additionally exposes the bun handle for tests that
// inspect stored rows directly.
func newTestServerWithDB(t *testing.T) (*echo.Echo, *bun.DB) {
	t.Helper()

	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "open sqlite")
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, db.CreateTables(context.Background(), bdb), "create tables")

	metrics := observability.New(prometheus.NewRegistry())
	h := New(bdb, []byte(testJWTKey), metrics)

	e := echo.New()
	e.POST("/users/", h.Register)
	e.POST("/login", h.Login)
	e.POST("/transactions", h.CreateTransaction, mw.JWT(h.JWTKey))
	e.GET("/transactions", h.ListTransactions)
	e.GET("/transactions/:id", h.GetTransaction)
	e.PUT("/transactions/:id", h.UpdateTransaction)
	e.DELETE("/transactions/:id", h.DeleteTransaction)

	return e, bdb
}

// doRequest performs a request against the test server with an optional
// JSON body and extra headers.
func doRequest(e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// registerUser creates a user through the registration endpoint.
func registerUser(t *testing.T, e *echo.Echo, username, name, password string) {
	t.Helper()

	rec := doRequest(e, http.MethodPost, "/users/",
		`{"username":"`+username+`","name":"`+name+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, "register %s: %s", username, rec.Body.String())
}

// loginUser logs in and returns the issued token.
func loginUser(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()

	rec := doRequest(e, http.MethodPost, "/login",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, "login %s: %s", username, rec.Body.String())

	var resp struct {
		JWTToken string `json:"jwtToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.JWTToken)
	return resp.JWTToken
}
