package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-org/mod-patron-sub000/pkg/account"
	"github.com/folio-org/mod-patron-sub000/pkg/batch"
	"github.com/folio-org/mod-patron-sub000/pkg/gateway"
)

func okapiStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/p1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "p1", "active": true}`)
	})
	mux.HandleFunc("/circulation/loans", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"loans": [], "totalRecords": 0}`)
	})
	mux.HandleFunc("/circulation/requests", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"requests": [], "totalRecords": 0}`)
	})
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"accounts": [], "totalRecords": 0}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/manage/health", nil)

	healthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UP", body["status"])
}

func TestGetAccountHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := okapiStub(t)
	accounts = account.NewAggregator(gateway.New(server.URL))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/patron/account/p1?includeLoans=true", nil)
	c.Request.Header.Set("X-Okapi-Tenant", "diku")
	c.Params = gin.Params{{Key: "patronId", Value: "p1"}}

	getAccountHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["totalLoans"])
	assert.Equal(t, "USD", body["totalCharges"].(map[string]interface{})["isoCurrencyCode"])
}

func TestGetAccountHandlerRejectsBadBoolQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/patron/account/p1?includeLoans=maybe", nil)
	c.Params = gin.Params{{Key: "patronId", Value: "p1"}}

	getAccountHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAccountHandlerUnknownPatron(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "user not found")
	}))
	defer server.Close()
	accounts = account.NewAggregator(gateway.New(server.URL))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/patron/account/ghost", nil)
	c.Params = gin.Params{{Key: "patronId", Value: "ghost"}}

	getAccountHandler(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateItemHoldHandlerRejectsBadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/patron/account/p1/item/i1/hold",
		strings.NewReader(`{"requestDate": not-json`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "patronId", Value: "p1"}, {Key: "itemId", Value: "i1"}}

	createItemHoldHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBatchHandlerRejectsMissingItems(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/patron/account/p1/batch",
		strings.NewReader(`{"patronComments": "no items"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "patronId", Value: "p1"}}

	createBatchHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBatchStatusHandlerRequiresInstanceID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	batches = batch.NewAggregator(gateway.New("http://invalid-url"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/patron/batch/b1/status", nil)
	c.Params = gin.Params{{Key: "batchId", Value: "b1"}}

	getBatchStatusHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOkapiHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/patron/account/p1", nil)
	c.Request.Header.Set("X-Okapi-Tenant", "diku")
	c.Request.Header.Set("X-Okapi-Token", "t0ken")
	c.Request.Header.Set("Accept-Language", "en")

	headers := okapiHeaders(c)

	assert.Equal(t, "diku", headers["X-Okapi-Tenant"])
	assert.Equal(t, "t0ken", headers["X-Okapi-Token"])
	_, leaked := headers["Accept-Language"]
	assert.False(t, leaked)
}
