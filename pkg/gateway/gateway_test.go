package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-org/mod-patron-sub000/pkg/apierr"
	"github.com/folio-org/mod-patron-sub000/pkg/circuitbreaker"
)

func TestGetForwardsHeadersAndQuery(t *testing.T) {
	var gotTenant, gotToken, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = r.Header.Get("X-Okapi-Tenant")
		gotToken = r.Header.Get("X-Okapi-Token")
		gotQuery = r.URL.Query().Get("query")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := New(server.URL)
	headers := map[string]string{
		"X-Okapi-Tenant": "diku",
		"X-Okapi-Token":  "secret",
	}
	query := url.Values{"query": {"(status.name==Open)"}}

	body, err := client.Get(context.Background(), "/circulation/loans", query, headers)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "diku", gotTenant)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, "(status.name==Open)", gotQuery)
}

func TestBlankBodyYieldsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	body, err := New(server.URL).Get(context.Background(), "/circulation/requests/abc", nil, nil)

	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestNon2xxYieldsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "request not found")
	}))
	defer server.Close()

	_, err := New(server.URL).Get(context.Background(), "/circulation/requests/missing", nil, nil)

	var httpErr *apierr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "request not found", httpErr.Body)
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"r1"}`)
	}))
	defer server.Close()

	payload := map[string]string{"requesterId": "p1"}
	body, err := New(server.URL).Post(context.Background(), "/circulation/requests", payload, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"r1"}`, string(body))
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"requesterId":"p1"}`, gotBody)
}

func TestTransportFailure(t *testing.T) {
	client := New("http://127.0.0.1:1")

	_, err := client.Get(context.Background(), "/users/p1", nil, nil)

	require.Error(t, err)
	var httpErr *apierr.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestGetJSONDecodeFailureIsValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"loans": "not-a-list"`)
	}))
	defer server.Close()

	var out struct {
		Loans []string `json:"loans"`
	}
	err := New(server.URL).GetJSON(context.Background(), "/circulation/loans", nil, nil, &out)

	var valErr *apierr.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestBreakerDoesNotCountClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cb := circuitbreaker.NewCircuitBreaker(0, time.Minute)
	client := New(server.URL, WithBreaker(cb))

	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), "/users/missing", nil, nil)
		var httpErr *apierr.HTTPError
		require.ErrorAs(t, err, &httpErr)
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.GetState())
}

func TestBreakerCountsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cb := circuitbreaker.NewCircuitBreaker(0, time.Minute)
	client := New(server.URL, WithBreaker(cb))

	_, err := client.Get(context.Background(), "/users/p1", nil, nil)
	require.Error(t, err)
	assert.Equal(t, circuitbreaker.StateOpen, cb.GetState())
}
