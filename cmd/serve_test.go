package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scop-vc/enrich-cli/internal/model"
)

type stubEnricher struct {
	result *model.EnrichmentResult
	err    error

	gotDomain string
	gotSource string
}

func (s *stubEnricher) Enrich(_ context.Context, domain, listSource string) (*model.EnrichmentResult, error) {
	s.gotDomain = domain
	s.gotSource = listSource
	return s.result, s.err
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	router := newRouter(&stubEnricher{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeEnrich(t *testing.T) {
	stub := &stubEnricher{result: &model.EnrichmentResult{
		Status:    model.StatusEnriched,
		Founders:  []model.Founder{},
		RequestID: "req-1",
	}}
	router := newRouter(stub)

	rec := postJSON(t, router, "/enrich", `{"domain":"acme.com","list_source":"james"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "acme.com", stub.gotDomain)
	assert.Equal(t, "james", stub.gotSource)

	var result model.EnrichmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, model.StatusEnriched, result.Status)
}

func TestServeWebhookAlias(t *testing.T) {
	stub := &stubEnricher{result: &model.EnrichmentResult{
		Status:   model.StatusRejected,
		Founders: []model.Founder{},
	}}
	router := newRouter(stub)

	rec := postJSON(t, router, "/webhook", `{"domain":"acme.com","list_source":"nobody"}`)

	// Business rejection is still HTTP 200.
	assert.Equal(t, http.StatusOK, rec.Code)
	var result model.EnrichmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, model.StatusRejected, result.Status)
}

func TestServeEnrichValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad_json", `{`},
		{"missing_domain", `{"list_source":"james"}`},
		{"missing_source", `{"domain":"acme.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubEnricher{}
			rec := postJSON(t, newRouter(stub), "/enrich", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, stub.gotDomain, "validation failures must not reach the orchestrator")
		})
	}
}

func TestServeEnrichAborted(t *testing.T) {
	stub := &stubEnricher{err: errors.New("context canceled")}
	rec := postJSON(t, newRouter(stub), "/enrich", `{"domain":"acme.com","list_source":"james"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
