// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/churchwallet/internal/platform/metrics"
)

/*
TestInstrument_UsesRoutePattern labels by pattern, not by raw path.
*/
func TestInstrument_UsesRoutePattern(t *testing.T) {
	m := metrics.New()

	router := chi.NewRouter()
	router.Use(m.Instrument)
	router.Get("/churches/{churchId}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"c1", "c2", "c3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/churches/"+id, nil))
	}

	expected := `
# HELP churchwallet_http_requests_total HTTP requests processed, by method, route pattern and status.
# TYPE churchwallet_http_requests_total counter
churchwallet_http_requests_total{method="GET",route="/churches/{churchId}",status="418"} 3
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "churchwallet_http_requests_total"))
}

/*
TestObserveDuesRun only records output for completed runs.
*/
func TestObserveDuesRun(t *testing.T) {
	m := metrics.New()

	m.ObserveDuesRun(metrics.RunCompleted, 12, 3, time.Second)
	m.ObserveDuesRun(metrics.RunSkipped, 99, 99, time.Second)

	expected := `
# HELP churchwallet_dues_generated_total Pending dues rows created by the processor.
# TYPE churchwallet_dues_generated_total counter
churchwallet_dues_generated_total 12
# HELP churchwallet_dues_runs_total Dues processor runs by result.
# TYPE churchwallet_dues_runs_total counter
churchwallet_dues_runs_total{result="completed"} 1
churchwallet_dues_runs_total{result="skipped"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"churchwallet_dues_generated_total", "churchwallet_dues_runs_total"))
}

/*
TestHandler_ServesExposition exposes the registered families.
*/
func TestHandler_ServesExposition(t *testing.T) {
	m := metrics.New()
	m.ObserveLogin(metrics.LoginSuccess)
	m.ObserveDenial(metrics.DenialOwnership)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `churchwallet_auth_logins_total{result="success"} 1`)
	assert.Contains(t, recorder.Body.String(), `churchwallet_authz_denials_total{reason="ownership"} 1`)
}
