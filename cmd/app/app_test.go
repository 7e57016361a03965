package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ratechart/internal/api"
	"ratechart/internal/config"
)

// newUpstream answers every table request with EUR->USD 1.1 dated as requested.
func newUpstream(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		date := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"amount":1,"base":%q,"date":%q,"rates":{"USD":1.1}}`, r.URL.Query().Get("base"), date)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestApp(t *testing.T, upstreamURL string) *App {
	t.Helper()
	return newTestAppWithConfig(t, testConfig(upstreamURL))
}

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: 8080, ServeSwagger: true, ServeMetrics: true,
			RequestTimeout: 10, WriteTimeout: 15,
		},
		Frankfurter: config.FrankfurterConfig{BaseURL: upstreamURL, Timeout: 5},
		Series:      config.SeriesConfig{DefaultDays: 5, MaxDays: 10, Workers: 2},
	}
}

func newTestAppWithConfig(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	require.NoError(t, cfg.Validate())

	app, err := NewApp(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	return app
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestApp_Routes(t *testing.T) {
	upstream, calls := newUpstream(t)
	app := newTestApp(t, upstream.URL)
	h := app.httpServer.Handler

	t.Run("rate", func(t *testing.T) {
		w := get(t, h, "/rates?base=EUR&quote=USD")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp api.RateResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "1.1", resp.Rate)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("history uses default days", func(t *testing.T) {
		before := atomic.LoadInt32(calls)
		w := get(t, h, "/rates/history?base=EUR&quote=USD")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp api.HistoryResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Points, 5)
		assert.Equal(t, int32(5), atomic.LoadInt32(calls)-before)
		for i := 1; i < len(resp.Points); i++ {
			assert.Less(t, resp.Points[i-1].Date, resp.Points[i].Date)
		}
	})

	t.Run("history over max days", func(t *testing.T) {
		w := get(t, h, "/rates/history?base=EUR&quote=USD&days=11")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("same currency skips upstream", func(t *testing.T) {
		before := atomic.LoadInt32(calls)
		w := get(t, h, "/rates/history?base=USD&quote=USD&days=3")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, before, atomic.LoadInt32(calls))
	})

	t.Run("currencies", func(t *testing.T) {
		w := get(t, h, "/currencies")
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.CurrenciesResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp.Currencies, "EUR")
	})

	t.Run("healthz", func(t *testing.T) {
		w := get(t, h, "/healthz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		w := get(t, h, "/metrics")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `ratechart_upstream_fetches_total{outcome="ok",provider="frankfurter"}`)
		assert.Contains(t, body, `ratechart_http_requests_total{method="GET",route="/rates",status="200"} 1`)
		assert.Contains(t, body, "go_goroutines")
	})

	t.Run("openapi redirect", func(t *testing.T) {
		w := get(t, h, "/openapi.json")
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "/swagger/doc.json", w.Header().Get("Location"))
	})
}

func TestApp_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()
	app := newTestApp(t, upstream.URL)

	w := get(t, app.httpServer.Handler, "/rates/history?base=EUR&quote=USD&days=3")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestApp_OptionalRoutesDisabled(t *testing.T) {
	upstream, _ := newUpstream(t)
	cfg := &config.Config{
		Server:      config.ServerConfig{Port: 8080, RequestTimeout: 10, WriteTimeout: 15},
		Frankfurter: config.FrankfurterConfig{BaseURL: upstream.URL, Timeout: 5},
		Series:      config.SeriesConfig{DefaultDays: 5, MaxDays: 10, Workers: 1},
	}
	app, err := NewApp(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, get(t, app.httpServer.Handler, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(t, app.httpServer.Handler, "/openapi.json").Code)
}

func TestApp_SlowHistoryAnswersBeforeWriteTimeout(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-time.After(400 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		date := strings.TrimPrefix(r.URL.Path, "/")
		_, _ = fmt.Fprintf(w, `{"amount":1,"base":"EUR","date":%q,"rates":{"USD":1.1}}`, date)
	}))
	defer upstream.Close()

	// ten sequential days at 400ms each need 4s; the request deadline is 1s
	cfg := testConfig(upstream.URL)
	cfg.Server.RequestTimeout = 1
	cfg.Server.WriteTimeout = 3
	cfg.Series.Workers = 1
	app := newTestAppWithConfig(t, cfg)

	srv := httptest.NewUnstartedServer(app.httpServer.Handler)
	srv.Config.WriteTimeout = app.httpServer.WriteTimeout
	srv.Start()
	defer srv.Close()

	start := time.Now()
	resp, err := srv.Client().Get(srv.URL + "/rates/history?base=EUR&quote=USD&days=10")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck // test

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "rate series incomplete")
	assert.Less(t, time.Since(start), 3*time.Second)

	// the build stops once the deadline passes
	assert.Less(t, atomic.LoadInt32(&calls), int32(10))
}
