package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/static-vs-dynamic/internal/dispatch"
	"github.com/randomizedcoder/static-vs-dynamic/internal/kennel"
	"github.com/randomizedcoder/static-vs-dynamic/internal/metrics"
)

func newTestServer(t *testing.T, mode dispatch.Mode, m *metrics.Metrics) *httptest.Server {
	t.Helper()
	w, err := dispatch.New(mode, kennel.Seed())
	require.NoError(t, err)

	ts := httptest.NewServer(New("", w, m).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestStuff(t *testing.T) {
	ts := newTestServer(t, dispatch.ModeStatic, nil)

	status, body := get(t, ts.URL+"/stuff")
	require.Equal(t, http.StatusOK, status)

	var report dispatch.Report
	require.NoError(t, sonic.Unmarshal(body, &report))
	require.Len(t, report.DogsInfo, 3)
	assert.Equal(t, "MAX", report.DogsInfo[0].Dog.Name)
	assert.Equal(t, []string{"SIT", "STAY"}, report.DogsInfo[0].Training.Skills)
	assert.Len(t, report.AvailableHouses, 2)
}

func TestStuff_FieldNames(t *testing.T) {
	ts := newTestServer(t, dispatch.ModeDynamic, nil)

	_, body := get(t, ts.URL+"/stuff")

	var doc map[string]any
	require.NoError(t, sonic.Unmarshal(body, &doc))
	assert.Contains(t, doc, "dogs_info")
	assert.Contains(t, doc, "available_houses")

	first := doc["dogs_info"].([]any)[0].(map[string]any)
	assert.Contains(t, first["grooming"], "total_cost")
	assert.Contains(t, first["health"], "weight_history")
	assert.Contains(t, first, "housing")
}

func TestStuff_StaticAndDynamicAgree(t *testing.T) {
	static := newTestServer(t, dispatch.ModeStatic, nil)
	dynamic := newTestServer(t, dispatch.ModeDynamic, nil)

	_, staticBody := get(t, static.URL+"/stuff")
	_, dynamicBody := get(t, dynamic.URL+"/stuff")

	assert.JSONEq(t, string(staticBody), string(dynamicBody))
}

func TestDogs_AddThenList(t *testing.T) {
	ts := newTestServer(t, dispatch.ModeDynamic, nil)

	resp, err := http.Post(ts.URL+"/dogs", "application/json", strings.NewReader(`{"id":"4","name":"Bella","age":6}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Dog created", string(body))

	status, body := get(t, ts.URL+"/dogs")
	require.Equal(t, http.StatusOK, status)

	var dogs []kennel.Dog
	require.NoError(t, sonic.Unmarshal(body, &dogs))
	require.Len(t, dogs, 4)
	assert.Equal(t, kennel.Dog{ID: "4", Name: "BELLA", Age: 6}, dogs[3])
}

func TestDogs_BadRequest(t *testing.T) {
	ts := newTestServer(t, dispatch.ModeStatic, nil)

	for _, body := range []string{`{"id":`, `{"name":"NoID","age":3}`} {
		resp, err := http.Post(ts.URL+"/dogs", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, dispatch.ModeStatic, nil)

	resp, err := http.Post(ts.URL+"/stuff", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMetricsRecorded(t *testing.T) {
	m := metrics.New()
	ts := newTestServer(t, dispatch.ModeDynamic, m)

	get(t, ts.URL+"/stuff")
	get(t, ts.URL+"/stuff")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("dynamic", "GET", "/stuff", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.WorkloadSeconds))
}

func TestServe_ShutdownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	w := dispatch.NewStatic(kennel.Seed())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveListener(ctx, ln, New("", w, nil).Handler())
	}()

	status, _ := get(t, "http://"+ln.Addr().String()+"/dogs")
	assert.Equal(t, http.StatusOK, status)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_ListenError(t *testing.T) {
	err := Serve(context.Background(), "127.0.0.1:-1", http.NotFoundHandler())
	assert.Error(t, err)
}
