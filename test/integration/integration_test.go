package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/history"
	"github.com/erickbogarin/amortiza/internal/server"
	"github.com/erickbogarin/amortiza/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestHTTPRoundTrip posts a request file to a live API and reads it back
func TestHTTPRoundTrip(t *testing.T) {
	store := history.NewMemoryStore()
	handler := server.NewHandler(zap.NewNop(), simulation.NewSimulator(nil, simulation.Options{}), store, server.Options{})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	body, err := os.ReadFile(testdata + "reference_price.json")
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/simulations", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created server.SimulationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "/api/simulations/"+created.ID, resp.Header.Get("Location"))
	assert.Len(t, created.Result.ScheduleWithoutExtras, 420)

	t.Run("list", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/simulations")
		require.NoError(t, err)
		defer resp.Body.Close()

		var records []domain.SimulationRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
		require.Len(t, records, 1)
		assert.Equal(t, created.ID, records[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/simulations/" + created.ID)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got server.SimulationResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.True(t, created.Result.SummaryWithoutExtras.TotalPaid.Equal(got.Result.SummaryWithoutExtras.TotalPaid))
	})

	t.Run("html_report", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/simulations/" + created.ID + "/report?format=html")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
		assert.Contains(t, string(data), created.ID)
	})

	t.Run("rejects_invalid_file", func(t *testing.T) {
		invalid, err := os.ReadFile(testdata + "invalid.yaml")
		require.NoError(t, err)

		resp, err := http.Post(srv.URL+"/api/simulations", "application/yaml", bytes.NewReader(invalid))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
