package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/rest"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerURL = "http://simulator.test"

func TestSimulateWithoutToken(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testServerURL+"/api/v1/simulations",
		func(req *http.Request) (*http.Response, error) {
			assert.Empty(t, req.Header.Get("Authorization"))
			var body rest.SimulationRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "fcfs", body.Policy)
			assert.Len(t, body.Processes, 2)
			resp := rest.NewSuccessResponse(&domain.SimulationRun{
				RunID:        "run-1",
				Policy:       scheduler.PolicyFCFS,
				WorkloadHash: "hash",
			})
			return httpmock.NewJsonResponse(http.StatusOK, resp)
		})

	sc := NewSimulatorClient(config.ClientConfig{ServerURL: testServerURL + "/", ClientID: "cli"})
	run, err := sc.Simulate(context.Background(), &rest.SimulationRequest{
		Policy: "fcfs",
		Processes: []scheduler.ProcessSpec{
			{ID: "P1", ArrivalTime: 0, BurstTime: 3},
			{ID: "P2", ArrivalTime: 1, BurstTime: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, scheduler.PolicyFCFS, run.Policy)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestRequestsCarryCachedToken(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testServerURL+"/api/v1/auth/token",
		func(req *http.Request) (*http.Response, error) {
			var body rest.TokenRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "public-pem", body.PublicKey)
			assert.Equal(t, "cli", body.ClientID)
			resp := rest.NewSuccessResponse(&rest.TokenResponse{
				Token:     "issued-token",
				ExpiredAt: time.Now().Add(time.Hour).Unix(),
			})
			return httpmock.NewJsonResponse(http.StatusOK, resp)
		})
	httpmock.RegisterResponder(http.MethodGet, testServerURL+"/api/v1/simulations/run-7",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer issued-token", req.Header.Get("Authorization"))
			return httpmock.NewJsonResponse(http.StatusOK, rest.NewSuccessResponse(&domain.SimulationRun{RunID: "run-7"}))
		})

	sc := NewSimulatorClient(config.ClientConfig{
		ServerURL:    testServerURL,
		ClientID:     "cli",
		PublicKeyPem: config.SecretValue("public-pem"),
	})
	for range 2 {
		run, err := sc.GetRun(context.Background(), "run-7")
		require.NoError(t, err)
		assert.Equal(t, "run-7", run.RunID)
	}

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["POST "+testServerURL+"/api/v1/auth/token"])
	assert.Equal(t, 2, info["GET "+testServerURL+"/api/v1/simulations/run-7"])
}

func TestExpiringTokenIsNotCached(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testServerURL+"/api/v1/auth/token",
		func(req *http.Request) (*http.Response, error) {
			resp := rest.NewSuccessResponse(&rest.TokenResponse{
				Token:     "short-token",
				ExpiredAt: time.Now().Add(30 * time.Second).Unix(),
			})
			return httpmock.NewJsonResponse(http.StatusOK, resp)
		})

	sc := NewSimulatorClient(config.ClientConfig{ServerURL: testServerURL, PublicKeyPem: "public-pem"})
	for range 2 {
		token, err := sc.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "short-token", token)
	}
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestNonOKStatusCarriesServerError(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testServerURL+"/api/v1/simulations/compare",
		httpmock.NewStringResponder(http.StatusBadRequest, `{"success":false,"error":"at least one policy is required"}`))
	httpmock.RegisterResponder(http.MethodGet, testServerURL+"/api/v1/simulations/missing/gantt",
		httpmock.NewStringResponder(http.StatusNotFound, ``))

	sc := NewSimulatorClient(config.ClientConfig{ServerURL: testServerURL})
	_, err := sc.Compare(context.Background(), &rest.CompareSimulationRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned non-OK status")
	assert.Contains(t, err.Error(), "at least one policy is required")

	_, err = sc.GetGantt(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGetGanttReturnsPlainText(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testServerURL+"/api/v1/simulations/run-1/gantt",
		httpmock.NewStringResponder(http.StatusOK, "|  P1  |\n0.00  3.00\n"))

	sc := NewSimulatorClient(config.ClientConfig{ServerURL: testServerURL})
	text, err := sc.GetGantt(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Contains(t, text, "|  P1  |")
}

func TestEmptyDataIsAnError(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testServerURL+"/api/v1/simulations/run-1",
		httpmock.NewStringResponder(http.StatusOK, `{"success":true,"timestamp":"2026-01-01T00:00:00Z"}`))

	sc := NewSimulatorClient(config.ClientConfig{ServerURL: testServerURL})
	_, err := sc.GetRun(context.Background(), "run-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned empty run")
}
