package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/simulator/app"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/repository"
	"github.com/Gthulhu/schedsim/simulator/rest"
	"github.com/Gthulhu/schedsim/simulator/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

var classicProcesses = []scheduler.ProcessSpec{
	{ID: "P1", ArrivalTime: 0, BurstTime: 5},
	{ID: "P2", ArrivalTime: 1, BurstTime: 3},
	{ID: "P3", ArrivalTime: 2, BurstTime: 8},
}

func quantumOf(v float64) *float64 { return &v }

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

type HandlerTestSuite struct {
	suite.Suite
	Handler *rest.Handler
	Ctx     context.Context
	Engine  *echo.Echo
	App     *fx.App
}

func (suite *HandlerTestSuite) SetupSuite() {
	logger.InitLogger()
	suite.Ctx = context.Background()
	handlerModule, err := app.HandlerModule("simulator_config.test.toml", config.GetAbsPath("config"))
	suite.Require().NoError(err, "Failed to create handler module")
	opt := fx.Options(
		handlerModule,
		fx.Populate(&suite.Handler),
	)

	suite.App = fx.New(opt)
	err = suite.App.Start(suite.Ctx)
	suite.Require().NoError(err, "Failed to start Fx app")
	suite.Require().NotNil(suite.Handler, "Handler should not be nil")
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	suite.Engine = e
	suite.Handler.SetupRoutes(e)
}

func (suite *HandlerTestSuite) TearDownSuite() {
	if suite.App != nil {
		suite.NoError(suite.App.Stop(suite.Ctx))
	}
}

func (suite *HandlerTestSuite) JSONDecode(r *httptest.ResponseRecorder, dst any) {
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dst)
	suite.Require().NoError(err, "Failed to decode JSON response")
}

func (suite *HandlerTestSuite) do(method, target string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, target, &payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlerTestSuite) TestHealthCheck() {
	rec := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, rec.Code, "Expected status OK")
	var resp map[string]any
	suite.JSONDecode(rec, &resp)
	suite.Equal("healthy", resp["status"].(string), "Expected status to be healthy")
	suite.Equal(false, resp["token_auth"])
}

func (suite *HandlerTestSuite) TestVersion() {
	rec := suite.do(http.MethodGet, "/version", nil)
	suite.Equal(http.StatusOK, rec.Code)
	var resp map[string]string
	suite.JSONDecode(rec, &resp)
	suite.Equal(rest.ServiceVersion(), resp["version"])
}

func (suite *HandlerTestSuite) TestCreateSimulation() {
	rec := suite.do(http.MethodPost, "/api/v1/simulations", rest.SimulationRequest{
		Policy:    "fcfs",
		Processes: classicProcesses,
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.NotEmpty(rec.Header().Get("X-Request-ID"))

	var resp rest.SuccessResponse[domain.SimulationRun]
	suite.JSONDecode(rec, &resp)
	suite.True(resp.Success)
	suite.Require().NotNil(resp.Data)
	suite.Equal(scheduler.PolicyFCFS, resp.Data.Policy)
	suite.Equal(scheduler.Units(16), resp.Data.Report.Summary.Makespan)
	suite.Equal([]string{"P1", "P2", "P3"}, resp.Data.Report.CompletionOrder)
	suite.False(resp.Data.Persisted)
}

func (suite *HandlerTestSuite) TestCreateSimulationUsesDefaultQuantum() {
	rec := suite.do(http.MethodPost, "/api/v1/simulations", rest.SimulationRequest{
		Policy:    "round-robin",
		Processes: classicProcesses,
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var resp rest.SuccessResponse[domain.SimulationRun]
	suite.JSONDecode(rec, &resp)
	suite.Equal(scheduler.Units(1)+50, resp.Data.Quantum, "test config sets default_quantum 1.5")
}

func (suite *HandlerTestSuite) TestCreateSimulationAcceptsNumericIDs() {
	body := `{"policy":"fcfs","processes":[{"id":2,"arrival":1,"burst":3},{"id":1,"arrival":0,"burst":5},{"id":"P3","arrival":2,"burst":8}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp rest.SuccessResponse[domain.SimulationRun]
	suite.JSONDecode(rec, &resp)
	suite.Require().Len(resp.Data.Processes, 3)
	suite.Equal("2", resp.Data.Processes[0].ID)
	suite.Equal("1", resp.Data.Processes[1].ID)
	suite.Equal([]string{"1", "2", "P3"}, resp.Data.Report.CompletionOrder)
}

func (suite *HandlerTestSuite) TestCreateSimulationRejectsBadInput() {
	cases := []rest.SimulationRequest{
		{Policy: "lottery", Processes: classicProcesses},
		{Policy: "fcfs"},
		{Policy: "fcfs", Processes: []scheduler.ProcessSpec{{ID: "P1", ArrivalTime: -1, BurstTime: 1}}},
		{Policy: "fcfs", Processes: []scheduler.ProcessSpec{{ID: "P1", BurstTime: 1.005}}},
		{Policy: "rr", Quantum: quantumOf(-2), Processes: classicProcesses},
		{Policy: "rr", Quantum: quantumOf(0), Processes: classicProcesses},
	}
	for _, req := range cases {
		rec := suite.do(http.MethodPost, "/api/v1/simulations", req)
		suite.Equal(http.StatusBadRequest, rec.Code, "request %+v: %s", req, rec.Body.String())
		var resp rest.ErrorResponse
		suite.JSONDecode(rec, &resp)
		suite.False(resp.Success)
		suite.NotEmpty(resp.Error)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlerTestSuite) TestCompareSimulations() {
	rec := suite.do(http.MethodPost, "/api/v1/simulations/compare", rest.CompareSimulationRequest{
		Policies:  []string{"fcfs", "srtf", "rr"},
		Quantum:   quantumOf(2),
		Processes: classicProcesses,
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp rest.SuccessResponse[rest.CompareSimulationResponse]
	suite.JSONDecode(rec, &resp)
	suite.Require().NotNil(resp.Data)
	suite.Require().Len(resp.Data.Runs, 3)
	suite.Equal(scheduler.PolicyFCFS, resp.Data.Runs[0].Policy)
	suite.Equal(scheduler.PolicySRTF, resp.Data.Runs[1].Policy)
	suite.Equal(scheduler.PolicyRoundRobin, resp.Data.Runs[2].Policy)
	suite.NotEmpty(resp.Data.WorkloadHash)
	suite.Require().Len(resp.Data.Ranking, 3)
	suite.Equal(scheduler.PolicySRTF, resp.Data.Ranking[0].Policy, "SRTF minimises average waiting time")
	suite.Equal(1, resp.Data.Ranking[0].Rank)
	suite.InDelta(3.0, resp.Data.Ranking[0].AverageWaitingTime, 1e-9)
}

func (suite *HandlerTestSuite) TestStoredSimulationLifecycle() {
	rec := suite.do(http.MethodPost, "/api/v1/simulations", rest.SimulationRequest{
		Policy:    "sjf",
		Processes: classicProcesses,
		Persist:   true,
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var created rest.SuccessResponse[domain.SimulationRun]
	suite.JSONDecode(rec, &created)
	suite.True(created.Data.Persisted)
	runID := created.Data.RunID

	rec = suite.do(http.MethodGet, "/api/v1/simulations/"+runID, nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var fetched rest.SuccessResponse[domain.SimulationRun]
	suite.JSONDecode(rec, &fetched)
	suite.Equal(runID, fetched.Data.RunID)
	suite.Equal(created.Data.Report.Summary, fetched.Data.Report.Summary)

	rec = suite.do(http.MethodGet, "/api/v1/simulations/"+runID+"/gantt", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Header().Get("Content-Type"), "text/plain")
	suite.Contains(rec.Body.String(), "|  P1  |")
	suite.Contains(rec.Body.String(), "TURNAROUND")

	rec = suite.do(http.MethodGet, "/api/v1/simulations?policy=sjf&workloadHash="+created.Data.WorkloadHash, nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var list rest.SuccessResponse[rest.ListSimulationsResponse]
	suite.JSONDecode(rec, &list)
	suite.Require().NotEmpty(list.Data.Runs)
	suite.Equal(runID, list.Data.Runs[0].RunID)
	suite.Equal(3, list.Data.Runs[0].Processes)

	rec = suite.do(http.MethodDelete, "/api/v1/simulations/"+runID, nil)
	suite.Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, "/api/v1/simulations/"+runID, nil)
	suite.Equal(http.StatusNotFound, rec.Code)
	rec = suite.do(http.MethodDelete, "/api/v1/simulations/"+runID, nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestListSimulationsValidatesQuery() {
	rec := suite.do(http.MethodGet, "/api/v1/simulations?limit=-1", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	rec = suite.do(http.MethodGet, "/api/v1/simulations?policy=nope", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlerTestSuite) TestTokenEndpointDisabled() {
	rec := suite.do(http.MethodPost, "/api/v1/auth/token", rest.TokenRequest{ClientID: "cli", PublicKey: "pem"})
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestMetricsEndpoint() {
	suite.do(http.MethodPost, "/api/v1/simulations", rest.SimulationRequest{Policy: "fcfs", Processes: classicProcesses})
	rec := suite.do(http.MethodGet, "/metrics", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "schedsim_runs_total")
}

func TestTokenProtectedRoutes(t *testing.T) {
	logger.InitLogger()
	key, _, err := util.InitRSAPrivateKey("")
	require.NoError(t, err)
	repo, err := repository.NewRepository(repository.Params{StorageConfig: config.StorageConfig{Driver: config.StorageMemory}})
	require.NoError(t, err)
	svc, err := service.NewService(service.Params{
		Repo:             repo,
		SimulationConfig: config.SimulationConfig{DefaultQuantum: 2, MaxProcesses: 10},
		TokenConfig: config.TokenConfig{
			Enable:           true,
			RsaPrivateKeyPem: config.SecretValue(util.EncodeRSAPrivateKeyPEM(key)),
			TokenDurationHr:  1,
		},
	})
	require.NoError(t, err)
	handler, err := rest.NewHandler(rest.Params{Svc: svc})
	require.NoError(t, err)
	e := echo.New()
	handler.SetupRoutes(e)

	do := func(method, target, authorization string, body any) *httptest.ResponseRecorder {
		var payload bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&payload).Encode(body))
		}
		req := httptest.NewRequest(method, target, &payload)
		req.Header.Set("Content-Type", "application/json")
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}
	simulate := rest.SimulationRequest{Policy: "fcfs", Processes: classicProcesses}

	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/api/v1/simulations", "", simulate).Code, "missing header")
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/api/v1/simulations", "Token abc", simulate).Code, "wrong scheme")
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/api/v1/simulations", "Bearer abc", simulate).Code, "garbage token")

	pubPEM, err := util.EncodeRSAPublicKeyPEM(&key.PublicKey)
	require.NoError(t, err)
	rec := do(http.MethodPost, "/api/v1/auth/token", "", rest.TokenRequest{ClientID: "cli", PublicKey: pubPEM})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokenResp rest.SuccessResponse[rest.TokenResponse]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tokenResp))
	require.NotNil(t, tokenResp.Data)

	rec = do(http.MethodPost, "/api/v1/simulations", "Bearer "+tokenResp.Data.Token, simulate)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/health", "", nil).Code, "health stays public")
}
