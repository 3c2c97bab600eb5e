package rest

import (
	"bytes"
	"net/http"
	"sort"
	"strconv"

	"github.com/Gthulhu/schedsim/report"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/simulator/domain"
)

type SimulationRequest struct {
	Policy string `json:"policy" example:"rr"`
	// Quantum is used by rr only. Omitting it selects the server default.
	Quantum   *float64                `json:"quantum,omitempty" example:"2"`
	Processes []scheduler.ProcessSpec `json:"processes"`
	Persist   bool                    `json:"persist"`
}

type CompareSimulationRequest struct {
	Policies  []string                `json:"policies"`
	Quantum   *float64                `json:"quantum,omitempty" example:"2"`
	Processes []scheduler.ProcessSpec `json:"processes"`
	Persist   bool                    `json:"persist"`
}

// PolicyRanking is one line of a comparison, best average waiting time first.
type PolicyRanking struct {
	Rank                  int              `json:"rank"`
	Policy                scheduler.Policy `json:"policy"`
	RunID                 string           `json:"runID"`
	AverageWaitingTime    float64          `json:"average_waiting_time"`
	AverageTurnaroundTime float64          `json:"average_turnaround_time"`
	AverageResponseTime   float64          `json:"average_response_time"`
	ContextSwitches       int              `json:"context_switches"`
}

type CompareSimulationResponse struct {
	WorkloadHash string                  `json:"workloadHash"`
	Runs         []*domain.SimulationRun `json:"runs"`
	Ranking      []PolicyRanking         `json:"ranking"`
}

type RunSummary struct {
	RunID        string           `json:"runID"`
	Policy       scheduler.Policy `json:"policy"`
	Quantum      scheduler.Time   `json:"quantum,omitempty"`
	WorkloadHash string           `json:"workloadHash"`
	CreatedTime  int64            `json:"createdTime"`
	Processes    int              `json:"processes"`
	Summary      report.Summary   `json:"summary"`
}

type ListSimulationsResponse struct {
	Runs []RunSummary `json:"runs"`
}

// CreateSimulation godoc
// @Summary Run a simulation
// @Description Schedules the workload under one policy and returns the full report
// @Tags Simulations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SimulationRequest true "Workload and policy"
// @Success 200 {object} SuccessResponse[domain.SimulationRun]
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/simulations [post]
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SimulationRequest
	err := h.JSONBind(r, &req)
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	run, err := h.Svc.Simulate(ctx, &domain.SimulateRequest{
		Policy:    req.Policy,
		Quantum:   req.Quantum,
		Processes: req.Processes,
		Persist:   req.Persist,
	})
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(run))
}

// CompareSimulations godoc
// @Summary Compare policies
// @Description Schedules the same workload under several policies and ranks them by average waiting time
// @Tags Simulations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompareSimulationRequest true "Workload and policies"
// @Success 200 {object} SuccessResponse[CompareSimulationResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/simulations/compare [post]
func (h *Handler) CompareSimulations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CompareSimulationRequest
	err := h.JSONBind(r, &req)
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	runs, err := h.Svc.Compare(ctx, &domain.CompareRequest{
		Policies:  req.Policies,
		Quantum:   req.Quantum,
		Processes: req.Processes,
		Persist:   req.Persist,
	})
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := CompareSimulationResponse{
		Runs:    runs,
		Ranking: RankRuns(runs),
	}
	if len(runs) > 0 {
		resp.WorkloadHash = runs[0].WorkloadHash
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

// RankRuns orders runs by average waiting time, then average turnaround
// time. Ties keep request order.
func RankRuns(runs []*domain.SimulationRun) []PolicyRanking {
	ranking := make([]PolicyRanking, 0, len(runs))
	for _, run := range runs {
		s := run.Report.Summary
		ranking = append(ranking, PolicyRanking{
			Policy:                run.Policy,
			RunID:                 run.RunID,
			AverageWaitingTime:    s.AverageWaitingTime,
			AverageTurnaroundTime: s.AverageTurnaroundTime,
			AverageResponseTime:   s.AverageResponseTime,
			ContextSwitches:       s.ContextSwitches,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].AverageWaitingTime != ranking[j].AverageWaitingTime {
			return ranking[i].AverageWaitingTime < ranking[j].AverageWaitingTime
		}
		return ranking[i].AverageTurnaroundTime < ranking[j].AverageTurnaroundTime
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}

// ListSimulations godoc
// @Summary List stored simulations
// @Tags Simulations
// @Produce json
// @Security BearerAuth
// @Param policy query string false "Filter by policy"
// @Param workloadHash query string false "Filter by workload fingerprint"
// @Param limit query int false "Maximum number of runs, newest first"
// @Success 200 {object} SuccessResponse[ListSimulationsResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/simulations [get]
func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	opt := &domain.QueryRunOptions{}
	for _, name := range query["policy"] {
		policy, err := scheduler.ParsePolicy(name)
		if err != nil {
			h.HandleError(ctx, w, err)
			return
		}
		opt.Policies = append(opt.Policies, policy)
	}
	opt.WorkloadHashes = query["workloadHash"]
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			h.ErrorResponse(ctx, w, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
		opt.Limit = n
	}

	err := h.Svc.ListRuns(ctx, opt)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := ListSimulationsResponse{Runs: make([]RunSummary, 0, len(opt.Result))}
	for _, run := range opt.Result {
		summary := RunSummary{
			RunID:        run.RunID,
			Policy:       run.Policy,
			Quantum:      run.Quantum,
			WorkloadHash: run.WorkloadHash,
			CreatedTime:  run.CreatedTime,
			Processes:    len(run.Processes),
		}
		if run.Report != nil {
			summary.Summary = run.Report.Summary
		}
		resp.Runs = append(resp.Runs, summary)
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

// GetSimulation godoc
// @Summary Get a stored simulation
// @Tags Simulations
// @Produce json
// @Security BearerAuth
// @Param runID path string true "Run ID"
// @Success 200 {object} SuccessResponse[domain.SimulationRun]
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/simulations/{runID} [get]
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	run, err := h.Svc.GetRun(ctx, h.GetPathParam(r, "runID"))
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(run))
}

// GetSimulationGantt godoc
// @Summary Render a stored simulation
// @Description Returns the Gantt chart, process table and summary as plain text
// @Tags Simulations
// @Produce plain
// @Security BearerAuth
// @Param runID path string true "Run ID"
// @Success 200 {string} string
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/simulations/{runID}/gantt [get]
func (h *Handler) GetSimulationGantt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	run, err := h.Svc.GetRun(ctx, h.GetPathParam(r, "runID"))
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, run.Report); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// DeleteSimulation godoc
// @Summary Delete a stored simulation
// @Tags Simulations
// @Produce json
// @Security BearerAuth
// @Param runID path string true "Run ID"
// @Success 200 {object} SuccessResponse[EmptyResponse]
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/simulations/{runID} [delete]
func (h *Handler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.Svc.DeleteRun(ctx, h.GetPathParam(r, "runID"))
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}
