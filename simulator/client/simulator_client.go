package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/rest"
)

const tokenCacheKey = "token"

func NewSimulatorClient(clientConfig config.ClientConfig) *SimulatorClient {
	return &SimulatorClient{
		Client:         http.DefaultClient,
		baseURL:        strings.TrimRight(clientConfig.ServerURL, "/"),
		tokenPublicKey: clientConfig.PublicKeyPem.Value(),
		clientID:       clientConfig.ClientID,
		tokenCache:     cache.New[string, string](),
	}
}

// SimulatorClient talks to a remote simulator API server. A bearer token is
// requested only when a public key is configured.
type SimulatorClient struct {
	*http.Client

	baseURL        string
	tokenPublicKey string
	clientID       string
	tokenCache     *cache.Cache[string, string]
}

func (sc *SimulatorClient) Simulate(ctx context.Context, req *rest.SimulationRequest) (*domain.SimulationRun, error) {
	logger.Logger(ctx).Debug().Msgf("submitting %d processes to %s under %s", len(req.Processes), sc.baseURL, req.Policy)
	var resp rest.SuccessResponse[domain.SimulationRun]
	if err := sc.do(ctx, http.MethodPost, "/api/v1/simulations", req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("simulator %s returned empty run", sc.baseURL)
	}
	return resp.Data, nil
}

func (sc *SimulatorClient) Compare(ctx context.Context, req *rest.CompareSimulationRequest) (*rest.CompareSimulationResponse, error) {
	logger.Logger(ctx).Debug().Msgf("comparing %d policies on %s", len(req.Policies), sc.baseURL)
	var resp rest.SuccessResponse[rest.CompareSimulationResponse]
	if err := sc.do(ctx, http.MethodPost, "/api/v1/simulations/compare", req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("simulator %s returned empty comparison", sc.baseURL)
	}
	return resp.Data, nil
}

func (sc *SimulatorClient) GetRun(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	var resp rest.SuccessResponse[domain.SimulationRun]
	if err := sc.do(ctx, http.MethodGet, "/api/v1/simulations/"+url.PathEscape(runID), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("simulator %s returned empty run", sc.baseURL)
	}
	return resp.Data, nil
}

// GetGantt returns the plain text report of a stored run.
func (sc *SimulatorClient) GetGantt(ctx context.Context, runID string) (string, error) {
	httpReq, err := sc.newRequest(ctx, http.MethodGet, "/api/v1/simulations/"+url.PathEscape(runID)+"/gantt", nil)
	if err != nil {
		return "", err
	}
	resp, err := sc.Client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", sc.statusError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (sc *SimulatorClient) GetToken(ctx context.Context) (string, error) {
	if token, ok := sc.tokenCache.Get(tokenCacheKey); ok {
		return token, nil
	}

	req := rest.TokenRequest{
		PublicKey: sc.tokenPublicKey,
		ClientID:  sc.clientID,
	}
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.baseURL+"/api/v1/auth/token", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := sc.Client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", sc.statusError(resp)
	}
	var tokenResp rest.SuccessResponse[rest.TokenResponse]
	decoder := json.NewDecoder(resp.Body)
	err = decoder.Decode(&tokenResp)
	if err != nil {
		return "", err
	}
	if tokenResp.Data == nil || tokenResp.Data.Token == "" {
		return "", fmt.Errorf("simulator %s returned empty token", sc.baseURL)
	}

	// refresh a minute before the server side expiry
	ttl := tokenResp.Data.ExpiredAt - time.Now().Unix() - 60
	if ttl > 0 {
		sc.tokenCache.Set(tokenCacheKey, tokenResp.Data.Token, cache.WithExpiration(time.Duration(ttl)*time.Second))
	}
	return tokenResp.Data.Token, nil
}

func (sc *SimulatorClient) do(ctx context.Context, method, path string, body any, out any) error {
	httpReq, err := sc.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	resp, err := sc.Client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return sc.statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (sc *SimulatorClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(jsonBody)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, sc.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if sc.tokenPublicKey != "" {
		token, err := sc.GetToken(ctx)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

func (sc *SimulatorClient) statusError(resp *http.Response) error {
	var errResp rest.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("simulator %s returned non-OK status: %s: %s", sc.baseURL, resp.Status, errResp.Error)
	}
	return fmt.Errorf("simulator %s returned non-OK status: %s", sc.baseURL, resp.Status)
}
