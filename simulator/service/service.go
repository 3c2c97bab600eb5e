package service

import (
	"context"
	"crypto/rsa"
	"fmt"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/Gthulhu/schedsim/report"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	Repo             domain.Repository
	SimulationConfig config.SimulationConfig
	CacheConfig      config.CacheConfig
	TokenConfig      config.TokenConfig
}

func NewService(params Params) (*Service, error) {
	privateKey, generated, err := util.InitRSAPrivateKey(string(params.TokenConfig.RsaPrivateKeyPem))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT private key: %v", err)
	}
	if generated && params.TokenConfig.Enable {
		logger.Logger(context.Background()).Warn().Msg("no rsa_private_key_pem configured, generated an ephemeral signing key")
	}

	collector, err := registerCollector(NewMetricCollector(util.GetMachineID()))
	if err != nil {
		return nil, fmt.Errorf("failed to register metric collector: %v", err)
	}

	svc := &Service{
		Repo:            params.Repo,
		simConfig:       params.SimulationConfig,
		tokenConfig:     params.TokenConfig,
		metricCollector: collector,
		jwtPrivateKey:   privateKey,
	}
	if params.CacheConfig.Capacity > 0 {
		svc.reportCache = cache.New(cache.AsLRU[string, *report.Report](lru.WithCapacity(params.CacheConfig.Capacity)))
		svc.reportTTL = time.Duration(params.CacheConfig.TTLSec) * time.Second
	}
	return svc, nil
}

type Service struct {
	Repo            domain.Repository
	simConfig       config.SimulationConfig
	tokenConfig     config.TokenConfig
	metricCollector *MetricCollector
	jwtPrivateKey   *rsa.PrivateKey
	// reportCache is nil when caching is disabled.
	reportCache *cache.Cache[string, *report.Report]
	reportTTL   time.Duration
}

// MetricCollector returns the collector the service reports to.
func (svc *Service) MetricCollector() *MetricCollector {
	return svc.metricCollector
}

func (svc *Service) cachedReport(key string) (*report.Report, bool) {
	if svc.reportCache == nil {
		return nil, false
	}
	rep, ok := svc.reportCache.Get(key)
	svc.metricCollector.ObserveCache(ok)
	return rep, ok
}

func (svc *Service) storeReport(key string, rep *report.Report) {
	if svc.reportCache == nil {
		return
	}
	if svc.reportTTL > 0 {
		svc.reportCache.Set(key, rep, cache.WithExpiration(svc.reportTTL))
		return
	}
	svc.reportCache.Set(key, rep)
}
