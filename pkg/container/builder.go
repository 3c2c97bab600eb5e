package container

import (
	"strings"
	"sync"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pkg/errors"
)

type ContainerType string

const (
	ContainerTypeMongoDB ContainerType = "mongodb"
)

type ContainerInfo struct {
	Name string
	Type ContainerType
}

// ContainerBuilder starts throwaway containers for integration tests and
// removes every container it tracked on PruneAll.
type ContainerBuilder struct {
	pool       *dockertest.Pool
	mu         sync.Mutex
	containers map[string]ContainerInfo
}

// NewContainerBuilder connects to the docker daemon at endpoint, or the
// environment's default daemon when endpoint is empty.
func NewContainerBuilder(endpoint string) (*ContainerBuilder, error) {
	pool, err := dockertest.NewPool(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "connect to docker")
	}
	if err := pool.Client.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping docker")
	}
	pool.MaxWait = 2 * time.Minute
	return &ContainerBuilder{
		pool:       pool,
		containers: make(map[string]ContainerInfo),
	}, nil
}

// FindContainer returns the container called name, or nil when there is none.
func (b *ContainerBuilder) FindContainer(name string) (*docker.APIContainers, error) {
	list, err := b.pool.Client.ListContainers(docker.ListContainersOptions{
		All:     true,
		Filters: map[string][]string{"name": {name}},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "list containers named %s", name)
	}
	for i := range list {
		for _, n := range list[i].Names {
			if strings.TrimPrefix(n, "/") == name {
				return &list[i], nil
			}
		}
	}
	return nil, nil
}

func (b *ContainerBuilder) RunWithOptions(opts *dockertest.RunOptions) (*dockertest.Resource, error) {
	resource, err := b.pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "run container %s", opts.Name)
	}
	return resource, nil
}

func (b *ContainerBuilder) AddContainer(id string, info ContainerInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.containers[id] = info
}

// Retry runs op with exponential backoff until it succeeds or the pool's MaxWait elapses.
func (b *ContainerBuilder) Retry(op func() error) error {
	return b.pool.Retry(op)
}

func (b *ContainerBuilder) PruneAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	for id, info := range b.containers {
		err := b.pool.Client.RemoveContainer(docker.RemoveContainerOptions{ID: id, Force: true, RemoveVolumes: true})
		if err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "remove %s container %s", info.Type, info.Name)
		}
		delete(b.containers, id)
	}
	return firstErr
}
