package container

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pkg/errors"
	mongo "go.mongodb.org/mongo-driver/v2/mongo"
	mongooption "go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoContainerConnection struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// URI is the connection string of the container's root user.
func (c MongoContainerConnection) URI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s", c.Username, c.Password, c.Host, c.Port)
}

const (
	mongoDBPort  = 27017
	mongoImage   = "mongo"
	mongoVersion = "8.2.2"
)

// RunMongoContainer starts a MongoDB container called name, or reuses a running
// one with that name, and waits until it answers a ping.
func RunMongoContainer(builder *ContainerBuilder, name string, options MongoContainerConnection) (MongoContainerConnection, error) {
	port := docker.Port(strconv.Itoa(mongoDBPort) + "/tcp")
	runOptions := dockertest.RunOptions{
		Name:       name,
		Repository: mongoImage,
		Tag:        mongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + options.Username,
			"MONGO_INITDB_ROOT_PASSWORD=" + options.Password,
		},
	}
	if options.Database != "" {
		runOptions.Env = append(runOptions.Env, "MONGO_INITDB_DATABASE="+options.Database)
	}
	if options.Port != "" {
		runOptions.PortBindings = map[docker.Port][]docker.PortBinding{
			port: {{HostIP: "127.0.0.1", HostPort: options.Port}},
		}
	}

	conn := options
	existing, err := builder.FindContainer(name)
	if err != nil {
		return MongoContainerConnection{}, err
	}
	if existing != nil && existing.State == "running" {
		var publicPort int64
		for _, bind := range existing.Ports {
			if bind.PrivatePort == mongoDBPort {
				conn.Host = bind.IP
				publicPort = bind.PublicPort
				break
			}
		}
		if publicPort == 0 {
			return MongoContainerConnection{}, errors.Errorf("failed to find public port for mongo container (%s)", name)
		}
		conn.Port = strconv.FormatInt(publicPort, 10)
		builder.AddContainer(existing.ID, ContainerInfo{Name: name, Type: ContainerTypeMongoDB})
		return conn, nil
	}

	resource, err := builder.RunWithOptions(&runOptions)
	if err != nil {
		return MongoContainerConnection{}, err
	}
	builder.AddContainer(resource.Container.ID, ContainerInfo{Name: name, Type: ContainerTypeMongoDB})
	conn.Host = resource.GetBoundIP(string(port))
	conn.Port = resource.GetPort(string(port))

	err = builder.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		client, err := mongo.Connect(mongooption.Client().ApplyURI(conn.URI()))
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		return client.Ping(ctx, nil)
	})
	if err != nil {
		return MongoContainerConnection{}, errors.Wrapf(err, "wait for mongo container %s", name)
	}
	return conn, nil
}
