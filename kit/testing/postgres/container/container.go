package container

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/personalink/kit/testing"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbName     = "personalink"
	dbUser     = "user"
	dbPassword = "password"
)

type postgresContainer struct {
	dsn       string
	container *postgres.PostgresContainer
}

type Option func(*postgresConfig)

type postgresConfig struct {
	zone        string
	initScripts []string
}

func WithZone(zone string) Option {
	return func(pc *postgresConfig) {
		pc.zone = zone
	}
}

func WithInitScripts(scriptPaths ...string) Option {
	return func(pc *postgresConfig) {
		pc.initScripts = append(pc.initScripts, scriptPaths...)
	}
}

func CreatePostgres(ctx context.Context, options ...Option) (testing.SQLContainer, error) {
	config := &postgresConfig{
		zone: "UTC",
	}
	for _, option := range options {
		option(config)
	}

	containerOptions := []testcontainers.ContainerCustomizer{
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second)),
	}
	if len(config.initScripts) > 0 {
		containerOptions = append(containerOptions, postgres.WithInitScripts(config.initScripts...))
	}

	container, err := postgres.RunContainer(ctx, containerOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "run container failed")
	}
	host, err := container.Host(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get container host failed")
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, errors.Wrap(err, "mapped container port failed")
	}

	return &postgresContainer{
		dsn: fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			host,
			dbUser,
			dbPassword,
			dbName,
			port.Port(),
			config.zone,
		),
		container: container,
	}, nil
}

func (p *postgresContainer) GetDSN() string {
	return p.dsn
}

func (p *postgresContainer) Terminate(ctx context.Context) error {
	if err := p.container.Terminate(ctx); err != nil {
		return errors.Wrap(err, "terminate failed")
	}
	return nil
}
