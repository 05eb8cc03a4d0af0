package container

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/superj80820/personalink/kit/testing"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

const (
	dbName     = "personalink"
	dbUsername = "root"
	dbPassword = "password"
)

type mysqlContainer struct {
	dsn       string
	container *mysql.MySQLContainer
}

// CreateMySQL starts mysql:8 and runs the given schema scripts on boot.
func CreateMySQL(ctx context.Context, schemaPaths ...string) (testing.SQLContainer, error) {
	container, err := mysql.RunContainer(ctx,
		testcontainers.WithImage("mysql:8"),
		mysql.WithDatabase(dbName),
		mysql.WithUsername(dbUsername),
		mysql.WithPassword(dbPassword),
		mysql.WithScripts(schemaPaths...),
	)
	if err != nil {
		return nil, errors.Wrap(err, "run container failed")
	}
	host, err := container.Host(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get container host failed")
	}
	port, err := container.MappedPort(ctx, "3306")
	if err != nil {
		return nil, errors.Wrap(err, "mapped container port failed")
	}

	return &mysqlContainer{
		dsn: fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbUsername,
			dbPassword,
			host,
			port.Port(),
			dbName,
		),
		container: container,
	}, nil
}

func (m *mysqlContainer) GetDSN() string {
	return m.dsn
}

func (m *mysqlContainer) Terminate(ctx context.Context) error {
	if err := m.container.Terminate(ctx); err != nil {
		return errors.Wrap(err, "terminate failed")
	}
	return nil
}
