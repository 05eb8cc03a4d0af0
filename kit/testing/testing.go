package testing

import "context"

type RedisContainer interface {
	GetURI() string
	Terminate(context.Context) error
}

// SQLContainer exposes a DSN that the matching gorm dialector accepts.
type SQLContainer interface {
	GetDSN() string
	Terminate(context.Context) error
}
