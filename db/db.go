// Package db selects the mill's storage backend at startup via DB_TYPE.
package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// DB is the connection lifecycle both backends satisfy. Repositories take
// the concrete handle; this interface only drives startup and shutdown.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
