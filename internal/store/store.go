package store

import "errors"

var (
	ErrNotFound = errors.New("not found")
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
