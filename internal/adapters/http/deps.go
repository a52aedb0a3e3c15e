package http

import (
	"github.com/nats-io/nats.go"

	"github.com/emissiond/emissiond/internal/adapters/postgres"
	"github.com/emissiond/emissiond/internal/adapters/valkey"
	"github.com/emissiond/emissiond/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Measurements *usecases.MeasurementService
	Statistics   *usecases.StatisticsService
	Imports      *usecases.ImportService
	NATS         *nats.Conn
	DB           *postgres.DB
	Cache        *valkey.Cache
}
