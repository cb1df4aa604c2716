package api

import (
	"easiernav/boreholed/internal/db"
	"easiernav/boreholed/internal/db/repositories"
	"easiernav/boreholed/internal/metrics"
)

type Repositories struct {
	Boreholes repositories.BoreholeStore
}

type Dependencies struct {
	Repo    *Repositories
	Health  Pinger
	Metrics *metrics.MetricsRegistry
}

// InitDependencies wires repositories over an open database.
func InitDependencies(database *db.Database, metricsReg *metrics.MetricsRegistry) *Dependencies {
	return &Dependencies{
		Repo: &Repositories{
			Boreholes: repositories.NewBoreholeRepository(database.ORM, metricsReg),
		},
		Health:  database.SQL,
		Metrics: metricsReg,
	}
}
