package api

import (
	"context"
	"net/http"
	"time"

	"easiernav/boreholed/internal/constants"
	"easiernav/boreholed/internal/models/dtos"
)

// Pinger is anything that can report whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheckHandler handles GET /healthCheck
//
// Pings the database and reports uptime. 503 when the database is down.
func HealthCheckHandler(db Pinger, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := make(map[string]dtos.ComponentHealth)

		dbStatus := constants.ServiceStatusOk
		dbDetails := "Database Connected"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = constants.ServiceStatusDown
			dbDetails = err.Error()
		}
		services["database"] = dtos.ComponentHealth{
			Status:  string(dbStatus),
			Details: dbDetails,
		}

		overallStatus := constants.ServiceStatusOk
		for _, svc := range services {
			if svc.Status != string(constants.ServiceStatusOk) {
				overallStatus = constants.ServiceStatusDown
				break
			}
		}

		resp := dtos.HealthCheckResponse{
			Services: services,
			Status:   string(overallStatus),
			UpSince:  upSince.UTC(),
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != constants.ServiceStatusOk {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, resp)
	}
}
