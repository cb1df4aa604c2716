package dtos

import "time"

// ComponentHealth is the state of one dependency of the service.
type ComponentHealth struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// HealthCheckResponse is the body of GET /healthCheck.
type HealthCheckResponse struct {
	Status   string                     `json:"status"`
	Services map[string]ComponentHealth `json:"services"`
	UpSince  time.Time                  `json:"up_since"`
	Uptime   string                     `json:"uptime"`
}
