package dtos

import (
	"strings"

	"easiernav/boreholed/internal/models/gorm"
)

// BoreholeRequest is the create payload accepted as JSON or form fields.
// Pointer numbers distinguish "absent" from zero.
type BoreholeRequest struct {
	HoleID      string   `json:"hole_id" validate:"required,max=128"`
	Azimuth     *float64 `json:"azimuth" validate:"required,finite"`
	Inclination *float64 `json:"inclination" validate:"required,finite"`
	Depth       *float64 `json:"depth" validate:"required,finite"`
	Northing    *float64 `json:"northing" validate:"omitempty,finite"`
	Easting     *float64 `json:"easting" validate:"omitempty,finite"`
	TVD         *float64 `json:"tvd" validate:"omitempty,finite"`
	Deviation   *float64 `json:"deviation" validate:"omitempty,finite"`
}

// Normalize trims the hole id so " BH-001 " and "BH-001" collide.
func (r *BoreholeRequest) Normalize() {
	r.HoleID = strings.TrimSpace(r.HoleID)
}

// ToModel maps a validated request onto a new row. Required fields must
// already be non-nil.
func (r *BoreholeRequest) ToModel() *gorm.Borehole {
	return &gorm.Borehole{
		HoleID:      r.HoleID,
		Azimuth:     *r.Azimuth,
		Inclination: *r.Inclination,
		Depth:       *r.Depth,
		Northing:    r.Northing,
		Easting:     r.Easting,
		TVD:         r.TVD,
		Deviation:   r.Deviation,
	}
}

// MessageResponse is the success body for writes.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body for every failed request. Fields lists each
// rejected input when the failure was a validation error.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields []FieldErrorEntry `json:"fields,omitempty"`
}

type FieldErrorEntry struct {
	Field string `json:"field"`
	Error string `json:"error"`
}
