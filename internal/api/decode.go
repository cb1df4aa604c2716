package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"easiernav/boreholed/internal/constants"
	"easiernav/boreholed/internal/errs"
	"easiernav/boreholed/internal/models/dtos"
)

var errUnsupportedMediaType = errors.New(constants.ErrUnsupportedMediaType)

var errBodyTooLarge = errors.New(constants.ErrBodyTooLarge)

// boreholeFormFields lists the accepted form keys. Anything else is rejected.
var boreholeFormFields = map[string]func(*dtos.BoreholeRequest) **float64{
	"azimuth":     func(r *dtos.BoreholeRequest) **float64 { return &r.Azimuth },
	"inclination": func(r *dtos.BoreholeRequest) **float64 { return &r.Inclination },
	"depth":       func(r *dtos.BoreholeRequest) **float64 { return &r.Depth },
	"northing":    func(r *dtos.BoreholeRequest) **float64 { return &r.Northing },
	"easting":     func(r *dtos.BoreholeRequest) **float64 { return &r.Easting },
	"tvd":         func(r *dtos.BoreholeRequest) **float64 { return &r.TVD },
	"deviation":   func(r *dtos.BoreholeRequest) **float64 { return &r.Deviation },
}

// decodeBoreholeRequest reads a create payload from a JSON or form body.
// Malformed input comes back as *errs.ValidationError.
func decodeBoreholeRequest(w http.ResponseWriter, r *http.Request) (*dtos.BoreholeRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes)

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errUnsupportedMediaType
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		return decodeJSON(r.Body)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, formParseError(err)
		}
		return decodeForm(r.PostForm)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(constants.MaxRequestBodyBytes); err != nil {
			return nil, formParseError(err)
		}
		return decodeForm(r.PostForm)
	default:
		return nil, errUnsupportedMediaType
	}
}

func decodeJSON(body io.Reader) (*dtos.BoreholeRequest, error) {
	var req dtos.BoreholeRequest

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		return nil, jsonDecodeError(err)
	}
	if dec.More() {
		return nil, errs.NewValidationError("body", constants.ErrInvalidBody)
	}
	return &req, nil
}

func jsonDecodeError(err error) error {
	var (
		typeErr    *json.UnmarshalTypeError
		maxErr     *http.MaxBytesError
		unknownPfx = "json: unknown field "
	)

	switch {
	case errors.As(err, &maxErr):
		return errBodyTooLarge
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			// the document itself is not an object
			return errs.NewValidationError("body", constants.ErrInvalidBody)
		}
		if field == "hole_id" {
			return errs.NewValidationError(field, "hole_id must be a string")
		}
		return errs.NewValidationError(field, fmt.Sprintf("%s must be a number", field))
	case strings.HasPrefix(err.Error(), unknownPfx):
		field := strings.Trim(strings.TrimPrefix(err.Error(), unknownPfx), `"`)
		return errs.NewValidationError(field, fmt.Sprintf("unknown field %q", field))
	default:
		return errs.NewValidationError("body", constants.ErrInvalidBody)
	}
}

func formParseError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	return errs.NewValidationError("body", "request body must be a valid form")
}

// decodeForm maps form values onto the request. Blank values count as
// absent so the validator reports missing required fields.
func decodeForm(values map[string][]string) (*dtos.BoreholeRequest, error) {
	req := &dtos.BoreholeRequest{}
	ve := &errs.ValidationError{}

	for key, vals := range values {
		raw := ""
		if len(vals) > 0 {
			raw = strings.TrimSpace(vals[0])
		}

		if key == "hole_id" {
			req.HoleID = raw
			continue
		}

		target, ok := boreholeFormFields[key]
		if !ok {
			ve.Fields = append(ve.Fields, errs.FieldError{Field: key, Error: fmt.Sprintf("unknown field %q", key)})
			continue
		}
		if raw == "" {
			continue
		}

		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ve.Fields = append(ve.Fields, errs.FieldError{Field: key, Error: fmt.Sprintf("%s must be a number", key)})
			continue
		}
		*target(req) = &f
	}

	if len(ve.Fields) > 0 {
		sort.Slice(ve.Fields, func(i, j int) bool { return ve.Fields[i].Field < ve.Fields[j].Field })
		return nil, ve
	}
	return req, nil
}
