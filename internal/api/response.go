package api

import (
	"encoding/json"
	"net/http"

	"easiernav/boreholed/internal/constants"
	"easiernav/boreholed/internal/errs"
	"easiernav/boreholed/internal/logging"
	"easiernav/boreholed/internal/models/dtos"
)

// writeJSON marshals body and writes it with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}

func respondWithMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, dtos.MessageResponse{Message: message})
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, dtos.ErrorResponse{Error: message})
}

func respondWithValidationError(w http.ResponseWriter, ve *errs.ValidationError) {
	resp := dtos.ErrorResponse{Error: ve.Error()}
	if len(ve.Fields) > 0 {
		resp.Error = ve.Fields[0].Error
	}
	for _, f := range ve.Fields {
		resp.Fields = append(resp.Fields, dtos.FieldErrorEntry{Field: f.Field, Error: f.Error})
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

// respondWithStoreError maps a Data Store failure onto a status code.
func respondWithStoreError(w http.ResponseWriter, err error) {
	if errs.IsDuplicateKey(err) {
		respondWithError(w, http.StatusBadRequest, constants.ErrHoleIDExists)
		return
	}
	if ve, ok := errs.AsValidationError(err); ok {
		respondWithValidationError(w, ve)
		return
	}
	if se, ok := errs.AsStorageError(err); ok && se.Err != nil {
		respondWithError(w, http.StatusInternalServerError, se.Err.Error())
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}

// NotFoundHandler answers unmatched routes with a JSON 404.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, constants.ErrNotFound)
	}
}

// MethodNotAllowedHandler answers a known path with the wrong verb.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
	}
}
