package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"easiernav/boreholed/internal/constants"
	"easiernav/boreholed/internal/db/repositories"
	"easiernav/boreholed/internal/errs"
	"easiernav/boreholed/internal/logging"
	"easiernav/boreholed/internal/middleware"
	"easiernav/boreholed/internal/validation"
)

// AddBoreholeHandler handles POST /add and POST /add_borehole
//
// Accepts JSON or form fields hole_id, azimuth, inclination, depth and
// optionally northing, easting, tvd, deviation.
// 201 {"message"} on success, 400 on validation failure or duplicate
// hole_id, 415 on an unsupported body, 500 on storage failure.
func AddBoreholeHandler(store repositories.BoreholeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.WithRequest(middleware.GetRequestID(r.Context()), routePattern(r))

		req, err := decodeBoreholeRequest(w, r)
		switch {
		case errors.Is(err, errUnsupportedMediaType):
			respondWithError(w, http.StatusUnsupportedMediaType, constants.ErrUnsupportedMediaType)
			return
		case errors.Is(err, errBodyTooLarge):
			respondWithError(w, http.StatusRequestEntityTooLarge, constants.ErrBodyTooLarge)
			return
		case err != nil:
			respondWithStoreError(w, err)
			return
		}

		req.Normalize()
		if err := validation.Struct(req); err != nil {
			respondWithStoreError(w, err)
			return
		}

		borehole := req.ToModel()
		if err := store.Insert(r.Context(), borehole); err != nil {
			if errs.IsDuplicateKey(err) {
				log.Warnw("Duplicate hole id rejected", "hole_id", borehole.HoleID)
			} else {
				log.Errorw("Failed to insert borehole", "hole_id", borehole.HoleID, "error", err.Error())
			}
			respondWithStoreError(w, err)
			return
		}

		log.Infow("Borehole added", "hole_id", borehole.HoleID, "id", borehole.ID)
		respondWithMessage(w, http.StatusCreated, constants.MsgBoreholeAdded)
	}
}

// ListBoreholesHandler handles GET /get_boreholes and GET /easiernav
//
// Returns every stored borehole as a JSON array, [] when the store is empty.
func ListBoreholesHandler(store repositories.BoreholeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boreholes, err := store.ListAll(r.Context())
		if err != nil {
			logging.Error("Failed to list boreholes",
				"request_id", middleware.GetRequestID(r.Context()),
				"error", err.Error(),
			)
			respondWithStoreError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, boreholes)
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}
