package handler

import (
	"net/http"

	apperrors "hotelres/pkg/errors"
	httputil "hotelres/pkg/http"
	"hotelres/pkg/model"

	"github.com/julienschmidt/httprouter"
)

func (h *ReservationHandler) ListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListRooms", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "ListRooms", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) FindAvailableRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	checkIn, err := parseDateParam(query.Get("check_in"), "check_in")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "FindAvailableRoom", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	checkOut, err := parseDateParam(query.Get("check_out"), "check_out")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "FindAvailableRoom", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	room, err := h.service.FindAvailableRoom(r.Context(), query.Get("type"), checkIn, checkOut)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "FindAvailableRoom", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "FindAvailableRoom", "operation", "WriteSuccess", "error", err)
	}
}

// parseDateParam leaves a missing value as the zero date so the service reports
// it alongside any other validation problem.
func parseDateParam(raw, name string) (model.Date, error) {
	if raw == "" {
		return model.Date{}, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, apperrors.InvalidInput(name + " must be a date in yyyy-mm-dd format")
	}
	return d, nil
}
