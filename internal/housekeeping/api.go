package housekeeping

import (
	"fmt"
	"net/http"
	"strconv"

	apperrors "hotelres/pkg/errors"
	httputil "hotelres/pkg/http"
	"hotelres/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type BoardHandler struct {
	board *Board
	log   *logger.Logger
}

func NewBoardHandler(board *Board, log *logger.Logger) *BoardHandler {
	return &BoardHandler{
		board: board,
		log:   log,
	}
}

func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.board.Pending()); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BoardHandler) MarkClean(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	raw := ps.ByName("number")
	number, err := strconv.Atoi(raw)
	if err != nil || number <= 0 {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid room number: %q", raw))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MarkClean", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if !h.board.MarkClean(number) {
		if writeErr := httputil.WriteError(w, apperrors.NotFoundWithID("Pending room", number)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MarkClean", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.log.Info("Room marked clean", "room_number", number)
	httputil.WriteNoContent(w)
}

func (h *BoardHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/housekeeping/rooms", h.List)
	router.POST("/api/v1/housekeeping/rooms/:number/clean", h.MarkClean)
}
