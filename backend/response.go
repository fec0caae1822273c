package backend

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/model"
)

type errorBody struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func errorResponse(kind, msg string) errorBody {
	return errorBody{Kind: kind, Error: msg}
}

// writeError maps domain errors to HTTP statuses. Unknown errors never leak
// their message.
func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	kind := "internal"
	msg := "unable to complete"

	switch {
	case errors.Is(err, model.ErrInvalidArg):
		status = http.StatusBadRequest
		kind = "validation"
		msg = err.Error()
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		kind = "not_found"
		msg = err.Error()
	case errors.Is(err, model.ErrTeamInactive),
		errors.Is(err, model.ErrNotTeamable),
		errors.Is(err, model.ErrBadVersion),
		errors.Is(err, model.ErrIsArchived):
		status = http.StatusConflict
		kind = "conflict"
		msg = err.Error()
	case errors.Is(err, io.ErrStoreConflict):
		status = http.StatusServiceUnavailable
		kind = "store_conflict"
		msg = "temporarily unable to complete, please retry"
	}

	return c.Status(status).JSON(errorResponse(kind, msg))
}
