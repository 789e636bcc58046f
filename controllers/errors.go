package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrTableNotFound    = &CustomError{"Table not found"}
	ErrBookingNotFound  = &CustomError{"Booking not found"}
	ErrDocumentNotFound = &CustomError{"JSON document not found"}
	ErrInvalidID        = &CustomError{"Invalid id"}
)

// parseIDParam reads a positive integer path parameter, answering 400 when it
// is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidID)
		return 0, false
	}
	return id, true
}

// respondServiceError maps a store error onto a status code. notFound is
// reported in place of services.ErrNotFound.
func respondServiceError(c *gin.Context, err error, notFound error) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, notFound)
	case errors.As(err, &validationErr):
		utils.RespondError(c, http.StatusBadRequest, validationErr)
	default:
		utils.ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
