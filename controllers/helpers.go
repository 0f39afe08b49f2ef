package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

// ---------------------------
// Error mapping
// ---------------------------

type errorMapping struct {
	target error
	status int
	code   string
}

var errorTable = []errorMapping{
	{services.ErrInvalidRange, http.StatusBadRequest, "error.invalidRange"},
	{services.ErrValidation, http.StatusBadRequest, "error.invalidPayload"},
	{services.ErrCapacityExceeded, http.StatusBadRequest, "error.capacityExceeded"},
	{services.ErrNotFound, http.StatusNotFound, "error.notFound"},
	{services.ErrRoomUnavailable, http.StatusConflict, "error.roomUnavailable"},
	{services.ErrInvalidTransition, http.StatusConflict, "error.invalidTransition"},
	{services.ErrDuplicate, http.StatusConflict, "error.duplicate"},
	{services.ErrGuestHasBookings, http.StatusConflict, "error.guestHasBookings"},
	{services.ErrUnauthorized, http.StatusUnauthorized, "error.unauthorized"},
}

// respondError turns a service error into the JSON error envelope. Store
// failures and anything unrecognised become a bare 500.
func respondError(c *gin.Context, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			utils.JSONError(c, m.status, m.code, err.Error())
			return
		}
	}
	_ = c.Error(err)
	utils.JSONError(c, http.StatusInternalServerError, "error.serverError", "internal server error")
}

func invalidPayload(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
}

// bindJSON decodes the body into dst; on failure it has already responded.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		invalidPayload(c, err)
		return false
	}
	return true
}

// paramID reads a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
