package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

type chargePayload struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

type checkOutPayload struct {
	FinalAmount  *decimal.Decimal `json:"final_amount"`
	ExtraCharges []chargePayload  `json:"extra_charges" binding:"dive"`
}

// OperationsController serves the front-desk check-in and check-out actions.
type OperationsController struct {
	BookingSvc *services.BookingService
}

func NewOperationsController(svc *services.BookingService) *OperationsController {
	return &OperationsController{BookingSvc: svc}
}

func (ctrl *OperationsController) CheckIn(c *gin.Context) {
	id, ok := paramID(c, "bookingId")
	if !ok {
		return
	}
	b, err := ctrl.BookingSvc.CheckIn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// CheckOut accepts an empty body, chunked or not, as well as
// {final_amount, extra_charges}.
func (ctrl *OperationsController) CheckOut(c *gin.Context) {
	id, ok := paramID(c, "bookingId")
	if !ok {
		return
	}
	var payload checkOutPayload
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		invalidPayload(c, err)
		return
	}

	in := services.CheckOutInput{FinalAmount: payload.FinalAmount}
	for _, ch := range payload.ExtraCharges {
		in.ExtraCharges = append(in.ExtraCharges, services.ChargeInput{
			Description: ch.Description,
			Amount:      ch.Amount,
		})
	}

	b, err := ctrl.BookingSvc.CheckOut(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}
