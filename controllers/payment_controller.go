package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

type paymentPayload struct {
	BookingID     uint            `json:"booking_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

func (ctrl *PaymentController) RecordPayment(c *gin.Context) {
	var payload paymentPayload
	if !bindJSON(c, &payload) {
		return
	}
	p, err := ctrl.PaymentSvc.Record(c.Request.Context(), services.PaymentInput{
		BookingID:     payload.BookingID,
		Amount:        payload.Amount,
		PaymentMethod: payload.PaymentMethod,
		TransactionID: payload.TransactionID,
		Notes:         payload.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, p)
}

func (ctrl *PaymentController) GetBookingPayments(c *gin.Context) {
	id, ok := paramID(c, "bookingId")
	if !ok {
		return
	}
	payments, err := ctrl.PaymentSvc.ListByBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}
