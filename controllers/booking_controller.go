package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/monishpeddapally/hostel-management-system/middleware"
	"github.com/monishpeddapally/hostel-management-system/models"
	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type createBookingPayload struct {
	GuestID         uint   `json:"guest_id" binding:"required"`
	RoomID          uint   `json:"room_id" binding:"required"`
	CheckIn         string `json:"check_in_date" binding:"required"`
	CheckOut        string `json:"check_out_date" binding:"required"`
	NumberOfGuests  int    `json:"number_of_guests" binding:"required,min=1"`
	BookingSource   string `json:"booking_source"`
	SpecialRequests string `json:"special_requests"`
}

type bookingStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// GetBookings handles ?status=&fromDate=&toDate=&guestId=.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	var f services.BookingFilter
	if raw := c.Query("status"); raw != "" {
		st, err := models.ParseBookingStatus(raw)
		if err != nil {
			invalidPayload(c, err)
			return
		}
		f.Status = st
	}
	var err error
	if f.FromDate, err = utils.ParseOptionalDate(c.Query("fromDate")); err != nil {
		invalidPayload(c, err)
		return
	}
	if f.ToDate, err = utils.ParseOptionalDate(c.Query("toDate")); err != nil {
		invalidPayload(c, err)
		return
	}
	if raw := c.Query("guestId"); raw != "" {
		id, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid guestId")
			return
		}
		f.GuestID = uint(id)
	}

	bookings, err := ctrl.BookingSvc.ListBookings(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := ctrl.BookingSvc.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (ctrl *BookingController) GetBalance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bal, err := ctrl.BookingSvc.Balance(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bal)
}

// CreateBooking records the authenticated staff member as the creator.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if !bindJSON(c, &payload) {
		return
	}
	checkIn, err := utils.ParseDate(payload.CheckIn)
	if err != nil {
		invalidPayload(c, err)
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOut)
	if err != nil {
		invalidPayload(c, err)
		return
	}

	in := services.CreateBookingInput{
		GuestID:         payload.GuestID,
		RoomID:          payload.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  payload.NumberOfGuests,
		BookingSource:   payload.BookingSource,
		SpecialRequests: payload.SpecialRequests,
	}
	if staffID, ok := middleware.StaffID(c); ok {
		in.StaffID = &staffID
	}

	b, err := ctrl.BookingSvc.CreateBooking(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b)
}

func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var payload bookingStatusPayload
	if !bindJSON(c, &payload) {
		return
	}
	b, err := ctrl.BookingSvc.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}
