package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/monishpeddapally/hostel-management-system/models"
	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// ---------------------------
// Payload / DTOs
// ---------------------------

type roomPayload struct {
	RoomNumber  string `json:"room_number" binding:"required"`
	RoomTypeID  uint   `json:"room_type_id" binding:"required"`
	Floor       string `json:"floor"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
	Status      string `json:"status"`
}

func (p roomPayload) input() services.RoomInput {
	return services.RoomInput{
		RoomNumber:  p.RoomNumber,
		RoomTypeID:  p.RoomTypeID,
		Floor:       p.Floor,
		Description: p.Description,
		Active:      p.Active,
		Status:      models.RoomStatus(p.Status),
	}
}

type roomTypePayload struct {
	Name      string          `json:"name" binding:"required"`
	Capacity  int             `json:"capacity" binding:"required,min=1"`
	BasePrice decimal.Decimal `json:"base_price"`
	Amenities []string        `json:"amenities"`
}

type roomStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Availability
// ---------------------------

// GetAvailableRooms handles ?checkIn=&checkOut=[&guests=].
func (ctrl *RoomController) GetAvailableRooms(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("checkIn"))
	if err != nil {
		invalidPayload(c, err)
		return
	}
	checkOut, err := utils.ParseDate(c.Query("checkOut"))
	if err != nil {
		invalidPayload(c, err)
		return
	}
	guests := 0
	if raw := c.Query("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil || guests < 1 {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "guests must be a positive number")
			return
		}
	}

	rooms, err := ctrl.RoomSvc.FindAvailableRoomsFor(c.Request.Context(), checkIn, checkOut, guests)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// ---------------------------
// Rooms
// ---------------------------

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	rooms, err := ctrl.RoomSvc.ListRooms(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if !bindJSON(c, &payload) {
		return
	}
	room, err := ctrl.RoomSvc.CreateRoom(c.Request.Context(), payload.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom ignores any status in the body; use UpdateRoomStatus.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var payload roomPayload
	if !bindJSON(c, &payload) {
		return
	}
	room, err := ctrl.RoomSvc.UpdateRoom(c.Request.Context(), id, payload.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var payload roomStatusPayload
	if !bindJSON(c, &payload) {
		return
	}
	room, err := ctrl.RoomSvc.SetRoomStatus(c.Request.Context(), id, models.RoomStatus(payload.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ---------------------------
// Room types
// ---------------------------

func (ctrl *RoomController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.RoomSvc.ListRoomTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (ctrl *RoomController) CreateRoomType(c *gin.Context) {
	var payload roomTypePayload
	if !bindJSON(c, &payload) {
		return
	}
	rt, err := ctrl.RoomSvc.CreateRoomType(c.Request.Context(), services.RoomTypeInput{
		Name:      payload.Name,
		Capacity:  payload.Capacity,
		BasePrice: payload.BasePrice,
		Amenities: payload.Amenities,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}
