package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

// --- Controller ---
type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

type guestPayload struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IDProofType   string `json:"id_proof_type"`
	IDProofNumber string `json:"id_proof_number"`
	DateOfBirth   string `json:"date_of_birth"`
	Nationality   string `json:"nationality"`
}

func (p guestPayload) input() (services.GuestInput, error) {
	dob, err := utils.ParseOptionalDate(p.DateOfBirth)
	if err != nil {
		return services.GuestInput{}, err
	}
	return services.GuestInput{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
		IDProofType:   p.IDProofType,
		IDProofNumber: p.IDProofNumber,
		DateOfBirth:   dob,
		Nationality:   p.Nationality,
	}, nil
}

func (ctrl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctrl.GuestSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (ctrl *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	guest, err := ctrl.GuestSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var payload guestPayload
	if !bindJSON(c, &payload) {
		return
	}
	in, err := payload.input()
	if err != nil {
		invalidPayload(c, err)
		return
	}
	guest, err := ctrl.GuestSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var payload guestPayload
	if !bindJSON(c, &payload) {
		return
	}
	in, err := payload.input()
	if err != nil {
		invalidPayload(c, err)
		return
	}
	guest, err := ctrl.GuestSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// DeleteGuest refuses while the guest still owns bookings.
func (ctrl *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.GuestSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"guest_id": id, "deleted": true})
}
