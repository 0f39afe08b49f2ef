package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/monishpeddapally/hostel-management-system/models"
)

type GuestService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewGuestService(db *gorm.DB, log *zap.Logger) *GuestService {
	return &GuestService{DB: db, Log: log.Named("guests")}
}

type GuestInput struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	IDProofType   string
	IDProofNumber string
	DateOfBirth   *time.Time
	Nationality   string
}

func (in GuestInput) validate() error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return invalid("first and last name are required")
	}
	if in.DateOfBirth != nil && in.DateOfBirth.After(time.Now()) {
		return invalid("date of birth is in the future")
	}
	return nil
}

func (in GuestInput) apply(g *models.Guest) {
	g.FirstName = strings.TrimSpace(in.FirstName)
	g.LastName = strings.TrimSpace(in.LastName)
	g.Email = strings.TrimSpace(in.Email)
	g.Phone = strings.TrimSpace(in.Phone)
	g.Address = in.Address
	g.IDProofType = strings.TrimSpace(in.IDProofType)
	g.IDProofNumber = strings.TrimSpace(in.IDProofNumber)
	g.DateOfBirth = in.DateOfBirth
	g.Nationality = strings.TrimSpace(in.Nationality)
}

// ----------------------------------------------------
// CREATE
// ----------------------------------------------------
func (s *GuestService) Create(ctx context.Context, in GuestInput) (*models.Guest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var g models.Guest
	in.apply(&g)
	if g.Email == "" {
		s.Log.Warn("guest created without email", zap.String("name", g.FullName()))
	}
	if err := s.DB.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, classify(s.Log, "create guest", err)
	}
	return &g, nil
}

// ----------------------------------------------------
// LIST (newest first)
// ----------------------------------------------------
func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&guests).Error; err != nil {
		return nil, classify(s.Log, "list guests", err)
	}
	return guests, nil
}

// ----------------------------------------------------
// GET BY ID
// ----------------------------------------------------
func (s *GuestService) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var g models.Guest
	if err := s.DB.WithContext(ctx).First(&g, id).Error; err != nil {
		if isNotFound(err) {
			return nil, notFound("guest", id)
		}
		return nil, classify(s.Log, "get guest", err)
	}
	return &g, nil
}

// ----------------------------------------------------
// UPDATE
// ----------------------------------------------------
func (s *GuestService) Update(ctx context.Context, id uint, in GuestInput) (*models.Guest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(g)
	if err := s.DB.WithContext(ctx).Save(g).Error; err != nil {
		return nil, classify(s.Log, "update guest", err)
	}
	return g, nil
}

// ----------------------------------------------------
// DELETE (refused while the guest owns any booking)
// ----------------------------------------------------
func (s *GuestService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Booking{}).Where("guest_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrGuestHasBookings
		}
		res := tx.Delete(&models.Guest{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("guest", id)
		}
		return nil
	})
	return classify(s.Log, "delete guest", err)
}
