package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/monishpeddapally/hostel-management-system/models"
)

// PaymentService records payments against bookings. Payments never change the
// booking status.
type PaymentService struct {
	DB  *gorm.DB
	Log *zap.Logger
	Now func() time.Time
}

func NewPaymentService(db *gorm.DB, log *zap.Logger) *PaymentService {
	return &PaymentService{DB: db, Log: log.Named("payments")}
}

type PaymentInput struct {
	BookingID     uint
	Amount        decimal.Decimal
	PaymentMethod string
	TransactionID string
	Notes         string
}

func (s *PaymentService) Record(ctx context.Context, in PaymentInput) (*models.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, invalid("amount must be positive")
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		return nil, invalid("payment method is required")
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	p := models.Payment{
		BookingID:     in.BookingID,
		Amount:        in.Amount.Round(CurrencyScale),
		PaymentDate:   now,
		PaymentMethod: method,
		TransactionID: strings.TrimSpace(in.TransactionID),
		Status:        models.PaymentCompleted,
		Notes:         in.Notes,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.Select("id").First(&b, in.BookingID).Error; err != nil {
			if isNotFound(err) {
				return notFound("booking", in.BookingID)
			}
			return err
		}
		return tx.Create(&p).Error
	})
	if err != nil {
		return nil, classify(s.Log, "record payment", err)
	}

	s.Log.Info("payment recorded",
		zap.Uint("payment_id", p.ID),
		zap.Uint("booking_id", p.BookingID),
		zap.String("amount", p.Amount.StringFixed(CurrencyScale)),
		zap.String("method", p.PaymentMethod),
	)
	return &p, nil
}

func (s *PaymentService) ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	var b models.Booking
	if err := s.DB.WithContext(ctx).Select("id").First(&b, bookingID).Error; err != nil {
		if isNotFound(err) {
			return nil, notFound("booking", bookingID)
		}
		return nil, classify(s.Log, "list payments", err)
	}

	var payments []models.Payment
	if err := s.DB.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return nil, classify(s.Log, "list payments", err)
	}
	return payments, nil
}
