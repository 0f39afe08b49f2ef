package services

import (
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidRange      = errors.New("check-out must be after check-in")
	ErrCapacityExceeded  = errors.New("number of guests exceeds room capacity")
	ErrRoomUnavailable   = errors.New("room is not available for the requested dates")
	ErrInvalidTransition = errors.New("status change not permitted")
	ErrNotFound          = errors.New("not found")
	ErrStoreFailure      = errors.New("store failure")
	ErrValidation        = errors.New("validation failed")
	ErrDuplicate         = errors.New("already exists")
	ErrGuestHasBookings  = errors.New("cannot delete guest with existing bookings")
	ErrUnauthorized      = errors.New("invalid credentials")
)

var domainErrors = []error{
	ErrInvalidRange,
	ErrCapacityExceeded,
	ErrRoomUnavailable,
	ErrInvalidTransition,
	ErrNotFound,
	ErrStoreFailure,
	ErrValidation,
	ErrDuplicate,
	ErrGuestHasBookings,
	ErrUnauthorized,
}

func notFound(what string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// classify passes domain errors through untouched. Anything else is a store
// error: the cause is logged and the caller only sees ErrStoreFailure.
func classify(log *zap.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s", ErrStoreFailure, op)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func fmtDuplicate(what, value string) error {
	return fmt.Errorf("%w: %s %q", ErrDuplicate, what, value)
}
