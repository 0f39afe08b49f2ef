package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/monishpeddapally/hostel-management-system/models"
)

const maxReportDays = 366

const (
	ReportOccupancy      = "occupancy"
	ReportRevenue        = "revenue"
	ReportBookingSources = "booking-sources"
	ReportRoomTypes      = "room-types"
)

const (
	GroupDaily   = "daily"
	GroupWeekly  = "weekly"
	GroupMonthly = "monthly"
)

// ReportService aggregates booking and payment data. It only reads.
type ReportService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewReportService(db *gorm.DB, log *zap.Logger) *ReportService {
	return &ReportService{DB: db, Log: log.Named("reports")}
}

// ReportQuery covers the inclusive date range [Start, End].
type ReportQuery struct {
	Start   time.Time
	End     time.Time
	GroupBy string
}

func (q ReportQuery) bounds() (time.Time, time.Time, error) {
	start, end := StayDate(q.Start), StayDate(q.End)
	if q.Start.IsZero() || q.End.IsZero() || end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if end.Sub(start) > maxReportDays*night {
		return time.Time{}, time.Time{}, invalid("report range is limited to %d days", maxReportDays)
	}
	return start, end, nil
}

type OccupancyRow struct {
	Date          string          `json:"date"`
	OccupiedRooms int             `json:"occupied_rooms"`
	TotalRooms    int64           `json:"total_rooms"`
	OccupancyRate decimal.Decimal `json:"occupancy_rate"`
}

type RevenueRow struct {
	Period       string          `json:"period"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	PaymentCount int             `json:"payment_count"`
}

type SourceRow struct {
	Source string `json:"source" gorm:"column:source"`
	Count  int64  `json:"count" gorm:"column:booking_count"`
}

type RoomTypeRow struct {
	RoomType      string          `json:"room_type" gorm:"column:room_type"`
	BookingsCount int64           `json:"bookings_count" gorm:"column:bookings_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue" gorm:"column:total_revenue"`
}

// Occupancy counts, for each night in the range, the rooms held by an active
// booking against all active rooms.
func (s *ReportService) Occupancy(ctx context.Context, q ReportQuery) ([]OccupancyRow, error) {
	start, end, err := q.bounds()
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	var totalRooms int64
	if err := db.Model(&models.Room{}).Where("active = ?", true).Count(&totalRooms).Error; err != nil {
		return nil, classify(s.Log, "occupancy report", err)
	}

	var bookings []models.Booking
	if err := db.Preload("Assignment").
		Where("status NOT IN ?", inactiveStatuses()).
		Where("check_in_date <= ? AND check_out_date > ?", end, start).
		Find(&bookings).Error; err != nil {
		return nil, classify(s.Log, "occupancy report", err)
	}

	rows := make([]OccupancyRow, 0, int(end.Sub(start)/night)+1)
	for day := start; !day.After(end); day = day.Add(night) {
		occupied := map[uint]struct{}{}
		for _, b := range bookings {
			if !b.CheckInDate.After(day) && b.CheckOutDate.After(day) && b.Assignment.RoomID != 0 {
				occupied[b.Assignment.RoomID] = struct{}{}
			}
		}
		rate := decimal.Zero
		if totalRooms > 0 {
			rate = decimal.NewFromInt(int64(len(occupied))).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(totalRooms)).
				Round(CurrencyScale)
		}
		rows = append(rows, OccupancyRow{
			Date:          day.Format(time.DateOnly),
			OccupiedRooms: len(occupied),
			TotalRooms:    totalRooms,
			OccupancyRate: rate,
		})
	}
	return rows, nil
}

func periodKey(t time.Time, groupBy string) string {
	switch groupBy {
	case GroupDaily:
		return t.Format(time.DateOnly)
	case GroupWeekly:
		y, w := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	default:
		return t.Format("2006-01")
	}
}

// Revenue sums completed payments per period. groupBy defaults to monthly.
func (s *ReportService) Revenue(ctx context.Context, q ReportQuery) ([]RevenueRow, error) {
	start, end, err := q.bounds()
	if err != nil {
		return nil, err
	}
	switch q.GroupBy {
	case "", GroupDaily, GroupWeekly, GroupMonthly:
	default:
		return nil, invalid("groupBy must be daily, weekly or monthly")
	}

	var payments []models.Payment
	if err := s.DB.WithContext(ctx).
		Where("status = ?", string(models.PaymentCompleted)).
		Where("payment_date >= ? AND payment_date < ?", start, end.Add(night)).
		Order("payment_date ASC").
		Find(&payments).Error; err != nil {
		return nil, classify(s.Log, "revenue report", err)
	}

	byPeriod := map[string]*RevenueRow{}
	for _, p := range payments {
		key := periodKey(p.PaymentDate.UTC(), q.GroupBy)
		row, ok := byPeriod[key]
		if !ok {
			row = &RevenueRow{Period: key, TotalRevenue: decimal.Zero}
			byPeriod[key] = row
		}
		row.TotalRevenue = row.TotalRevenue.Add(p.Amount)
		row.PaymentCount++
	}

	rows := make([]RevenueRow, 0, len(byPeriod))
	for _, r := range byPeriod {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Period < rows[j].Period })
	return rows, nil
}

func (s *ReportService) BookingSources(ctx context.Context, q ReportQuery) ([]SourceRow, error) {
	start, end, err := q.bounds()
	if err != nil {
		return nil, err
	}
	var rows []SourceRow
	if err := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Select("booking_source AS source, COUNT(*) AS booking_count").
		Where("booking_date >= ? AND booking_date < ?", start, end.Add(night)).
		Group("booking_source").
		Order("booking_count DESC").
		Scan(&rows).Error; err != nil {
		return nil, classify(s.Log, "booking sources report", err)
	}
	return rows, nil
}

func (s *ReportService) RoomTypes(ctx context.Context, q ReportQuery) ([]RoomTypeRow, error) {
	start, end, err := q.bounds()
	if err != nil {
		return nil, err
	}
	var rows []RoomTypeRow
	if err := s.DB.WithContext(ctx).Table("bookings").
		Select("room_types.name AS room_type, COUNT(bookings.id) AS bookings_count, COALESCE(SUM(bookings.total_amount), 0) AS total_revenue").
		Joins("JOIN room_assignments ON room_assignments.booking_id = bookings.id").
		Joins("JOIN rooms ON rooms.id = room_assignments.room_id").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("bookings.booking_date >= ? AND bookings.booking_date < ?", start, end.Add(night)).
		Where("bookings.status NOT IN ?", inactiveStatuses()).
		Group("room_types.id, room_types.name").
		Order("bookings_count DESC").
		Scan(&rows).Error; err != nil {
		return nil, classify(s.Log, "room types report", err)
	}
	return rows, nil
}

// ----------------------------------------------------
// Excel export
// ----------------------------------------------------

// Export renders one report as a single-sheet workbook.
func (s *ReportService) Export(ctx context.Context, kind string, q ReportQuery) (*excelize.File, error) {
	var (
		header []any
		body   [][]any
	)
	switch kind {
	case ReportOccupancy:
		rows, err := s.Occupancy(ctx, q)
		if err != nil {
			return nil, err
		}
		header = []any{"Date", "Occupied rooms", "Total rooms", "Occupancy %"}
		for _, r := range rows {
			body = append(body, []any{r.Date, r.OccupiedRooms, r.TotalRooms, r.OccupancyRate.InexactFloat64()})
		}
	case ReportRevenue:
		rows, err := s.Revenue(ctx, q)
		if err != nil {
			return nil, err
		}
		header = []any{"Period", "Total revenue", "Payments"}
		for _, r := range rows {
			body = append(body, []any{r.Period, r.TotalRevenue.InexactFloat64(), r.PaymentCount})
		}
	case ReportBookingSources:
		rows, err := s.BookingSources(ctx, q)
		if err != nil {
			return nil, err
		}
		header = []any{"Source", "Bookings"}
		for _, r := range rows {
			body = append(body, []any{r.Source, r.Count})
		}
	case ReportRoomTypes:
		rows, err := s.RoomTypes(ctx, q)
		if err != nil {
			return nil, err
		}
		header = []any{"Room type", "Bookings", "Total revenue"}
		for _, r := range rows {
			body = append(body, []any{r.RoomType, r.BookingsCount, r.TotalRevenue.InexactFloat64()})
		}
	default:
		return nil, fmt.Errorf("%w: report %q", ErrNotFound, kind)
	}

	f := excelize.NewFile()
	sheet := "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range body {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, err
		}
	}
	return f, nil
}
