package config

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/monishpeddapally/hostel-management-system/models"
)

type seedRoom struct {
	number, typeName, floor, description string
}

func amenities(items ...string) datatypes.JSON {
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}

// SeedDatabase inserts the default staff account and the reference room data.
// Each section runs only when its table is empty.
func SeedDatabase(db *gorm.DB, log *zap.Logger) error {
	// ---------------- Staff ----------------
	var staffCount int64
	if err := db.Model(&models.Staff{}).Count(&staffCount).Error; err != nil {
		return err
	}
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash default admin password: %w", err)
		}
		admin := models.Staff{
			Username:     "admin",
			PasswordHash: string(hash),
			FirstName:    "Admin",
			LastName:     "User",
			Role:         models.RoleAdmin,
			Active:       true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("create default admin: %w", err)
		}
		log.Info("default admin seeded", zap.String("username", admin.Username))
	}

	// ---------------- RoomTypes ----------------
	var rtCount int64
	if err := db.Model(&models.RoomType{}).Count(&rtCount).Error; err != nil {
		return err
	}
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Single", Capacity: 1, BasePrice: decimal.NewFromInt(50), Amenities: amenities("wifi", "desk")},
			{Name: "Double", Capacity: 2, BasePrice: decimal.NewFromInt(75), Amenities: amenities("wifi", "tv")},
			{Name: "Twin", Capacity: 2, BasePrice: decimal.NewFromInt(80), Amenities: amenities("wifi", "tv")},
			{Name: "Triple", Capacity: 3, BasePrice: decimal.NewFromInt(100), Amenities: amenities("wifi", "tv", "balcony")},
			{Name: "Dormitory", Capacity: 6, BasePrice: decimal.NewFromInt(30), Amenities: amenities("wifi", "lockers", "shared bathroom")},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			return fmt.Errorf("seed room types: %w", err)
		}
		log.Info("room types seeded", zap.Int("count", len(roomTypes)))
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	if err := db.Model(&models.Room{}).Count(&roomCount).Error; err != nil {
		return err
	}
	if roomCount > 0 {
		return nil
	}

	var types []models.RoomType
	if err := db.Find(&types).Error; err != nil {
		return err
	}
	typeIDs := make(map[string]uint, len(types))
	for _, rt := range types {
		typeIDs[rt.Name] = rt.ID
	}

	wanted := []seedRoom{
		{"101", "Single", "1", "Cozy single room with garden view"},
		{"102", "Double", "1", "Spacious double room with city view"},
		{"103", "Twin", "1", "Twin room with two single beds"},
		{"201", "Triple", "2", "Triple room with mountain view"},
		{"202", "Dormitory", "2", "6-bed dormitory with shared facilities"},
		{"203", "Double", "2", "Double room with private bathroom"},
		{"301", "Double", "3", "Double room with balcony"},
		{"302", "Single", "3", "Single room with work desk"},
	}
	rooms := make([]models.Room, 0, len(wanted))
	for _, w := range wanted {
		id, ok := typeIDs[w.typeName]
		if !ok {
			log.Warn("room type missing, skipping seed room", zap.String("room_number", w.number), zap.String("room_type", w.typeName))
			continue
		}
		rooms = append(rooms, models.Room{
			RoomNumber:  w.number,
			RoomTypeID:  id,
			Floor:       w.floor,
			Description: w.description,
			Active:      true,
			Status:      models.RoomAvailable,
		})
	}
	if len(rooms) == 0 {
		return nil
	}
	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	log.Info("rooms seeded", zap.Int("count", len(rooms)))
	return nil
}
