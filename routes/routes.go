package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/monishpeddapally/hostel-management-system/controllers"
	"github.com/monishpeddapally/hostel-management-system/middleware"
	"github.com/monishpeddapally/hostel-management-system/models"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Guests     *controllers.GuestController
	Rooms      *controllers.RoomController
	Bookings   *controllers.BookingController
	Operations *controllers.OperationsController
	Payments   *controllers.PaymentController
	Reports    *controllers.ReportController
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(ctl Controllers, tokens middleware.TokenParser, corsOrigins []string, log *zap.Logger) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log.Named("http")))
	r.Use(cors.New(corsConfig(corsOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/login", ctl.Auth.Login)

	secured := api.Group("", middleware.RequireAuth(tokens))
	managers := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	{
		guests := secured.Group("/guests")
		{
			guests.GET("", ctl.Guests.GetGuests)
			guests.GET("/:id", ctl.Guests.GetGuestByID)
			guests.POST("", ctl.Guests.CreateGuest)
			guests.PUT("/:id", ctl.Guests.UpdateGuest)
			guests.DELETE("/:id", ctl.Guests.DeleteGuest)
		}

		rooms := secured.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.GET("/available", ctl.Rooms.GetAvailableRooms)
			rooms.GET("/types/all", ctl.Rooms.GetRoomTypes)
			rooms.POST("/types", managers, ctl.Rooms.CreateRoomType)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.POST("", managers, ctl.Rooms.CreateRoom)
			rooms.PUT("/:id", managers, ctl.Rooms.UpdateRoom)
			rooms.PUT("/:id/status", ctl.Rooms.UpdateRoomStatus)
		}

		bookings := secured.Group("/bookings")
		{
			bookings.GET("", ctl.Bookings.GetBookings)
			bookings.GET("/:id", ctl.Bookings.GetBookingDetails)
			bookings.GET("/:id/balance", ctl.Bookings.GetBalance)
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.PUT("/:id/status", ctl.Bookings.UpdateStatus)
		}

		ops := secured.Group("/operations")
		{
			ops.POST("/check-in/:bookingId", ctl.Operations.CheckIn)
			ops.POST("/check-out/:bookingId", ctl.Operations.CheckOut)
		}

		payments := secured.Group("/payments")
		{
			payments.POST("", ctl.Payments.RecordPayment)
			payments.GET("/booking/:bookingId", ctl.Payments.GetBookingPayments)
		}

		reports := secured.Group("/reports", managers)
		{
			reports.GET("/occupancy", ctl.Reports.Occupancy)
			reports.GET("/revenue", ctl.Reports.Revenue)
			reports.GET("/booking-sources", ctl.Reports.BookingSources)
			reports.GET("/room-types", ctl.Reports.RoomTypes)
			reports.GET("/:kind/export", ctl.Reports.Export)
		}
	}

	return r
}
