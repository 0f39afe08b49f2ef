package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/monishpeddapally/hostel-management-system/config"
	"github.com/monishpeddapally/hostel-management-system/controllers"
	"github.com/monishpeddapally/hostel-management-system/routes"
	"github.com/monishpeddapally/hostel-management-system/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap()
		if err != nil {
			return err
		}
		defer e.close()
		return serve(e)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(e *env) error {
	if !e.cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.Migrate(e.db); err != nil {
		return err
	}
	if e.cfg.Seed {
		if err := config.SeedDatabase(e.db, e.log); err != nil {
			return err
		}
	}

	authSvc := services.NewAuthService(e.db, e.log, e.cfg.JWTSecret, e.cfg.JWTTTL)
	bookingSvc := services.NewBookingService(e.db, e.log)

	router := routes.SetupRouter(routes.Controllers{
		Auth:       controllers.NewAuthController(authSvc),
		Guests:     controllers.NewGuestController(services.NewGuestService(e.db, e.log)),
		Rooms:      controllers.NewRoomController(services.NewRoomService(e.db, e.log)),
		Bookings:   controllers.NewBookingController(bookingSvc),
		Operations: controllers.NewOperationsController(bookingSvc),
		Payments:   controllers.NewPaymentController(services.NewPaymentService(e.db, e.log)),
		Reports:    controllers.NewReportController(services.NewReportService(e.db, e.log)),
	}, authSvc, e.cfg.CORSOrigins, e.log)

	addr := ":" + e.cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("server starting", zap.String("addr", addr), zap.String("driver", e.cfg.DB.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	e.log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	e.log.Info("server stopped")
	return nil
}
