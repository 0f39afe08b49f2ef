package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/monishpeddapally/hostel-management-system/config"
)

var rootCmd = &cobra.Command{
	Use:   "hostel",
	Short: "Hostel management backend",
	Long: `Hostel management backend: room availability, bookings with
check-in/check-out, room status and the financial tally behind them.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// env is what every subcommand needs before doing its own work.
type env struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB
}

func bootstrap() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat, "hostel-management")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := config.ConnectDatabase(cfg.DB, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}
