package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"appointment-scheduler/cmd/bootstrap"
	"appointment-scheduler/config"
	"appointment-scheduler/internal/infrastructure/database"
	"appointment-scheduler/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "schedulerctl",
		Short: "Appointment scheduler maintenance and batch booking",
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(autobookCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	for _, direction := range []string{database.MigrateUp, database.MigrateDown} {
		cmd.AddCommand(&cobra.Command{
			Use:   direction,
			Short: "Apply migrations " + direction,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := loadConfig()
				if err != nil {
					return err
				}
				db, err := database.NewPostgresConnection(cfg.DB, cfg.Scheduler.TimezoneName, cfg.App.Env)
				if err != nil {
					return err
				}
				defer closeDB(db)

				if err := database.RunMigrations(db, direction); err != nil {
					return err
				}
				log.Infof("Migrations %s applied", direction)
				return nil
			},
		})
	}

	return cmd
}

func autobookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autobook",
		Short: "Book the first free slot for an intake summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("summary")

			req, err := loadSummary(path)
			if err != nil {
				return err
			}
			v := validator.NewValidator()
			if err := v.Validate(req); err != nil {
				return fmt.Errorf("invalid intake summary: %v", v.FormatValidationErrors(err))
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			db, redisClient, err := bootstrap.Connect(cfg, log)
			if err != nil {
				return err
			}
			defer closeDB(db)
			defer closeRedis(redisClient)

			usecases := bootstrap.NewUsecases(cfg, db, redisClient, log, nil)
			result, err := usecases.Appointment.AutoBook(context.Background(), req)
			if err != nil {
				return fmt.Errorf("auto-booking failed: %w", err)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}
	cmd.Flags().String("summary", "final_patient_summary.json", "Path to the intake summary JSON")
	return cmd
}

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	// stdout carries the command's JSON result
	log.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		log.SetLevel(level)
	}
	return cfg, log, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func closeRedis(client *redis.Client) {
	if client != nil {
		client.Close()
	}
}
