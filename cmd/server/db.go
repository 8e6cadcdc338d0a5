package main

import (
	"context"

	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// chatarra migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := boot()
		if err != nil {
			return err
		}
		defer config.CloseDatabase()

		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		log.Info().Msg("database migration completed")
		return nil
	},
}

// chatarra seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account from ADMIN_EMAIL and ADMIN_PASSWORD",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := boot()
		if err != nil {
			return err
		}
		defer config.CloseDatabase()

		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		return config.NewSeeder(db, cfg.Admin).Run(context.Background())
	},
}
