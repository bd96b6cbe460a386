package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rideshare/internal/config"
	"rideshare/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the schema to the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := storage.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		reg, err := storage.DomainRegistry()
		if err != nil {
			return fmt.Errorf("schema registry: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := storage.Migrate(ctx, db, storage.Dialect(cfg.DB.Driver), reg); err != nil {
			return err
		}

		fmt.Println("schema applied")
		return nil
	},
}
