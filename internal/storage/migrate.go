package storage

import (
	"context"
	"database/sql"
	"fmt"

	"rideshare/internal/schema"
	"rideshare/internal/utils"
)

// Migrate applies CREATE TABLE IF NOT EXISTS for every registered object,
// in registration order so foreign keys resolve. Idempotent.
func Migrate(ctx context.Context, db *sql.DB, dialect schema.Dialect, reg *schema.Registry) error {
	for _, obj := range reg.All() {
		ddl, err := obj.DDL(dialect)
		if err != nil {
			return fmt.Errorf("ddl for %s: %w", obj.Name, err)
		}
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("migrate %s: %w", obj.Name, err)
		}
		utils.LogEvent("", "storage", "migrate", "table="+obj.Name)
	}
	return nil
}
