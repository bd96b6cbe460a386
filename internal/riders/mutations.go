package riders

import (
	"context"
	"database/sql"

	"rideshare/internal/domain"
	"rideshare/internal/schema"
)

// Writes are private to the module; only the events layer calls them.

func insertRider(ctx context.Context, db *sql.DB, r Rider) (int64, error) {
	rec := schema.Record{
		"name":          r.Name,
		"email":         r.Email,
		"phone":         r.Phone,
		"status":        r.Status,
		"password_hash": r.PasswordHash,
		"created_at":    r.CreatedAt,
	}
	if err := Object().ValidateRecord(rec); err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO riders (name, email, phone, status, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.Name, r.Email, r.Phone, r.Status, r.PasswordHash, r.CreatedAt,
	)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert rider", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "insert rider id", Err: err}
	}
	return id, nil
}
