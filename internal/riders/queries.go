package riders

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
)

// Queries are the module's shared reads; other modules may call them.
type Queries struct {
	DB *sql.DB
}

const riderColumns = "id, name, email, COALESCE(phone,''), status, created_at, password_hash"

func scanRider(row *sql.Row) (Rider, error) {
	var r Rider
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.Status, &r.CreatedAt, &r.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Rider{}, domain.NotFoundError{Resource: "rider", Err: err}
	}
	if err != nil {
		return Rider{}, domain.InternalError{Msg: "query rider", Err: err}
	}
	return r, nil
}

func (q Queries) GetByID(ctx context.Context, id int64) (Rider, error) {
	row := q.DB.QueryRowContext(ctx, "SELECT "+riderColumns+" FROM riders WHERE id = ?", id)
	return scanRider(row)
}

func (q Queries) GetByEmail(ctx context.Context, email string) (Rider, error) {
	row := q.DB.QueryRowContext(ctx, "SELECT "+riderColumns+" FROM riders WHERE email = ?", email)
	return scanRider(row)
}

// Exists reports whether a rider id is known; used by other modules for
// eager context loading without pulling the full profile.
func (q Queries) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := q.DB.QueryRowContext(ctx, "SELECT 1 FROM riders WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.InternalError{Msg: "query rider", Err: err}
	}
	return true, nil
}
