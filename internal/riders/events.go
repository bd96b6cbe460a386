package riders

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"rideshare/internal/bus"
	"rideshare/internal/domain"
	"rideshare/internal/utils"
)

// Event names emitted by this module.
const (
	EventRegistered     = "rider.registered"
	EventRegisterFailed = "rider.registered.failed"
)

// RegisteredPayload rides on EventRegistered.
type RegisteredPayload struct {
	RiderID int64
	Email   string
}

// FailurePayload rides on *.failed events.
type FailurePayload struct {
	Reason string
}

// Events is the module's I/O layer: it eager-loads context via queries,
// decides with pure logic, persists via mutations and emits on the bus.
type Events struct {
	DB        *sql.DB
	Bus       *bus.Bus
	RequestID string
}

func (e Events) queries() Queries { return Queries{DB: e.DB} }

func (e Events) fail(ctx context.Context, err error) error {
	e.Bus.Emit(ctx, e.RequestID, EventRegisterFailed, FailurePayload{Reason: err.Error()})
	return err
}

// Register creates a rider account and emits rider.registered. A duplicate
// email is a conflict; any failure emits the failure event instead.
func (e Events) Register(ctx context.Context, in RegisterInput) (Rider, error) {
	if err := ValidateRegistration(in); err != nil {
		return Rider{}, e.fail(ctx, err)
	}

	email := utils.NormalizeEmail(in.Email)
	if _, err := e.queries().GetByEmail(ctx, email); err == nil {
		return Rider{}, e.fail(ctx, domain.ConflictError{Resource: "rider", Msg: "email already registered"})
	} else if !domain.IsNotFound(err) {
		return Rider{}, e.fail(ctx, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Rider{}, e.fail(ctx, domain.InternalError{Msg: "hash password", Err: err})
	}

	r := Rider{
		Name:         utils.NormalizeSpace(in.Name),
		Email:        email,
		Phone:        utils.TrimOrEmpty(in.Phone),
		Status:       StatusActive,
		PasswordHash: string(hash),
		CreatedAt:    utils.FormatDateTime(utils.NowUTC()),
	}
	id, err := insertRider(ctx, e.DB, r)
	if err != nil {
		return Rider{}, e.fail(ctx, err)
	}
	r.ID = id

	utils.LogEvent(e.RequestID, "riders", "register", fmt.Sprintf("rider_id=%d", id))
	e.Bus.Emit(ctx, e.RequestID, EventRegistered, RegisteredPayload{RiderID: id, Email: email})
	return r, nil
}

// Authenticate verifies rider credentials and returns the account.
func (e Events) Authenticate(ctx context.Context, email, password string) (Rider, error) {
	r, err := e.queries().GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return Rider{}, domain.UnauthorizedError{Msg: "invalid email or password"}
		}
		return Rider{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(password)); err != nil {
		return Rider{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	if r.Status != StatusActive {
		return Rider{}, domain.UnauthorizedError{Msg: "account suspended"}
	}
	return r, nil
}
