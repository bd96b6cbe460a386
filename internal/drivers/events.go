package drivers

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
	EventRegistered          = "driver.registered"
	EventAvailabilityChanged = "driver.availability_changed"
	EventNotified            = "drivers.notified"
)

type RegisteredPayload struct {
	DriverID int64
	Email    string
}

type AvailabilityPayload struct {
	DriverID int64
	Status   string
}

// NotifiedPayload rides on drivers.notified after dispatch offers are
// recorded for a requested trip.
type NotifiedPayload struct {
	TripID    int64
	DriverIDs []int64
}

type Events struct {
	DB        *sql.DB
	Bus       *bus.Bus
	RequestID string
}

func (e Events) queries() Queries { return Queries{DB: e.DB} }

// Register creates a driver account, initially offline.
func (e Events) Register(ctx context.Context, in RegisterInput) (Driver, error) {
	if err := ValidateRegistration(in); err != nil {
		return Driver{}, err
	}

	email := utils.NormalizeEmail(in.Email)
	if _, err := e.queries().GetByEmail(ctx, email); err == nil {
		return Driver{}, domain.ConflictError{Resource: "driver", Msg: "email already registered"}
	} else if !domain.IsNotFound(err) {
		return Driver{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Driver{}, domain.InternalError{Msg: "hash password", Err: err}
	}

	d := Driver{
		Name:         utils.NormalizeSpace(in.Name),
		Email:        email,
		Phone:        utils.TrimOrEmpty(in.Phone),
		Status:       StatusOffline,
		PasswordHash: string(hash),
		CreatedAt:    utils.FormatDateTime(utils.NowUTC()),
	}
	id, err := insertDriver(ctx, e.DB, d)
	if err != nil {
		return Driver{}, err
	}
	d.ID = id

	utils.LogEvent(e.RequestID, "drivers", "register", fmt.Sprintf("driver_id=%d", id))
	e.Bus.Emit(ctx, e.RequestID, EventRegistered, RegisteredPayload{DriverID: id, Email: email})
	return d, nil
}

// Authenticate verifies driver credentials.
func (e Events) Authenticate(ctx context.Context, email, password string) (Driver, error) {
	d, err := e.queries().GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return Driver{}, domain.UnauthorizedError{Msg: "invalid email or password"}
		}
		return Driver{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		return Driver{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	return d, nil
}

// UpdateLocation stores the driver's latest position. High-frequency, so
// it logs rather than emits.
func (e Events) UpdateLocation(ctx context.Context, driverID int64, lat, lon float64) error {
	if err := ValidateLocation(lat, lon); err != nil {
		return err
	}
	return updateLocation(ctx, e.DB, driverID, lat, lon, utils.FormatDateTime(utils.NowUTC()))
}

// SetAvailability flips the driver between offline and available. A driver
// on a trip cannot change availability by hand.
func (e Events) SetAvailability(ctx context.Context, driverID int64, status string) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}
	if status == StatusOnTrip {
		return domain.ValidationError{Field: "status", Msg: "on_trip is set by trip assignment"}
	}

	current, err := e.queries().GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if current.Status == StatusOnTrip {
		return domain.ConflictError{Resource: "driver", Msg: "cannot change availability during a trip"}
	}
	if err := setStatus(ctx, e.DB, driverID, status); err != nil {
		return err
	}

	utils.LogEvent(e.RequestID, "drivers", "availability", fmt.Sprintf("driver_id=%d status=%s", driverID, status))
	e.Bus.Emit(ctx, e.RequestID, EventAvailabilityChanged, AvailabilityPayload{DriverID: driverID, Status: status})
	return nil
}
