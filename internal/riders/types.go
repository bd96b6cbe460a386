// Package riders owns rider accounts: registration, credentials, profile.
package riders

import "rideshare/internal/schema"

// Rider statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type Rider struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	PasswordHash string `json:"-"`
}

// Object declares the riders table for validation and DDL.
func Object() schema.Object {
	return schema.Object{
		Name: "riders",
		Fields: []schema.Field{
			{Label: "id", Type: schema.TypeInt, Primary: true, AutoIncrement: true},
			{Label: "name", Type: schema.TypeText, Required: true},
			{Label: "email", Type: schema.TypeText, Required: true},
			{Label: "phone", Type: schema.TypeText},
			{Label: "status", Type: schema.TypeText, Required: true, Validate: validStatus},
			{Label: "password_hash", Type: schema.TypeText, Required: true},
			{Label: "created_at", Type: schema.TypeDateTime, Required: true},
		},
	}
}

func validStatus(v any) error {
	switch v.(string) {
	case StatusActive, StatusSuspended:
		return nil
	}
	return errInvalidStatus
}
