package riders

import (
	"errors"
	"strings"

	"rideshare/internal/domain"
)

var errInvalidStatus = errors.New("status must be active or suspended")

// RegisterInput is the pre-loaded context for a registration decision.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ValidateRegistration checks a registration request. Pure: no I/O, the
// uniqueness check against existing accounts happens in the events layer.
func ValidateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return domain.ValidationError{Field: "email", Msg: "required"}
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return domain.ValidationError{Field: "email", Msg: "not a valid address"}
	}
	if len(in.Password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	return nil
}
