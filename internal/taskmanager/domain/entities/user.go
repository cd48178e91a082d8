package entities

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// User name and email bounds. The maximums match the users column widths.
const (
	MinNameLength  = 3
	MaxNameLength  = 255
	MaxEmailLength = 255
)

// User is a task owner. IdentifyNumber is the external key; ID is storage identity.
type User struct {
	ID             string    `json:"id"`
	IdentifyNumber int64     `json:"identify_number"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
}

// ValidateIdentifyNumber rejects non-positive numbers.
func ValidateIdentifyNumber(n int64) error {
	if n <= 0 {
		return ErrInvalidIdentifyNumber
	}
	return nil
}

// ValidateName enforces MinNameLength on the trimmed name and MaxNameLength on the stored one.
func ValidateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinNameLength {
		return ErrNameTooShort
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidateEmail accepts a bare address such as a@x.com.
func ValidateEmail(email string) error {
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
