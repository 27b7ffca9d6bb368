package domain

import (
	"net/mail"
	"strings"
	"time"
)

// User is an end customer registered by a client. Each user belongs to
// exactly one client, which is the only principal allowed to manage it.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	ClientID       int64     `json:"client_id"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// NewUser creates a new User owned by clientID.
// The password must already be hashed by the caller.
func NewUser(clientID int64, username, email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:       strings.TrimSpace(username),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		ClientID:       clientID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "is required", ErrEmptyUsername)
	}
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "is required", ErrEmptyHashedPassword)
	}
	if u.ClientID <= 0 {
		return NewValidationError("client_id", "is required", ErrMissingClient)
	}
	return nil
}

// OwnerID returns the ID of the client that owns the user.
func (u *User) OwnerID() int64 {
	return u.ClientID
}

// NormalizeEmail trims and lowercases an email address. User and client
// emails are stored and looked up in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	return nil
}
