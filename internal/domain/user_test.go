package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser(7, " alice ", "Alice@Example.com", "$2a$10$hash")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, int64(7), user.ClientID)
	assert.Equal(t, int64(7), user.OwnerID())
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	valid := User{
		Username:       "bob",
		Email:          "bob@example.com",
		HashedPassword: "hash",
		ClientID:       1,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr error
		field   string
	}{
		{"empty username", func(u *User) { u.Username = "" }, ErrEmptyUsername, "username"},
		{"empty email", func(u *User) { u.Email = "" }, ErrEmptyEmail, "email"},
		{"invalid email", func(u *User) { u.Email = "not-an-email" }, ErrInvalidEmail, "email"},
		{"display name email", func(u *User) { u.Email = "Bob <bob@example.com>" }, ErrInvalidEmail, "email"},
		{"missing hash", func(u *User) { u.HashedPassword = "" }, ErrEmptyHashedPassword, "password"},
		{"missing client", func(u *User) { u.ClientID = 0 }, ErrMissingClient, "client_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid
			tt.mutate(&u)
			err := u.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
