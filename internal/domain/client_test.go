package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient("Client0", "client0@example.com", "Adresse 0", "abc123", "hash")
	require.NoError(t, err)
	assert.Equal(t, "Client0", c.Username)
	assert.False(t, c.Admin)

	c, err = NewClient("Acme", "  Contact@Acme.IO ", "", "abc123", "hash")
	require.NoError(t, err)
	assert.Equal(t, "contact@acme.io", c.Email)

	_, err = NewClient("", "client0@example.com", "", "abc123", "hash")
	assert.ErrorIs(t, err, ErrEmptyUsername)

	_, err = NewClient("Client0", "client0@example.com", "", "", "hash")
	assert.ErrorIs(t, err, ErrEmptyAPIKey)

	_, err = NewClient("Client0", "client0@example.com", "", "abc123", "")
	assert.ErrorIs(t, err, ErrEmptyHashedPassword)

	_, err = NewClient("Client0", "nope", "", "abc123", "hash")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}
