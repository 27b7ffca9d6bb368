package domain

import (
	"strings"
	"time"
)

// Client is a reseller consuming the API. A client authenticates with its
// API key (or a token issued against its password) and owns a set of users.
type Client struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	APIKey         string    `json:"-"`
	HashedPassword string    `json:"-"`
	Admin          bool      `json:"-"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// NewClient creates a client with an already generated API key and password hash.
func NewClient(username, email, address, apiKey, hashedPassword string) (*Client, error) {
	now := time.Now().UTC()
	c := &Client{
		Username:       strings.TrimSpace(username),
		Email:          NormalizeEmail(email),
		Address:        address,
		APIKey:         apiKey,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if the Client has valid data.
func (c *Client) Validate() error {
	if c.Username == "" {
		return NewValidationError("username", "is required", ErrEmptyUsername)
	}
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if c.APIKey == "" {
		return NewValidationError("api_key", "is required", ErrEmptyAPIKey)
	}
	if c.HashedPassword == "" {
		return NewValidationError("password", "is required", ErrEmptyHashedPassword)
	}
	return nil
}
