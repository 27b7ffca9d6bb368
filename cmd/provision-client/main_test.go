package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/phrazzld/bilemo-api/internal/config"
	"github.com/phrazzld/bilemo-api/internal/service"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
	"github.com/phrazzld/bilemo-api/internal/store"
	"github.com/phrazzld/bilemo-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     string
		wantErr bool
		admin   bool
	}{
		{"all flags", []string{"-username", "acme", "-email", "a@example.com", "-password", "pw", "-admin"}, "", false, true},
		{"password from env", []string{"-username", "acme", "-email", "a@example.com"}, "from-env", false, false},
		{"missing email", []string{"-username", "acme", "-password", "pw"}, "", true, false},
		{"unknown flag", []string{"-nope"}, "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BILEMO_CLIENT_PASSWORD", tt.env)
			opts, err := parseFlags(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.admin, opts.admin)
			assert.NotEmpty(t, opts.password)
		})
	}
}

func TestProvision(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	hasher := auth.NewBcrypt(4)
	clients, err := service.NewClientService(testutils.NewMemoryClientStore(), jwtService, hasher, hasher, logger)
	require.NoError(t, err)

	opts := options{username: "acme", email: "acme@example.com", password: "secret-pass", admin: true}

	var out bytes.Buffer
	require.NoError(t, provision(context.Background(), clients, opts, &out))
	assert.Regexp(t, regexp.MustCompile(`^client_id: 1\napi_key: [0-9a-f]{40}\n$`), out.String())

	err = provision(context.Background(), clients, opts, io.Discard)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}
