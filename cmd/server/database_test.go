package main

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/bilemo-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurePool(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.DatabaseConfig
		wantOpen int
	}{
		{"defaults", config.DatabaseConfig{}, 10},
		{"configured", config.DatabaseConfig{MaxOpenConns: 25, MaxIdleConns: 3, ConnMaxLifetimeMinutes: 1}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			configurePool(db, tt.cfg)
			assert.Equal(t, tt.wantOpen, db.Stats().MaxOpenConnections)
		})
	}
}
