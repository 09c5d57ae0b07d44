package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"subtracker/internal/app/server/config"
)

func TestNew_Drivers(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		storage config.Storage
		wantErr bool
	}{
		{
			name:    "json file",
			storage: config.Storage{Driver: config.DriverFile, DataFile: filepath.Join(dir, "db.json")},
		},
		{
			name:    "sqlite",
			storage: config.Storage{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "db.sqlite")},
		},
		{
			name:    "unknown",
			storage: config.Storage{Driver: "mongo"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(context.Background(), &config.Config{Storage: tt.storage}, slog.Default())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s.Users())
			assert.NotNil(t, s.Subscriptions())
			assert.NoError(t, s.Close())
		})
	}
}
