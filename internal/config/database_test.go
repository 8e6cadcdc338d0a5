package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestBuildDialector(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{"", "mysql"},
		{"mysql", "mysql"},
		{"postgres", "postgres"},
		{"sqlite", "sqlite"},
	}

	for _, tt := range tests {
		d, err := buildDialector(DatabaseConfig{Driver: tt.driver, Host: "localhost", Port: "3306", DBName: "chatarra"})
		require.NoError(t, err)
		assert.Equal(t, tt.name, d.Name())
	}
}

func TestBuildDialector_Unsupported(t *testing.T) {
	_, err := buildDialector(DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestHealthCheck_NotInitialized(t *testing.T) {
	prev := DB
	DB = nil
	defer func() { DB = prev }()

	assert.Error(t, HealthCheck(context.Background(), DB))
	assert.NoError(t, CloseDatabase())
}

func TestHealthCheck_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	assert.NoError(t, HealthCheck(context.Background(), db))

	require.NoError(t, sqlDB.Close())
	assert.Error(t, HealthCheck(context.Background(), db))
}
