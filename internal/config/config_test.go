package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatarra-market/internal/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(config.NewDefaults())
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, 1440, cfg.JWT.AccessTokenMins)
	assert.Equal(t, 7, cfg.JWT.RefreshTokenDays)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 60, cfg.Redis.StatsTTLSecs)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 100, cfg.RateLimit.General)
	assert.Equal(t, 5, cfg.RateLimit.Auth)
	assert.Equal(t, "http://localhost:3000,http://localhost:5173", cfg.GetAllowedOrigins())
}

func TestFromViper_ProdUsesPrefixedKeys(t *testing.T) {
	v := config.NewDefaults()
	v.Set("APP_MODE", "prod")
	v.Set("PROD_DB_HOST", "db.internal")
	v.Set("PROD_JWT_SECRET", "prod-secret")
	v.Set("PROD_JWT_REFRESH_SECRET", "prod-refresh-secret")
	v.Set("ADMIN_PASSWORD", "s3guro-y-largo")
	v.Set("DEV_DB_HOST", "ignored")
	v.Set("ALLOWED_ORIGINS", "https://chatarra.example")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.Equal(t, "prod-refresh-secret", cfg.JWT.RefreshSecret)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, "https://chatarra.example", cfg.GetAllowedOrigins())
}

func TestFromViper_ProdRequiresSecrets(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]string
		wantErr string
	}{
		{
			name:    "jwt secret missing",
			set:     map[string]string{},
			wantErr: "PROD_JWT_SECRET",
		},
		{
			name:    "refresh secret missing",
			set:     map[string]string{"PROD_JWT_SECRET": "prod-secret", "ADMIN_PASSWORD": "s3guro-y-largo"},
			wantErr: "PROD_JWT_REFRESH_SECRET",
		},
		{
			name: "admin password left at default",
			set: map[string]string{
				"PROD_JWT_SECRET":         "prod-secret",
				"PROD_JWT_REFRESH_SECRET": "prod-refresh-secret",
			},
			wantErr: "ADMIN_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := config.NewDefaults()
			v.Set("APP_MODE", "prod")
			for k, val := range tt.set {
				v.Set(k, val)
			}

			_, err := config.FromViper(v)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFromViper_InvalidMode(t *testing.T) {
	v := config.NewDefaults()
	v.Set("APP_MODE", "staging")

	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "invalid APP_MODE")
}
