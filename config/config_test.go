package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFile(t *testing.T, path string) (*Config, error) {
	t.Helper()
	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return decode(v)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		validate   func(*testing.T, *Config)
		wantErr    string
	}{
		{
			name:       "basic_config",
			configPath: "testdata/basic.yaml",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4000, cfg.Server.Port)
				assert.Equal(t, "postgres", cfg.Database.Type)
				assert.Equal(t, "postgres://localhost:5432/resumecraft", cfg.Database.URL)
				assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
				assert.Equal(t, "test-secret", cfg.Auth.JwtSecret)
				assert.True(t, cfg.Auth.EnforceAudience)
				assert.Equal(t, "authenticated", cfg.Auth.Audience)
			},
		},
		{
			name:       "audience_check_disabled",
			configPath: "testdata/no_audience.yaml",
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Auth.EnforceAudience)
				assert.Equal(t, "text", cfg.Log.Format)
				assert.Equal(t, "DEBUG", cfg.Log.Level)
			},
		},
		{
			name:       "missing_secret",
			configPath: "testdata/missing_secret.yaml",
			wantErr:    "auth.jwt_secret is required",
		},
		{
			name:       "unknown_auth_mode",
			configPath: "testdata/bad_mode.yaml",
			wantErr:    "unknown auth.mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadFile(t, tt.configPath)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestValidateNoopMode(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{Mode: AuthModeNoop}}
	assert.NoError(t, cfg.Validate())
}

func TestValidateAudienceRequired(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{
		Mode:            AuthModeJWT,
		JwtSecret:       "s",
		EnforceAudience: true,
	}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.audience is required")
}
