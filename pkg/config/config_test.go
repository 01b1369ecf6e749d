package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/pkg/config"
)

func completeViper() *viper.Viper {
	v := viper.New()
	v.Set("DATABASE_URL", "postgres://u:p@localhost:5432/bizboard")
	v.Set("JWT_SECRET", "secret")
	v.Set("CORS_ORIGIN", "http://localhost:3000")
	v.Set("S3_BUCKET", "logos")
	v.Set("S3_ACCESS_KEY", "key")
	v.Set("S3_SECRET_KEY", "secret")
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := config.FromViper(completeViper())
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 7*24*60, cfg.JWT.Expiration, "el token expira a los 7 días por defecto")
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://u:p@localhost:5432/bizboard", cfg.DB.ConnectionString())
}

func TestValidate_FaltanObligatorias(t *testing.T) {
	cfg := config.FromViper(viper.New())
	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "CORS_ORIGIN", "S3_BUCKET", "S3_ACCESS_KEY"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidate_RateLimitInvalido(t *testing.T) {
	v := completeViper()
	v.Set("RATE_LIMIT_MAX_REQUESTS", "0")
	err := config.FromViper(v).Validate()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "biz", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/biz?sslmode=disable", c.ConnectionString())
}
