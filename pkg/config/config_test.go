package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StoreBolt, cfg.Store.Driver)
	assert.Equal(t, "0 0 * * 2,5", cfg.Slots.Schedule)
	assert.Equal(t, 12, cfg.Slots.Count)
	assert.Equal(t, "organic@123", cfg.Admin.DefaultPass)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.NotEmpty(t, cfg.Admin.TokenSecret, "sin secreto se genera uno aleatorio")
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Postgres")
	v.Set("HTTP_PORT", "9090")
	v.Set("SLOT_COUNT", 4)
	v.Set("ADMIN_TOKEN_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.Slots.Count)
	assert.Equal(t, "s3cr3t", cfg.Admin.TokenSecret)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "redis")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "orders", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/orders?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
