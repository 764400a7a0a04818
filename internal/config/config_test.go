package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(env map[string]string) *viper.Viper {
	v := viper.New()
	for k, val := range env {
		v.Set(k, val)
	}
	setDefaults(v)
	return v
}

func TestDefaults(t *testing.T) {
	cfg := fromViper(newTestViper(nil))

	assert.Equal(t, "America/Santo_Domingo", cfg.App.Timezone)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Billing.TaxRate.Equal(decimal.NewFromInt(18)))
	assert.Equal(t, "E31", cfg.Billing.NCFPrefix)
	assert.Equal(t, 20, cfg.Closing.HistoryDefault)
	assert.Equal(t, 500, cfg.Closing.HistoryMax)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
}

func TestOverrides(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]string{
		"DB_DRIVER":  "Memory",
		"TAX_RATE":   "16.5",
		"NCF_PREFIX": "b01",
	}))

	assert.True(t, cfg.Database.IsMemory())
	assert.True(t, cfg.Billing.TaxRate.Equal(decimal.RequireFromString("16.5")))
	assert.Equal(t, "B01", cfg.Billing.NCFPrefix)
}

func TestInvalidTaxRateFallsBack(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]string{"TAX_RATE": "-3"}))
	assert.True(t, cfg.Billing.TaxRate.Equal(decimal.NewFromInt(18)))
}

func TestLoadLocation(t *testing.T) {
	app := AppConfig{Timezone: "America/Santo_Domingo"}
	loc, err := app.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "America/Santo_Domingo", loc.String())

	app.Timezone = "Mars/Olympus"
	_, err = app.LoadLocation()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", Name: "n", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
