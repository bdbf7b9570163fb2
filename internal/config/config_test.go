package config_test

import (
	"testing"
	"time"

	"github.com/andreicionca/motivare-absente/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, 6, cfg.HoursPerSchoolDay)
		assert.Equal(t, 42, cfg.AnnualQuotaHours)
		assert.Equal(t, "3000", cfg.HTTP.Port)
		assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, "motivari-scolare", cfg.UploadFolder)
		assert.Equal(t, 30*time.Second, cfg.FinalizeLock)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("override from env", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("HOURS_PER_SCHOOL_DAY", "7")
		t.Setenv("APP_ENV", "production")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, 7, cfg.HoursPerSchoolDay)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("negative non positive hours per day", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("HOURS_PER_SCHOOL_DAY", "0")

		_, err := config.Load()

		assert.Error(t, err)
	})
}
