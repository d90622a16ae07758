package database

import (
	"testing"

	"hospital-management-backend/internal/config"
	"hospital-management-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	base := config.DatabaseConfig{
		Host:     "localhost",
		Port:     "3306",
		User:     "hospital",
		Password: "secret",
		Database: "hospital",
		SSLMode:  "disable",
	}

	for _, driver := range []string{"mysql", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			cfg := base
			cfg.Driver = driver
			dialector, err := Dialector(cfg)
			require.NoError(t, err)
			assert.Equal(t, driver, dialector.Name())
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		cfg := base
		cfg.Driver = "oracle"
		_, err := Dialector(cfg)
		assert.ErrorContains(t, err, "oracle")
	})
}

func TestAllModelsCoversEveryTable(t *testing.T) {
	all := AllModels()
	assert.Contains(t, all, &models.User{})
	assert.Contains(t, all, &models.Bed{})
	assert.Contains(t, all, &models.ScheduleSlot{})
	assert.Contains(t, all, &models.AuditLog{})
	assert.Contains(t, all, &models.Supply{})
}
