package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/model"
)

// AutoMigrate creates the data service tables with GORM. Postgres
// deployments apply internal/migrate/sql through cmd/migrate instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Recipe{}); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}
