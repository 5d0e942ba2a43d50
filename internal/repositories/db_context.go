package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/jobradar/discovery/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.Alert{})
	if err != nil {
		return fmt.Errorf("failed to migrate Alert entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.SavedJob{})
	if err != nil {
		return fmt.Errorf("failed to migrate SavedJob entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Application{})
	if err != nil {
		return fmt.Errorf("failed to migrate Application entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.NotifiedMatch{})
	if err != nil {
		return fmt.Errorf("failed to migrate NotifiedMatch entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Profile{})
	if err != nil {
		return fmt.Errorf("failed to migrate Profile entity: %w", err)
	}

	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_user_job ON saved_jobs (user_id, job_id); " +
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_application_user_job ON applications (user_id, job_id); " +
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_notified_user_alert_job ON notified_matches (user_id, alert_id, job_id);").
		Error; err != nil {
		return fmt.Errorf("failed to create unique indexes: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
