package repositories

import (
	"context"
	"time"

	"github.com/jobradar/discovery/internal/domain/models"
	"gorm.io/gorm"
)

type Alerts struct {
	db *gorm.DB
}

func NewAlertsRepository(db *gorm.DB) *Alerts {
	return &Alerts{db: db}
}

func (repo *Alerts) Add(ctx context.Context, alert models.Alert) error {
	return repo.db.WithContext(ctx).Create(&alert).Error
}

func (repo *Alerts) GetByUser(ctx context.Context, userID int64) ([]models.Alert, error) {

	var alerts []models.Alert
	if err := repo.db.WithContext(ctx).Find(&alerts, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *Alerts) GetByID(ctx context.Context, ID int) (*models.Alert, error) {

	var alert models.Alert
	if err := repo.db.WithContext(ctx).Find(&alert, "id = ?", ID).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (repo *Alerts) GetActive(ctx context.Context, pageSize int, pageNum int) ([]models.Alert, error) {

	var alerts []models.Alert
	if err := repo.db.WithContext(ctx).
		Where("active = ?", true).
		Limit(pageSize).
		Offset(pageSize * pageNum).
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *Alerts) Update(ctx context.Context, alert models.Alert) error {
	return repo.db.WithContext(ctx).Model(&models.Alert{}).Where("id = ?", alert.ID).Updates(alert).Error
}

func (repo *Alerts) UpdateLastChecked(ctx context.Context, alertID int) error {
	return repo.db.WithContext(ctx).Model(&models.Alert{}).Where("id = ?", alertID).
		Updates(map[string]any{
			"last_checked_at": time.Now().UTC(),
		}).Error
}

func (repo *Alerts) Remove(ctx context.Context, alertID int) error {
	return repo.db.WithContext(ctx).Delete(&models.Alert{ID: alertID}).Error
}
