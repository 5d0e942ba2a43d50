package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jobradar/discovery/internal/domain/models"
	"gorm.io/gorm"
)

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

func (n Notifications) WasNotified(ctx context.Context, userID int64, alertID int, jobID string) (bool, error) {
	var match models.NotifiedMatch
	err := n.db.WithContext(ctx).
		Where("user_id = ? AND alert_id = ? AND job_id = ?", userID, alertID, jobID).
		First(&match).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err = n.db.WithContext(ctx).
		Model(&models.NotifiedMatch{}).
		Where("id = ?", match.ID).
		Update("last_checked_at", time.Now()).Error
	return true, err
}

func (n Notifications) RecordNotified(ctx context.Context, userID int64, alertID int, jobID string) error {
	return n.db.WithContext(ctx).Create(&models.NotifiedMatch{
		UserID:        userID,
		AlertID:       alertID,
		JobID:         jobID,
		LastCheckedAt: time.Now(),
	}).Error
}

func (n Notifications) RemoveOldMatches(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := n.db.WithContext(ctx).Delete(&models.NotifiedMatch{}, "last_checked_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
