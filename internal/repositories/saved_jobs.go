package repositories

import (
	"context"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type SavedJobs struct {
	db *gorm.DB
}

func NewSavedJobsRepository(db *gorm.DB) *SavedJobs {
	return &SavedJobs{db: db}
}

func (repo *SavedJobs) Add(ctx context.Context, userID int64, job models.Job) error {
	return repo.db.WithContext(ctx).Create(&models.SavedJob{
		UserID:   userID,
		JobID:    job.ID,
		Title:    job.Title,
		Company:  job.Company,
		ApplyURL: job.ApplyURL,
	}).Error
}

func (repo *SavedJobs) Remove(ctx context.Context, userID int64, jobID string) error {
	return repo.db.WithContext(ctx).
		Delete(&models.SavedJob{}, "user_id = ? AND job_id = ?", userID, jobID).Error
}

func (repo *SavedJobs) GetIDs(ctx context.Context, userID int64) ([]string, error) {

	var rows []models.SavedJob
	if err := repo.db.WithContext(ctx).Find(&rows, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row models.SavedJob, _ int) string {
		return row.JobID
	}), nil
}
