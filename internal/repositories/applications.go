package repositories

import (
	"context"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/jobradar/discovery/internal/pipeline"
	"gorm.io/gorm"
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

func (repo *Applications) Add(ctx context.Context, userID int64, jobID string, resume, note string) error {
	return repo.db.WithContext(ctx).Create(&models.Application{
		UserID: userID,
		JobID:  jobID,
		Resume: resume,
		Note:   note,
	}).Error
}

func (repo *Applications) GetByUser(ctx context.Context, userID int64) ([]models.Application, error) {

	var applications []models.Application
	if err := repo.db.WithContext(ctx).Find(&applications, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// Backend bundles the saved-jobs and applications repositories into the
// store the ApplicationStateTracker reconciles against.
type Backend struct {
	savedJobs    *SavedJobs
	applications *Applications
}

func NewBackend(db *gorm.DB) *Backend {
	return &Backend{
		savedJobs:    NewSavedJobsRepository(db),
		applications: NewApplicationsRepository(db),
	}
}

func (b *Backend) GetSavedJobIDs(ctx context.Context, userID int64) ([]string, error) {
	return b.savedJobs.GetIDs(ctx, userID)
}

func (b *Backend) SaveJob(ctx context.Context, userID int64, job models.Job) error {
	return b.savedJobs.Add(ctx, userID, job)
}

func (b *Backend) UnsaveJob(ctx context.Context, userID int64, jobID string) error {
	return b.savedJobs.Remove(ctx, userID, jobID)
}

func (b *Backend) GetApplications(ctx context.Context, userID int64) ([]models.Application, error) {
	return b.applications.GetByUser(ctx, userID)
}

func (b *Backend) ApplyToJob(ctx context.Context, userID int64, job models.Job, meta pipeline.ApplicationMeta) error {
	return b.applications.Add(ctx, userID, job.ID, meta.Resume, meta.Note)
}
