package repositories

import (
	"context"
	"encoding/json"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/jobradar/discovery/internal/scoring"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (repo *Profiles) Save(ctx context.Context, userID int64, profile scoring.Profile) error {
	value, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return repo.db.WithContext(ctx).Save(&models.Profile{
		UserID: userID,
		Value:  value,
	}).Error
}

func (repo *Profiles) Load(ctx context.Context, userID int64) (scoring.Profile, error) {
	var profile scoring.Profile

	row := &models.Profile{}
	err := repo.db.WithContext(ctx).First(row, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile, nil
		}
		return profile, err
	}

	err = json.Unmarshal(row.Value, &profile)
	return profile, err
}
