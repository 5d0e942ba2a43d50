package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type notificationCleanupRepository interface {
	RemoveOldMatches(ctx context.Context, expirationTime time.Time) (int64, error)
}

type workingSetPruner interface {
	RemoveOlderThan(cutoff time.Time) int
}

// RetentionCleaner ages out stale postings from the working set and prunes
// old notified-match rows. Postings leave by expiry only, never by merge.
type RetentionCleaner struct {
	notifications    notificationCleanupRepository
	workingSet       workingSetPruner
	cron             *cron.Cron
	expirationInDays int
}

func NewRetentionCleaner(notifications notificationCleanupRepository, workingSet workingSetPruner,
	expirationInDays int) (*RetentionCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	rc := &RetentionCleaner{
		notifications:    notifications,
		workingSet:       workingSet,
		cron:             cron.New(),
		expirationInDays: expirationInDays,
	}

	_, err := rc.cron.AddFunc("0 0 * * *", rc.cleanOldEntries)
	if err != nil {
		return nil, err
	}

	rc.cron.Start()
	log.Infof("retention cleaner started, expiration in days: %d", rc.expirationInDays)
	return rc, nil
}

func (rc *RetentionCleaner) Stop() {
	rc.cron.Stop()
}

func (rc *RetentionCleaner) cleanOldEntries() {
	expirationTime := time.Now().Add(-time.Duration(rc.expirationInDays) * 24 * time.Hour)

	removed := rc.workingSet.RemoveOlderThan(expirationTime)
	log.Infof("aged out %v stale postings", removed)

	rowsAffected, err := rc.notifications.RemoveOldMatches(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("Failed to clean old notified matches: %v", err)
	} else {
		log.Infof("Old notified matches cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
