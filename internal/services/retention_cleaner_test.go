package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockNotificationCleanup struct {
	removedBefore time.Time
}

func (m *mockNotificationCleanup) RemoveOldMatches(_ context.Context, expirationTime time.Time) (int64, error) {
	m.removedBefore = expirationTime
	return 3, nil
}

type mockPruner struct {
	cutoff time.Time
}

func (m *mockPruner) RemoveOlderThan(cutoff time.Time) int {
	m.cutoff = cutoff
	return 2
}

func Test_RetentionCleaner_InvalidExpiration_ReturnsError(t *testing.T) {
	_, err := NewRetentionCleaner(&mockNotificationCleanup{}, &mockPruner{}, 0)
	assert.Error(t, err)
}

func Test_RetentionCleaner_CleanOldEntries_UsesExpirationCutoff(t *testing.T) {

	notifications := &mockNotificationCleanup{}
	pruner := &mockPruner{}

	cleaner, err := NewRetentionCleaner(notifications, pruner, 14)
	assert.NoError(t, err)
	defer cleaner.Stop()

	cleaner.cleanOldEntries()

	expected := time.Now().Add(-14 * 24 * time.Hour)
	assert.WithinDuration(t, expected, pruner.cutoff, time.Minute)
	assert.WithinDuration(t, expected, notifications.removedBefore, time.Minute)
}
