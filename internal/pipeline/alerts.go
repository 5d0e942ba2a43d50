package pipeline

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/jobradar/discovery/internal/events"
	"github.com/jobradar/discovery/internal/logger"
	"github.com/jobradar/discovery/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type alertRepository interface {
	GetActive(ctx context.Context, pageSize int, pageNum int) ([]models.Alert, error)
	UpdateLastChecked(ctx context.Context, alertID int) error
}

type notifiedRepository interface {
	WasNotified(ctx context.Context, userID int64, alertID int, jobID string) (bool, error)
	RecordNotified(ctx context.Context, userID int64, alertID int, jobID string) error
}

// AlertMatcher evaluates every active alert against the newly merged postings
// of a batch and publishes one AlertMatched event per alert that hit. It runs
// once per merge batch, over the delta only, so a job discovered by two
// connectors in the same fan-out is matched a single time.
type AlertMatcher struct {
	bus      EventBus.Bus
	alerts   alertRepository
	notified notifiedRepository
	pageSize int
}

func NewAlertMatcher(bus EventBus.Bus, alerts alertRepository, notified notifiedRepository) *AlertMatcher {
	return &AlertMatcher{bus: bus, alerts: alerts, notified: notified, pageSize: 20}
}

// SetAlertPageSize overrides how many alerts are loaded per repository page.
func (m *AlertMatcher) SetAlertPageSize(pageSize int) {
	if pageSize > 0 {
		m.pageSize = pageSize
	}
}

// Match walks active alerts page by page. Repository failures are absorbed:
// matching is best-effort and never aborts a search.
func (m *AlertMatcher) Match(ctx context.Context, newJobs []models.Job) {

	if len(newJobs) == 0 {
		return
	}

	for pageNum := 0; ; pageNum++ {

		alerts, err := m.alerts.GetActive(ctx, m.pageSize, pageNum)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get alerts: %v", err)
			return
		}
		if len(alerts) == 0 {
			return
		}

		for _, alert := range alerts {
			m.matchAlert(ctx, alert, newJobs)
		}
	}
}

func (m *AlertMatcher) matchAlert(ctx context.Context, alert models.Alert, newJobs []models.Job) {

	filters, err := alert.Filters()
	if err != nil {
		log.Errorf("failed to decode criteria of alert %v: %v", alert.ID, err)
		return
	}

	matched := ApplyFilters(newJobs, filters, nil)

	var unseen []models.Job
	for _, job := range matched {
		notified, err := m.notified.WasNotified(ctx, alert.UserID, alert.ID, job.ID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to check notification for job %v: %v", job.ID, err)
			continue
		}
		if notified {
			continue
		}

		if err = m.notified.RecordNotified(ctx, alert.UserID, alert.ID, job.ID); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to record notification for job %v: %v", job.ID, err)
			continue
		}
		unseen = append(unseen, job)
	}

	if len(unseen) > 0 {
		metrics.AlertMatchesCounter.Add(float64(len(unseen)))
		m.bus.Publish(events.AlertMatchedTopic, events.AlertMatched{Alert: alert, Jobs: unseen})
	}

	if err = m.alerts.UpdateLastChecked(ctx, alert.ID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to update alert %v: %v", alert.ID, err)
	}
}
