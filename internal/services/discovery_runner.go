package services

import (
	"context"
	"time"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/jobradar/discovery/internal/logger"
	"github.com/jobradar/discovery/internal/pipeline"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type alertsSource interface {
	GetActive(ctx context.Context, pageSize int, pageNum int) ([]models.Alert, error)
}

type searchOrchestrator interface {
	Search(ctx context.Context, params models.SearchParams) (*pipeline.SearchResult, error)
}

// DiscoveryRunner is the periodic background driver: it walks every active
// alert, issues the alert's search through the orchestrator, and lets the
// alert matcher raise notifications for whatever the merge turned up new.
type DiscoveryRunner struct {
	alerts            alertsSource
	orchestrator      searchOrchestrator
	discoveryInterval time.Duration
	searchPageSize    int
	alertPageSize     int
}

func NewDiscoveryRunner(alerts alertsSource, orchestrator searchOrchestrator,
	discoveryInterval time.Duration) (*DiscoveryRunner, error) {

	if discoveryInterval <= 0 {
		return nil, errors.New("discovery interval must be greater than zero")
	}

	return &DiscoveryRunner{
		alerts:            alerts,
		orchestrator:      orchestrator,
		discoveryInterval: discoveryInterval,
		searchPageSize:    50,
		alertPageSize:     20,
	}, nil
}

// SetAlertPageSize overrides how many alerts are loaded per repository page.
func (r *DiscoveryRunner) SetAlertPageSize(pageSize int) {
	if pageSize > 0 {
		r.alertPageSize = pageSize
	}
}

func (r *DiscoveryRunner) Run(ctx context.Context) {
	for {
		startTime := time.Now()
		log.Infof("running discovery at %v", startTime)

		r.runDiscovery(ctx)

		executionTime := time.Since(startTime)
		log.Infof("discovery ended after %v", executionTime)

		var sleepTime time.Duration
		if executionTime <= r.discoveryInterval {
			sleepTime = r.discoveryInterval - executionTime
		} else {
			r.discoveryInterval = executionTime + time.Minute
			log.Infof("discovery interval extended to %v", r.discoveryInterval)
		}

		log.Infof("next discovery time is %v", time.Now().Add(sleepTime))
		select {
		case <-ctx.Done():
			log.Info("discovery runner stopped")
			return
		case <-time.After(sleepTime):
		}
	}
}

func (r *DiscoveryRunner) runDiscovery(ctx context.Context) {

	handledTotal := 0

	for pageNum := 0; ; pageNum++ {

		alerts, err := r.alerts.GetActive(ctx, r.alertPageSize, pageNum)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get alerts: %v", err)
			break
		}
		if len(alerts) == 0 {
			break
		}

		for _, alert := range alerts {
			select {
			case <-ctx.Done():
				return
			default:
			}
			r.runDiscoveryForAlert(ctx, alert)
		}

		handledTotal += len(alerts)
	}

	log.Infof("handled %v alerts", handledTotal)
}

func (r *DiscoveryRunner) runDiscoveryForAlert(ctx context.Context, alert models.Alert) {

	result, err := r.orchestrator.Search(ctx, alert.SearchParams(r.searchPageSize))
	if err != nil {
		if errors.Is(err, pipeline.ErrSearchInFlight) || errors.Is(err, pipeline.ErrSearchQueued) {
			return
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeConnector).
			Errorf("discovery failed for alert %v: %v", alert.ID, err)
		return
	}

	if len(result.Warnings) > 0 {
		log.Warnf("partial results for alert %v: %v", alert.ID, result.Warnings)
	}
	log.Debugf("alert %v: %v postings known, %v new", alert.ID, len(result.Jobs), result.NewCount)
}
