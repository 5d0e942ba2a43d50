package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	adzunaclient "github.com/jobradar/discovery/internal/clients/adzuna"
	"github.com/jobradar/discovery/internal/clients/gemini"
	remotiveclient "github.com/jobradar/discovery/internal/clients/remotive"
	"github.com/jobradar/discovery/internal/config"
	"github.com/jobradar/discovery/internal/logger"
	"github.com/jobradar/discovery/internal/metrics"
	"github.com/jobradar/discovery/internal/notifier"
	"github.com/jobradar/discovery/internal/pipeline"
	"github.com/jobradar/discovery/internal/repositories"
	"github.com/jobradar/discovery/internal/scoring"
	"github.com/jobradar/discovery/internal/services"
	"github.com/jobradar/discovery/internal/sources"
	"github.com/jobradar/discovery/pkg/webhook"
	log "github.com/sirupsen/logrus"
)

// the pipeline runs on behalf of a single local user; alerts still carry
// their own owner ids for notification routing
const localUserID int64 = 1

type pusherLogger struct{}

func (pusherLogger) Error(msg string, args ...any) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackend).Error(msg, args)
}

func buildConnectors(cfg *config.Config) []sources.Connector {

	remotive := remotiveclient.NewClient()
	remotive.SetRateLimit(cfg.Pipeline.MaxRequestsPerSecond)

	connectors := []sources.Connector{
		sources.NewRemotive(remotive, 50),
	}

	if cfg.Pipeline.AdzunaAppID != "" && cfg.Pipeline.AdzunaAppKey != "" {
		adzuna := adzunaclient.NewClient(cfg.Pipeline.AdzunaAppID, cfg.Pipeline.AdzunaAppKey, cfg.Pipeline.AdzunaCountry)
		adzuna.SetRateLimit(cfg.Pipeline.MaxRequestsPerSecond)
		connectors = append(connectors, sources.NewAdzuna(adzuna, "USD", 50))
	} else {
		log.Warn("adzuna credentials are not set, connector disabled")
	}

	return connectors
}

func buildScorer(ctx context.Context, cfg *config.Config, profiles *repositories.Profiles) pipeline.Scorer {

	profile, err := profiles.Load(ctx, localUserID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("can't load user profile: %v", err)
	}

	if cfg.Pipeline.AIKey == "" {
		return scoring.NewProfileScorer(profile)
	}

	aiClient, err := gemini.NewClient(ctx, cfg.Pipeline.AIKey, gemini.Model(cfg.Pipeline.AiModel))
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	aiClient.SetMinuteRateLimit(cfg.Pipeline.AiMaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.Pipeline.AiMaxRequestsPerDay)

	return scoring.NewAIScorer(aiClient, profile)
}

func buildNotifiers(ctx context.Context, cfg *config.Config, bus EventBus.Bus) []func() {

	var stops []func()

	if cfg.Notifier.TelegramToken != "" {
		tg, err := notifier.NewTelegram(cfg.Notifier.TelegramToken, bus)
		if err != nil {
			log.Fatalf("can't create telegram notifier: %v", err)
		}
		stops = append(stops, tg.Stop)
	}

	if cfg.Notifier.WebhookURL != "" {
		pusher, err := webhook.New(ctx, webhook.Config{
			Url:      cfg.Notifier.WebhookURL,
			Username: cfg.Notifier.WebhookUser,
			Password: cfg.Notifier.WebhookPassword,
		}, pusherLogger{})
		if err != nil {
			log.Fatalf("can't create webhook pusher: %v", err)
		}

		hook, err := notifier.NewWebhook(pusher, bus)
		if err != nil {
			log.Fatalf("can't create webhook notifier: %v", err)
		}
		stops = append(stops, hook.Stop)
	}

	return stops
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(":8080")

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	bus := EventBus.New()

	alerts := repositories.NewCachedAlerts(repositories.NewAlertsRepository(dbContext.DB), bus)
	notifications := repositories.NewNotificationsRepository(dbContext.DB)
	profiles := repositories.NewProfilesRepository(dbContext.DB)
	backend := repositories.NewBackend(dbContext.DB)

	tracker := pipeline.NewApplicationStateTracker(backend, localUserID)
	if err = tracker.Refresh(ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("can't refresh application state: %v", err)
	}

	matcher := pipeline.NewAlertMatcher(bus, alerts, notifications)
	matcher.SetAlertPageSize(cfg.Pipeline.AlertPageSize)
	orchestrator := pipeline.NewOrchestrator(buildConnectors(cfg), buildScorer(ctx, cfg, profiles), matcher, tracker)
	if cfg.Pipeline.ConnectorTimeout > 0 {
		orchestrator.SetConnectorTimeout(cfg.Pipeline.ConnectorTimeout)
	}
	if cfg.Pipeline.AutoDiscoveryDelay > 0 {
		orchestrator.SetAutoDiscoveryDelay(cfg.Pipeline.AutoDiscoveryDelay)
	}

	notifierStops := buildNotifiers(ctx, cfg, bus)

	cleaner, err := services.NewRetentionCleaner(notifications, orchestrator, cfg.Pipeline.JobExpirationInDays)
	if err != nil {
		log.Fatalf("can't create retention cleaner: %v", err)
	}
	defer cleaner.Stop()

	runner, err := services.NewDiscoveryRunner(alerts, orchestrator, cfg.Pipeline.DiscoveryInterval)
	if err != nil {
		log.Fatalf("can't create discovery runner: %v", err)
	}
	runner.SetAlertPageSize(cfg.Pipeline.AlertPageSize)
	go runner.Run(ctx)

	<-ctx.Done()

	log.Info("Shutting down services...")
	for _, stopNotifier := range notifierStops {
		stopNotifier()
	}
	log.Info("Services stopped.")
}
