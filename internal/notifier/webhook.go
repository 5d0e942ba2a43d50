package notifier

import (
	"errors"

	"github.com/asaskevich/EventBus"
	"github.com/jobradar/discovery/internal/events"
	"github.com/jobradar/discovery/internal/logger"
	"github.com/jobradar/discovery/pkg/webhook"
	log "github.com/sirupsen/logrus"
)

type notificationPusher interface {
	Push(n webhook.Notification) error
	Stop()
}

// Webhook forwards alert matches to an external HTTP endpoint.
type Webhook struct {
	pusher notificationPusher
	bus    EventBus.Bus
}

func NewWebhook(pusher notificationPusher, bus EventBus.Bus) (*Webhook, error) {

	if pusher == nil {
		return nil, errors.New("pusher is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	w := &Webhook{pusher: pusher, bus: bus}

	err := bus.Subscribe(events.AlertMatchedTopic, w.onAlertMatched)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Webhook) Stop() {
	w.bus.Unsubscribe(events.AlertMatchedTopic, w.onAlertMatched)
	w.pusher.Stop()
}

func (w *Webhook) onAlertMatched(event events.AlertMatched) {
	for _, job := range event.Jobs {
		err := w.pusher.Push(webhook.Notification{
			UserID:    event.Alert.UserID,
			AlertID:   event.Alert.ID,
			AlertName: event.Alert.Name,
			JobID:     job.ID,
			Title:     job.Title,
			Company:   job.Company,
			ApplyURL:  job.ApplyURL,
		})
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackend).Errorf("failed to push notification: %v", err)
		}
	}
}
