package notifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jobradar/discovery/internal/events"
	"github.com/jobradar/discovery/internal/logger"
	log "github.com/sirupsen/logrus"
)

const maxJobsPerMessage = 10

// Telegram delivers alert matches to the alert owner's chat.
type Telegram struct {
	api *botApi.BotAPI
	bus EventBus.Bus
}

func NewTelegram(token string, bus EventBus.Bus) (*Telegram, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	err = botApi.SetLogger(log.StandardLogger())
	if err != nil {
		return nil, err
	}

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	t := &Telegram{api: api, bus: bus}

	err = bus.Subscribe(events.AlertMatchedTopic, t.onAlertMatched)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Telegram) Stop() {
	t.bus.Unsubscribe(events.AlertMatchedTopic, t.onAlertMatched)
}

func (t *Telegram) onAlertMatched(event events.AlertMatched) {
	msg := botApi.NewMessage(event.Alert.UserID, formatMatches(event))
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occured while sending message: %v", err)
	}
}

func formatMatches(event events.AlertMatched) string {

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %v new matching jobs for alert \"%v\":\n", len(event.Jobs), event.Alert.Name))

	for i, job := range event.Jobs {
		if i == maxJobsPerMessage {
			sb.WriteString(fmt.Sprintf("...and %v more\n", len(event.Jobs)-maxJobsPerMessage))
			break
		}
		sb.WriteString(fmt.Sprintf("\n%v at %v", job.Title, job.Company))
		if job.ApplyURL != "" {
			sb.WriteString("\n" + job.ApplyURL)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
