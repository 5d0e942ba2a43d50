package events

import "github.com/jobradar/discovery/internal/domain/models"

var AlertMatchedTopic = "AlertMatchedEvent"

type AlertMatched struct {
	Alert models.Alert
	Jobs  []models.Job
}
