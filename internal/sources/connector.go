package sources

import (
	"context"
	"strings"

	"github.com/jobradar/discovery/internal/domain/models"
)

// Connector fetches postings from one external job board for a query and
// location pair and returns them already normalized to the canonical model.
// Implementations must be independently failable: one connector's error never
// concerns another.
type Connector interface {
	Name() string
	Fetch(ctx context.Context, query, location string) ([]models.Job, error)
}

func inferExperience(title string) models.ExperienceLevel {
	title = strings.ToLower(title)
	switch {
	case strings.Contains(title, "intern"):
		return models.Intern
	case strings.Contains(title, "junior") || strings.Contains(title, "entry"):
		return models.Entry
	case strings.Contains(title, "senior") || strings.Contains(title, "staff") ||
		strings.Contains(title, "principal") || strings.Contains(title, "lead"):
		return models.Senior
	case strings.Contains(title, "director") || strings.Contains(title, "vp") ||
		strings.Contains(title, "head of"):
		return models.Executive
	default:
		return models.Mid
	}
}
