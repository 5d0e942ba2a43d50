package scoring

import (
	"context"
	"strings"
	"time"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/samber/lo"
)

// Profile is the slice of the user profile the scorer compares against.
type Profile struct {
	Skills        []string
	DesiredTitles []string
	Location      string
}

// ProfileScorer is the default injectable scoring function: a lexical
// comparison of the posting against the user profile, scaled to 0-100.
// Skills overlap dominates, title relevance second, freshness last.
type ProfileScorer struct {
	profile Profile
	now     func() time.Time
}

func NewProfileScorer(profile Profile) *ProfileScorer {
	return &ProfileScorer{profile: profile, now: time.Now}
}

func (s *ProfileScorer) Score(_ context.Context, job models.Job) int {

	score := 50.0*s.skillsOverlap(job) + 30.0*s.titleRelevance(job) + 20.0*s.freshness(job)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}

func (s *ProfileScorer) skillsOverlap(job models.Job) float64 {

	if len(s.profile.Skills) == 0 || len(job.Skills) == 0 {
		return 0
	}

	jobSkills := lo.Map(job.Skills, func(skill string, _ int) string {
		return strings.ToLower(skill)
	})

	matched := lo.CountBy(s.profile.Skills, func(skill string) bool {
		return lo.Contains(jobSkills, strings.ToLower(skill))
	})

	return float64(matched) / float64(len(s.profile.Skills))
}

func (s *ProfileScorer) titleRelevance(job models.Job) float64 {

	if len(s.profile.DesiredTitles) == 0 {
		return 0
	}

	title := strings.ToLower(job.Title)
	for _, wanted := range s.profile.DesiredTitles {
		if strings.Contains(title, strings.ToLower(wanted)) {
			return 1
		}
	}
	return 0
}

func (s *ProfileScorer) freshness(job models.Job) float64 {

	if job.PostedAt.IsZero() {
		return 0
	}

	age := s.now().Sub(job.PostedAt)
	switch {
	case age <= 24*time.Hour:
		return 1
	case age <= 7*24*time.Hour:
		return 0.7
	case age <= 30*24*time.Hour:
		return 0.3
	default:
		return 0
	}
}
