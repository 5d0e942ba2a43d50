package scoring

import (
	"context"
	"strconv"
	"strings"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/jobradar/discovery/internal/logger"
	log "github.com/sirupsen/logrus"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

// AIScorer asks the model to grade a posting against the user profile on a
// 0-100 scale. It wraps a fallback scorer: any model failure or unparsable
// answer falls through to the lexical score, so scoring never blocks a
// search.
type AIScorer struct {
	client   aiClient
	profile  Profile
	fallback *ProfileScorer
}

func NewAIScorer(client aiClient, profile Profile) *AIScorer {
	return &AIScorer{
		client:   client,
		profile:  profile,
		fallback: NewProfileScorer(profile),
	}
}

func (s *AIScorer) Score(ctx context.Context, job models.Job) int {

	response, err := s.client.GenerateResponse(ctx, s.scoreRequest(job))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("failed to score job %v: %v", job.ID, err)
		return s.fallback.Score(ctx, job)
	}

	score, err := parseScore(response)
	if err != nil {
		log.Warnf("unparsable score %q for job %v: %v", response, job.ID, err)
		return s.fallback.Score(ctx, job)
	}
	return score
}

func (s *AIScorer) scoreRequest(job models.Job) string {

	var b strings.Builder
	b.WriteString("Job title: " + job.Title)
	b.WriteString(" Company: " + job.Company)
	if len(job.Skills) != 0 {
		b.WriteString(" Required skills: " + strings.Join(job.Skills, ", "))
	}
	b.WriteString(" Candidate skills: " + strings.Join(s.profile.Skills, ", "))
	if len(s.profile.DesiredTitles) != 0 {
		b.WriteString(" Candidate is looking for: " + strings.Join(s.profile.DesiredTitles, ", "))
	}
	b.WriteString(" Rate how well this job matches the candidate on a scale from 0 to 100. " +
		"Answer with the number only.")
	return b.String()
}

func parseScore(response string) (int, error) {

	response = strings.TrimSpace(strings.Trim(strings.TrimSpace(response), "*"))
	score, err := strconv.Atoi(response)
	if err != nil {
		return 0, err
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
