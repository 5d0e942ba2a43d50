package sources

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jobradar/discovery/internal/clients/remotive"
	"github.com/jobradar/discovery/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

const remotiveSourceName = "remotive"

type remotiveClient interface {
	GetJobs(ctx context.Context, parameters remotive.SearchParameters) ([]remotive.Posting, error)
}

// Remotive adapts the Remotive API to the Connector contract. The API has no
// location parameter, so location narrowing happens client-side; responses
// are cached per query because the API often returns the same full listing.
type Remotive struct {
	client   remotiveClient
	pageSize int
	cache    *gocache.Cache
}

func NewRemotive(client remotiveClient, pageSize int) *Remotive {
	return &Remotive{
		client:   client,
		pageSize: pageSize,
		cache:    gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *Remotive) Name() string {
	return remotiveSourceName
}

func (r *Remotive) Fetch(ctx context.Context, query, location string) ([]models.Job, error) {

	postings, err := r.getPostings(ctx, query)
	if err != nil {
		return nil, err
	}

	var jobs []models.Job
	for _, posting := range postings {
		if location != "" && !matchesLocation(posting.Location, location) {
			continue
		}
		job, ok := r.normalize(posting)
		if !ok {
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (r *Remotive) getPostings(ctx context.Context, query string) ([]remotive.Posting, error) {

	if cached, found := r.cache.Get(query); found {
		return cached.([]remotive.Posting), nil
	}

	postings, err := r.client.GetJobs(ctx, remotive.SearchParameters{
		Search: query,
		Limit:  r.pageSize,
	})
	if err != nil {
		return nil, err
	}

	if err = r.cache.Add(query, postings, gocache.DefaultExpiration); err != nil {
		log.Errorf("failed to cache remotive postings: %v", err)
	}
	return postings, nil
}

// normalize maps a raw posting to the canonical record. Malformed records
// report ok=false and are skipped, never fatal.
func (r *Remotive) normalize(posting remotive.Posting) (models.Job, bool) {

	if posting.ID == 0 || posting.Title == "" {
		return models.Job{}, false
	}

	externalID := strconv.Itoa(posting.ID)
	salaryMin, salaryMax := parseSalaryText(posting.Salary)

	return models.Job{
		ID:             models.NewJobID(remotiveSourceName, externalID),
		Title:          posting.Title,
		Company:        posting.CompanyName,
		Location:       defaultString(posting.Location, "Remote"),
		Salary:         models.SalaryRange{Min: salaryMin, Max: salaryMax, Currency: "USD"},
		EmploymentType: remotiveJobType(posting.JobType),
		Experience:     inferExperience(posting.Title),
		WorkModel:      models.Remote,
		Skills:         posting.Tags,
		Description:    posting.Description,
		PostedAt:       posting.PublishedAt.Time,
		Source:         remotiveSourceName,
		ApplyURL:       posting.URL,
	}, true
}

func remotiveJobType(jobType string) models.EmploymentType {
	switch strings.ToLower(jobType) {
	case "full_time", "full-time":
		return models.FullTime
	case "part_time", "part-time":
		return models.PartTime
	case "contract", "freelance":
		return models.Contract
	case "internship":
		return models.Internship
	default:
		return models.FullTime
	}
}

func matchesLocation(candidateLocation, wanted string) bool {
	candidateLocation = strings.ToLower(candidateLocation)
	if candidateLocation == "" || strings.Contains(candidateLocation, "worldwide") ||
		strings.Contains(candidateLocation, "anywhere") {
		return true
	}
	return strings.Contains(candidateLocation, strings.ToLower(wanted))
}

var salaryNumberPattern = regexp.MustCompile(`\d[\d,]*`)

// parseSalaryText extracts inclusive bounds from free text like
// "$120,000 - $150,000". Unknown salary yields {0,0}.
func parseSalaryText(text string) (int, int) {

	numbers := salaryNumberPattern.FindAllString(text, 2)
	if len(numbers) == 0 {
		return 0, 0
	}

	parse := func(s string) int {
		n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
		return n
	}

	min := parse(numbers[0])
	max := min
	if len(numbers) > 1 {
		max = parse(numbers[1])
	}
	if max < min {
		min, max = max, min
	}
	return min, max
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
