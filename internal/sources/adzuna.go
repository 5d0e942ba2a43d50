package sources

import (
	"context"
	"strings"

	adzunaclient "github.com/jobradar/discovery/internal/clients/adzuna"
	"github.com/jobradar/discovery/internal/domain/models"
)

const adzunaSourceName = "adzuna"

type adzunaClient interface {
	Search(ctx context.Context, parameters adzunaclient.SearchParameters) ([]adzunaclient.Posting, error)
}

type Adzuna struct {
	client   adzunaClient
	currency string
	pageSize int
}

func NewAdzuna(client adzunaClient, currency string, pageSize int) *Adzuna {
	if currency == "" {
		currency = "USD"
	}
	return &Adzuna{client: client, currency: currency, pageSize: pageSize}
}

func (a *Adzuna) Name() string {
	return adzunaSourceName
}

func (a *Adzuna) Fetch(ctx context.Context, query, location string) ([]models.Job, error) {

	postings, err := a.client.Search(ctx, adzunaclient.SearchParameters{
		What:           query,
		Where:          location,
		SortByDate:     true,
		Page:           1,
		ResultsPerPage: a.pageSize,
	})
	if err != nil {
		return nil, err
	}

	var jobs []models.Job
	for _, posting := range postings {
		job, ok := a.normalize(posting)
		if !ok {
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (a *Adzuna) normalize(posting adzunaclient.Posting) (models.Job, bool) {

	if posting.ID == "" || posting.Title == "" {
		return models.Job{}, false
	}

	workModel := models.Onsite
	if strings.Contains(strings.ToLower(posting.Location.DisplayName), "remote") {
		workModel = models.Remote
	}

	return models.Job{
		ID:             models.NewJobID(adzunaSourceName, posting.ID),
		Title:          posting.Title,
		Company:        posting.Company.DisplayName,
		Location:       posting.Location.DisplayName,
		Salary:         models.SalaryRange{Min: int(posting.SalaryMin), Max: int(posting.SalaryMax), Currency: a.currency},
		EmploymentType: adzunaJobType(posting.ContractTime, posting.ContractType),
		Experience:     inferExperience(posting.Title),
		WorkModel:      workModel,
		Description:    posting.Description,
		PostedAt:       posting.Created.Time,
		Source:         adzunaSourceName,
		ApplyURL:       posting.RedirectURL,
	}, true
}

func adzunaJobType(contractTime, contractType string) models.EmploymentType {
	if strings.EqualFold(contractType, "contract") {
		return models.Contract
	}
	switch strings.ToLower(contractTime) {
	case "part_time":
		return models.PartTime
	default:
		return models.FullTime
	}
}
