package sources

import (
	"context"
	"testing"
	"time"

	adzunaclient "github.com/jobradar/discovery/internal/clients/adzuna"
	"github.com/jobradar/discovery/internal/clients/remotive"
	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRemotiveClient struct {
	postings []remotive.Posting
	calls    int
}

func (s *stubRemotiveClient) GetJobs(ctx context.Context, parameters remotive.SearchParameters) ([]remotive.Posting, error) {
	s.calls++
	return s.postings, nil
}

type stubAdzunaClient struct {
	postings []adzunaclient.Posting
}

func (s *stubAdzunaClient) Search(ctx context.Context, parameters adzunaclient.SearchParameters) ([]adzunaclient.Posting, error) {
	return s.postings, nil
}

func Test_Remotive_Fetch_NormalizesPostings(t *testing.T) {

	client := &stubRemotiveClient{postings: []remotive.Posting{
		{
			ID:          42,
			Title:       "Senior Go Engineer",
			CompanyName: "Acme",
			JobType:     "full_time",
			Tags:        []string{"go", "grpc"},
			Salary:      "$100,000 - $130,000",
			PublishedAt: remotive.CustomTime{Time: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		},
	}}

	connector := NewRemotive(client, 50)
	jobs, err := connector.Fetch(context.Background(), "go", "")
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, models.NewJobID("remotive", "42"), job.ID)
	assert.Equal(t, models.FullTime, job.EmploymentType)
	assert.Equal(t, models.Senior, job.Experience)
	assert.Equal(t, models.Remote, job.WorkModel)
	assert.Equal(t, 100000, job.Salary.Min)
	assert.Equal(t, 130000, job.Salary.Max)
	assert.Equal(t, "Remote", job.Location)
}

func Test_Remotive_Fetch_SameExternalID_YieldsSameJobID(t *testing.T) {

	posting := remotive.Posting{ID: 7, Title: "Engineer"}
	client := &stubRemotiveClient{postings: []remotive.Posting{posting}}

	connector := NewRemotive(client, 50)
	first, err := connector.Fetch(context.Background(), "engineer", "")
	require.NoError(t, err)
	second, err := connector.Fetch(context.Background(), "engineer", "")
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID)
}

func Test_Remotive_Fetch_CachesResponsePerQuery(t *testing.T) {

	client := &stubRemotiveClient{postings: []remotive.Posting{{ID: 1, Title: "Engineer"}}}

	connector := NewRemotive(client, 50)
	_, _ = connector.Fetch(context.Background(), "go", "")
	_, _ = connector.Fetch(context.Background(), "go", "")

	assert.Equal(t, 1, client.calls)
}

func Test_Remotive_Fetch_SkipsMalformedPostings(t *testing.T) {

	client := &stubRemotiveClient{postings: []remotive.Posting{
		{ID: 0, Title: "missing id"},
		{ID: 2, Title: ""},
		{ID: 3, Title: "Valid"},
	}}

	connector := NewRemotive(client, 50)
	jobs, err := connector.Fetch(context.Background(), "any", "")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Valid", jobs[0].Title)
}

func Test_Remotive_Fetch_FiltersByLocation(t *testing.T) {

	client := &stubRemotiveClient{postings: []remotive.Posting{
		{ID: 1, Title: "A", Location: "Europe"},
		{ID: 2, Title: "B", Location: "Worldwide"},
		{ID: 3, Title: "C", Location: "USA Only"},
	}}

	connector := NewRemotive(client, 50)
	jobs, err := connector.Fetch(context.Background(), "any", "europe")
	require.NoError(t, err)

	require.Len(t, jobs, 2)
	assert.Equal(t, "A", jobs[0].Title)
	assert.Equal(t, "B", jobs[1].Title)
}

func Test_Adzuna_Fetch_NormalizesPostings(t *testing.T) {

	client := &stubAdzunaClient{postings: []adzunaclient.Posting{
		{
			ID:           "900",
			Title:        "Junior Data Engineer",
			Company:      adzunaclient.Company{DisplayName: "Fjord"},
			Location:     adzunaclient.Location{DisplayName: "Remote, US"},
			SalaryMin:    90000,
			SalaryMax:    120000,
			ContractTime: "full_time",
		},
	}}

	connector := NewAdzuna(client, "USD", 50)
	jobs, err := connector.Fetch(context.Background(), "data engineer", "us")
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, models.NewJobID("adzuna", "900"), job.ID)
	assert.Equal(t, models.Entry, job.Experience)
	assert.Equal(t, models.Remote, job.WorkModel)
	assert.Equal(t, 90000, job.Salary.Min)
}

func Test_ParseSalaryText(t *testing.T) {

	cases := []struct {
		text     string
		min, max int
	}{
		{"", 0, 0},
		{"competitive", 0, 0},
		{"$120,000 - $150,000", 120000, 150000},
		{"80000", 80000, 80000},
		{"$90k", 90, 90}, // suffix notation is not expanded
	}

	for _, c := range cases {
		min, max := parseSalaryText(c.text)
		assert.Equal(t, c.min, min, c.text)
		assert.Equal(t, c.max, max, c.text)
	}
}
