package pipeline

import (
	"testing"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func filterFixture() []models.Job {
	return []models.Job{
		{
			ID:             "go-remote",
			Title:          "Go Developer",
			Company:        "Acme",
			Location:       "Berlin",
			Salary:         models.SalaryRange{Min: 100000, Max: 150000, Currency: "USD"},
			EmploymentType: models.FullTime,
			Experience:     models.Mid,
			WorkModel:      models.Remote,
			Skills:         []string{"Go", "PostgreSQL"},
		},
		{
			ID:             "java-onsite",
			Title:          "Java Engineer",
			Company:        "Globex",
			Location:       "Munich",
			Salary:         models.SalaryRange{Min: 60000, Max: 80000, Currency: "EUR"},
			EmploymentType: models.Contract,
			Experience:     models.Senior,
			WorkModel:      models.Onsite,
			Skills:         []string{"Java"},
			Benefits:       []string{"health insurance"},
		},
		{
			ID:         "intern",
			Title:      "Engineering Intern",
			Company:    "Initech",
			Location:   "Berlin",
			Experience: models.Intern,
			WorkModel:  models.Hybrid,
		},
	}
}

func Test_ApplyFilters_EmptyFilter_ReturnsAllJobs(t *testing.T) {

	jobs := filterFixture()
	visible := ApplyFilters(jobs, models.JobFilters{}, nil)

	assert.Len(t, visible, len(jobs))
}

func Test_ApplyFilters_SearchText_MatchesTitleCompanyAndSkills(t *testing.T) {

	jobs := filterFixture()

	byTitle := ApplyFilters(jobs, models.JobFilters{SearchText: "go devel"}, nil)
	assert.Len(t, byTitle, 1)
	assert.Equal(t, "go-remote", byTitle[0].ID)

	byCompany := ApplyFilters(jobs, models.JobFilters{SearchText: "globex"}, nil)
	assert.Len(t, byCompany, 1)

	bySkill := ApplyFilters(jobs, models.JobFilters{SearchText: "postgres"}, nil)
	assert.Len(t, bySkill, 1)
}

func Test_ApplyFilters_PredicatesCombineAsConjunction(t *testing.T) {

	jobs := filterFixture()
	filters := models.JobFilters{
		Location:   "berlin",
		RemoteOnly: true,
	}

	visible := ApplyFilters(jobs, filters, nil)

	assert.Len(t, visible, 1)
	assert.Equal(t, "go-remote", visible[0].ID)
}

func Test_ApplyFilters_SalaryRangesIntersectOnOverlap(t *testing.T) {

	jobs := []models.Job{{ID: "a", Salary: models.SalaryRange{Min: 100000, Max: 150000}}}

	overlapping := ApplyFilters(jobs, models.JobFilters{
		SalaryRange: models.SalaryRange{Min: 90000, Max: 120000},
	}, nil)
	assert.Len(t, overlapping, 1)

	disjoint := ApplyFilters(jobs, models.JobFilters{
		SalaryRange: models.SalaryRange{Min: 160000, Max: 200000},
	}, nil)
	assert.Empty(t, disjoint)
}

func Test_ApplyFilters_UnknownSalary_PassesSalaryFilter(t *testing.T) {

	jobs := []models.Job{{ID: "unknown"}}

	visible := ApplyFilters(jobs, models.JobFilters{
		SalaryRange: models.SalaryRange{Min: 100000, Max: 200000},
	}, nil)

	assert.Len(t, visible, 1)
}

func Test_ApplyFilters_JobTypesAndExperienceLevels(t *testing.T) {

	jobs := filterFixture()

	byType := ApplyFilters(jobs, models.JobFilters{JobTypes: []models.EmploymentType{models.Contract}}, nil)
	assert.Len(t, byType, 1)
	assert.Equal(t, "java-onsite", byType[0].ID)

	byLevel := ApplyFilters(jobs, models.JobFilters{
		ExperienceLevels: []models.ExperienceLevel{models.Mid, models.Senior},
	}, nil)
	assert.Len(t, byLevel, 2)
}

func Test_ApplyFilters_HideApplied_UsesAppliedIDs(t *testing.T) {

	jobs := filterFixture()
	applied := map[string]bool{"go-remote": true}

	visible := ApplyFilters(jobs, models.JobFilters{HideApplied: true}, applied)

	assert.Len(t, visible, 2)
	for _, job := range visible {
		assert.NotEqual(t, "go-remote", job.ID)
	}
}

func Test_ApplyFilters_Benefits_MatchCaseInsensitive(t *testing.T) {

	jobs := filterFixture()
	visible := ApplyFilters(jobs, models.JobFilters{Benefits: []string{"Health"}}, nil)

	assert.Len(t, visible, 1)
	assert.Equal(t, "java-onsite", visible[0].ID)
}

func Test_ApplyFilters_DoesNotMutateInput(t *testing.T) {

	jobs := filterFixture()
	ApplyFilters(jobs, models.JobFilters{RemoteOnly: true}, nil)

	assert.Len(t, jobs, 3)
	assert.Equal(t, "go-remote", jobs[0].ID)
}
