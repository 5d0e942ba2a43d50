package pipeline

import (
	"testing"
	"time"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func sortFixture() []models.Job {
	now := time.Now()
	return []models.Job{
		{ID: "a", MatchScore: 50, PostedAt: now.Add(-2 * time.Hour), Salary: models.SalaryRange{Min: 50000, Max: 70000}},
		{ID: "b", MatchScore: 90, PostedAt: now, Salary: models.SalaryRange{Min: 90000, Max: 120000}},
		{ID: "c", MatchScore: 70, PostedAt: now.Add(-time.Hour), Salary: models.SalaryRange{Min: 60000, Max: 150000}},
	}
}

func ids(jobs []models.Job) []string {
	result := make([]string, len(jobs))
	for i, job := range jobs {
		result[i] = job.ID
	}
	return result
}

func Test_SortJobs_ByRelevance_HighestScoreFirst(t *testing.T) {
	sorted := SortJobs(sortFixture(), SortByRelevance)
	assert.Equal(t, []string{"b", "c", "a"}, ids(sorted))
}

func Test_SortJobs_ByDate(t *testing.T) {
	sorted := SortJobs(sortFixture(), SortByDateNewest)
	assert.Equal(t, []string{"b", "c", "a"}, ids(sorted))

	sorted = SortJobs(sortFixture(), SortByDateOldest)
	assert.Equal(t, []string{"a", "c", "b"}, ids(sorted))
}

func Test_SortJobs_BySalary(t *testing.T) {
	sorted := SortJobs(sortFixture(), SortBySalaryHighest)
	assert.Equal(t, []string{"c", "b", "a"}, ids(sorted))

	sorted = SortJobs(sortFixture(), SortBySalaryLowest)
	assert.Equal(t, []string{"a", "c", "b"}, ids(sorted))
}

func Test_SortJobs_EqualKeys_KeepInputOrder(t *testing.T) {

	jobs := []models.Job{
		{ID: "first", MatchScore: 80},
		{ID: "second", MatchScore: 80},
		{ID: "third", MatchScore: 80},
	}

	sorted := SortJobs(jobs, SortByRelevance)
	assert.Equal(t, []string{"first", "second", "third"}, ids(sorted))
}

func Test_SortJobs_ReturnsCopy(t *testing.T) {

	jobs := sortFixture()
	SortJobs(jobs, SortByRelevance)

	assert.Equal(t, []string{"a", "b", "c"}, ids(jobs))
}

func Test_ToSortOrder(t *testing.T) {

	order, err := ToSortOrder("salary-highest")
	assert.NoError(t, err)
	assert.Equal(t, SortBySalaryHighest, order)

	_, err = ToSortOrder("alphabetical")
	assert.Error(t, err)
}
