package pipeline

import (
	"fmt"
	"sort"

	"github.com/jobradar/discovery/internal/domain/models"
)

type SortOrder string

const (
	SortByRelevance     SortOrder = "relevance"
	SortByDateNewest    SortOrder = "date-newest"
	SortByDateOldest    SortOrder = "date-oldest"
	SortBySalaryHighest SortOrder = "salary-highest"
	SortBySalaryLowest  SortOrder = "salary-lowest"
)

func ToSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortByRelevance, SortByDateNewest, SortByDateOldest, SortBySalaryHighest, SortBySalaryLowest:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("invalid sort order: %v", s)
	}
}

// SortJobs orders a snapshot by the selected comparator into a new slice.
// The sort is stable, so equal keys keep their relative input order; for
// relevance over a working-set snapshot that makes merge insertion order the
// tiebreak.
func SortJobs(jobs []models.Job, order SortOrder) []models.Job {

	sorted := make([]models.Job, len(jobs))
	copy(sorted, jobs)

	var less func(a, b models.Job) bool

	switch order {
	case SortByDateNewest:
		less = func(a, b models.Job) bool { return a.PostedAt.After(b.PostedAt) }
	case SortByDateOldest:
		less = func(a, b models.Job) bool { return a.PostedAt.Before(b.PostedAt) }
	case SortBySalaryHighest:
		less = func(a, b models.Job) bool { return a.Salary.Max > b.Salary.Max }
	case SortBySalaryLowest:
		less = func(a, b models.Job) bool { return a.Salary.Min < b.Salary.Min }
	default: // relevance
		less = func(a, b models.Job) bool { return a.MatchScore > b.MatchScore }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
