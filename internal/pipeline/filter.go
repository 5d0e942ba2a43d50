package pipeline

import (
	"strings"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/samber/lo"
)

// ApplyFilters evaluates the filter specification as a conjunction of
// independent predicates over a snapshot. Each predicate is vacuously true
// when its field is unset, so an empty filter returns the input unchanged
// (as a fresh slice; the snapshot itself is never mutated).
// appliedIDs backs the hide-applied toggle and may be nil.
func ApplyFilters(jobs []models.Job, filters models.JobFilters, appliedIDs map[string]bool) []models.Job {

	visible := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if matchesFilters(job, filters, appliedIDs) {
			visible = append(visible, job)
		}
	}
	return visible
}

func matchesFilters(job models.Job, f models.JobFilters, appliedIDs map[string]bool) bool {

	if f.SearchText != "" && !matchesText(job, f.SearchText) {
		return false
	}

	if f.Location != "" && !containsFold(job.Location, f.Location) {
		return false
	}

	if len(f.JobTypes) != 0 && !f.HasJobType(job.EmploymentType) {
		return false
	}

	if f.RemoteOnly && !job.IsRemote() {
		return false
	}

	if len(f.ExperienceLevels) != 0 && !f.HasExperienceLevel(job.Experience) {
		return false
	}

	if len(f.Education) != 0 && !anyKeywordInDescription(job, f.Education) {
		return false
	}

	if (f.SalaryRange.Min != 0 || f.SalaryRange.Max != 0) && !job.Salary.Intersects(f.SalaryRange) {
		return false
	}

	if len(f.Skills) != 0 && !hasAnySkill(job, f.Skills) {
		return false
	}

	if len(f.CompanyTypes) != 0 && !anyKeywordInDescription(job, f.CompanyTypes) {
		return false
	}

	if len(f.CompanySizes) != 0 && !anyKeywordInDescription(job, f.CompanySizes) {
		return false
	}

	if len(f.Benefits) != 0 && !hasAnyBenefit(job, f.Benefits) {
		return false
	}

	if f.HideApplied && appliedIDs[job.ID] {
		return false
	}

	if f.SponsorsH1B && !job.SponsorsH1B {
		return false
	}

	if f.SimpleApplyOnly && !job.SimpleApply {
		return false
	}

	return true
}

// matchesText searches case-insensitively across title, company and skills.
func matchesText(job models.Job, text string) bool {
	if containsFold(job.Title, text) || containsFold(job.Company, text) {
		return true
	}
	return lo.SomeBy(job.Skills, func(skill string) bool {
		return containsFold(skill, text)
	})
}

func hasAnySkill(job models.Job, wanted []string) bool {
	return lo.SomeBy(wanted, func(w string) bool {
		return lo.SomeBy(job.Skills, func(skill string) bool {
			return strings.EqualFold(skill, w) || containsFold(skill, w)
		})
	})
}

func hasAnyBenefit(job models.Job, wanted []string) bool {
	return lo.SomeBy(wanted, func(w string) bool {
		return lo.SomeBy(job.Benefits, func(benefit string) bool {
			return containsFold(benefit, w)
		})
	})
}

func anyKeywordInDescription(job models.Job, keywords []string) bool {
	return lo.SomeBy(keywords, func(keyword string) bool {
		return containsFold(job.Description, keyword)
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
