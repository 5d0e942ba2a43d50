package models

import "github.com/samber/lo"

// JobFilters is a user-specified predicate over the working set. Every field
// is optional; a zero value means "no constraint".
type JobFilters struct {
	SearchText       string
	Location         string
	JobTypes         []EmploymentType
	RemoteOnly       bool
	ExperienceLevels []ExperienceLevel
	Education        []string
	SalaryRange      SalaryRange
	Skills           []string
	CompanyTypes     []string
	CompanySizes     []string
	Benefits         []string
	HideApplied      bool
	SponsorsH1B      bool
	SimpleApplyOnly  bool
}

// IsEmpty reports whether no constraint is set at all, in which case the
// filter passes every job unchanged.
func (f JobFilters) IsEmpty() bool {
	return f.SearchText == "" &&
		f.Location == "" &&
		len(f.JobTypes) == 0 &&
		!f.RemoteOnly &&
		len(f.ExperienceLevels) == 0 &&
		len(f.Education) == 0 &&
		f.SalaryRange.Min == 0 && f.SalaryRange.Max == 0 &&
		len(f.Skills) == 0 &&
		len(f.CompanyTypes) == 0 &&
		len(f.CompanySizes) == 0 &&
		len(f.Benefits) == 0 &&
		!f.HideApplied &&
		!f.SponsorsH1B &&
		!f.SimpleApplyOnly
}

func (f JobFilters) HasJobType(t EmploymentType) bool {
	return lo.Contains(f.JobTypes, t)
}

func (f JobFilters) HasExperienceLevel(l ExperienceLevel) bool {
	return lo.Contains(f.ExperienceLevels, l)
}
