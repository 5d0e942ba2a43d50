package models

import "fmt"

// SearchParams is the query state owned by the orchestrator: one query in
// flight at a time per session.
type SearchParams struct {
	Query           string
	Location        string
	Page            int
	PageSize        int
	RemoteOnly      bool
	SalaryMin       int
	SalaryMax       int
	JobType         EmploymentType
	ExperienceLevel ExperienceLevel
}

func (p SearchParams) Validate() error {

	if p.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if p.PageSize < 0 || p.PageSize > 100 {
		return fmt.Errorf("page size must be between 0 and 100")
	}

	if p.SalaryMin < 0 || p.SalaryMax < 0 {
		return fmt.Errorf("salary bounds must be non-negative")
	}

	if p.SalaryMax != 0 && p.SalaryMin > p.SalaryMax {
		return fmt.Errorf("salary min exceeds salary max")
	}

	return nil
}

// Equal reports whether two requests describe the same search; the
// orchestrator drops a request arriving mid-flight when it equals the one
// already running.
func (p SearchParams) Equal(other SearchParams) bool {
	return p == other
}
