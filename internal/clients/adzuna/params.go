package adzuna

import (
	"fmt"
	"net/url"
	"strconv"
)

type SearchParameters struct {
	What          string
	Where         string
	SalaryMin     int
	SalaryMax     int
	FullTimeOnly  bool
	SortByDate    bool
	Page          int
	ResultsPerPage int
}

func (s SearchParameters) Validate() error {

	if s.Page < 1 {
		return fmt.Errorf("page numbering starts at 1")
	}

	if s.ResultsPerPage < 0 || s.ResultsPerPage > 50 {
		return fmt.Errorf("results per page must be between 0 and 50")
	}

	if s.SalaryMax != 0 && s.SalaryMin > s.SalaryMax {
		return fmt.Errorf("salary min exceeds salary max")
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("content-type", "application/json")

	if s.What != "" {
		params.Add("what", s.What)
	}

	if s.Where != "" {
		params.Add("where", s.Where)
	}

	if s.SalaryMin != 0 {
		params.Add("salary_min", strconv.Itoa(s.SalaryMin))
	}

	if s.SalaryMax != 0 {
		params.Add("salary_max", strconv.Itoa(s.SalaryMax))
	}

	if s.FullTimeOnly {
		params.Add("full_time", "1")
	}

	if s.SortByDate {
		params.Add("sort_by", "date")
	}

	if s.ResultsPerPage != 0 {
		params.Add("results_per_page", strconv.Itoa(s.ResultsPerPage))
	}

	return params
}
