package remotive

import (
	"fmt"
	"net/url"
	"strconv"
)

type SearchParameters struct {
	Search   string
	Category string
	Limit    int
}

func (s SearchParameters) Validate() error {

	if s.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	if s.Search != "" {
		params.Add("search", s.Search)
	}

	if s.Category != "" {
		params.Add("category", s.Category)
	}

	if s.Limit != 0 {
		params.Add("limit", strconv.Itoa(s.Limit))
	}

	return params
}
