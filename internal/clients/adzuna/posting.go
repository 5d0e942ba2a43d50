package adzuna

import (
	"encoding/json"
	"fmt"
	"time"
)

// Posting is a single Adzuna listing as returned by the search endpoint.
type Posting struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Company      Company    `json:"company"`
	Location     Location   `json:"location"`
	SalaryMin    float64    `json:"salary_min"`
	SalaryMax    float64    `json:"salary_max"`
	RedirectURL  string     `json:"redirect_url"`
	Created      CustomTime `json:"created"`
	ContractTime string     `json:"contract_time"` // full_time / part_time
	ContractType string     `json:"contract_type"` // permanent / contract
}

type Company struct {
	DisplayName string `json:"display_name"`
}

type Location struct {
	DisplayName string `json:"display_name"`
}

type CustomTime struct {
	time.Time
}

func (dt *CustomTime) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	t, err := time.Parse("2006-01-02T15:04:05Z", str)
	if err != nil {
		return fmt.Errorf("parsing time %s: %v", str, err)
	}
	dt.Time = t
	return nil
}
