package models

import (
	"encoding/json"
	"time"
)

// Alert is a user-owned saved search. The discovery runner derives search
// queries from active alerts, and the alert matcher evaluates their criteria
// against every batch of newly merged postings.
type Alert struct {
	ID            int
	UserID        int64
	Name          string
	Query         string
	Location      string
	Criteria      string // JobFilters serialized as JSON
	Active        bool
	LastCheckedAt time.Time
	CreatedAt     time.Time
}

func NewAlert(userID int64, name, query, location string, criteria JobFilters) (*Alert, error) {
	raw, err := json.Marshal(criteria)
	if err != nil {
		return nil, err
	}
	return &Alert{
		UserID:   userID,
		Name:     name,
		Query:    query,
		Location: location,
		Criteria: string(raw),
		Active:   true,
	}, nil
}

func (a *Alert) Filters() (JobFilters, error) {
	var filters JobFilters
	if a.Criteria == "" {
		return filters, nil
	}
	err := json.Unmarshal([]byte(a.Criteria), &filters)
	return filters, err
}

func (a *Alert) SearchParams(pageSize int) SearchParams {
	return SearchParams{
		Query:    a.Query,
		Location: a.Location,
		PageSize: pageSize,
	}
}
