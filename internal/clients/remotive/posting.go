package remotive

import (
	"encoding/json"
	"fmt"
	"time"
)

// Posting is a raw remote-jobs listing as the Remotive API returns it.
type Posting struct {
	ID          int        `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	CompanyName string     `json:"company_name"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	JobType     string     `json:"job_type"`
	PublishedAt CustomTime `json:"publication_date"`
	Location    string     `json:"candidate_required_location"`
	Salary      string     `json:"salary"`
	Description string     `json:"description"`
}

type CustomTime struct {
	time.Time
}

func (dt *CustomTime) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, str); err == nil {
			dt.Time = t
			return nil
		}
	}
	return fmt.Errorf("parsing time %s: unsupported layout", str)
}
