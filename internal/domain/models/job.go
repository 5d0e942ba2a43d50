package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type EmploymentType string

const (
	FullTime   EmploymentType = "fullTime"
	PartTime   EmploymentType = "partTime"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
)

type ExperienceLevel string

const (
	Intern    ExperienceLevel = "intern"
	Entry     ExperienceLevel = "entry"
	Mid       ExperienceLevel = "mid"
	Senior    ExperienceLevel = "senior"
	Executive ExperienceLevel = "executive"
)

type WorkModel string

const (
	Remote WorkModel = "remote"
	Hybrid WorkModel = "hybrid"
	Onsite WorkModel = "onsite"
)

type SalaryRange struct {
	Min      int
	Max      int
	Currency string
}

// Intersects reports whether the two inclusive ranges overlap. A range with
// both bounds zero is treated as unknown and intersects everything; a zero
// Max alone means the range is open-ended upward, since sources may publish
// a minimum salary without a maximum.
func (s SalaryRange) Intersects(other SalaryRange) bool {
	if s.Min == 0 && s.Max == 0 {
		return true
	}
	if other.Min == 0 && other.Max == 0 {
		return true
	}
	if s.Max != 0 && other.Min > s.Max {
		return false
	}
	if other.Max != 0 && s.Min > other.Max {
		return false
	}
	return true
}

// Job is the canonical posting record produced by source normalization.
// ID is stable across fetches: the same (source, external id) pair always
// normalizes to the same ID, so postings discovered by different queries
// collapse into one entry on merge.
type Job struct {
	ID             string
	Title          string
	Company        string
	Location       string
	Salary         SalaryRange
	EmploymentType EmploymentType
	Experience     ExperienceLevel
	WorkModel      WorkModel
	Skills         []string
	Description    string
	PostedAt       time.Time
	Source         string
	ApplyURL       string
	MatchScore     int
	SimpleApply    bool
	SponsorsH1B    bool
	Benefits       []string

	// discovery metadata, preserved across merges
	FirstSeenAt time.Time
	Saved       bool
	Applied     bool
}

func (j Job) IsRemote() bool {
	return j.WorkModel == Remote
}

// NewJobID derives the posting identity from its source and the source-native
// id. It is never regenerated for the same posting.
func NewJobID(source, externalID string) string {
	sum := sha256.Sum256([]byte(source + ":" + externalID))
	return hex.EncodeToString(sum[:16])
}
