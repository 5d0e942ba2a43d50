package pipeline

import (
	"time"

	"github.com/jobradar/discovery/internal/domain/models"
)

// WorkingSet is the identity-unique set of discovered postings: a keyed map
// plus a separate insertion-order list. Insertion order is the tiebreak for
// the relevance sort, so it is kept explicit rather than implied by slice
// scans. The set is not goroutine-safe; the orchestrator owns it behind its
// own lock.
type WorkingSet struct {
	byID  map[string]models.Job
	order []string
}

func NewWorkingSet() *WorkingSet {
	return &WorkingSet{byID: make(map[string]models.Job)}
}

// Merge folds a batch of normalized postings into the set and returns the
// newly added jobs, deduplicated by id. Merging the same batch twice is a
// no-op the second time: no duplicate ids, no duplicate order entries.
//
// For an id already present, fields carried by the incoming record win
// (last-write-wins per field) while discovery metadata of the original entry
// is preserved.
func (w *WorkingSet) Merge(batch []models.Job) (added []models.Job) {

	for _, incoming := range batch {
		if incoming.ID == "" {
			continue
		}

		existing, found := w.byID[incoming.ID]
		if !found {
			if incoming.FirstSeenAt.IsZero() {
				incoming.FirstSeenAt = time.Now()
			}
			w.byID[incoming.ID] = incoming
			w.order = append(w.order, incoming.ID)
			added = append(added, incoming)
			continue
		}

		w.byID[incoming.ID] = mergeJob(existing, incoming)
	}

	return added
}

// mergeJob overlays present (non-zero) fields of incoming onto existing.
// Discovery metadata and saved/applied flags always stay with the original.
func mergeJob(existing, incoming models.Job) models.Job {

	merged := existing

	if incoming.Title != "" {
		merged.Title = incoming.Title
	}
	if incoming.Company != "" {
		merged.Company = incoming.Company
	}
	if incoming.Location != "" {
		merged.Location = incoming.Location
	}
	if incoming.Salary.Min != 0 || incoming.Salary.Max != 0 {
		merged.Salary = incoming.Salary
	}
	if incoming.EmploymentType != "" {
		merged.EmploymentType = incoming.EmploymentType
	}
	if incoming.Experience != "" {
		merged.Experience = incoming.Experience
	}
	if incoming.WorkModel != "" {
		merged.WorkModel = incoming.WorkModel
	}
	if len(incoming.Skills) != 0 {
		merged.Skills = incoming.Skills
	}
	if incoming.Description != "" {
		merged.Description = incoming.Description
	}
	if !incoming.PostedAt.IsZero() {
		merged.PostedAt = incoming.PostedAt
	}
	if incoming.Source != "" {
		merged.Source = incoming.Source
	}
	if incoming.ApplyURL != "" {
		merged.ApplyURL = incoming.ApplyURL
	}
	if incoming.MatchScore != 0 {
		merged.MatchScore = incoming.MatchScore
	}
	if len(incoming.Benefits) != 0 {
		merged.Benefits = incoming.Benefits
	}

	return merged
}

// Snapshot returns the postings in insertion order. The returned slice is a
// copy; readers never see later mutations.
func (w *WorkingSet) Snapshot() []models.Job {
	snapshot := make([]models.Job, 0, len(w.order))
	for _, id := range w.order {
		snapshot = append(snapshot, w.byID[id])
	}
	return snapshot
}

func (w *WorkingSet) Get(id string) (models.Job, bool) {
	job, found := w.byID[id]
	return job, found
}

func (w *WorkingSet) Len() int {
	return len(w.order)
}

// Update replaces a present entry in place, keeping its insertion position.
// Used for match-score recomputation; unknown ids are ignored.
func (w *WorkingSet) Update(job models.Job) {
	if _, found := w.byID[job.ID]; found {
		w.byID[job.ID] = job
	}
}

// RemoveOlderThan ages out postings first seen before the cutoff and reports
// how many were dropped. This is the retention policy: stale postings leave
// by expiry, never by merge.
func (w *WorkingSet) RemoveOlderThan(cutoff time.Time) int {

	kept := w.order[:0]
	removed := 0
	for _, id := range w.order {
		if w.byID[id].FirstSeenAt.Before(cutoff) {
			delete(w.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	w.order = kept
	return removed
}

func (w *WorkingSet) Clear() {
	w.byID = make(map[string]models.Job)
	w.order = nil
}
