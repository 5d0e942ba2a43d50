package pipeline

import (
	"context"
	"sync"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/pkg/errors"
)

// ErrAlreadyApplied signals an apply on a job the user already applied to.
// The call is a no-op; no duplicate application record is written.
var ErrAlreadyApplied = errors.New("already applied to this job")

type ApplicationMeta struct {
	Resume string
	Note   string
}

type backendStore interface {
	GetSavedJobIDs(ctx context.Context, userID int64) ([]string, error)
	SaveJob(ctx context.Context, userID int64, job models.Job) error
	UnsaveJob(ctx context.Context, userID int64, jobID string) error
	GetApplications(ctx context.Context, userID int64) ([]models.Application, error)
	ApplyToJob(ctx context.Context, userID int64, job models.Job, meta ApplicationMeta) error
}

// ApplicationStateTracker reconciles saved/applied job ids against the
// backend store. The backend is the source of truth; the local sets are a
// cache kept UI-consistent with optimistic updates.
type ApplicationStateTracker struct {
	backend backendStore
	userID  int64

	mu      sync.Mutex
	saved   map[string]bool
	applied map[string]bool
}

func NewApplicationStateTracker(backend backendStore, userID int64) *ApplicationStateTracker {
	return &ApplicationStateTracker{
		backend: backend,
		userID:  userID,
		saved:   make(map[string]bool),
		applied: make(map[string]bool),
	}
}

// Refresh reloads both id-sets from the backend, replacing the local cache.
func (t *ApplicationStateTracker) Refresh(ctx context.Context) error {

	savedIDs, err := t.backend.GetSavedJobIDs(ctx, t.userID)
	if err != nil {
		return errors.Wrap(err, "failed to load saved jobs")
	}

	applications, err := t.backend.GetApplications(ctx, t.userID)
	if err != nil {
		return errors.Wrap(err, "failed to load applications")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.saved = make(map[string]bool, len(savedIDs))
	for _, id := range savedIDs {
		t.saved[id] = true
	}

	t.applied = make(map[string]bool, len(applications))
	for _, application := range applications {
		t.applied[application.JobID] = true
	}

	return nil
}

// ToggleSave flips the saved state optimistically: the visible set changes
// first, and rolls back if the backend write fails.
func (t *ApplicationStateTracker) ToggleSave(ctx context.Context, job models.Job) (saved bool, err error) {

	t.mu.Lock()
	wasSaved := t.saved[job.ID]
	if wasSaved {
		delete(t.saved, job.ID)
	} else {
		t.saved[job.ID] = true
	}
	t.mu.Unlock()

	if wasSaved {
		err = t.backend.UnsaveJob(ctx, t.userID, job.ID)
	} else {
		err = t.backend.SaveJob(ctx, t.userID, job)
	}

	if err != nil {
		t.mu.Lock()
		if wasSaved {
			t.saved[job.ID] = true
		} else {
			delete(t.saved, job.ID)
		}
		t.mu.Unlock()
		return wasSaved, errors.Wrap(err, "failed to update saved state")
	}

	return !wasSaved, nil
}

// Apply records an application. Applying is one-directional and idempotent:
// a second apply returns ErrAlreadyApplied without touching the backend.
func (t *ApplicationStateTracker) Apply(ctx context.Context, job models.Job, meta ApplicationMeta) error {

	t.mu.Lock()
	if t.applied[job.ID] {
		t.mu.Unlock()
		return ErrAlreadyApplied
	}
	t.applied[job.ID] = true
	t.mu.Unlock()

	if err := t.backend.ApplyToJob(ctx, t.userID, job, meta); err != nil {
		t.mu.Lock()
		delete(t.applied, job.ID)
		t.mu.Unlock()
		return errors.Wrap(err, "failed to record application")
	}

	return nil
}

func (t *ApplicationStateTracker) SavedIDs() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copySet(t.saved)
}

func (t *ApplicationStateTracker) AppliedIDs() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copySet(t.applied)
}

// Annotate joins the id-sets against a snapshot, flagging each job copy.
func (t *ApplicationStateTracker) Annotate(jobs []models.Job) []models.Job {

	t.mu.Lock()
	defer t.mu.Unlock()

	annotated := make([]models.Job, len(jobs))
	for i, job := range jobs {
		job.Saved = t.saved[job.ID]
		job.Applied = t.applied[job.ID]
		annotated[i] = job
	}
	return annotated
}

func copySet(set map[string]bool) map[string]bool {
	duplicate := make(map[string]bool, len(set))
	for id := range set {
		duplicate[id] = true
	}
	return duplicate
}
