package pipeline

import (
	"testing"
	"time"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func Test_WorkingSet_Merge_ReturnsOnlyNewJobs(t *testing.T) {

	set := NewWorkingSet()

	added := set.Merge([]models.Job{{ID: "a"}, {ID: "b"}})
	assert.Len(t, added, 2)

	added = set.Merge([]models.Job{{ID: "b"}, {ID: "c"}})
	assert.Len(t, added, 1)
	assert.Equal(t, "c", added[0].ID)
	assert.Equal(t, 3, set.Len())
}

func Test_WorkingSet_Merge_SameBatchTwice_IsIdempotent(t *testing.T) {

	set := NewWorkingSet()
	batch := []models.Job{{ID: "a", Title: "Go Developer"}, {ID: "b", Title: "Backend Engineer"}}

	set.Merge(batch)
	added := set.Merge(batch)

	assert.Empty(t, added)
	assert.Equal(t, 2, set.Len())
	assert.Len(t, set.Snapshot(), 2)
}

func Test_WorkingSet_Merge_DeduplicatesAcrossSources(t *testing.T) {

	set := NewWorkingSet()
	id := models.NewJobID("remotive", "ext-1")

	set.Merge([]models.Job{{ID: id, Title: "Go Developer", Source: "remotive"}})
	added := set.Merge([]models.Job{{ID: id, Title: "Go Developer", Source: "adzuna",
		Salary: models.SalaryRange{Min: 100000, Max: 150000, Currency: "USD"}}})

	assert.Empty(t, added)
	assert.Equal(t, 1, set.Len())

	job, found := set.Get(id)
	assert.True(t, found)
	assert.Equal(t, 100000, job.Salary.Min)
}

func Test_WorkingSet_Merge_OverlaysOnlyPresentFields(t *testing.T) {

	set := NewWorkingSet()
	set.Merge([]models.Job{{
		ID:       "a",
		Title:    "Go Developer",
		Company:  "Acme",
		Location: "Berlin",
		Skills:   []string{"go", "sql"},
	}})

	set.Merge([]models.Job{{ID: "a", Company: "Acme Inc"}})

	job, _ := set.Get("a")
	assert.Equal(t, "Acme Inc", job.Company)
	assert.Equal(t, "Go Developer", job.Title)
	assert.Equal(t, "Berlin", job.Location)
	assert.Equal(t, []string{"go", "sql"}, job.Skills)
}

func Test_WorkingSet_Merge_PreservesDiscoveryMetadata(t *testing.T) {

	set := NewWorkingSet()
	firstSeen := time.Now().Add(-time.Hour)

	set.Merge([]models.Job{{ID: "a", Title: "Go Developer", FirstSeenAt: firstSeen, Saved: true}})
	set.Merge([]models.Job{{ID: "a", Title: "Senior Go Developer"}})

	job, _ := set.Get("a")
	assert.Equal(t, "Senior Go Developer", job.Title)
	assert.Equal(t, firstSeen, job.FirstSeenAt)
	assert.True(t, job.Saved)
}

func Test_WorkingSet_Merge_SetsFirstSeenAt(t *testing.T) {

	set := NewWorkingSet()
	set.Merge([]models.Job{{ID: "a"}})

	job, _ := set.Get("a")
	assert.False(t, job.FirstSeenAt.IsZero())
}

func Test_WorkingSet_Merge_SkipsJobsWithoutID(t *testing.T) {

	set := NewWorkingSet()
	added := set.Merge([]models.Job{{Title: "no id"}, {ID: "a"}})

	assert.Len(t, added, 1)
	assert.Equal(t, 1, set.Len())
}

func Test_WorkingSet_Snapshot_KeepsInsertionOrder(t *testing.T) {

	set := NewWorkingSet()
	set.Merge([]models.Job{{ID: "c"}, {ID: "a"}})
	set.Merge([]models.Job{{ID: "b"}, {ID: "a"}})

	snapshot := set.Snapshot()
	assert.Equal(t, []string{"c", "a", "b"}, []string{snapshot[0].ID, snapshot[1].ID, snapshot[2].ID})
}

func Test_WorkingSet_Snapshot_IsACopy(t *testing.T) {

	set := NewWorkingSet()
	set.Merge([]models.Job{{ID: "a", Title: "Go Developer"}})

	snapshot := set.Snapshot()
	set.Update(models.Job{ID: "a", Title: "Changed"})

	assert.Equal(t, "Go Developer", snapshot[0].Title)
}

func Test_WorkingSet_Update_KeepsPositionAndIgnoresUnknown(t *testing.T) {

	set := NewWorkingSet()
	set.Merge([]models.Job{{ID: "a"}, {ID: "b"}})

	set.Update(models.Job{ID: "a", MatchScore: 80})
	set.Update(models.Job{ID: "ghost", MatchScore: 99})

	snapshot := set.Snapshot()
	assert.Equal(t, "a", snapshot[0].ID)
	assert.Equal(t, 80, snapshot[0].MatchScore)
	assert.Equal(t, 2, set.Len())
}

func Test_WorkingSet_RemoveOlderThan_AgesOutStalePostings(t *testing.T) {

	set := NewWorkingSet()
	set.Merge([]models.Job{
		{ID: "old", FirstSeenAt: time.Now().Add(-48 * time.Hour)},
		{ID: "fresh", FirstSeenAt: time.Now()},
	})

	removed := set.RemoveOlderThan(time.Now().Add(-24 * time.Hour))

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, set.Len())
	_, found := set.Get("fresh")
	assert.True(t, found)
	_, found = set.Get("old")
	assert.False(t, found)
}

func Test_WorkingSet_Clear_EmptiesTheSet(t *testing.T) {

	set := NewWorkingSet()
	set.Merge([]models.Job{{ID: "a"}})
	set.Clear()

	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Snapshot())
}
