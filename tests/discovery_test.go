package tests

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/jobradar/discovery/internal/events"
	"github.com/jobradar/discovery/internal/pipeline"
	"github.com/jobradar/discovery/internal/repositories"
	"github.com/jobradar/discovery/internal/sources"
	"github.com/stretchr/testify/assert"
)

var alert = models.Alert{
	UserID:   1,
	Name:     "golang jobs",
	Query:    "golang",
	Criteria: `{"SearchText":"go"}`,
	Active:   true,
}

func clearDb() {
	dbCtx.DB.Exec("DELETE from notified_matches WHERE TRUE")
	dbCtx.DB.Exec("DELETE from saved_jobs WHERE TRUE")
	dbCtx.DB.Exec("DELETE from applications WHERE TRUE")
}

// same posting advertised on two boards under one canonical identity
func crossPostedJob(source string) models.Job {
	return models.Job{
		ID:      models.NewJobID("acme-board", "ext-42"),
		Title:   "Go Developer",
		Company: "Acme",
		Salary:  models.SalaryRange{Min: 100000, Max: 150000, Currency: "USD"},
		Source:  source,
	}
}

func Test_Discovery_CrossPostedJobCollapsesAndNotifiesOnce(t *testing.T) {

	defer clearDb()

	notifications := 0
	bus := EventBus.New()
	_ = bus.Subscribe(events.AlertMatchedTopic, func(event events.AlertMatched) {
		notifications += len(event.Jobs)
	})

	alerts := repositories.NewAlertsRepository(dbCtx.DB)
	notified := repositories.NewNotificationsRepository(dbCtx.DB)
	matcher := pipeline.NewAlertMatcher(bus, alerts, notified)

	boardA := &mockConnector{name: "boardA", jobs: []models.Job{crossPostedJob("boardA")}}
	boardB := &mockConnector{name: "boardB", jobs: []models.Job{crossPostedJob("boardB")}}

	orchestrator := pipeline.NewOrchestrator([]sources.Connector{boardA, boardB}, nil, matcher, nil)

	result, err := orchestrator.Search(context.Background(), models.SearchParams{Query: "golang"})
	assert.NoError(t, err)
	assert.Len(t, result.Jobs, 1)
	assert.Equal(t, 1, result.NewCount)

	bus.WaitAsync()
	assert.Equal(t, 1, notifications)

	// a later refresh rediscovers the same posting: nothing new, no re-notify
	result, err = orchestrator.Refresh(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.NewCount)

	bus.WaitAsync()
	assert.Equal(t, 1, notifications)
}

func Test_Discovery_FilterAndSortOverWorkingSet(t *testing.T) {

	defer clearDb()

	connector := &mockConnector{name: "board", jobs: []models.Job{
		{ID: "high", Title: "Go Lead", Salary: models.SalaryRange{Min: 140000, Max: 180000}},
		{ID: "mid", Title: "Go Developer", Salary: models.SalaryRange{Min: 100000, Max: 150000}},
		{ID: "low", Title: "Go Intern", Salary: models.SalaryRange{Min: 30000, Max: 40000}},
	}}
	orchestrator := pipeline.NewOrchestrator([]sources.Connector{connector}, nil, nil, nil)

	_, err := orchestrator.Search(context.Background(), models.SearchParams{Query: "golang"})
	assert.NoError(t, err)

	visible := orchestrator.Results(models.JobFilters{
		SalaryRange: models.SalaryRange{Min: 90000, Max: 120000},
	}, pipeline.SortBySalaryLowest)

	assert.Len(t, visible, 2)
	assert.Equal(t, "mid", visible[0].ID)
	assert.Equal(t, "high", visible[1].ID)
}

func Test_Discovery_ApplyIsIdempotentAgainstRealStore(t *testing.T) {

	defer clearDb()

	backend := repositories.NewBackend(dbCtx.DB)
	tracker := pipeline.NewApplicationStateTracker(backend, 1)
	assert.NoError(t, tracker.Refresh(context.Background()))

	job := models.Job{ID: "job-1", Title: "Go Developer"}

	err := tracker.Apply(context.Background(), job, pipeline.ApplicationMeta{Resume: "cv.pdf", Note: "referral"})
	assert.NoError(t, err)

	err = tracker.Apply(context.Background(), job, pipeline.ApplicationMeta{})
	assert.ErrorIs(t, err, pipeline.ErrAlreadyApplied)

	// the persisted state survives a reload
	fresh := pipeline.NewApplicationStateTracker(backend, 1)
	assert.NoError(t, fresh.Refresh(context.Background()))
	assert.ErrorIs(t, fresh.Apply(context.Background(), job, pipeline.ApplicationMeta{}), pipeline.ErrAlreadyApplied)
}

func Test_Discovery_SavedStateAnnotatesResults(t *testing.T) {

	defer clearDb()

	backend := repositories.NewBackend(dbCtx.DB)
	tracker := pipeline.NewApplicationStateTracker(backend, 1)
	assert.NoError(t, tracker.Refresh(context.Background()))

	connector := &mockConnector{name: "board", jobs: []models.Job{
		{ID: "a", Title: "Go Developer"},
		{ID: "b", Title: "Go Lead"},
	}}
	orchestrator := pipeline.NewOrchestrator([]sources.Connector{connector}, nil, nil, tracker)

	_, err := orchestrator.Search(context.Background(), models.SearchParams{Query: "golang"})
	assert.NoError(t, err)

	saved, err := tracker.ToggleSave(context.Background(), models.Job{ID: "a", Title: "Go Developer"})
	assert.NoError(t, err)
	assert.True(t, saved)

	visible := orchestrator.Results(models.JobFilters{}, pipeline.SortByRelevance)
	assert.Len(t, visible, 2)
	for _, job := range visible {
		assert.Equal(t, job.ID == "a", job.Saved)
	}
}
