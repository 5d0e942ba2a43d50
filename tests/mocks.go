package tests

import (
	"context"
	"sync"

	"github.com/jobradar/discovery/internal/domain/models"
)

type mockConnector struct {
	name string
	jobs []models.Job
	err  error

	mu      sync.Mutex
	fetches int
}

func (m *mockConnector) Name() string {
	return m.name
}

func (m *mockConnector) Fetch(_ context.Context, _, _ string) ([]models.Job, error) {
	m.mu.Lock()
	m.fetches++
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return m.jobs, nil
}
