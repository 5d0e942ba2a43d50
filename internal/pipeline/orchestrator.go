package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/jobradar/discovery/internal/logger"
	"github.com/jobradar/discovery/internal/metrics"
	"github.com/jobradar/discovery/internal/sources"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateMerging   State = "merging"
	StateFiltering State = "filtering"
	StateReady     State = "ready"
)

var (
	// ErrSearchInFlight: a request with unchanged parameters arrived while a
	// fan-out was running and was dropped.
	ErrSearchInFlight = errors.New("search already in flight")
	// ErrSearchQueued: a request with different parameters arrived mid-flight
	// and will run right after the current one completes.
	ErrSearchQueued = errors.New("search queued behind in-flight request")
	// ErrSearchSuperseded: a newer request took over; this one's late results
	// were discarded.
	ErrSearchSuperseded = errors.New("search superseded by a newer request")
	// ErrDiscoveryUnavailable: every connector of the fan-out failed.
	ErrDiscoveryUnavailable = errors.New("job discovery is unavailable")
)

// Scorer recomputes a job's match score; the algorithm is injectable.
// Implementations may call out to slow external services, so the orchestrator
// never invokes them while holding its lock.
type Scorer interface {
	Score(ctx context.Context, job models.Job) int
}

// SearchResult is what one completed fan-out produced.
type SearchResult struct {
	Jobs     []models.Job // post-merge snapshot, insertion order
	NewCount int          // postings not previously in the working set
	Warnings []string     // per-connector partial failures
}

// IsEmpty signals the no-results condition, which is distinct from failure:
// every connector answered, none had a matching posting.
func (r *SearchResult) IsEmpty() bool {
	return len(r.Jobs) == 0
}

// Orchestrator owns the working set and coordinates connector fan-out,
// merge, scoring, alert dispatch and snapshot reads. At most one fan-out is
// in flight at a time; a monotonically increasing generation counter fences
// out stale connector responses after supersession.
type Orchestrator struct {
	connectors []sources.Connector
	scorer     Scorer
	matcher    *AlertMatcher
	tracker    *ApplicationStateTracker

	connectorTimeout   time.Duration
	autoDiscoveryDelay time.Duration

	mu            sync.Mutex
	state         State
	set           *WorkingSet
	generation    uint64
	current       models.SearchParams
	pending       *models.SearchParams
	autoScheduled bool
}

func NewOrchestrator(connectors []sources.Connector, scorer Scorer,
	matcher *AlertMatcher, tracker *ApplicationStateTracker) *Orchestrator {

	return &Orchestrator{
		connectors:       connectors,
		scorer:           scorer,
		matcher:          matcher,
		tracker:          tracker,
		connectorTimeout: 15 * time.Second,
		state:            StateIdle,
		set:              NewWorkingSet(),
	}
}

func (o *Orchestrator) SetConnectorTimeout(timeout time.Duration) {
	o.connectorTimeout = timeout
}

// SetAutoDiscoveryDelay enables a one-shot background refresh that fires the
// given delay after the first ready state.
func (o *Orchestrator) SetAutoDiscoveryDelay(delay time.Duration) {
	o.autoDiscoveryDelay = delay
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Search runs one fan-out for the given parameters. Concurrent calls are
// coalesced: identical parameters are dropped with ErrSearchInFlight,
// different ones are queued (ErrSearchQueued) and run immediately after the
// in-flight request completes.
func (o *Orchestrator) Search(ctx context.Context, params models.SearchParams) (*SearchResult, error) {

	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid search parameters")
	}

	o.mu.Lock()
	if o.inFlightLocked() {
		if params.Equal(o.current) {
			o.mu.Unlock()
			return nil, ErrSearchInFlight
		}
		o.pending = &params
		o.mu.Unlock()
		return nil, ErrSearchQueued
	}

	o.generation++
	generation := o.generation
	o.current = params
	o.state = StateSearching
	o.mu.Unlock()

	result, err := o.runSearch(ctx, generation, params)
	o.finishSearch(generation)
	return result, err
}

// Refresh re-runs the current parameters, bypassing the duplicate-drop rule.
// It is dropped only while another search is in flight.
func (o *Orchestrator) Refresh(ctx context.Context) (*SearchResult, error) {

	o.mu.Lock()
	if o.inFlightLocked() {
		o.mu.Unlock()
		return nil, ErrSearchInFlight
	}

	o.generation++
	generation := o.generation
	params := o.current
	o.state = StateSearching
	o.mu.Unlock()

	result, err := o.runSearch(ctx, generation, params)
	o.finishSearch(generation)
	return result, err
}

func (o *Orchestrator) inFlightLocked() bool {
	return o.state == StateSearching || o.state == StateMerging || o.state == StateFiltering
}

type connectorResult struct {
	name string
	jobs []models.Job
	err  error
}

func (o *Orchestrator) runSearch(ctx context.Context, generation uint64,
	params models.SearchParams) (*SearchResult, error) {

	start := time.Now()

	results := make(chan connectorResult, len(o.connectors))
	for _, connector := range o.connectors {
		go o.fetchFromConnector(ctx, connector, params, results)
	}

	var warnings []string
	var delta []models.Job
	failures := 0

	for range o.connectors {
		result := <-results
		if result.err != nil {
			failures++
			warnings = append(warnings, fmt.Sprintf("%s: %v", result.name, result.err))
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeConnector).
				Errorf("connector %v failed: %v", result.name, result.err)
			continue
		}

		// merges apply in arrival order; stale generations are discarded
		added, current := o.mergeBatch(generation, result.jobs)
		if !current {
			return nil, ErrSearchSuperseded
		}
		delta = append(delta, added...)
	}

	if len(o.connectors) > 0 && failures == len(o.connectors) {
		return nil, ErrDiscoveryUnavailable
	}

	snapshot, current := o.rescore(ctx, generation, delta)
	if !current {
		return nil, ErrSearchSuperseded
	}

	if o.matcher != nil {
		o.matcher.Match(ctx, delta)
	}

	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.DiscoveredJobsCounter.Add(float64(len(delta)))
	log.Infof("search for %q finished: %v postings, %v new, %v connector failures",
		params.Query, len(snapshot), len(delta), failures)

	return &SearchResult{Jobs: snapshot, NewCount: len(delta), Warnings: warnings}, nil
}

func (o *Orchestrator) fetchFromConnector(ctx context.Context, connector sources.Connector,
	params models.SearchParams, results chan<- connectorResult) {

	fetchCtx, cancel := context.WithTimeout(ctx, o.connectorTimeout)
	defer cancel()

	start := time.Now()
	jobs, err := connector.Fetch(fetchCtx, params.Query, params.Location)
	metrics.FetchDuration.WithLabelValues(connector.Name()).Observe(time.Since(start).Seconds())

	results <- connectorResult{name: connector.Name(), jobs: jobs, err: err}
}

// mergeBatch folds one connector's batch into the working set, unless the
// generation moved on, in which case the batch is dropped.
func (o *Orchestrator) mergeBatch(generation uint64, jobs []models.Job) ([]models.Job, bool) {

	o.mu.Lock()
	defer o.mu.Unlock()

	if generation != o.generation {
		return nil, false
	}

	o.state = StateMerging
	return o.set.Merge(jobs), true
}

// rescore recomputes match scores for the newly merged postings and returns
// the final snapshot. The scorer runs without the lock held: snapshot reads
// and state queries stay responsive however slow scoring is.
func (o *Orchestrator) rescore(ctx context.Context, generation uint64, delta []models.Job) ([]models.Job, bool) {

	o.mu.Lock()
	if generation != o.generation {
		o.mu.Unlock()
		return nil, false
	}
	o.state = StateFiltering
	o.mu.Unlock()

	if o.scorer != nil {
		for i := range delta {
			delta[i].MatchScore = o.scorer.Score(ctx, delta[i])
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if generation != o.generation {
		return nil, false
	}

	if o.scorer != nil {
		for _, job := range delta {
			o.set.Update(job)
		}
	}

	return o.set.Snapshot(), true
}

// finishSearch transitions back to ready (unless superseded), kicks a queued
// request, and arms the one-shot auto-discovery timer after the first run.
func (o *Orchestrator) finishSearch(generation uint64) {

	o.mu.Lock()
	if generation == o.generation {
		o.state = StateReady
	}
	pending := o.pending
	o.pending = nil

	scheduleAuto := o.autoDiscoveryDelay > 0 && !o.autoScheduled && pending == nil
	if scheduleAuto {
		o.autoScheduled = true
	}
	o.mu.Unlock()

	if pending != nil {
		go func(params models.SearchParams) {
			if _, err := o.Search(context.Background(), params); err != nil &&
				!errors.Is(err, ErrSearchInFlight) && !errors.Is(err, ErrSearchQueued) {
				log.Errorf("queued search failed: %v", err)
			}
		}(*pending)
		return
	}

	if scheduleAuto {
		time.AfterFunc(o.autoDiscoveryDelay, func() {
			if _, err := o.Refresh(context.Background()); err != nil &&
				!errors.Is(err, ErrSearchInFlight) {
				log.Errorf("auto-discovery refresh failed: %v", err)
			}
		})
	}
}

// Results reads a snapshot, applies the filter specification and sort order,
// and annotates saved/applied flags. The working set itself is never mutated.
func (o *Orchestrator) Results(filters models.JobFilters, order SortOrder) []models.Job {

	o.mu.Lock()
	snapshot := o.set.Snapshot()
	o.mu.Unlock()

	var appliedIDs map[string]bool
	if o.tracker != nil {
		appliedIDs = o.tracker.AppliedIDs()
	}

	visible := ApplyFilters(snapshot, filters, appliedIDs)
	sorted := SortJobs(visible, order)

	if o.tracker != nil {
		sorted = o.tracker.Annotate(sorted)
	}
	return sorted
}

func (o *Orchestrator) WorkingSetSize() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.set.Len()
}

// RemoveOlderThan ages out postings per the retention policy.
func (o *Orchestrator) RemoveOlderThan(cutoff time.Time) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.set.RemoveOlderThan(cutoff)
}

// Clear drops the whole working set (explicit cache-clear).
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.set.Clear()
	o.state = StateIdle
}
