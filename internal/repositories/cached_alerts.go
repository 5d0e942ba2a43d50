package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobradar/discovery/internal/domain/models"
	"github.com/jobradar/discovery/internal/events"
	gocache "github.com/patrickmn/go-cache"
)

type alertsRepository interface {
	Add(ctx context.Context, alert models.Alert) error
	GetActive(ctx context.Context, pageSize int, pageNum int) ([]models.Alert, error)
	Update(ctx context.Context, alert models.Alert) error
	UpdateLastChecked(ctx context.Context, alertID int) error
	Remove(ctx context.Context, alertID int) error
}

// CachedAlerts decorates the alerts repository for the matcher's read path:
// the matcher re-reads active alerts on every merge batch and the list
// changes rarely. Mutations go through the decorator too, so every write
// drops the cached pages; removals additionally raise AlertDeleted for other
// subscribers.
type CachedAlerts struct {
	repo  alertsRepository
	bus   EventBus.Bus
	cache *gocache.Cache
}

func NewCachedAlerts(repo alertsRepository, bus EventBus.Bus) *CachedAlerts {

	c := &CachedAlerts{repo: repo, bus: bus, cache: gocache.New(time.Minute, 5*time.Minute)}

	if bus != nil {
		_ = bus.Subscribe(events.AlertDeletedTopic, func(events.AlertDeleted) {
			c.Invalidate()
		})
	}
	return c
}

func (c *CachedAlerts) Add(ctx context.Context, alert models.Alert) error {
	if err := c.repo.Add(ctx, alert); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

func (c *CachedAlerts) GetActive(ctx context.Context, pageSize int, pageNum int) ([]models.Alert, error) {

	key := strconv.Itoa(pageSize) + ":" + strconv.Itoa(pageNum)
	if value, found := c.cache.Get(key); found {
		return value.([]models.Alert), nil
	}

	alerts, err := c.repo.GetActive(ctx, pageSize, pageNum)
	if err != nil {
		return nil, err
	}

	if err = c.cache.Add(key, alerts, gocache.DefaultExpiration); err != nil {
		return alerts, nil
	}
	return alerts, nil
}

func (c *CachedAlerts) Update(ctx context.Context, alert models.Alert) error {
	if err := c.repo.Update(ctx, alert); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

func (c *CachedAlerts) UpdateLastChecked(ctx context.Context, alertID int) error {
	return c.repo.UpdateLastChecked(ctx, alertID)
}

func (c *CachedAlerts) Remove(ctx context.Context, alertID int) error {

	if err := c.repo.Remove(ctx, alertID); err != nil {
		return err
	}

	c.Invalidate()
	if c.bus != nil {
		c.bus.Publish(events.AlertDeletedTopic, events.AlertDeleted{AlertID: alertID})
	}
	return nil
}

// Invalidate drops the cached pages, e.g. after an alert is created, edited
// or deleted.
func (c *CachedAlerts) Invalidate() {
	c.cache.Flush()
}
