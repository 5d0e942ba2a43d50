package webhook

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {

	// Url of the receiving endpoint, e.g. https://example.com/hooks/job-alerts
	Url string `validate:"required"`

	// BatchMaxSize is the maximum number of notifications sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time to wait before sending a request
	BatchMaxWait time.Duration `validate:"gte=1"`

	// Username is the username used for basic authentication.
	// It is optional. If authentication is not required, leave it empty.
	Username string

	// Password is the password associated with the Username.
	// It is optional. If authentication is not required, leave it empty.
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 100
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
}

// Notification is a single matched posting delivered to the endpoint.
type Notification struct {
	UserID    int64  `json:"user_id"`
	AlertID   int    `json:"alert_id"`
	AlertName string `json:"alert_name"`
	JobID     string `json:"job_id"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	ApplyURL  string `json:"apply_url,omitempty"`
}

type pushRequest struct {
	SentAt        time.Time      `json:"sent_at"`
	Notifications []Notification `json:"notifications"`
}

// Pusher buffers notifications and delivers them in gzipped JSON batches.
type Pusher struct {
	config    *Config
	ctx       context.Context
	cancel    context.CancelFunc
	client    *http.Client
	quit      chan struct{}
	entry     chan Notification
	waitGroup sync.WaitGroup
	batch     []Notification
	logger    Logger
}

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	err := validator.New().Struct(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config: &cfg,
		ctx:    ctx,
		cancel: cancel,
		client: &http.Client{},
		quit:   make(chan struct{}),
		entry:  make(chan Notification),
		batch:  make([]Notification, 0, cfg.BatchMaxSize),
		logger: logger,
	}

	p.waitGroup.Add(1)
	go p.run()
	return p, nil
}

// Push queues a notification for delivery
func (p *Pusher) Push(n Notification) error {
	p.entry <- n
	return nil
}

// Stop flushes the remaining batch and stops the pusher
func (p *Pusher) Stop() {
	close(p.quit)
	p.waitGroup.Wait()
	p.cancel()
}

func (p *Pusher) run() {
	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	trySendBatch := func() {
		err := p.send()
		if err != nil {
			p.logger.Error("failed to send notifications", "error", err)
		}
		p.batch = p.batch[:0]
	}

	defer func() {
		if len(p.batch) > 0 {
			trySendBatch()
		}

		p.waitGroup.Done()
	}()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.quit:
			return
		case n := <-p.entry:
			p.batch = append(p.batch, n)
			if len(p.batch) >= p.config.BatchMaxSize {
				trySendBatch()
			}
		case <-ticker.C:
			if len(p.batch) > 0 {
				trySendBatch()
			}
		}
	}
}

func (p *Pusher) send() error {
	buf := bytes.NewBuffer([]byte{})
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(pushRequest{
		SentAt:        time.Now(),
		Notifications: p.batch,
	}); err != nil {
		return err
	}

	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(p.ctx, http.MethodPost, p.config.Url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("received unexpected response code from webhook: %s, body: %s", resp.Status, string(body))
	}

	return nil
}
