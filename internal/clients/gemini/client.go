package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

type Model string

const (
	//Model15Flash is the fastest model, good enough for short grading prompts
	Model15Flash Model = "gemini-1.5-flash"
	//Model15Flash8b is the smallest and cheapest model
	Model15Flash8b Model = "gemini-1.5-flash-8b"
	//Model15Pro is the strongest model, overkill for most scoring runs
	Model15Pro Model = "gemini-1.5-pro"
)

// Client wraps the generative API for short single-turn prompts. Scoring
// wants reproducible answers, so generation runs with zero temperature.
type Client struct {
	client            *genai.Client
	model             *genai.GenerativeModel
	minuteRateLimiter *rate.Limiter
	dayRateLimiter    *rate.Limiter
}

func NewClient(ctx context.Context, apiKey string, model Model) (*Client, error) {

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	genModel := client.GenerativeModel(string(model))
	genModel.SetTemperature(0)
	genModel.SetCandidateCount(1)

	return &Client{
		client: client,
		model:  genModel,
	}, nil
}

func (c *Client) SetMinuteRateLimit(maxRequestsPerMinute float32) {
	c.minuteRateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerMinute/60), 1)
}

func (c *Client) SetDayRateLimit(maxRequestsPerDay float32) {
	c.dayRateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerDay/86400), int(maxRequestsPerDay))
}

func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateResponse sends the prompt and returns the model's text answer.
// Transient server errors are retried up to three times.
func (c *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {

	var resp string
	var err error

	_, _, _ = lo.AttemptWhileWithDelay(3, 2*time.Second, func(i int, _ time.Duration) (error, bool) {
		if i > 0 {
			log.Warn("gemini api returned 500 error, retrying...")
		}
		resp, err = c.waitAndGenerate(ctx, prompt)
		return err, isInternalError(err)
	})

	return resp, err
}

func (c *Client) waitAndGenerate(ctx context.Context, prompt string) (string, error) {

	for _, limiter := range []*rate.Limiter{c.minuteRateLimiter, c.dayRateLimiter} {
		if limiter == nil {
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	response, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response has no candidates")
	}

	if textPart, ok := response.Candidates[0].Content.Parts[0].(genai.Text); ok {
		return string(textPart), nil
	}

	return "", fmt.Errorf("response part is not text")
}

func isInternalError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "Error 500")
}
